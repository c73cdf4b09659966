package models

import "socialdb/internal/query"

// Post is a blog entry written by a user.
type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

func (p Post) Clone() Post { return p }

type CreatePostDTO struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	UserID  string `json:"userId" validate:"required"`
}

func (d CreatePostDTO) ToPost() Post {
	return Post{Title: d.Title, Content: d.Content, UserID: d.UserID}
}

// ChangePostDTO is a partial update. The author cannot be changed.
type ChangePostDTO struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

func (d ChangePostDTO) Apply(p *Post) {
	if d.Title != nil {
		p.Title = *d.Title
	}
	if d.Content != nil {
		p.Content = *d.Content
	}
}

var PostFields = query.Fields[Post]{
	"id":      func(p *Post) any { return p.ID },
	"title":   func(p *Post) any { return p.Title },
	"content": func(p *Post) any { return p.Content },
	"userId":  func(p *Post) any { return p.UserID },
}
