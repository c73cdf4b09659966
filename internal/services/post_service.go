package services

import (
	"github.com/sirupsen/logrus"

	"socialdb/internal/models"
	"socialdb/internal/query"
	"socialdb/internal/repositories"
)

// PostService handles business logic related to posts.
type PostService struct {
	db  *repositories.DB
	log *logrus.Entry
}

// NewPostService creates a new PostService.
func NewPostService(db *repositories.DB, log *logrus.Entry) *PostService {
	return &PostService{
		db:  db,
		log: log.WithField("component", "post_service"),
	}
}

// GetAll retrieves all posts.
func (s *PostService) GetAll() ([]models.Post, error) {
	return s.db.Posts().FindMany(nil)
}

// GetByID retrieves a single post by its ID.
func (s *PostService) GetByID(id string) (*models.Post, error) {
	return s.db.Posts().FindByID(id)
}

// GetByUser retrieves the posts written by a user.
func (s *PostService) GetByUser(userID string) ([]models.Post, error) {
	return s.db.Posts().FindMany(query.Equals("userId", userID))
}

// Create stores a post written by an existing user.
func (s *PostService) Create(dto models.CreatePostDTO) (*models.Post, error) {
	var created *models.Post
	err := s.db.Update(func(tx *repositories.Tx) error {
		if err := checkUserRef(tx, dto.UserID); err != nil {
			return err
		}
		p, err := tx.Posts().Create(dto.ToPost())
		if err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"postId": created.ID, "userId": created.UserID}).Info("Post created")
	return created, nil
}

// Change applies a partial update to a post.
func (s *PostService) Change(id string, dto models.ChangePostDTO) (*models.Post, error) {
	return s.db.Posts().Change(id, dto)
}

// Delete removes a post.
func (s *PostService) Delete(id string) (*models.Post, error) {
	p, err := s.db.Posts().Delete(id)
	if err != nil {
		return nil, err
	}
	s.log.WithField("postId", id).Info("Post deleted")
	return p, nil
}
