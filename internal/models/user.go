package models

import (
	"slices"

	"socialdb/internal/query"
)

// User represents a member of the blog.
//
// SubscribedToUserIDs holds the ids of the users that subscribed to this
// user (its followers), see IntegrityService.Subscribe.
type User struct {
	ID                  string   `json:"id"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	Email               string   `json:"email"`
	SubscribedToUserIDs []string `json:"subscribedToUserIds"`
}

// Clone returns a copy that shares no memory with u.
func (u User) Clone() User {
	u.SubscribedToUserIDs = cloneIDs(u.SubscribedToUserIDs)
	return u
}

// CreateUserDTO is the body accepted when creating a user.
type CreateUserDTO struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
}

// ToUser builds a new record with an empty subscription list.
func (d CreateUserDTO) ToUser() User {
	return User{
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		Email:               d.Email,
		SubscribedToUserIDs: []string{},
	}
}

// ChangeUserDTO is a partial update; nil fields are left untouched.
type ChangeUserDTO struct {
	FirstName           *string  `json:"firstName" validate:"omitempty,max=100"`
	LastName            *string  `json:"lastName" validate:"omitempty,max=100"`
	Email               *string  `json:"email" validate:"omitempty,email"`
	SubscribedToUserIDs []string `json:"subscribedToUserIds" validate:"omitempty,unique,dive,required"`
}

// Apply merges the set fields onto u. The subscription list is replaced
// wholesale.
func (d ChangeUserDTO) Apply(u *User) {
	if d.FirstName != nil {
		u.FirstName = *d.FirstName
	}
	if d.LastName != nil {
		u.LastName = *d.LastName
	}
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.SubscribedToUserIDs != nil {
		u.SubscribedToUserIDs = cloneIDs(d.SubscribedToUserIDs)
	}
}

// UserFields is the accessor table used by predicate queries over users.
var UserFields = query.Fields[User]{
	"id":                  func(u *User) any { return u.ID },
	"firstName":           func(u *User) any { return u.FirstName },
	"lastName":            func(u *User) any { return u.LastName },
	"email":               func(u *User) any { return u.Email },
	"subscribedToUserIds": func(u *User) any { return u.SubscribedToUserIDs },
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}

// SubscriptionDTO names the other side of a follow edge.
type SubscriptionDTO struct {
	UserID string `json:"userId" validate:"required"`
}
