package models

import "socialdb/internal/query"

// Profile holds the optional personal details of a user. A user has at most
// one profile.
type Profile struct {
	ID           string  `json:"id"`
	Avatar       *string `json:"avatar"`
	Sex          *string `json:"sex"`
	Birthday     *int    `json:"birthday"`
	Country      *string `json:"country"`
	Street       *string `json:"street"`
	City         *string `json:"city"`
	MemberTypeID string  `json:"memberTypeId"`
	UserID       string  `json:"userId"`
}

func (p Profile) Clone() Profile {
	p.Avatar = clonePtr(p.Avatar)
	p.Sex = clonePtr(p.Sex)
	p.Birthday = clonePtr(p.Birthday)
	p.Country = clonePtr(p.Country)
	p.Street = clonePtr(p.Street)
	p.City = clonePtr(p.City)
	return p
}

type CreateProfileDTO struct {
	Avatar       *string `json:"avatar" validate:"omitempty,max=500"`
	Sex          *string `json:"sex" validate:"omitempty,max=50"`
	Birthday     *int    `json:"birthday" validate:"omitempty,min=-2147483648,max=2147483647"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
	Street       *string `json:"street" validate:"omitempty,max=200"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	MemberTypeID string  `json:"memberTypeId" validate:"required"`
	UserID       string  `json:"userId" validate:"required"`
}

func (d CreateProfileDTO) ToProfile() Profile {
	return Profile{
		Avatar:       clonePtr(d.Avatar),
		Sex:          clonePtr(d.Sex),
		Birthday:     clonePtr(d.Birthday),
		Country:      clonePtr(d.Country),
		Street:       clonePtr(d.Street),
		City:         clonePtr(d.City),
		MemberTypeID: d.MemberTypeID,
		UserID:       d.UserID,
	}
}

// ChangeProfileDTO is a partial update. The owning user cannot be changed.
type ChangeProfileDTO struct {
	Avatar       *string `json:"avatar" validate:"omitempty,max=500"`
	Sex          *string `json:"sex" validate:"omitempty,max=50"`
	Birthday     *int    `json:"birthday" validate:"omitempty,min=-2147483648,max=2147483647"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
	Street       *string `json:"street" validate:"omitempty,max=200"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	MemberTypeID *string `json:"memberTypeId" validate:"omitempty,min=1"`
}

func (d ChangeProfileDTO) Apply(p *Profile) {
	if d.Avatar != nil {
		p.Avatar = clonePtr(d.Avatar)
	}
	if d.Sex != nil {
		p.Sex = clonePtr(d.Sex)
	}
	if d.Birthday != nil {
		p.Birthday = clonePtr(d.Birthday)
	}
	if d.Country != nil {
		p.Country = clonePtr(d.Country)
	}
	if d.Street != nil {
		p.Street = clonePtr(d.Street)
	}
	if d.City != nil {
		p.City = clonePtr(d.City)
	}
	if d.MemberTypeID != nil {
		p.MemberTypeID = *d.MemberTypeID
	}
}

var ProfileFields = query.Fields[Profile]{
	"id":           func(p *Profile) any { return p.ID },
	"avatar":       func(p *Profile) any { return deref(p.Avatar) },
	"sex":          func(p *Profile) any { return deref(p.Sex) },
	"birthday":     func(p *Profile) any { return deref(p.Birthday) },
	"country":      func(p *Profile) any { return deref(p.Country) },
	"street":       func(p *Profile) any { return deref(p.Street) },
	"city":         func(p *Profile) any { return deref(p.City) },
	"memberTypeId": func(p *Profile) any { return p.MemberTypeID },
	"userId":       func(p *Profile) any { return p.UserID },
}

func clonePtr[V any](v *V) *V {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// deref turns an optional field into a plain value, nil when unset.
func deref[V any](v *V) any {
	if v == nil {
		return nil
	}
	return *v
}
