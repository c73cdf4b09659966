package models

import "socialdb/internal/query"

const (
	MemberTypeBasic    = "basic"
	MemberTypeBusiness = "business"
)

// MemberType is a membership tier. The set is fixed and seeded at startup.
type MemberType struct {
	ID              string `json:"id"`
	Discount        int    `json:"discount"`
	MonthPostsLimit int    `json:"monthPostsLimit"`
}

func (m MemberType) Clone() MemberType { return m }

// DefaultMemberTypes returns the tiers every store starts with.
func DefaultMemberTypes() []MemberType {
	return []MemberType{
		{ID: MemberTypeBasic, Discount: 0, MonthPostsLimit: 20},
		{ID: MemberTypeBusiness, Discount: 5, MonthPostsLimit: 100},
	}
}

type ChangeMemberTypeDTO struct {
	Discount        *int `json:"discount" validate:"omitempty,min=0,max=100"`
	MonthPostsLimit *int `json:"monthPostsLimit" validate:"omitempty,min=0,max=2147483647"`
}

func (d ChangeMemberTypeDTO) Apply(m *MemberType) {
	if d.Discount != nil {
		m.Discount = *d.Discount
	}
	if d.MonthPostsLimit != nil {
		m.MonthPostsLimit = *d.MonthPostsLimit
	}
}

var MemberTypeFields = query.Fields[MemberType]{
	"id":              func(m *MemberType) any { return m.ID },
	"discount":        func(m *MemberType) any { return m.Discount },
	"monthPostsLimit": func(m *MemberType) any { return m.MonthPostsLimit },
}
