package graphql

import (
	"fmt"
	"math"

	graphql "github.com/graph-gophers/graphql-go"

	"socialdb/internal/models"
)

type userResolver struct {
	u models.User
}

func (r *userResolver) ID() graphql.ID    { return graphql.ID(r.u.ID) }
func (r *userResolver) FirstName() string { return r.u.FirstName }
func (r *userResolver) LastName() string  { return r.u.LastName }
func (r *userResolver) Email() string     { return r.u.Email }

func (r *userResolver) SubscribedToUserIDs() []graphql.ID {
	return toIDs(r.u.SubscribedToUserIDs)
}

type profileResolver struct {
	p models.Profile
}

func (r *profileResolver) ID() graphql.ID           { return graphql.ID(r.p.ID) }
func (r *profileResolver) Avatar() *string          { return r.p.Avatar }
func (r *profileResolver) Sex() *string             { return r.p.Sex }
func (r *profileResolver) Country() *string         { return r.p.Country }
func (r *profileResolver) Street() *string          { return r.p.Street }
func (r *profileResolver) City() *string            { return r.p.City }
func (r *profileResolver) MemberTypeID() graphql.ID { return graphql.ID(r.p.MemberTypeID) }
func (r *profileResolver) UserID() graphql.ID       { return graphql.ID(r.p.UserID) }

func (r *profileResolver) Birthday() (*int32, error) {
	if r.p.Birthday == nil {
		return nil, nil
	}
	b, err := int32Field("birthday", *r.p.Birthday)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

type postResolver struct {
	p models.Post
}

func (r *postResolver) ID() graphql.ID     { return graphql.ID(r.p.ID) }
func (r *postResolver) Title() string      { return r.p.Title }
func (r *postResolver) Content() string    { return r.p.Content }
func (r *postResolver) UserID() graphql.ID { return graphql.ID(r.p.UserID) }

type memberTypeResolver struct {
	m models.MemberType
}

func (r *memberTypeResolver) ID() graphql.ID { return graphql.ID(r.m.ID) }

func (r *memberTypeResolver) Discount() (int32, error) {
	return int32Field("discount", r.m.Discount)
}

func (r *memberTypeResolver) MonthPostsLimit() (int32, error) {
	return int32Field("monthPostsLimit", r.m.MonthPostsLimit)
}

// int32Field narrows a stored int to the GraphQL Int range. Values that do not
// fit are reported instead of being truncated.
func int32Field(name string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, wrapErr(fmt.Errorf("%s value %d does not fit in a GraphQL Int", name, v))
	}
	return int32(v), nil
}

type userWithAllDataResolver struct {
	userResolver
	v models.UserWithAllData
}

func (r *userWithAllDataResolver) Posts() []*postResolver       { return posts(r.v.Posts) }
func (r *userWithAllDataResolver) Profiles() []*profileResolver { return profiles(r.v.Profiles) }
func (r *userWithAllDataResolver) MemberTypeIDs() []graphql.ID  { return toIDs(r.v.MemberTypeIDs) }

type userWithProfileResolver struct {
	userResolver
	v models.UserWithProfile
}

func (r *userWithProfileResolver) Profile() *profileResolver {
	if r.v.Profile == nil {
		return nil
	}
	return &profileResolver{p: *r.v.Profile}
}

func (r *userWithProfileResolver) FollowedProfiles() []*profileResolver {
	return profiles(r.v.FollowedProfiles)
}

type userWithPostsResolver struct {
	userResolver
	v models.UserWithPosts
}

func (r *userWithPostsResolver) Posts() []*postResolver         { return posts(r.v.Posts) }
func (r *userWithPostsResolver) FollowedPosts() []*postResolver { return posts(r.v.FollowedPosts) }

type userFollowSummaryResolver struct {
	userResolver
	v models.UserFollowSummary
}

func (r *userFollowSummaryResolver) Followers() []*userResolver { return users(r.v.Followers) }
func (r *userFollowSummaryResolver) Following() []*userResolver { return users(r.v.Following) }

type userWithFollowersResolver struct {
	userResolver
	v models.UserWithFollowers
}

func (r *userWithFollowersResolver) Followers() []*userFollowSummaryResolver {
	return summaries(r.v.Followers)
}

func (r *userWithFollowersResolver) Following() []*userFollowSummaryResolver {
	return summaries(r.v.Following)
}

func toIDs(ids []string) []graphql.ID {
	out := make([]graphql.ID, len(ids))
	for i, id := range ids {
		out[i] = graphql.ID(id)
	}
	return out
}

func users(us []models.User) []*userResolver {
	out := make([]*userResolver, len(us))
	for i := range us {
		out[i] = &userResolver{u: us[i]}
	}
	return out
}

func profiles(ps []models.Profile) []*profileResolver {
	out := make([]*profileResolver, len(ps))
	for i := range ps {
		out[i] = &profileResolver{p: ps[i]}
	}
	return out
}

func posts(ps []models.Post) []*postResolver {
	out := make([]*postResolver, len(ps))
	for i := range ps {
		out[i] = &postResolver{p: ps[i]}
	}
	return out
}

func memberTypes(ms []models.MemberType) []*memberTypeResolver {
	out := make([]*memberTypeResolver, len(ms))
	for i := range ms {
		out[i] = &memberTypeResolver{m: ms[i]}
	}
	return out
}

func summaries(ss []models.UserFollowSummary) []*userFollowSummaryResolver {
	out := make([]*userFollowSummaryResolver, len(ss))
	for i := range ss {
		out[i] = &userFollowSummaryResolver{userResolver: userResolver{u: ss[i].User}, v: ss[i]}
	}
	return out
}
