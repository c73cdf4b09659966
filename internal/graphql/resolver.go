// Package graphql serves the GraphQL facade over the same services the REST
// handlers use.
package graphql

import (
	"context"
	"errors"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"

	"socialdb/internal/models"
	"socialdb/internal/services"
	"socialdb/internal/validation"
)

// Services bundles what the resolvers delegate to.
type Services struct {
	Users       *services.UserService
	Profiles    *services.ProfileService
	Posts       *services.PostService
	MemberTypes *services.MemberTypeService
	Integrity   *services.IntegrityService
	Aggregation *services.AggregationService
}

// Resolver is the root resolver for both queries and mutations.
type Resolver struct {
	svc      Services
	validate *validation.Validator
	log      *logrus.Entry
}

// NewResolver creates a new root resolver.
func NewResolver(svc Services, v *validation.Validator, log *logrus.Entry) *Resolver {
	return &Resolver{
		svc:      svc,
		validate: v,
		log:      log.WithField("component", "graphql"),
	}
}

// NewSchema parses Schema against r, bounding query depth.
func NewSchema(r *Resolver, maxDepth int) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, r, graphql.MaxDepth(maxDepth))
}

type idArgs struct {
	ID graphql.ID
}

func (r *Resolver) GetAllUsers() (*[]*userResolver, error) {
	all, err := r.svc.Users.GetAll()
	if err != nil {
		return nil, wrapErr(err)
	}
	out := users(all)
	return &out, nil
}

func (r *Resolver) GetAllProfiles() (*[]*profileResolver, error) {
	all, err := r.svc.Profiles.GetAll()
	if err != nil {
		return nil, wrapErr(err)
	}
	out := profiles(all)
	return &out, nil
}

func (r *Resolver) GetAllPosts() (*[]*postResolver, error) {
	all, err := r.svc.Posts.GetAll()
	if err != nil {
		return nil, wrapErr(err)
	}
	out := posts(all)
	return &out, nil
}

func (r *Resolver) GetAllMemberTypes() (*[]*memberTypeResolver, error) {
	all, err := r.svc.MemberTypes.GetAll()
	if err != nil {
		return nil, wrapErr(err)
	}
	out := memberTypes(all)
	return &out, nil
}

// The by-id lookups answer null for an unknown id.

func (r *Resolver) GetUserByID(args idArgs) (*userResolver, error) {
	u, err := r.svc.Users.GetByID(string(args.ID))
	if err != nil {
		return nil, absent(err)
	}
	return &userResolver{u: *u}, nil
}

func (r *Resolver) GetProfileByID(args idArgs) (*profileResolver, error) {
	p, err := r.svc.Profiles.GetByID(string(args.ID))
	if err != nil {
		return nil, absent(err)
	}
	return &profileResolver{p: *p}, nil
}

func (r *Resolver) GetPostByID(args idArgs) (*postResolver, error) {
	p, err := r.svc.Posts.GetByID(string(args.ID))
	if err != nil {
		return nil, absent(err)
	}
	return &postResolver{p: *p}, nil
}

func (r *Resolver) GetMemberTypeByID(args idArgs) (*memberTypeResolver, error) {
	m, err := r.svc.MemberTypes.GetByID(string(args.ID))
	if err != nil {
		return nil, absent(err)
	}
	return &memberTypeResolver{m: *m}, nil
}

func (r *Resolver) GetUsersWithAllData(ctx context.Context) (*[]*userWithAllDataResolver, error) {
	views, err := r.svc.Aggregation.AllUsersWithAllData(ctx)
	if err != nil {
		return nil, wrapErr(err)
	}
	out := make([]*userWithAllDataResolver, len(views))
	for i := range views {
		out[i] = &userWithAllDataResolver{userResolver: userResolver{u: views[i].User}, v: views[i]}
	}
	return &out, nil
}

func (r *Resolver) GetAllUserWithAllDataByID(args idArgs) (*userWithAllDataResolver, error) {
	v, err := r.svc.Aggregation.UserWithAllDataByID(string(args.ID))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &userWithAllDataResolver{userResolver: userResolver{u: v.User}, v: *v}, nil
}

func (r *Resolver) GetUserWithProfile(ctx context.Context) (*[]*userWithProfileResolver, error) {
	views, err := r.svc.Aggregation.AllUsersWithProfile(ctx)
	if err != nil {
		return nil, wrapErr(err)
	}
	out := make([]*userWithProfileResolver, len(views))
	for i := range views {
		out[i] = &userWithProfileResolver{userResolver: userResolver{u: views[i].User}, v: views[i]}
	}
	return &out, nil
}

func (r *Resolver) GetUserWithPosts(args idArgs) (*userWithPostsResolver, error) {
	v, err := r.svc.Aggregation.UserWithPostsByID(string(args.ID))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &userWithPostsResolver{userResolver: userResolver{u: v.User}, v: *v}, nil
}

func (r *Resolver) GetUsersWithAllFollowers(ctx context.Context) (*[]*userWithFollowersResolver, error) {
	views, err := r.svc.Aggregation.UsersWithFollowGraph(ctx)
	if err != nil {
		return nil, wrapErr(err)
	}
	out := make([]*userWithFollowersResolver, len(views))
	for i := range views {
		out[i] = &userWithFollowersResolver{userResolver: userResolver{u: views[i].User}, v: views[i]}
	}
	return &out, nil
}

// absent turns a not-found lookup into a null result.
func absent(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	return wrapErr(err)
}
