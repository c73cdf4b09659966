package services

import (
	"context"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"socialdb/internal/models"
	"socialdb/internal/query"
	"socialdb/internal/repositories"
)

// AggregationService builds denormalized read views. Every view is computed
// against a single snapshot, so it never mixes two versions of the data.
type AggregationService struct {
	db  *repositories.DB
	log *logrus.Entry
}

// NewAggregationService creates a new AggregationService.
func NewAggregationService(db *repositories.DB, log *logrus.Entry) *AggregationService {
	return &AggregationService{
		db:  db,
		log: log.WithField("component", "aggregation_service"),
	}
}

// UserWithAllData joins user with its posts, its profiles and the member
// type ids of those profiles.
func (s *AggregationService) UserWithAllData(user models.User) (*models.UserWithAllData, error) {
	var out *models.UserWithAllData
	err := s.db.View(func(tx *repositories.Tx) error {
		v, err := userWithAllData(tx, user)
		out = v
		return err
	})
	return out, err
}

// UserWithAllDataByID is UserWithAllData for a user looked up by id.
func (s *AggregationService) UserWithAllDataByID(id string) (*models.UserWithAllData, error) {
	var out *models.UserWithAllData
	err := s.db.View(func(tx *repositories.Tx) error {
		u, err := tx.Users().FindByID(id)
		if err != nil {
			return err
		}
		out, err = userWithAllData(tx, *u)
		return err
	})
	return out, err
}

// AllUsersWithAllData returns one UserWithAllData per user, in creation
// order. All entries are resolved before it returns.
func (s *AggregationService) AllUsersWithAllData(ctx context.Context) ([]models.UserWithAllData, error) {
	return fanOut(ctx, s.db, userWithAllData)
}

// UserWithProfileView joins user with its profile and the profiles of the
// users listed in its SubscribedToUserIDs.
func (s *AggregationService) UserWithProfileView(user models.User) (*models.UserWithProfile, error) {
	var out *models.UserWithProfile
	err := s.db.View(func(tx *repositories.Tx) error {
		v, err := userWithProfile(tx, user)
		out = v
		return err
	})
	return out, err
}

// AllUsersWithProfile returns UserWithProfileView for every user.
func (s *AggregationService) AllUsersWithProfile(ctx context.Context) ([]models.UserWithProfile, error) {
	return fanOut(ctx, s.db, userWithProfile)
}

// UserWithPostsView joins user with its posts and the posts of the users
// listed in its SubscribedToUserIDs.
func (s *AggregationService) UserWithPostsView(user models.User) (*models.UserWithPosts, error) {
	var out *models.UserWithPosts
	err := s.db.View(func(tx *repositories.Tx) error {
		v, err := userWithPosts(tx, user)
		out = v
		return err
	})
	return out, err
}

// UserWithPostsByID is UserWithPostsView for a user looked up by id.
func (s *AggregationService) UserWithPostsByID(id string) (*models.UserWithPosts, error) {
	var out *models.UserWithPosts
	err := s.db.View(func(tx *repositories.Tx) error {
		u, err := tx.Users().FindByID(id)
		if err != nil {
			return err
		}
		out, err = userWithPosts(tx, *u)
		return err
	})
	return out, err
}

// UsersWithFollowGraph returns every user with its followers and the users it
// follows, each of those carrying their own followers and following.
func (s *AggregationService) UsersWithFollowGraph(ctx context.Context) ([]models.UserWithFollowers, error) {
	return fanOut(ctx, s.db, userWithFollowers)
}

// fanOut lists the users of one snapshot and builds a view for each of them
// in parallel. The result keeps the listing order.
func fanOut[V any](ctx context.Context, db *repositories.DB, build func(*repositories.Tx, models.User) (*V, error)) ([]V, error) {
	snap := db.Snapshot()
	users, err := snap.Users().FindMany(nil)
	if err != nil {
		return nil, err
	}

	out := make([]V, len(users))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, u := range users {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return snap.View(func(tx *repositories.Tx) error {
				v, err := build(tx, u)
				if err != nil {
					return err
				}
				out[i] = *v
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func userWithAllData(tx *repositories.Tx, user models.User) (*models.UserWithAllData, error) {
	posts, err := tx.Posts().FindMany(query.Equals("userId", user.ID))
	if err != nil {
		return nil, err
	}
	profiles, err := tx.Profiles().FindMany(query.Equals("userId", user.ID))
	if err != nil {
		return nil, err
	}
	memberTypeIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		memberTypeIDs = append(memberTypeIDs, p.MemberTypeID)
	}
	return &models.UserWithAllData{
		User:          user.Clone(),
		Posts:         posts,
		Profiles:      profiles,
		MemberTypeIDs: memberTypeIDs,
	}, nil
}

func userWithProfile(tx *repositories.Tx, user models.User) (*models.UserWithProfile, error) {
	own, err := tx.Profiles().FindOne(query.Equals("userId", user.ID))
	if err != nil {
		return nil, err
	}
	followed := make([]models.Profile, 0, len(user.SubscribedToUserIDs))
	for _, id := range user.SubscribedToUserIDs {
		p, err := tx.Profiles().FindOne(query.Equals("userId", id))
		if err != nil {
			return nil, err
		}
		if p != nil {
			followed = append(followed, *p)
		}
	}
	return &models.UserWithProfile{
		User:             user.Clone(),
		Profile:          own,
		FollowedProfiles: followed,
	}, nil
}

func userWithPosts(tx *repositories.Tx, user models.User) (*models.UserWithPosts, error) {
	own, err := tx.Posts().FindMany(query.Equals("userId", user.ID))
	if err != nil {
		return nil, err
	}
	followed := make([]models.Post, 0)
	for _, id := range user.SubscribedToUserIDs {
		posts, err := tx.Posts().FindMany(query.Equals("userId", id))
		if err != nil {
			return nil, err
		}
		followed = append(followed, posts...)
	}
	return &models.UserWithPosts{
		User:          user.Clone(),
		Posts:         own,
		FollowedPosts: followed,
	}, nil
}

func userWithFollowers(tx *repositories.Tx, user models.User) (*models.UserWithFollowers, error) {
	followers, following, err := followEdges(tx, user)
	if err != nil {
		return nil, err
	}
	out := &models.UserWithFollowers{
		User:      user.Clone(),
		Followers: make([]models.UserFollowSummary, 0, len(followers)),
		Following: make([]models.UserFollowSummary, 0, len(following)),
	}
	for _, f := range followers {
		sum, err := followSummary(tx, f)
		if err != nil {
			return nil, err
		}
		out.Followers = append(out.Followers, *sum)
	}
	for _, f := range following {
		sum, err := followSummary(tx, f)
		if err != nil {
			return nil, err
		}
		out.Following = append(out.Following, *sum)
	}
	return out, nil
}

func followSummary(tx *repositories.Tx, user models.User) (*models.UserFollowSummary, error) {
	followers, following, err := followEdges(tx, user)
	if err != nil {
		return nil, err
	}
	return &models.UserFollowSummary{User: user, Followers: followers, Following: following}, nil
}

// followEdges resolves the immediate edges of user. Followers are the users
// listed in its SubscribedToUserIDs; following are the users whose list
// contains it.
func followEdges(tx *repositories.Tx, user models.User) (followers, following []models.User, err error) {
	followers = make([]models.User, 0, len(user.SubscribedToUserIDs))
	for _, id := range user.SubscribedToUserIDs {
		u, err := tx.Users().FindOne(query.Equals("id", id))
		if err != nil {
			return nil, nil, err
		}
		if u != nil {
			followers = append(followers, *u)
		}
	}
	following, err = tx.Users().FindMany(query.Contains("subscribedToUserIds", user.ID))
	if err != nil {
		return nil, nil, err
	}
	return followers, following, nil
}
