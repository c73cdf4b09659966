package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"socialdb/internal/models"
	"socialdb/internal/query"
	"socialdb/internal/repositories"
)

// IntegrityService owns the operations that span several stores: the
// cascading user delete and the follow edges between users.
//
// A follow edge from actor A to target T is stored by listing A in
// T.SubscribedToUserIDs, so that field holds T's followers.
type IntegrityService struct {
	db  *repositories.DB
	pub EventPublisher
	log *logrus.Entry
	now func() time.Time
}

// NewIntegrityService creates a new IntegrityService. pub may be nil, in
// which case no events are published.
func NewIntegrityService(db *repositories.DB, pub EventPublisher, log *logrus.Entry) *IntegrityService {
	return &IntegrityService{
		db:  db,
		pub: pub,
		log: log.WithField("component", "integrity_service"),
		now: time.Now,
	}
}

// DeleteUser removes a user together with its posts, its profile and every
// follow edge pointing at it. All of it is applied in one transaction; if any
// step fails nothing is changed and the error matches models.ErrIntegrity.
func (s *IntegrityService) DeleteUser(id string) (*models.User, error) {
	var (
		deleted  *models.User
		posts    int
		profile  bool
		unlinked int
	)
	err := s.db.Update(func(tx *repositories.Tx) error {
		if _, err := tx.Users().FindByID(id); err != nil {
			return err
		}

		owned, err := tx.Posts().FindMany(query.Equals("userId", id))
		if err != nil {
			return cascadeErr(id, "find posts", err)
		}
		for _, p := range owned {
			if _, err := tx.Posts().Delete(p.ID); err != nil {
				return cascadeErr(id, "delete post "+p.ID, err)
			}
		}
		posts = len(owned)

		pr, err := tx.Profiles().FindOne(query.Equals("userId", id))
		if err != nil {
			return cascadeErr(id, "find profile", err)
		}
		if pr != nil {
			if _, err := tx.Profiles().Delete(pr.ID); err != nil {
				return cascadeErr(id, "delete profile "+pr.ID, err)
			}
			profile = true
		}

		followed, err := tx.Users().FindMany(query.Contains("subscribedToUserIds", id))
		if err != nil {
			return cascadeErr(id, "find subscriptions", err)
		}
		for _, u := range followed {
			rest := slices.DeleteFunc(u.SubscribedToUserIDs, func(s string) bool { return s == id })
			if _, err := tx.Users().Change(u.ID, models.ChangeUserDTO{SubscribedToUserIDs: rest}); err != nil {
				return cascadeErr(id, "unlink user "+u.ID, err)
			}
		}
		unlinked = len(followed)

		u, err := tx.Users().Delete(id)
		if err != nil {
			return cascadeErr(id, "delete user", err)
		}
		deleted = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"userId":   id,
		"posts":    posts,
		"profile":  profile,
		"unlinked": unlinked,
	}).Info("User deleted")
	publish(s.pub, s.log, UserEvent{Type: EventUserDeleted, UserID: id, OccurredAt: s.now()})
	return deleted, nil
}

// Subscribe records that actorID follows targetID. It returns the acting user
// and the updated target.
func (s *IntegrityService) Subscribe(actorID, targetID string) (actor, target *models.User, err error) {
	if actorID == targetID {
		return nil, nil, fmt.Errorf("user %s cannot subscribe to itself: %w", actorID, models.ErrInvalidInput)
	}

	err = s.db.Update(func(tx *repositories.Tx) error {
		t, err := tx.Users().FindByID(targetID)
		if err != nil {
			return err
		}
		if actor, err = tx.Users().FindByID(actorID); err != nil {
			return err
		}
		if slices.Contains(t.SubscribedToUserIDs, actorID) {
			return fmt.Errorf("user %s is already subscribed to %s: %w", actorID, targetID, models.ErrConflict)
		}
		ids := append(t.SubscribedToUserIDs, actorID)
		target, err = tx.Users().Change(targetID, models.ChangeUserDTO{SubscribedToUserIDs: ids})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{"actorId": actorID, "targetId": targetID}).Info("User subscribed")
	publish(s.pub, s.log, UserEvent{Type: EventUserSubscribed, UserID: targetID, ActorID: actorID, OccurredAt: s.now()})
	return actor, target, nil
}

// Unsubscribe removes the edge from actorID to targetID and returns the
// updated target.
func (s *IntegrityService) Unsubscribe(actorID, targetID string) (*models.User, error) {
	var target *models.User
	err := s.db.Update(func(tx *repositories.Tx) error {
		t, err := tx.Users().FindByID(targetID)
		if err != nil {
			return err
		}
		if !slices.Contains(t.SubscribedToUserIDs, actorID) {
			return fmt.Errorf("user %s is not subscribed to %s: %w", actorID, targetID, models.ErrInvalidState)
		}
		ids := slices.DeleteFunc(t.SubscribedToUserIDs, func(s string) bool { return s == actorID })
		target, err = tx.Users().Change(targetID, models.ChangeUserDTO{SubscribedToUserIDs: ids})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"actorId": actorID, "targetId": targetID}).Info("User unsubscribed")
	publish(s.pub, s.log, UserEvent{Type: EventUserUnsubscribed, UserID: targetID, ActorID: actorID, OccurredAt: s.now()})
	return target, nil
}

func cascadeErr(userID, step string, err error) error {
	if errors.Is(err, models.ErrIntegrity) {
		return err
	}
	return fmt.Errorf("%w: deleting user %s: %s: %v", models.ErrIntegrity, userID, step, err)
}
