package services

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"socialdb/internal/models"
	"socialdb/internal/query"
	"socialdb/internal/repositories"
)

// UserService handles business logic related to users. Deletion and
// subscriptions live in IntegrityService because they touch other records.
type UserService struct {
	db  *repositories.DB
	log *logrus.Entry
}

// NewUserService creates a new UserService.
func NewUserService(db *repositories.DB, log *logrus.Entry) *UserService {
	return &UserService{
		db:  db,
		log: log.WithField("component", "user_service"),
	}
}

// GetAll retrieves all users in creation order.
func (s *UserService) GetAll() ([]models.User, error) {
	return s.db.Users().FindMany(nil)
}

// GetByID retrieves a single user by its ID.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.db.Users().FindByID(id)
}

// Create stores a new user. The email must not be in use.
func (s *UserService) Create(dto models.CreateUserDTO) (*models.User, error) {
	var created *models.User
	err := s.db.Update(func(tx *repositories.Tx) error {
		if err := checkEmailFree(tx, dto.Email, ""); err != nil {
			return err
		}
		u, err := tx.Users().Create(dto.ToUser())
		if err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithField("userId", created.ID).Info("User created")
	return created, nil
}

// Change applies a partial update to a user. A replaced subscription list
// must name existing users other than the user itself.
func (s *UserService) Change(id string, dto models.ChangeUserDTO) (*models.User, error) {
	var changed *models.User
	err := s.db.Update(func(tx *repositories.Tx) error {
		if _, err := tx.Users().FindByID(id); err != nil {
			return err
		}
		if dto.Email != nil {
			if err := checkEmailFree(tx, *dto.Email, id); err != nil {
				return err
			}
		}
		if dto.SubscribedToUserIDs != nil {
			if err := checkSubscriptions(tx, id, dto.SubscribedToUserIDs); err != nil {
				return err
			}
		}
		u, err := tx.Users().Change(id, dto)
		if err != nil {
			return err
		}
		changed = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}

func checkEmailFree(tx *repositories.Tx, email, ownerID string) error {
	existing, err := tx.Users().FindOne(query.Equals("email", email))
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != ownerID {
		return fmt.Errorf("email %s is already registered: %w", email, models.ErrConflict)
	}
	return nil
}

func checkSubscriptions(tx *repositories.Tx, ownerID string, ids []string) error {
	for i, id := range ids {
		if id == ownerID {
			return fmt.Errorf("user %s cannot be subscribed to itself: %w", ownerID, models.ErrInvalidInput)
		}
		if slices.Contains(ids[:i], id) {
			return fmt.Errorf("duplicate subscription %s: %w", id, models.ErrInvalidInput)
		}
		u, err := tx.Users().FindOne(query.Equals("id", id))
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("subscribed user %s does not exist: %w", id, models.ErrInvalidInput)
		}
	}
	return nil
}
