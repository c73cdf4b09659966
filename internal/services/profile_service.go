package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"socialdb/internal/models"
	"socialdb/internal/query"
	"socialdb/internal/repositories"
)

// ProfileService handles business logic related to profiles.
type ProfileService struct {
	db  *repositories.DB
	log *logrus.Entry
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *repositories.DB, log *logrus.Entry) *ProfileService {
	return &ProfileService{
		db:  db,
		log: log.WithField("component", "profile_service"),
	}
}

// GetAll retrieves all profiles.
func (s *ProfileService) GetAll() ([]models.Profile, error) {
	return s.db.Profiles().FindMany(nil)
}

// GetByID retrieves a single profile by its ID.
func (s *ProfileService) GetByID(id string) (*models.Profile, error) {
	return s.db.Profiles().FindByID(id)
}

// Create stores a profile for an existing user with a known member type.
// A user has at most one profile.
func (s *ProfileService) Create(dto models.CreateProfileDTO) (*models.Profile, error) {
	var created *models.Profile
	err := s.db.Update(func(tx *repositories.Tx) error {
		if err := checkUserRef(tx, dto.UserID); err != nil {
			return err
		}
		if err := checkMemberTypeRef(tx, dto.MemberTypeID); err != nil {
			return err
		}
		existing, err := tx.Profiles().FindOne(query.Equals("userId", dto.UserID))
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("user %s already has profile %s: %w", dto.UserID, existing.ID, models.ErrConflict)
		}
		p, err := tx.Profiles().Create(dto.ToProfile())
		if err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"profileId": created.ID, "userId": created.UserID}).Info("Profile created")
	return created, nil
}

// Change applies a partial update to a profile.
func (s *ProfileService) Change(id string, dto models.ChangeProfileDTO) (*models.Profile, error) {
	var changed *models.Profile
	err := s.db.Update(func(tx *repositories.Tx) error {
		if _, err := tx.Profiles().FindByID(id); err != nil {
			return err
		}
		if dto.MemberTypeID != nil {
			if err := checkMemberTypeRef(tx, *dto.MemberTypeID); err != nil {
				return err
			}
		}
		p, err := tx.Profiles().Change(id, dto)
		if err != nil {
			return err
		}
		changed = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}

// Delete removes a profile.
func (s *ProfileService) Delete(id string) (*models.Profile, error) {
	p, err := s.db.Profiles().Delete(id)
	if err != nil {
		return nil, err
	}
	s.log.WithField("profileId", id).Info("Profile deleted")
	return p, nil
}

// checkUserRef reports an unknown user as invalid input: the id came from the
// request body, not the path.
func checkUserRef(tx *repositories.Tx, userID string) error {
	u, err := tx.Users().FindOne(query.Equals("id", userID))
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %s does not exist: %w", userID, models.ErrInvalidInput)
	}
	return nil
}

func checkMemberTypeRef(tx *repositories.Tx, memberTypeID string) error {
	mt, err := tx.MemberTypes().FindOne(query.Equals("id", memberTypeID))
	if err != nil {
		return err
	}
	if mt == nil {
		return fmt.Errorf("member type %s does not exist: %w", memberTypeID, models.ErrInvalidInput)
	}
	return nil
}
