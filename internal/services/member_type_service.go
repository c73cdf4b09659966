package services

import (
	"socialdb/internal/models"
	"socialdb/internal/repositories"
)

// MemberTypeService exposes the fixed set of membership tiers. Tiers can be
// tuned but never created or removed.
type MemberTypeService struct {
	db *repositories.DB
}

func NewMemberTypeService(db *repositories.DB) *MemberTypeService {
	return &MemberTypeService{db: db}
}

func (s *MemberTypeService) GetAll() ([]models.MemberType, error) {
	return s.db.MemberTypes().FindMany(nil)
}

func (s *MemberTypeService) GetByID(id string) (*models.MemberType, error) {
	return s.db.MemberTypes().FindByID(id)
}

func (s *MemberTypeService) Change(id string, dto models.ChangeMemberTypeDTO) (*models.MemberType, error) {
	return s.db.MemberTypes().Change(id, dto)
}
