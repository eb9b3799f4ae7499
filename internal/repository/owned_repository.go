package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/portfolio-cms/backend/internal/models"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
)

// Repositories for the user-owned leaf entities. Ownership enforcement
// (row.UserID vs caller) happens in the handlers; these only move rows.

type PhoneNumberRepository interface {
	BaseRepository[models.PhoneNumber]
	ListByUser(ctx context.Context, userID uint) ([]models.PhoneNumber, error)
}

type phoneNumberRepository struct {
	BaseRepository[models.PhoneNumber]
	db *gorm.DB
}

func NewPhoneNumberRepository(db *gorm.DB) PhoneNumberRepository {
	return &phoneNumberRepository{BaseRepository: NewBaseRepository[models.PhoneNumber](db), db: db}
}

func (r *phoneNumberRepository) ListByUser(ctx context.Context, userID uint) ([]models.PhoneNumber, error) {
	var out []models.PhoneNumber
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list phone numbers failed")
	}
	return out, nil
}

type SocialLinkRepository interface {
	BaseRepository[models.SocialLink]
	ListByUser(ctx context.Context, userID uint) ([]models.SocialLink, error)
}

type socialLinkRepository struct {
	BaseRepository[models.SocialLink]
	db *gorm.DB
}

func NewSocialLinkRepository(db *gorm.DB) SocialLinkRepository {
	return &socialLinkRepository{BaseRepository: NewBaseRepository[models.SocialLink](db), db: db}
}

func (r *socialLinkRepository) ListByUser(ctx context.Context, userID uint) ([]models.SocialLink, error) {
	var out []models.SocialLink
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list social links failed")
	}
	return out, nil
}

type SkillRepository interface {
	BaseRepository[models.Skill]
	ListByUser(ctx context.Context, userID uint) ([]models.Skill, error)
}

type skillRepository struct {
	BaseRepository[models.Skill]
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{BaseRepository: NewBaseRepository[models.Skill](db), db: db}
}

func (r *skillRepository) ListByUser(ctx context.Context, userID uint) ([]models.Skill, error) {
	var out []models.Skill
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list skills failed")
	}
	return out, nil
}
