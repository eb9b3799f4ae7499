package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/portfolio-cms/backend/internal/models"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
)

type UserRepository interface {
	BaseRepository[models.User]
	// GetProfile loads the user together with phone numbers, social links
	// and skills, as served by /me.
	GetProfile(ctx context.Context, id uint, dest *models.User) error
	// GetByUsername looks a user up by its unique username; the bootstrap
	// create endpoint uses it to reject duplicates.
	GetByUsername(ctx context.Context, username string, dest *models.User) error
	// UpdateFields applies a partial update of profile columns only;
	// username and password are never touched here.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db), db: db}
}

func (r *userRepository) GetProfile(ctx context.Context, id uint, dest *models.User) error {
	err := r.db.WithContext(ctx).
		Preload("PhoneNumbers").
		Preload("SocialLinks").
		Preload("Skills").
		First(dest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "User not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user profile failed")
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "User not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by username failed")
	}
	return nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update user failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "User not found")
	}
	return nil
}
