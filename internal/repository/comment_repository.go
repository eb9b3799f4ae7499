package repository

import (
	"gorm.io/gorm"

	"github.com/portfolio-cms/backend/internal/models"
)

type CommentRepository interface {
	BaseRepository[models.Comment]
}

type commentRepository struct {
	BaseRepository[models.Comment]
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{BaseRepository: NewBaseRepository[models.Comment](db)}
}

type DownloadLogRepository interface {
	BaseRepository[models.DownloadLog]
}

type downloadLogRepository struct {
	BaseRepository[models.DownloadLog]
}

func NewDownloadLogRepository(db *gorm.DB) DownloadLogRepository {
	return &downloadLogRepository{BaseRepository: NewBaseRepository[models.DownloadLog](db)}
}
