package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/portfolio-cms/backend/internal/models"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
)

type ProjectRepository interface {
	BaseRepository[models.Project]
	// List returns all projects newest first, each with screenshots and a
	// comment count but without comment bodies.
	List(ctx context.Context) ([]models.Project, error)
	// GetFull loads a project with tech stacks, screenshots and comments.
	GetFull(ctx context.Context, id uint, dest *models.Project) error
	// Replace updates the project's own columns and swaps both child
	// collections for the provided sets inside a single transaction. If any
	// step fails the previous children remain intact.
	Replace(ctx context.Context, p *models.Project, stacks []models.TechStack, shots []models.Screenshot) error
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db), db: db}
}

func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	err := r.db.WithContext(ctx).
		Preload("Screenshots").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects failed")
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]uint, len(out))
	for i, p := range out {
		ids[i] = p.ID
	}
	type countRow struct {
		ProjectID uint
		N         int64
	}
	var counts []countRow
	err = r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("project_id, COUNT(*) AS n").
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&counts).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "count project comments failed")
	}
	byID := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byID[c.ProjectID] = c.N
	}
	for i := range out {
		out[i].CommentCount = byID[out[i].ID]
	}
	return out, nil
}

func (r *projectRepository) GetFull(ctx context.Context, id uint, dest *models.Project) error {
	err := r.db.WithContext(ctx).
		Preload("TechStacks").
		Preload("Screenshots").
		Preload("Comments").
		First(dest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "Project not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get project failed")
	}
	return nil
}

func (r *projectRepository) Replace(ctx context.Context, p *models.Project, stacks []models.TechStack, shots []models.Screenshot) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(p).Select("title", "description", "category", "link").Updates(map[string]any{
			"title":       p.Title,
			"description": p.Description,
			"category":    p.Category,
			"link":        p.Link,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", p.ID).Delete(&models.TechStack{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", p.ID).Delete(&models.Screenshot{}).Error; err != nil {
			return err
		}
		for i := range stacks {
			stacks[i].ID = 0
			stacks[i].ProjectID = p.ID
		}
		for i := range shots {
			shots[i].ID = 0
			shots[i].ProjectID = p.ID
		}
		if err := tx.Create(&stacks).Error; err != nil {
			return err
		}
		if err := tx.Create(&shots).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "replace project children failed")
	}
	p.TechStacks = stacks
	p.Screenshots = shots
	return nil
}
