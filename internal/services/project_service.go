package services

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/portfolio-cms/backend/internal/api/types"
	"github.com/portfolio-cms/backend/internal/models"
	"github.com/portfolio-cms/backend/internal/repository"
	"github.com/portfolio-cms/backend/pkg/logger"
)

const projectListKey = "projects:list"

type ProjectService interface {
	Create(ctx context.Context, input *types.ProjectRequest) (*models.Project, error)
	// List returns all projects newest first with screenshots and comment
	// counts. Results are served from a short-lived cache; any mutation
	// invalidates it.
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id uint) (*models.Project, error)
	// Update replaces the project's own fields and swaps both child
	// collections wholesale. Children absent from the input are removed;
	// children present are recreated with fresh ids.
	Update(ctx context.Context, id uint, input *types.ProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, id uint) error
	AddComment(ctx context.Context, projectID uint, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

type projectService struct {
	projects repository.ProjectRepository
	comments repository.CommentRepository
	cache    *cache.Cache
}

func NewProjectService(projects repository.ProjectRepository, comments repository.CommentRepository) ProjectService {
	return &projectService{
		projects: projects,
		comments: comments,
		cache:    cache.New(5*time.Minute, 10*time.Minute),
	}
}

var _ ProjectService = (*projectService)(nil)

func (s *projectService) Create(ctx context.Context, input *types.ProjectRequest) (*models.Project, error) {
	p := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Link:        input.Link,
		TechStacks:  toStacks(input.TechStacks),
		Screenshots: toShots(input.Screenshots),
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Delete(projectListKey)
	logger.L().Info("project created", zap.Uint("project_id", p.ID), zap.String("title", p.Title))
	return p, nil
}

func (s *projectService) List(ctx context.Context) ([]models.Project, error) {
	if v, found := s.cache.Get(projectListKey); found {
		return v.([]models.Project), nil
	}
	out, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(projectListKey, out, cache.DefaultExpiration)
	return out, nil
}

func (s *projectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := s.projects.GetFull(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *projectService) Update(ctx context.Context, id uint, input *types.ProjectRequest) (*models.Project, error) {
	var p models.Project
	if err := s.projects.GetByID(ctx, id, &p); err != nil {
		return nil, err
	}

	p.Title = input.Title
	p.Description = input.Description
	p.Category = input.Category
	p.Link = input.Link

	if err := s.projects.Replace(ctx, &p, toStacks(input.TechStacks), toShots(input.Screenshots)); err != nil {
		return nil, err
	}
	s.cache.Delete(projectListKey)
	logger.L().Info("project updated", zap.Uint("project_id", p.ID),
		zap.Int("tech_stacks", len(p.TechStacks)), zap.Int("screenshots", len(p.Screenshots)))
	return &p, nil
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	var p models.Project
	if err := s.projects.GetByID(ctx, id, &p); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(projectListKey)
	logger.L().Info("project deleted", zap.Uint("project_id", id))
	return nil
}

func (s *projectService) AddComment(ctx context.Context, projectID uint, content string) (*models.Comment, error) {
	var p models.Project
	if err := s.projects.GetByID(ctx, projectID, &p); err != nil {
		return nil, err
	}
	c := &models.Comment{ProjectID: projectID, Content: content}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Delete(projectListKey)
	return c, nil
}

func (s *projectService) DeleteComment(ctx context.Context, id uint) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(projectListKey)
	return nil
}

func toStacks(in []types.TechStackInput) []models.TechStack {
	out := make([]models.TechStack, len(in))
	for i, t := range in {
		out[i] = models.TechStack{Category: t.Category, Skill: t.Skill}
	}
	return out
}

func toShots(in []types.ScreenshotInput) []models.Screenshot {
	out := make([]models.Screenshot, len(in))
	for i, sc := range in {
		out[i] = models.Screenshot{URL: sc.URL}
	}
	return out
}
