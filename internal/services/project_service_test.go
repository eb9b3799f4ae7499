package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portfolio-cms/backend/internal/api/types"
	"github.com/portfolio-cms/backend/internal/repository"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
)

func projectInput() *types.ProjectRequest {
	return &types.ProjectRequest{
		Title:       "Portfolio Site",
		Description: "A personal portfolio site with an admin dashboard.",
		Category:    "PERSONAL",
		Link:        "https://example.com",
		TechStacks:  []types.TechStackInput{{Category: "FRONTEND", Skill: "React"}},
		Screenshots: []types.ScreenshotInput{{URL: "https://example.com/a.png"}},
	}
}

func newProjectService(t *testing.T) ProjectService {
	t.Helper()
	db := openTestDB(t)
	return NewProjectService(repository.NewProjectRepository(db), repository.NewCommentRepository(db))
}

func TestProjectUpdateReplacesChildren(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, projectInput())
	require.NoError(t, err)
	oldStackID := created.TechStacks[0].ID

	in := projectInput()
	in.Title = "Portfolio Site v2"
	in.TechStacks = []types.TechStackInput{
		{Category: "BACKEND", Skill: "Go"},
		{Category: "DEVOPS", Skill: "Docker"},
	}
	updated, err := svc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	require.Equal(t, "Portfolio Site v2", updated.Title)
	require.Len(t, updated.TechStacks, 2)
	for _, ts := range updated.TechStacks {
		require.NotEqual(t, oldStackID, ts.ID, "old child ids are not preserved")
	}

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.TechStacks, 2)
}

func TestProjectListCacheInvalidatedOnMutation(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, projectInput())
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Second read is served from cache; a mutation must bust it.
	_, err = svc.Create(ctx, projectInput())
	require.NoError(t, err)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, created.ID))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCommentLifecycle(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, projectInput())
	require.NoError(t, err)

	c, err := svc.AddComment(ctx, created.ID, "great work")
	require.NoError(t, err)
	require.NotZero(t, c.ID)

	_, err = svc.AddComment(ctx, created.ID+100, "ghost")
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound), "comment on missing project is not_found")

	require.NoError(t, svc.DeleteComment(ctx, c.ID))
	err = svc.DeleteComment(ctx, c.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound), "deleting a missing comment is not_found, not a silent no-op")
}

func TestProjectUpdateMissingIsNotFound(t *testing.T) {
	svc := newProjectService(t)
	_, err := svc.Update(context.Background(), 777, projectInput())
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}
