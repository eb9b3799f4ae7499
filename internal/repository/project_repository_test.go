package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/portfolio-cms/backend/internal/models"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
	"github.com/portfolio-cms/backend/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.PhoneNumber{}, &models.SocialLink{}, &models.Skill{},
		&models.Project{}, &models.TechStack{}, &models.Screenshot{}, &models.Comment{},
		&models.DownloadLog{},
	))
	return db
}

func seedProject(t *testing.T, repo ProjectRepository) *models.Project {
	t.Helper()
	p := &models.Project{
		Title:       "Portfolio Site",
		Description: "A personal portfolio site with an admin dashboard.",
		Category:    "PERSONAL",
		Link:        "https://example.com",
		TechStacks:  []models.TechStack{{Category: "FRONTEND", Skill: "React"}},
		Screenshots: []models.Screenshot{{URL: "https://example.com/a.png"}},
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCreateRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	created := seedProject(t, repo)
	require.NotZero(t, created.ID)

	var got models.Project
	require.NoError(t, repo.GetFull(ctx, created.ID, &got))
	require.Len(t, got.TechStacks, 1)
	require.Len(t, got.Screenshots, 1)
	require.Equal(t, "React", got.TechStacks[0].Skill)
	require.NotZero(t, got.TechStacks[0].ID)
	require.NotZero(t, got.Screenshots[0].ID)
}

func TestReplaceSwapsChildrenWholesale(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	p := seedProject(t, repo)
	oldStackID := p.TechStacks[0].ID
	oldShotID := p.Screenshots[0].ID

	p.Title = "Portfolio Site v2"
	newStacks := []models.TechStack{
		{Category: "BACKEND", Skill: "Go"},
		{Category: "DATABASE", Skill: "Postgres"},
	}
	newShots := []models.Screenshot{{URL: "https://example.com/b.png"}}
	require.NoError(t, repo.Replace(ctx, p, newStacks, newShots))

	var got models.Project
	require.NoError(t, repo.GetFull(ctx, p.ID, &got))
	require.Equal(t, "Portfolio Site v2", got.Title)

	// The new set is authoritative: count and content match exactly.
	require.Len(t, got.TechStacks, 2)
	require.Len(t, got.Screenshots, 1)
	skills := []string{got.TechStacks[0].Skill, got.TechStacks[1].Skill}
	require.ElementsMatch(t, []string{"Go", "Postgres"}, skills)
	require.Equal(t, "https://example.com/b.png", got.Screenshots[0].URL)

	// Old child rows are gone, new rows carry fresh ids.
	for _, ts := range got.TechStacks {
		require.NotEqual(t, oldStackID, ts.ID)
	}
	require.NotEqual(t, oldShotID, got.Screenshots[0].ID)

	var stale int64
	require.NoError(t, db.Model(&models.TechStack{}).Where("id = ?", oldStackID).Count(&stale).Error)
	require.Zero(t, stale)
}

func TestReplaceFailureLeavesChildrenIntact(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	p := seedProject(t, repo)
	oldStackID := p.TechStacks[0].ID
	oldShotID := p.Screenshots[0].ID

	// Make the child insert fail after the deletes have already run inside
	// the transaction.
	require.NoError(t, db.Exec("CREATE UNIQUE INDEX idx_screenshots_url ON screenshots(url)").Error)

	p.Title = "Broken Update"
	err := repo.Replace(ctx, p,
		[]models.TechStack{{Category: "BACKEND", Skill: "Go"}},
		[]models.Screenshot{
			{URL: "https://example.com/dup.png"},
			{URL: "https://example.com/dup.png"},
		},
	)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeInternal))

	// The whole swap rolled back: prior rows survive under their old ids and
	// the column update is gone too.
	var got models.Project
	require.NoError(t, repo.GetFull(ctx, p.ID, &got))
	require.Equal(t, "Portfolio Site", got.Title)
	require.Len(t, got.TechStacks, 1)
	require.Len(t, got.Screenshots, 1)
	require.Equal(t, oldStackID, got.TechStacks[0].ID)
	require.Equal(t, oldShotID, got.Screenshots[0].ID)
	require.Equal(t, "React", got.TechStacks[0].Skill)
}

func TestReplaceScopedToProject(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	p1 := seedProject(t, repo)
	p2 := seedProject(t, repo)

	require.NoError(t, repo.Replace(ctx, p1,
		[]models.TechStack{{Category: "TOOLS", Skill: "Docker"}},
		[]models.Screenshot{{URL: "https://example.com/c.png"}},
	))

	var got models.Project
	require.NoError(t, repo.GetFull(ctx, p2.ID, &got))
	require.Len(t, got.TechStacks, 1)
	require.Equal(t, "React", got.TechStacks[0].Skill, "sibling project children untouched")
}

func TestListIncludesCommentCounts(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	p1 := seedProject(t, repo)
	p2 := seedProject(t, repo)
	require.NoError(t, comments.Create(ctx, &models.Comment{ProjectID: p1.ID, Content: "nice"}))
	require.NoError(t, comments.Create(ctx, &models.Comment{ProjectID: p1.ID, Content: "cool"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[uint]models.Project{}
	for _, p := range list {
		byID[p.ID] = p
	}
	require.Equal(t, int64(2), byID[p1.ID].CommentCount)
	require.Zero(t, byID[p2.ID].CommentCount)

	// List carries screenshots but never comment bodies.
	require.NotEmpty(t, byID[p1.ID].Screenshots)
	require.Empty(t, byID[p1.ID].Comments)
}

func TestGetMissingProjectIsNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)

	var got models.Project
	err := repo.GetFull(context.Background(), 9999, &got)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	db := openTestDB(t)
	phones := NewPhoneNumberRepository(db)

	err := phones.Delete(context.Background(), 4242)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound), "missing row must map to not_found, not internal")
}
