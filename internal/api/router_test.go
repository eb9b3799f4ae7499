package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/portfolio-cms/backend/internal/api/handlers"
	mw "github.com/portfolio-cms/backend/internal/api/middleware"
	"github.com/portfolio-cms/backend/internal/models"
	"github.com/portfolio-cms/backend/internal/repository"
	"github.com/portfolio-cms/backend/internal/services"
	"github.com/portfolio-cms/backend/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

var testSecret = []byte("router-test-secret-key")

type testApp struct {
	db      *gorm.DB
	router  http.Handler
	adminID uint
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.PhoneNumber{}, &models.SocialLink{}, &models.Skill{},
		&models.Project{}, &models.TechStack{}, &models.Screenshot{}, &models.Comment{},
		&models.DownloadLog{},
	))

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := models.User{Username: "adminuser", Password: string(hash), Name: "Admin", Email: "admin@example.com"}
	require.NoError(t, db.Create(&admin).Error)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authSvc := services.NewAuthService(userRepo, testSecret, admin.ID)
	projectSvc := services.NewProjectService(projectRepo, commentRepo)

	limiter := mw.NewRateLimiter(10, 20)
	t.Cleanup(limiter.Stop)

	router := NewRouter(Dependencies{
		HMACSecret:     testSecret,
		FrontendOrigin: "http://localhost:5173",
		RateLimiter:    limiter,
		AuthHandler:    handlers.NewAuthHandler(authSvc, false),
		UserHandler:    handlers.NewUserHandler(userRepo),
		PhoneHandler:   handlers.NewPhoneHandler(repository.NewPhoneNumberRepository(db)),
		SocialHandler:  handlers.NewSocialHandler(repository.NewSocialLinkRepository(db)),
		SkillHandler:   handlers.NewSkillHandler(repository.NewSkillRepository(db)),
		ProjectHandler: handlers.NewProjectHandler(projectSvc),
		VisitorHandler: handlers.NewVisitorHandler(repository.NewDownloadLogRepository(db), projectSvc),
	})

	return &testApp{db: db, router: router, adminID: admin.ID}
}

func (a *testApp) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	// Separate rate-limit bucket per test.
	req.Header.Set("X-Forwarded-For", t.Name())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func (a *testApp) login(t *testing.T) *http.Cookie {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/user/login", map[string]string{
		"username": "adminuser", "password": "hunter2hunter2",
	}, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	for _, c := range rr.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set token cookie")
	return nil
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func validProjectBody() map[string]any {
	return map[string]any{
		"title":       "Portfolio Site",
		"description": "A personal portfolio site with an admin dashboard.",
		"category":    "PERSONAL",
		"link":        "https://example.com",
		"techStacks":  []map[string]any{{"category": "FRONTEND", "skill": "React"}},
		"screenshots": []map[string]any{{"url": "https://example.com/a.png"}},
	}
}

func TestLoginSetsCookieAndMeWorks(t *testing.T) {
	app := newTestApp(t)

	cookie := app.login(t)
	require.True(t, cookie.HttpOnly)

	rr := app.do(t, http.MethodGet, "/api/user/me", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	me := decode[map[string]any](t, rr)
	require.Equal(t, "adminuser", me["username"])
	_, leaked := me["password"]
	require.False(t, leaked, "password hash must never be serialized")
}

func TestLoginWrongPasswordNoCookie(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(t, http.MethodPost, "/api/user/login", map[string]string{
		"username": "adminuser", "password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Empty(t, rr.Result().Cookies(), "failed login must not set a cookie")
	body := decode[map[string]string](t, rr)
	require.Equal(t, "Invalid credentials", body["error"])
}

func TestMeWithoutCookieUnauthorized(t *testing.T) {
	app := newTestApp(t)
	rr := app.do(t, http.MethodGet, "/api/user/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTamperedTokenForbidden(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)
	cookie.Value = cookie.Value + "tamper"

	rr := app.do(t, http.MethodGet, "/api/user/me", nil, cookie)
	require.Equal(t, http.StatusForbidden, rr.Code)
	body := decode[map[string]string](t, rr)
	require.Equal(t, "Invalid token", body["error"])
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	rr := app.do(t, http.MethodPost, "/api/user/logout", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var cleared *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == "token" {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)

	// A client honoring the cleared cookie is unauthenticated again.
	rr = app.do(t, http.MethodGet, "/api/user/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPhoneValidationAndCRUD(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	rr := app.do(t, http.MethodPost, "/api/user/addPhoneNumber", map[string]string{"number": "abc"}, cookie)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decode[map[string][]string](t, rr)
	require.NotEmpty(t, body["errors"])

	rr = app.do(t, http.MethodPost, "/api/user/addPhoneNumber", map[string]string{"number": "+12345678901"}, cookie)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[models.PhoneNumber](t, rr)
	require.NotZero(t, created.ID)
	require.Equal(t, app.adminID, created.UserID)

	rr = app.do(t, http.MethodPatch, fmt.Sprintf("/api/user/updatePhoneNumber/%d", created.ID),
		map[string]string{"number": "+19876543210", "type": "mobile"}, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decode[models.PhoneNumber](t, rr)
	require.Equal(t, "+19876543210", updated.Number)

	rr = app.do(t, http.MethodDelete, fmt.Sprintf("/api/user/deletePhoneNumber/%d", created.ID), nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	// Deleting again is a 404, never a 500.
	rr = app.do(t, http.MethodDelete, fmt.Sprintf("/api/user/deletePhoneNumber/%d", created.ID), nil, cookie)
	require.Equal(t, http.StatusNotFound, rr.Code)
	errBody := decode[map[string]string](t, rr)
	require.Equal(t, "Phone number not found", errBody["error"])
}

func TestOwnershipMismatchForbidden(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	// A row owned by a different user: updating or deleting it must be
	// forbidden, never a silent success.
	other := models.User{Username: "otheruser", Password: "x", Name: "Other"}
	require.NoError(t, app.db.Create(&other).Error)
	phone := models.PhoneNumber{Number: "+15550001111", UserID: other.ID}
	require.NoError(t, app.db.Create(&phone).Error)
	social := models.SocialLink{Platform: "GitHub", URL: "https://github.com/other", UserID: other.ID}
	require.NoError(t, app.db.Create(&social).Error)
	skill := models.Skill{Name: "Kubernetes", UserID: other.ID}
	require.NoError(t, app.db.Create(&skill).Error)

	rr := app.do(t, http.MethodPatch, fmt.Sprintf("/api/user/updatePhoneNumber/%d", phone.ID),
		map[string]string{"number": "+15550002222"}, cookie)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = app.do(t, http.MethodDelete, fmt.Sprintf("/api/user/deleteSocial/%d", social.ID), nil, cookie)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = app.do(t, http.MethodDelete, fmt.Sprintf("/api/user/deleteSkill/%d", skill.ID), nil, cookie)
	require.Equal(t, http.StatusForbidden, rr.Code)

	var still models.PhoneNumber
	require.NoError(t, app.db.First(&still, phone.ID).Error)
	require.Equal(t, "+15550001111", still.Number, "row must be untouched")

	// Absent rows are a distinct failure kind.
	rr = app.do(t, http.MethodDelete, "/api/user/deleteSocial/99999", nil, cookie)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProjectRoundTripAndReplace(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	// Mutations require auth.
	rr := app.do(t, http.MethodPost, "/api/user/addProject", validProjectBody(), nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = app.do(t, http.MethodPost, "/api/user/addProject", validProjectBody(), cookie)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[models.Project](t, rr)
	require.NotZero(t, created.ID)
	require.Len(t, created.TechStacks, 1)
	oldStackID := created.TechStacks[0].ID

	// Public reads need no credential.
	rr = app.do(t, http.MethodGet, "/api/user/projects", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]models.Project](t, rr)
	require.Len(t, list, 1)

	rr = app.do(t, http.MethodGet, fmt.Sprintf("/api/user/project/%d", created.ID), nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	full := decode[models.Project](t, rr)
	require.Len(t, full.TechStacks, 1)
	require.Len(t, full.Screenshots, 1)

	// Empty child collections violate the min-1 constraint.
	bad := validProjectBody()
	bad["techStacks"] = []map[string]any{}
	rr = app.do(t, http.MethodPatch, fmt.Sprintf("/api/user/updateProject/%d", created.ID), bad, cookie)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	// The admin UI sends children with server-generated fields attached;
	// they are stripped before validation and the sets replaced wholesale.
	update := validProjectBody()
	update["techStacks"] = []map[string]any{
		{"id": oldStackID, "createdAt": "2020-01-01T00:00:00Z", "category": "BACKEND", "skill": "Go"},
		{"category": "DATABASE", "skill": "Postgres"},
	}
	update["screenshots"] = []map[string]any{
		{"id": 12, "projectId": created.ID, "url": "https://example.com/b.png"},
	}
	rr = app.do(t, http.MethodPatch, fmt.Sprintf("/api/user/updateProject/%d", created.ID), update, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[models.Project](t, rr)
	require.Len(t, updated.TechStacks, 2)
	require.Len(t, updated.Screenshots, 1)
	for _, ts := range updated.TechStacks {
		require.NotEqual(t, oldStackID, ts.ID, "old child ids are not preserved")
	}

	var stackCount int64
	require.NoError(t, app.db.Model(&models.TechStack{}).Where("project_id = ?", created.ID).Count(&stackCount).Error)
	require.Equal(t, int64(2), stackCount, "exactly the new set remains")

	rr = app.do(t, http.MethodDelete, fmt.Sprintf("/api/user/project/%d", created.ID), nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = app.do(t, http.MethodGet, fmt.Sprintf("/api/user/project/%d", created.ID), nil, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVisitorCommentsAndCommentCount(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	rr := app.do(t, http.MethodPost, "/api/user/addProject", validProjectBody(), cookie)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[models.Project](t, rr)

	rr = app.do(t, http.MethodPost, fmt.Sprintf("/api/visitor/addComment/%d", created.ID),
		map[string]string{"content": "great work"}, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	comment := decode[models.Comment](t, rr)
	require.NotZero(t, comment.ID)

	// List shows the count, not the bodies.
	rr = app.do(t, http.MethodGet, "/api/user/projects", nil, nil)
	list := decode[[]models.Project](t, rr)
	require.Len(t, list, 1)
	require.Equal(t, int64(1), list[0].CommentCount)
	require.Empty(t, list[0].Comments)

	// Comment deletion needs the credential; missing ids are 404.
	rr = app.do(t, http.MethodDelete, fmt.Sprintf("/api/user/deleteComment/%d", comment.ID), nil, nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = app.do(t, http.MethodDelete, fmt.Sprintf("/api/user/deleteComment/%d", comment.ID), nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = app.do(t, http.MethodDelete, fmt.Sprintf("/api/user/deleteComment/%d", comment.ID), nil, cookie)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDownloadLogAudit(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(t, http.MethodPost, "/api/visitor/downloadLog", map[string]string{
		"fileUrl":   "https://example.com/resume.pdf",
		"ipAddress": "203.0.113.7",
		"userAgent": "Mozilla/5.0",
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Empty(t, strings.TrimSpace(rr.Body.String()), "audit write returns a bare 201")

	var count int64
	require.NoError(t, app.db.Model(&models.DownloadLog{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	rr = app.do(t, http.MethodPost, "/api/visitor/downloadLog", map[string]string{
		"fileUrl":   "not a url",
		"ipAddress": "203.0.113.7",
		"userAgent": "Mozilla/5.0",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProfileUpdate(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	rr := app.do(t, http.MethodPatch, "/api/user/update", map[string]string{
		"name": "New Name", "bio": "Building things.",
	}, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[map[string]any](t, rr)
	require.Equal(t, "New Name", body["name"])

	rr = app.do(t, http.MethodPatch, "/api/user/update", map[string]string{"email": "nope"}, cookie)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateUserRejectsTakenUsername(t *testing.T) {
	app := newTestApp(t)

	body := map[string]string{
		"username": "secondadmin",
		"password": "hunter2hunter2",
		"name":     "Second",
	}
	rr := app.do(t, http.MethodPost, "/api/user/create", body, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = app.do(t, http.MethodPost, "/api/user/create", body, nil)
	require.Equal(t, http.StatusConflict, rr.Code)
	resp := decode[map[string]any](t, rr)
	require.Equal(t, "Username already taken", resp["error"])

	// The seeded admin's name is claimed too.
	body["username"] = "adminuser"
	rr = app.do(t, http.MethodPost, "/api/user/create", body, nil)
	require.Equal(t, http.StatusConflict, rr.Code)
}
