package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/portfolio-cms/backend/internal/api/handlers"
	mw "github.com/portfolio-cms/backend/internal/api/middleware"
)

type Dependencies struct {
	HMACSecret []byte
	// FrontendOrigin is the single browser origin allowed to send
	// credentialed requests.
	FrontendOrigin string
	// RateLimiter is owned by the caller, which stops it on shutdown.
	RateLimiter *mw.RateLimiter

	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
	PhoneHandler   *handlers.PhoneHandler
	SocialHandler  *handlers.SocialHandler
	SkillHandler   *handlers.SkillHandler
	ProjectHandler *handlers.ProjectHandler
	VisitorHandler *handlers.VisitorHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{dep.FrontendOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler)
	r.Use(dep.RateLimiter.Handler)
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/user", func(ur chi.Router) {
		// Public: auth flows, bootstrap, and project reads.
		ur.Post("/login", dep.AuthHandler.Login)
		ur.Post("/logout", dep.AuthHandler.Logout)
		ur.Post("/create", dep.UserHandler.Create)
		ur.Get("/projects", dep.ProjectHandler.List)
		ur.Get("/project/{id}", dep.ProjectHandler.Get)

		// Everything else sits behind the token gate.
		ur.Group(func(pr chi.Router) {
			pr.Use(mw.ValidateToken(dep.HMACSecret))

			pr.Get("/me", dep.UserHandler.Me)
			pr.Patch("/update", dep.UserHandler.Update)

			pr.Post("/addPhoneNumber", dep.PhoneHandler.Add)
			pr.Patch("/updatePhoneNumber/{id}", dep.PhoneHandler.Update)
			pr.Delete("/deletePhoneNumber/{id}", dep.PhoneHandler.Delete)

			pr.Post("/addSocial", dep.SocialHandler.Add)
			pr.Get("/socials", dep.SocialHandler.List)
			pr.Patch("/updateSocial/{id}", dep.SocialHandler.Update)
			pr.Delete("/deleteSocial/{id}", dep.SocialHandler.Delete)

			pr.Post("/addSkill", dep.SkillHandler.Add)
			pr.Patch("/updateSkill/{id}", dep.SkillHandler.Update)
			pr.Delete("/deleteSkill/{id}", dep.SkillHandler.Delete)

			pr.Post("/addProject", dep.ProjectHandler.Create)
			pr.Patch("/updateProject/{id}", dep.ProjectHandler.Update)
			pr.Delete("/project/{id}", dep.ProjectHandler.Delete)

			pr.Delete("/deleteComment/{id}", dep.ProjectHandler.DeleteComment)
		})
	})

	r.Route("/api/visitor", func(vr chi.Router) {
		vr.Post("/downloadLog", dep.VisitorHandler.LogDownload)
		vr.Post("/addComment/{projectId}", dep.VisitorHandler.AddComment)
	})

	return r
}
