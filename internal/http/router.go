package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notebookhub/internal/handlers"
	"notebookhub/internal/service"
	"notebookhub/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Notebooks service.NotebookService
	Users     storage.UserStore
	DB        handlers.Pinger
	RepoRoot  string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.RepoRoot)
	notebookHandler := handlers.NewNotebookHandler(deps.Notebooks)
	branchHandler := handlers.NewBranchHandler(deps.Notebooks)
	commitHandler := handlers.NewCommitHandler(deps.Notebooks)
	contentHandler := handlers.NewContentHandler(deps.Notebooks)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Group(func(r chi.Router) {
			r.Use(IdentifyCaller(deps.Users))

			r.Get("/notebooks", notebookHandler.List)
			r.Post("/notebooks", notebookHandler.Create)

			r.Route("/notebooks/{notebookID}", func(r chi.Router) {
				r.Get("/", notebookHandler.Get)
				r.Delete("/", notebookHandler.Delete)
				r.Post("/reconcile", notebookHandler.Reconcile)

				r.Get("/branches", branchHandler.List)
				r.Post("/branches", branchHandler.Create)
				r.Delete("/branches/{branch}", branchHandler.Delete)
				r.Post("/branches/{branch}/checkout", branchHandler.Checkout)

				r.Get("/commits", commitHandler.List)
				r.Post("/commits", commitHandler.Create)
				r.Get("/commits/{hash}", commitHandler.Get)
				r.Get("/commits/{hash}/diff", commitHandler.Diff)

				r.Get("/tree", contentHandler.Tree)
				r.Get("/files/*", contentHandler.GetFile)
				r.Put("/files/*", contentHandler.SaveFile)
				r.Get("/status", contentHandler.Status)
				r.Get("/archive", contentHandler.Archive)
			})
		})
	})

	return r
}
