package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter mounts the quiz API, the health check and the live result feed.
func NewRouter(h *Handler, ws *WSHandler) http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(cors.AllowAll().Handler)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Get("/ws/results", ws.ServeWS)

	mux.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Get("/quiz", h.ListQuestions)
		r.Post("/create-quiz", h.CreateQuestion)
		r.Get("/quiz/{id}", h.GetQuestion)
		r.Put("/quiz/{id}", h.UpdateQuestion)
		r.Delete("/quiz/{id}", h.DeleteQuestion)

		r.Get("/results", h.ListResults)
		r.Post("/results", h.SaveResult)
		r.Get("/results/download-clear", h.DownloadAndClear)
		r.Get("/results/{regNumber}", h.CheckResult)

		r.Get("/quiz-settings", h.GetSettings)
		r.Post("/quiz-settings", h.UpdateSettings)
	})

	return mux
}
