package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/smartfinancehub/content-engine/internal/middleware"
)

// Routes builds the console router. Mutating endpoints sit behind
// bearer-token auth; read endpoints and the health check are open.
func (h *Handler) Routes(authToken string) *mux.Router {
	auth := middleware.Auth(authToken)
	protect := func(fn http.HandlerFunc) http.Handler {
		return auth(fn)
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", h.health).Methods("GET")
	api.HandleFunc("/analytics", h.analytics).Methods("GET")
	api.HandleFunc("/schedule", h.schedule).Methods("GET")
	api.HandleFunc("/stats", h.pipelineStats).Methods("GET")

	// The list routes must be registered before the {id} route so the
	// status words are not taken for article ids.
	api.HandleFunc("/articles/{status:drafts|approved|published|rejected|archived}", h.listArticles).Methods("GET")
	api.HandleFunc("/articles/{id}", h.getArticle).Methods("GET")
	api.Handle("/articles/{id}", protect(h.updateArticle)).Methods("PUT")
	api.Handle("/articles/{id}", protect(h.deleteArticle)).Methods("DELETE")

	api.Handle("/articles/{id}/approve", protect(h.approveArticle)).Methods("POST")
	api.Handle("/articles/{id}/reject", protect(h.rejectArticle)).Methods("POST")
	api.Handle("/articles/{id}/schedule", protect(h.scheduleArticle)).Methods("POST")
	api.Handle("/articles/{id}/publish", protect(h.publishArticle)).Methods("POST")
	api.Handle("/articles/{id}/restore", protect(h.restoreArticle)).Methods("POST")

	api.Handle("/generate", protect(h.generateArticles)).Methods("POST")
	api.Handle("/archive/sweep", protect(h.archiveSweep)).Methods("POST")

	return r
}
