package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/smartfinancehub/content-engine/internal/model"
	"github.com/smartfinancehub/content-engine/internal/service"
	"github.com/smartfinancehub/content-engine/internal/store"
	"github.com/smartfinancehub/content-engine/internal/workflow"
)

// Handler exposes the review console REST surface. It holds no state of
// its own; every operation delegates to a service.
type Handler struct {
	review   *service.ReviewService
	generate *service.GenerateService
	archive  *service.ArchiveService
	stats    *service.StatsService
}

// New wires the console handler.
func New(review *service.ReviewService, generate *service.GenerateService, archive *service.ArchiveService, stats *service.StatsService) *Handler {
	return &Handler{
		review:   review,
		generate: generate,
		archive:  archive,
		stats:    stats,
	}
}

// listStatuses maps the plural path segments of the console to
// lifecycle states.
var listStatuses = map[string]model.Status{
	"drafts":    model.StatusDraft,
	"approved":  model.StatusApproved,
	"published": model.StatusPublished,
	"rejected":  model.StatusRejected,
	"archived":  model.StatusArchived,
}

func (h *Handler) listArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	segment := mux.Vars(r)["status"]

	status, ok := listStatuses[segment]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown article list %q", segment))
		return
	}

	articles, err := h.review.List(ctx, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"articles": articles,
		"count":    len(articles),
	})
}

func (h *Handler) getArticle(w http.ResponseWriter, r *http.Request) {
	reviewed, err := h.review.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"article": reviewed.Article,
		"flags":   reviewed.Flags,
	})
}

func (h *Handler) updateArticle(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.review.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"article": article})
}

func (h *Handler) deleteArticle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.review.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"id": id})
}

func (h *Handler) approveArticle(w http.ResponseWriter, r *http.Request) {
	result, err := h.review.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"article":   result.Article,
		"duplicate": result.Duplicate,
	})
}

func (h *Handler) rejectArticle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Reason == "" {
		writeError(w, http.StatusBadRequest, "a rejection reason is required")
		return
	}

	article, err := h.review.Reject(r.Context(), mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"article": article})
}

func (h *Handler) scheduleArticle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScheduledFor string `json:"scheduled_for"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	at, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		writeError(w, http.StatusBadRequest, "scheduled_for must be RFC 3339")
		return
	}

	article, err := h.review.Schedule(r.Context(), mux.Vars(r)["id"], at)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"article": article})
}

func (h *Handler) publishArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.review.Publish(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"article": article})
}

func (h *Handler) restoreArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.review.Restore(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"article": article})
}

func (h *Handler) generateArticles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count   int    `json:"count"`
		TopicID string `json:"topic_id"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if req.TopicID != "" {
		item, err := h.generate.GenerateOne(r.Context(), req.TopicID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeSuccess(w, map[string]interface{}{"item": item})
		return
	}

	summary, err := h.generate.GenerateBatch(r.Context(), req.Count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"summary": summary})
}

func (h *Handler) archiveSweep(w http.ResponseWriter, r *http.Request) {
	summary, err := h.archive.Sweep(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"summary": summary})
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.stats.Analytics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"analytics": analytics})
}

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	scheduled, err := h.stats.Schedule(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"scheduled": scheduled,
		"count":     len(scheduled),
	})
}

func (h *Handler) pipelineStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"stats": stats})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]interface{}{"status": "ok"})
}

// writeServiceError maps service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var te *workflow.TransitionError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "article not found")
	case errors.As(err, &te):
		writeError(w, http.StatusConflict, te.Error())
	case errors.Is(err, store.ErrWrongStatus):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("❌ Handler error: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeSuccess(w http.ResponseWriter, payload map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Encoding response failed: %v", err)
	}
}
