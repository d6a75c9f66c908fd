package handlers

import (
	"net/http"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/internal/services"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/logger"
)

type AchievementHandler struct {
	Service *services.AchievementService
}

func NewAchievementHandler(service *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{Service: service}
}

// GET /achievements?category=&completed=
func (h *AchievementHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	filter := models.AchievementFilter{
		Category:  r.URL.Query().Get("category"),
		Completed: queryBool(r, "completed"),
	}
	items, err := h.Service.List(r.Context(), userID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /achievements/completed
func (h *AchievementHandler) CompletedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	items, err := h.Service.Completed(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /achievements/in-progress
func (h *AchievementHandler) InProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	items, err := h.Service.InProgress(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /achievements/recent?limit=
func (h *AchievementHandler) RecentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	items, err := h.Service.Recent(r.Context(), userID, queryInt(r, "limit", 5))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /achievements/stats
func (h *AchievementHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	stats, err := h.Service.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /achievements/{id}
func (h *AchievementHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// PATCH /achievements/{id}/progress {"progress": n}
func (h *AchievementHandler) UpdateProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Progress int `json:"progress"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	res, err := h.Service.UpdateProgress(r.Context(), userID, id, body.Progress)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /achievements/initialize
func (h *AchievementHandler) InitializeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	items, err := h.Service.Initialize(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, items)
}

// GET /badges
func (h *AchievementHandler) ListBadgesHandler(w http.ResponseWriter, r *http.Request) {
	badges, err := h.Service.ListBadges(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

// GET /admin/templates
func (h *AchievementHandler) ListTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListTemplates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// POST /admin/templates
func (h *AchievementHandler) CreateTemplateHandler(w http.ResponseWriter, r *http.Request) {
	var t models.AchievementTemplate
	if !decodeJSON(w, r, &t) {
		return
	}
	created, err := h.Service.CreateTemplate(r.Context(), &t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.Log.WithField("template", created.Title).Info("Achievement template created")
	writeJSON(w, http.StatusCreated, created)
}

// PUT /admin/templates/{id}
func (h *AchievementHandler) UpdateTemplateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var t models.AchievementTemplate
	if !decodeJSON(w, r, &t) {
		return
	}
	if !t.ID.IsZero() && t.ID != id {
		writeError(w, r, apperror.Validationf("template id does not match the path"))
		return
	}
	t.ID = id

	updated, err := h.Service.UpdateTemplate(r.Context(), &t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /admin/templates/{id}
func (h *AchievementHandler) DeleteTemplateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteTemplate(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Template deleted")
}
