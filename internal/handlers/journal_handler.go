package handlers

import (
	"net/http"

	"github.com/Dias221467/mindbloom/internal/repository"
	"github.com/Dias221467/mindbloom/internal/services"
)

type JournalHandler struct {
	Service *services.JournalService
	Game    *services.GamificationService
}

func NewJournalHandler(service *services.JournalService, game *services.GamificationService) *JournalHandler {
	return &JournalHandler{Service: service, Game: game}
}

// POST /journal
func (h *JournalHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.JournalInput
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Game.SaveJournal(r.Context(), userID, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// GET /journal?from=&to=&limit=&skip=
func (h *JournalHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	from, err := queryDate(r, "from")
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.Service.List(r.Context(), userID, repository.JournalQuery{
		From:  from,
		To:    to,
		Limit: int64(queryInt(r, "limit", 10)),
		Skip:  int64(queryInt(r, "skip", 0)),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GET /journal/{id}
func (h *JournalHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	entry, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// PUT /journal/{id}
func (h *JournalHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in services.JournalInput
	if !decodeJSON(w, r, &in) {
		return
	}
	entry, err := h.Service.Update(r.Context(), userID, id, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// DELETE /journal/{id}
func (h *JournalHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Journal entry deleted")
}

// GET /journal/stats/mood?days=
func (h *JournalHandler) MoodStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	stats, err := h.Service.MoodStats(r.Context(), userID, queryInt(r, "days", 30))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /journal/stats/tags?limit=
func (h *JournalHandler) TagsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tags, err := h.Service.TopTags(r.Context(), userID, queryInt(r, "limit", 10))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// GET /journal/stats/streak
func (h *JournalHandler) StreakHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	streak, err := h.Service.Streak(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, streak)
}
