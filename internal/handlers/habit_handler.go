package handlers

import (
	"net/http"

	"github.com/Dias221467/mindbloom/internal/services"
)

type HabitHandler struct {
	Service *services.HabitService
	Game    *services.GamificationService
}

func NewHabitHandler(service *services.HabitService, game *services.GamificationService) *HabitHandler {
	return &HabitHandler{Service: service, Game: game}
}

// GET /habits
func (h *HabitHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	habits, err := h.Service.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

// POST /habits
func (h *HabitHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.HabitInput
	if !decodeJSON(w, r, &in) {
		return
	}
	habit, err := h.Service.Create(r.Context(), userID, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

// POST /habits/{id}/complete
func (h *HabitHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Game.CompleteHabit(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// DELETE /habits/{id}
func (h *HabitHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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
	writeMessage(w, http.StatusOK, "Habit deleted")
}
