package handlers

import (
	"net/http"
	"strings"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/internal/services"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChallengeHandler struct {
	Service *services.ChallengeService
	Game    *services.GamificationService
}

func NewChallengeHandler(service *services.ChallengeService, game *services.GamificationService) *ChallengeHandler {
	return &ChallengeHandler{Service: service, Game: game}
}

// POST /challenges
func (h *ChallengeHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.ChallengeInput
	if !decodeJSON(w, r, &in) {
		return
	}

	out, err := h.Game.CreateChallenge(r.Context(), userID, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"challenge_id": out.Challenge.ID.Hex(),
		"user_id":      userID.Hex(),
	}).Info("Challenge created")
	writeJSON(w, http.StatusCreated, out)
}

// GET /challenges?category=&search=&mine=&active=&limit=&skip=
func (h *ChallengeHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := models.ChallengeFilter{
		Category: q.Get("category"),
		Search:   strings.TrimSpace(q.Get("search")),
		Limit:    int64(queryInt(r, "limit", 10)),
		Skip:     int64(queryInt(r, "skip", 0)),
	}
	if mine := queryBool(r, "mine"); mine != nil && *mine {
		filter.JoinedBy = &userID
	} else {
		filter.PublicOnly = true
	}
	if active := queryBool(r, "active"); active != nil {
		filter.ActiveOnly = *active
	}

	page, err := h.Service.List(r.Context(), filter, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GET /challenges/{id}
func (h *ChallengeHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ch, err := h.Service.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

// PUT /challenges/{id}
func (h *ChallengeHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in services.ChallengeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	ch, err := h.Service.Update(r.Context(), id, userID, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

// DELETE /challenges/{id}
func (h *ChallengeHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id, userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Challenge deleted")
}

// POST /challenges/{id}/join {"joinCode": "..."}
func (h *ChallengeHandler) JoinHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		JoinCode string `json:"joinCode"`
	}
	if r.ContentLength != 0 && !decodeJSON(w, r, &body) {
		return
	}

	out, err := h.Game.JoinChallenge(r.Context(), id, userID, strings.ToUpper(strings.TrimSpace(body.JoinCode)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /challenges/join/{code}
func (h *ChallengeHandler) JoinByCodeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	code := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["code"]))
	out, err := h.Game.JoinChallengeByCode(r.Context(), code, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /challenges/{id}/leave
func (h *ChallengeHandler) LeaveHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.Leave(r.Context(), id, userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Left challenge")
}

// POST /challenges/{id}/invite {"userId": "..."}
func (h *ChallengeHandler) InviteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		UserID string `json:"userId"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	invitee, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		badRequest(w, r, "invalid userId")
		return
	}

	ch, err := h.Service.Invite(r.Context(), id, userID, invitee)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

// POST /challenges/{id}/check-in
func (h *ChallengeHandler) CheckInHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Game.ChallengeCheckIn(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /challenges/{id}/tasks/{taskId}/complete
func (h *ChallengeHandler) CompleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}
	out, err := h.Game.CompleteChallengeTask(r.Context(), id, userID, taskID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /challenges/{id}/completed
func (h *ChallengeHandler) CompletionStatusHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	done, err := h.Service.IsCompletedByUser(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"completed": done})
}

// GET /challenges/user/active
func (h *ChallengeHandler) ActiveHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	items, err := h.Service.ActiveForUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /challenges/user/completed
func (h *ChallengeHandler) CompletedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	items, err := h.Service.CompletedForUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
