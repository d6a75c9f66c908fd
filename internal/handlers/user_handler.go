package handlers

import (
	"net/http"

	"github.com/Dias221467/mindbloom/internal/services"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles account, check-in and progress endpoints.
type UserHandler struct {
	Service *services.UserService
	XP      *services.XPService
	Game    *services.GamificationService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, xp *services.XPService, game *services.GamificationService) *UserHandler {
	return &UserHandler{Service: service, XP: xp, Game: game}
}

// RegisterUserHandler handles user registration.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	res, err := h.Service.RegisterUser(r.Context(), &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.WithField("userID", res.User.ID.Hex()).Info("User registered successfully")
	writeJSON(w, http.StatusCreated, res)
}

// LoginUserHandler handles user login.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &credentials) {
		return
	}
	if credentials.Email == "" || credentials.Password == "" {
		writeError(w, r, apperror.Validationf("email and password are required"))
		return
	}

	res, err := h.Service.Login(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.WithField("userID", res.User.ID.Hex()).Info("User logged in successfully")
	writeJSON(w, http.StatusOK, res)
}

// GET /users/me
func (h *UserHandler) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GET /users/{id} returns another user's public profile.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}

// PATCH /users/me
func (h *UserHandler) UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.ProfileInput
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.Service.UpdateProfile(r.Context(), userID, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.WithField("userID", userID.Hex()).Info("User updated successfully")
	writeJSON(w, http.StatusOK, user)
}

// POST /users/me/check-in
func (h *UserHandler) CheckInHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	out, err := h.Game.CheckIn(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":    out.User,
		"newDay":  out.NewDay,
		"rewards": out.Rewards,
	})
}

// GET /users/me/stats
func (h *UserHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	stats, err := h.XP.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /users/me/xp-history?limit=
func (h *UserHandler) XPHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	logs, err := h.XP.History(r.Context(), userID, queryInt(r, "limit", 20))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
