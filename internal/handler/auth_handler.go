package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/service"
	"github.com/designflow/backend/pkg/auth"
)

// AuthHandler はログイン・ログアウト・現在のメンバー取得を扱う
type AuthHandler struct {
	authService   service.AuthService
	sessionSecret []byte
	secureCookie  bool
}

// NewAuthHandler は AuthHandler を生成する。secureCookie は HTTPS 配信時に true にする。
func NewAuthHandler(authService service.AuthService, sessionSecret []byte, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, sessionSecret: sessionSecret, secureCookie: secureCookie}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login は POST /api/auth/login を処理する
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	member, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "email_and_password_required")
			return
		}
		writeServiceError(w, err, "login_failed")
		return
	}
	h.startSession(w, member)
}

// Demo は POST /api/auth/demo を処理する
func (h *AuthHandler) Demo(w http.ResponseWriter, r *http.Request) {
	member, err := h.authService.DemoLogin(r.Context())
	if err != nil {
		writeServiceError(w, err, "login_failed")
		return
	}
	h.startSession(w, member)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, member *model.Member) {
	token := auth.CreateSessionToken(member.ID, h.sessionSecret)
	http.SetCookie(w, auth.SessionCookie(token, h.secureCookie))
	slog.Info("member logged in", "member_id", member.ID)
	writeJSON(w, http.StatusOK, member)
}

// Logout は POST /api/auth/logout を処理する
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearSessionCookie(h.secureCookie))
	w.WriteHeader(http.StatusNoContent)
}

// Me は GET /api/me を処理する
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	memberID, ok := currentMemberID(w, r)
	if !ok {
		return
	}
	member, err := h.authService.Me(r.Context(), memberID)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, member)
}
