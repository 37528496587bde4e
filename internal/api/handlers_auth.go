package api

import (
	"net/http"

	"github.com/bucketbuddy/bucketbuddy/internal/api/respond"
	"github.com/bucketbuddy/bucketbuddy/internal/auth"
)

// AuthHandler exposes the identity probe. It sits outside the auth gate:
// an anonymous request answers {"user": null} rather than 401.
type AuthHandler struct {
	authorizer auth.Authorizer
}

func NewAuthHandler(authorizer auth.Authorizer) *AuthHandler {
	return &AuthHandler{authorizer: authorizer}
}

// Me GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authorizer.Authorize(r.Context(), r)
	if err != nil {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Ping GET /ping
func Ping(w http.ResponseWriter, r *http.Request) {
	respond.WriteText(w, http.StatusOK, "pong")
}
