// Package api provides the HTTP endpoint a backend exposes so that its
// authenticated users' devices can fetch a push-notifications auth token.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tinywideclouds/go-microservice-base/pkg/middleware"
	"github.com/tinywideclouds/go-microservice-base/pkg/response"
	"github.com/tinywideclouds/go-push-notifications/pkg/push"
	"github.com/tinywideclouds/go-push-notifications/pkg/validate"
)

// TokenIssuer is the subset of push.Publisher the endpoint needs.
type TokenIssuer interface {
	GenerateToken(userID string) (push.AuthToken, error)
}

type TokenAPI struct {
	Issuer TokenIssuer
	Logger *slog.Logger
}

func NewTokenAPI(issuer TokenIssuer, logger *slog.Logger) *TokenAPI {
	return &TokenAPI{
		Issuer: issuer,
		Logger: logger.With("component", "TokenAPI"),
	}
}

// IssueToken answers GET /auth?user_id=... with {"token": "..."} for the
// user the auth middleware put in the request context. The user_id query
// parameter, when sent by the device SDK, must match that user.
func (api *TokenAPI) IssueToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserHandleFromContext(r.Context())
	if !ok || userID == "" {
		response.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if requested := r.URL.Query().Get("user_id"); requested != "" && requested != userID {
		api.Logger.Warn("IssueToken: user id mismatch", "user", userID, "requested", requested)
		response.WriteJSONError(w, http.StatusUnauthorized, "user id mismatch")
		return
	}

	token, err := api.Issuer.GenerateToken(userID)
	if err != nil {
		var vErr *validate.Error
		if errors.As(err, &vErr) {
			response.WriteJSONError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		api.Logger.Error("failed to issue token", "user", userID, "err", err)
		response.WriteJSONError(w, http.StatusInternalServerError, "token issuance failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(token); err != nil {
		api.Logger.Warn("IssueToken: failed to write response", "err", err)
	}
}
