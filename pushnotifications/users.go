package pushnotifications

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tinywideclouds/go-push-notifications/pkg/push"
	"github.com/tinywideclouds/go-push-notifications/pkg/validate"
)

// TokenTTL is how long a token from GenerateToken stays valid.
const TokenTTL = 24 * time.Hour

// DeleteUser removes userID and all of their devices from the instance.
// A successful response body is not inspected.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	if err := validate.UserID(userID); err != nil {
		return err
	}
	path := fmt.Sprintf("/customer_api/v1/instances/%s/users/%s", url.PathEscape(c.instanceID), url.PathEscape(userID))
	_, _, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

// GenerateToken issues an HS256 JWT, signed with the secret key, that
// authenticates a device as userID.
func (c *Client) GenerateToken(userID string) (push.AuthToken, error) {
	if err := validate.UserID(userID); err != nil {
		return push.AuthToken{}, err
	}

	claims := jwt.RegisteredClaims{
		Issuer:    validate.DefaultEndpoint(c.instanceID),
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(c.now().Add(TokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.secretKey))
	if err != nil {
		return push.AuthToken{}, fmt.Errorf("failed to sign token: %w", err)
	}

	c.logger.Debug("Token issued", "user_id", userID, "expires_at", claims.ExpiresAt.Time)
	return push.AuthToken{Token: signed}, nil
}
