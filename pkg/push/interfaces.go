// Package push contains the public contract and domain types of the
// push-notifications publishing client.
package push

import (
	"context"
	"encoding/json"
)

// Payload is a platform-specific notification body keyed by service,
// e.g. "apns", "fcm" or "web". The targeting key is injected by the client.
type Payload map[string]any

// PublishResult is the decoded body of a successful publish.
type PublishResult struct {
	PublishID string `json:"publishId"`
	// Raw holds every top-level field the server returned, including publishId.
	Raw map[string]json.RawMessage `json:"-"`
}

// AuthToken is a signed JWT a device presents to prove a user's identity.
type AuthToken struct {
	Token string `json:"token"`
}

// Publisher defines the contract for sending notifications through the
// publishing API. Every call is one independent request.
type Publisher interface {
	// PublishToInterests delivers payload to every device subscribed to any of interests.
	PublishToInterests(ctx context.Context, interests []string, payload Payload) (*PublishResult, error)

	// PublishToUsers delivers payload to every device of the given users.
	PublishToUsers(ctx context.Context, userIDs []string, payload Payload) (*PublishResult, error)

	// DeleteUser removes a user and all of their devices from the instance.
	DeleteUser(ctx context.Context, userID string) error

	// GenerateToken issues a token for userID. It does not touch the network.
	GenerateToken(userID string) (AuthToken, error)
}
