package pushnotifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"

	"github.com/tinywideclouds/go-push-notifications/pkg/push"
	"github.com/tinywideclouds/go-push-notifications/pkg/validate"
)

// PublishToInterests sends payload to every device subscribed to at least one of interests.
// Validation failures are returned as *validate.Error before any request is made.
func (c *Client) PublishToInterests(ctx context.Context, interests []string, payload push.Payload) (*push.PublishResult, error) {
	valid, err := validate.Interests(interests)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/publish_api/v1/instances/%s/publishes/interests", url.PathEscape(c.instanceID))
	return c.publish(ctx, path, "interests", valid, payload)
}

// PublishToUsers sends payload to every device belonging to the given users.
func (c *Client) PublishToUsers(ctx context.Context, userIDs []string, payload push.Payload) (*push.PublishResult, error) {
	valid, err := validate.UserIDs(userIDs)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/publish_api/v1/instances/%s/publishes/users", url.PathEscape(c.instanceID))
	return c.publish(ctx, path, "users", valid, payload)
}

// Publish is the 1.x name of PublishToInterests.
//
// Deprecated: use PublishToInterests.
func (c *Client) Publish(ctx context.Context, interests []string, payload push.Payload) (*push.PublishResult, error) {
	return c.PublishToInterests(ctx, interests, payload)
}

func (c *Client) publish(ctx context.Context, path, targetKey string, targets []string, payload push.Payload) (*push.PublishResult, error) {
	if err := validate.PublishBody(payload); err != nil {
		return nil, err
	}

	// The caller's map is shared; the targeting key goes into a copy.
	body := make(push.Payload, len(payload)+1)
	maps.Copy(body, payload)
	body[targetKey] = targets

	status, respBody, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return decodePublishResult(status, respBody)
}

// decodePublishResult requires the body to be a JSON object; null, arrays,
// scalars and malformed JSON are all unexpected.
func decodePublishResult(status int, body []byte) (*push.PublishResult, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &UnexpectedResponseError{StatusCode: status, Body: body, Err: err}
	}
	if raw == nil {
		return nil, &UnexpectedResponseError{StatusCode: status, Body: body, Err: errors.New("response body is null")}
	}

	result := &push.PublishResult{Raw: raw}
	if id, ok := raw["publishId"]; ok {
		if err := json.Unmarshal(id, &result.PublishID); err != nil {
			return nil, &UnexpectedResponseError{StatusCode: status, Body: body, Err: fmt.Errorf("bad publishId: %w", err)}
		}
	}
	return result, nil
}
