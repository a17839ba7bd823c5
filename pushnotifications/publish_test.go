package pushnotifications_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinywideclouds/go-push-notifications/pkg/push"
	"github.com/tinywideclouds/go-push-notifications/pkg/validate"
	"github.com/tinywideclouds/go-push-notifications/pushnotifications"
	"github.com/tinywideclouds/go-push-notifications/pushnotifications/config"
)

func TestPublishToInterests(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - builds the expected request", func(t *testing.T) {
		client, requests := newFakeService(t, http.StatusOK, `{"publishId": "pub-1234"}`)

		result, err := client.PublishToInterests(ctx, []string{"donuts"}, samplePayload())
		require.NoError(t, err)
		assert.Equal(t, "pub-1234", result.PublishID)
		assert.Contains(t, result.Raw, "publishId")

		req := <-requests
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/publish_api/v1/instances/"+testInstanceID+"/publishes/interests", req.Path)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer "+testSecretKey, req.Header.Get("Authorization"))
		assert.Equal(t, "pusher-push-notifications-go "+pushnotifications.LibraryVersion, req.Header.Get("X-Pusher-Library"))

		assert.JSONEq(t, `{
			"interests": ["donuts"],
			"apns": {"aps": {"alert": "Hello!"}},
			"fcm": {"notification": {"title": "Hello!", "body": "Hello, world!"}}
		}`, string(req.Body))
	})

	t.Run("Success - interests field echoes the input list", func(t *testing.T) {
		for _, n := range []int{1, 37, validate.MaxInterests} {
			client, requests := newFakeService(t, http.StatusOK, `{"publishId": "pub-1"}`)
			interests := make([]string, n)
			for i := range interests {
				interests[i] = fmt.Sprintf("interest-%d", i)
			}

			_, err := client.PublishToInterests(ctx, interests, push.Payload{})
			require.NoError(t, err)

			body := decodeBody(t, (<-requests).Body)
			got, ok := body["interests"].([]any)
			require.True(t, ok)
			require.Len(t, got, n)
			for i := range interests {
				assert.Equal(t, interests[i], got[i])
			}
		}
	})

	t.Run("Success - caller payload is not mutated and targeting key wins", func(t *testing.T) {
		client, requests := newFakeService(t, http.StatusOK, `{"publishId": "pub-1"}`)
		payload := push.Payload{"interests": []string{"spoofed"}, "web": map[string]any{"notification": "x"}}

		_, err := client.PublishToInterests(ctx, []string{"donuts"}, payload)
		require.NoError(t, err)

		assert.Equal(t, []string{"spoofed"}, payload["interests"])
		body := decodeBody(t, (<-requests).Body)
		assert.Equal(t, []any{"donuts"}, body["interests"])
	})

	t.Run("Success - extra response fields are kept", func(t *testing.T) {
		client, _ := newFakeService(t, http.StatusOK, `{"publishId": "pub-9", "region": "eu"}`)

		result, err := client.PublishToInterests(ctx, []string{"donuts"}, samplePayload())
		require.NoError(t, err)
		assert.JSONEq(t, `"eu"`, string(result.Raw["region"]))
	})

	t.Run("Success - deprecated Publish aliases PublishToInterests", func(t *testing.T) {
		client, requests := newFakeService(t, http.StatusOK, `{"publishId": "pub-1234"}`)

		result, err := client.Publish(ctx, []string{"donuts"}, samplePayload())
		require.NoError(t, err)
		assert.Equal(t, "pub-1234", result.PublishID)
		assert.Equal(t, "/publish_api/v1/instances/"+testInstanceID+"/publishes/interests", (<-requests).Path)
	})

	t.Run("Failure - nil payload", func(t *testing.T) {
		client, _ := newFakeService(t, http.StatusOK, `{}`)
		_, err := client.PublishToInterests(ctx, []string{"donuts"}, nil)
		assert.True(t, validate.IsKind(err, validate.WrongType))
	})

	for _, body := range []string{`<notjson></notjson>`, `null`, `["pub-1"]`, `{"publishId": 42}`, ``} {
		t.Run("Failure - unexpected success body "+body, func(t *testing.T) {
			client, _ := newFakeService(t, http.StatusOK, body)
			result, err := client.PublishToInterests(ctx, []string{"donuts"}, samplePayload())
			assert.Nil(t, result)
			assert.ErrorIs(t, err, pushnotifications.ErrUnexpectedServerResponse)
		})
	}
}

func TestPublishToUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - builds the expected request", func(t *testing.T) {
		client, requests := newFakeService(t, http.StatusOK, `{"publishId": "pub-5678"}`)

		result, err := client.PublishToUsers(ctx, []string{"user-0001", "user-0002"}, samplePayload())
		require.NoError(t, err)
		assert.Equal(t, "pub-5678", result.PublishID)

		req := <-requests
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/publish_api/v1/instances/"+testInstanceID+"/publishes/users", req.Path)
		body := decodeBody(t, req.Body)
		assert.Equal(t, []any{"user-0001", "user-0002"}, body["users"])
		assert.NotContains(t, body, "interests")
	})

	t.Run("Failure - empty user list", func(t *testing.T) {
		client, _ := newFakeService(t, http.StatusOK, `{}`)
		_, err := client.PublishToUsers(ctx, []string{}, samplePayload())
		assert.True(t, validate.IsKind(err, validate.TooFew))
	})
}

// Validation must fail fast: the transport is never reached.
func TestPublishValidationSendsNothing(t *testing.T) {
	transport := httpmock.NewMockTransport()
	client, err := pushnotifications.New(
		&config.Config{InstanceID: testInstanceID, SecretKey: testSecretKey},
		pushnotifications.WithHTTPClient(&http.Client{Transport: transport}),
	)
	require.NoError(t, err)
	ctx := context.Background()

	tooMany := make([]string, validate.MaxInterests+1)
	for i := range tooMany {
		tooMany[i] = "ok"
	}

	tests := []struct {
		name string
		call func() error
		kind validate.Kind
	}{
		{"nil interests", func() error { _, err := client.PublishToInterests(ctx, nil, samplePayload()); return err }, validate.WrongType},
		{"no interests", func() error { _, err := client.PublishToInterests(ctx, []string{}, samplePayload()); return err }, validate.TooFew},
		{"too many interests", func() error { _, err := client.PublishToInterests(ctx, tooMany, samplePayload()); return err }, validate.TooMany},
		{"forbidden interest", func() error { _, err := client.PublishToInterests(ctx, []string{"/donuts"}, samplePayload()); return err }, validate.ForbiddenCharacter},
		{"nil users", func() error { _, err := client.PublishToUsers(ctx, nil, samplePayload()); return err }, validate.WrongType},
		{"empty user", func() error { _, err := client.PublishToUsers(ctx, []string{""}, samplePayload()); return err }, validate.EmptyString},
		{"nil payload", func() error { _, err := client.PublishToUsers(ctx, []string{"u"}, nil); return err }, validate.WrongType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			var vErr *validate.Error
			require.True(t, errors.As(err, &vErr), "expected a validation error, got %v", err)
			assert.Equal(t, tc.kind, vErr.Kind)
		})
	}

	assert.Zero(t, transport.GetTotalCallCount())
}
