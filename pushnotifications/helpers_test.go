package pushnotifications_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tinywideclouds/go-push-notifications/pkg/push"
	"github.com/tinywideclouds/go-push-notifications/pushnotifications"
	"github.com/tinywideclouds/go-push-notifications/pushnotifications/config"
	"go.uber.org/goleak"
)

const (
	// fakeServiceBuffer bounds the requests one fake service can capture unread.
	fakeServiceBuffer = 16

	testInstanceID = "a11aec92-146a-4708-9a62-8c61f46a82ad"
	testSecretKey  = "EIJ2EESAH8DUUMAI8EE"
)

// TestMain provides goleak verification to detect goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// capturedRequest is what the fake service saw.
type capturedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// newFakeService starts a server answering every request with status and body,
// and returns a client pointed at it plus the channel of captured requests.
func newFakeService(t *testing.T, status int, body string) (*pushnotifications.Client, <-chan capturedRequest) {
	t.Helper()
	requests := make(chan capturedRequest, fakeServiceBuffer)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		requests <- capturedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Header: r.Header.Clone(),
			Body:   data,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	client, err := pushnotifications.New(&config.Config{
		InstanceID: testInstanceID,
		SecretKey:  testSecretKey,
		Endpoint:   server.URL,
	}, pushnotifications.WithHTTPClient(server.Client()), pushnotifications.WithLogger(newTestLogger()))
	require.NoError(t, err)
	return client, requests
}

func samplePayload() push.Payload {
	return push.Payload{
		"apns": map[string]any{
			"aps": map[string]any{"alert": "Hello!"},
		},
		"fcm": map[string]any{
			"notification": map[string]any{"title": "Hello!", "body": "Hello, world!"},
		},
	}
}

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}
