package adminctl

import (
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

// newTestServer spins up a fake admin API on an ephemeral loopback port and
// returns a Client pointed at it. The server is shut down when the test
// finishes.
func newTestServer(t *testing.T, tokens TokenSource, register func(app *fiber.App)) *Client {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	register(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to open listener: %v", err)
	}
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(
		func() {
			_ = app.Shutdown()
		},
	)

	if tokens == nil {
		tokens = StaticToken("test-token")
	}
	return NewClient(
		ClientConf{
			BaseURL: "http://" + ln.Addr().String(),
			Timeout: 5 * time.Second,
		}, tokens,
	)
}

// respondData writes the API's standard response envelope.
func respondData(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"status": 200, "message": "success", "data": data})
}

// respondError writes a rejected-request body alongside the HTTP status.
func respondError(c *fiber.Ctx, httpStatus int, message string) error {
	return c.Status(httpStatus).JSON(fiber.Map{"status": httpStatus, "message": message})
}

// fakeSessionStore is an in-memory model.SessionStore for tests.
type fakeSessionStore struct {
	mu      sync.Mutex
	token   string
	user    []byte
	resetID string
}

func (f *fakeSessionStore) Token() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeSessionStore) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeSessionStore) ClearToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	return nil
}

func (f *fakeSessionStore) User(out any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return false, nil
	}
	return true, json.Unmarshal(f.user, out)
}

func (f *fakeSessionStore) SetUser(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = data
	return nil
}

func (f *fakeSessionStore) ClearUser() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = nil
	return nil
}

func (f *fakeSessionStore) ResetUserID() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resetID, nil
}

func (f *fakeSessionStore) SetResetUserID(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetID = id
	return nil
}

func (f *fakeSessionStore) ClearResetUserID() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetID = ""
	return nil
}
