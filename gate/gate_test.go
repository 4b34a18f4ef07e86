package gate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicepress/invoicepress/db/kvdb"
)

// memKV is an in-memory kvdb.Client for tests. Expirations are ignored.
type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Init() error         { return nil }
func (m *memKV) Close() error        { return nil }
func (m *memKV) GetConf() *kvdb.Conf { return &kvdb.Conf{Type: "mem"} }

func (m *memKV) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = "1"
	return nil
}

func (m *memKV) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

var _ kvdb.Client = (*memKV)(nil)

func testConf() Conf {
	return Conf{
		Passcode:      "open-sesame",
		SigningKey:    "test-signing-key",
		EncryptionKey: "0123456789abcdef0123456789abcdef",
		TTLMinutes:    5,
	}
}

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	g, err := New("testapp", testConf(), newMemKV())
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	t.Run("missing passcode rejected", func(t *testing.T) {
		conf := testConf()
		conf.Passcode = ""
		_, err := New("testapp", conf, newMemKV())
		assert.Error(t, err)
	})

	t.Run("wrong encryption key length rejected", func(t *testing.T) {
		conf := testConf()
		conf.EncryptionKey = "too-short"
		_, err := New("testapp", conf, newMemKV())
		assert.Error(t, err)
	})

	t.Run("ttl defaults when unset", func(t *testing.T) {
		conf := testConf()
		conf.TTLMinutes = 0
		g, err := New("testapp", conf, newMemKV())
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, g.ttl())
	})
}

func TestUnlockHandler(t *testing.T) {
	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("wrong passcode", func(t *testing.T) {
		g := newTestGate(t)
		h := &UnlockHandler{Gate: g}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/subscribers/unlock",
			strings.NewReader(`{"passcode":"nope"}`))
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing passcode", func(t *testing.T) {
		g := newTestGate(t)
		h := &UnlockHandler{Gate: g}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/subscribers/unlock",
			strings.NewReader(`{}`))
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("correct passcode grants token and cookie", func(t *testing.T) {
		g := newTestGate(t)
		h := &UnlockHandler{Gate: g}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/subscribers/unlock",
			strings.NewReader(`{"passcode":"open-sesame"}`))
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Token     string `json:"token"`
			ExpiresIn int    `json:"expires_in"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, 300, body.ExpiresIn)

		var session *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == CookieName {
				session = c
			}
		}
		require.NotNil(t, session)
		assert.True(t, session.HttpOnly)
		assert.True(t, session.Secure)

		// Both credentials admit independently.
		wrapped := g.Wrap(protected)

		byToken := httptest.NewRequest(http.MethodGet, "/api/subscribers", nil)
		byToken.Header.Set("Authorization", "Bearer "+body.Token)
		tokenRec := httptest.NewRecorder()
		wrapped.ServeHTTP(tokenRec, byToken)
		assert.Equal(t, http.StatusOK, tokenRec.Code)

		byCookie := httptest.NewRequest(http.MethodGet, "/api/subscribers", nil)
		byCookie.AddCookie(session)
		cookieRec := httptest.NewRecorder()
		wrapped.ServeHTTP(cookieRec, byCookie)
		assert.Equal(t, http.StatusOK, cookieRec.Code)
	})
}

func TestWrap(t *testing.T) {
	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("no credentials", func(t *testing.T) {
		g := newTestGate(t)
		rec := httptest.NewRecorder()
		g.Wrap(protected).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/subscribers", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("forged token", func(t *testing.T) {
		g := newTestGate(t)
		req := httptest.NewRequest(http.MethodGet, "/api/subscribers", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		g.Wrap(protected).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered cookie", func(t *testing.T) {
		g := newTestGate(t)
		req := httptest.NewRequest(http.MethodGet, "/api/subscribers", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "bm90LXJlYWw"})
		rec := httptest.NewRecorder()
		g.Wrap(protected).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revoked session cookie", func(t *testing.T) {
		kv := newMemKV()
		g, err := New("testapp", testConf(), kv)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		_, err = g.Unlock(context.Background(), rec, "open-sesame")
		require.NoError(t, err)

		var session *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == CookieName {
				session = c
			}
		}
		require.NotNil(t, session)

		// Drop the server-side session; the still-valid cookie no longer admits.
		kv.mu.Lock()
		kv.data = make(map[string]string)
		kv.mu.Unlock()

		req := httptest.NewRequest(http.MethodGet, "/api/subscribers", nil)
		req.AddCookie(session)
		out := httptest.NewRecorder()
		g.Wrap(protected).ServeHTTP(out, req)
		assert.Equal(t, http.StatusUnauthorized, out.Code)
	})
}
