// Package gate protects the subscriber list behind a shared passcode.
// The original product treated this as a cosmetic gate; here a successful
// unlock is exchanged for real short-lived credentials - a signed bearer
// token for API clients and an encrypted, server-tracked session cookie for
// browsers.
package gate

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/invoicepress/invoicepress/db/kvdb"
	"github.com/invoicepress/invoicepress/responses"
	"github.com/invoicepress/invoicepress/routing"
	"github.com/invoicepress/invoicepress/sec"
)

const CookieName = "gate_session"

type Conf struct {
	Passcode      string `json:"passcode"`
	SigningKey    string `json:"signing_key"`    // HS256 shared key
	EncryptionKey string `json:"encryption_key"` // 32-byte cookie cipher key
	TTLMinutes    int    `json:"ttl_minutes"`
}

type Gate struct {
	Conf    Conf
	AppName string

	cipher *sec.XChaCha20Poly1305Cipher
	kv     kvdb.Client
}

func New(appName string, conf Conf, kv kvdb.Client) (*Gate, error) {
	if conf.Passcode == "" || conf.SigningKey == "" {
		return nil, errors.New("gate: passcode and signing key are required")
	}
	if conf.TTLMinutes <= 0 {
		conf.TTLMinutes = 30
	}
	cipher, err := sec.NewXChaCha20Poly1305Cipher([]byte(conf.EncryptionKey))
	if err != nil {
		return nil, fmt.Errorf("gate cookie cipher: %w", err)
	}
	return &Gate{Conf: conf, AppName: appName, cipher: cipher, kv: kv}, nil
}

func (g *Gate) ttl() time.Duration {
	return time.Duration(g.Conf.TTLMinutes) * time.Minute
}

func (g *Gate) sessionKey(sessionID string) string {
	return g.AppName + "_gate:" + sessionID
}

// Unlock exchanges a correct passcode for a bearer token and a session
// cookie. The compare is constant-time; rate limiting happens at routing
// level.
func (g *Gate) Unlock(ctx context.Context, w http.ResponseWriter, passcode string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(passcode), []byte(g.Conf.Passcode)) != 1 {
		return "", errors.New("gate: wrong passcode")
	}

	now := time.Now()
	token, err := sec.SignHS256(jwt.MapClaims{
		"iss":   g.AppName,
		"scope": "subscribers",
		"iat":   now.Unix(),
		"exp":   now.Add(g.ttl()).Unix(),
	}, []byte(g.Conf.SigningKey))
	if err != nil {
		return "", fmt.Errorf("gate: signing token: %w", err)
	}

	sessionID, err := sec.GenerateOpaqueToken(32)
	if err != nil {
		return "", err
	}
	if err = g.kv.Set(ctx, g.sessionKey(sessionID), "1", g.ttl()); err != nil {
		return "", fmt.Errorf("gate: storing session: %w", err)
	}
	sealed, err := g.cipher.EncryptEncode([]byte(sessionID))
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sealed,
		Path:     "/",
		HttpOnly: true, // JS cannot read it
		Secure:   true, // only sent over HTTPS
		MaxAge:   int(g.ttl().Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// admits reports whether the request carries a valid bearer token or a live
// session cookie.
func (g *Gate) admits(r *http.Request) bool {
	if token := sec.ExtractBearerToken(r.Header.Get("Authorization")); token != "" {
		if _, err := sec.ParseHS256(token, []byte(g.Conf.SigningKey)); err == nil {
			return true
		}
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	sessionID, err := g.cipher.DecodeDecrypt(cookie.Value)
	if err != nil {
		return false
	}
	found, err := g.kv.Exists(r.Context(), g.sessionKey(string(sessionID)))
	if err != nil {
		log.Printf("[ERROR] gate session lookup: %v", err)
		return false
	}
	return found
}

// Wrap makes Gate a routing.HandlerWrapper guarding the wrapped handler.
func (g *Gate) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.admits(r) {
			responses.WriteSimpleErrorJSON(w, http.StatusUnauthorized, "unlock required")
			return
		}
		inner.ServeHTTP(w, r)
	})
}

// Ensure Gate implements routing.HandlerWrapper
var _ routing.HandlerWrapper = (*Gate)(nil)

// UnlockHandler handles POST /api/subscribers/unlock.
type UnlockHandler struct {
	Gate *Gate
}

func (h *UnlockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Passcode string `json:"passcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Passcode == "" {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "Passcode is required")
		return
	}
	token, err := h.Gate.Unlock(r.Context(), w, body.Passcode)
	if err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusUnauthorized, "Incorrect password")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_in": int(h.Gate.ttl().Seconds()),
	})
}
