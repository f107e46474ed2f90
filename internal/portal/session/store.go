// Package session implements the portal's cookie-backed session store. The
// browser holds the whole session payload in a single cookie; these handlers
// are the only readers and writers of that cookie, so the rest of the portal
// treats the session as a typed value.
package session

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// CookieName is the session cookie's name.
const CookieName = "session"

// TTL is the session cookie lifetime. It matches the server-side session
// expiry so the cookie never outlives the token it carries.
const TTL = time.Hour

// Store serves the session endpoint and owns cookie encoding.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store {
	return &Store{}
}

// Get handles GET /session. It returns the stored payload exactly as it was
// written, or 401 when the cookie is absent or does not hold JSON.
func (s *Store) Get(c echo.Context) error {
	raw, ok := rawFromRequest(c.Request())
	if !ok || !json.Valid([]byte(raw)) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
	}
	return c.JSONBlob(http.StatusOK, []byte(raw))
}

// Set handles POST /session. The body is stored verbatim with no shape
// check; content that does not decode to a session surfaces when the cookie
// is read back, not here.
func (s *Store) Set(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable request body")
	}

	writeRawCookie(c.Response(), string(body))
	return c.JSON(http.StatusOK, map[string]string{"message": "session stored"})
}

// Delete handles DELETE /session. Deleting an absent session is a no-op, so
// repeated logouts are safe.
func (s *Store) Delete(c echo.Context) error {
	ClearCookie(c.Response())
	return c.JSON(http.StatusOK, map[string]string{"message": "session cleared"})
}

// ReadRequest decodes the session cookie from r into a validated session.
// ok is false when the cookie is missing or its payload does not decode to a
// well-formed session record.
func ReadRequest(r *http.Request) (*domain.SessionUser, bool) {
	raw, ok := rawFromRequest(r)
	if !ok {
		return nil, false
	}

	var user domain.SessionUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	if err := user.Validate(); err != nil {
		return nil, false
	}
	return &user, true
}

// WriteCookie serializes user into the session cookie on w.
func WriteCookie(w http.ResponseWriter, user *domain.SessionUser) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	writeRawCookie(w, string(payload))
	return nil
}

// ClearCookie expires the session cookie on w.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func rawFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", false
	}
	return raw, true
}

func writeRawCookie(w http.ResponseWriter, payload string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(payload),
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
