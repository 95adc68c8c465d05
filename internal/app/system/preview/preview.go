// Package preview issues and checks the signed cookie that lets editors see
// draft content on the public routes. The cookie is scoped to one tenant and
// expires on its own; there is no server-side session state.
package preview

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	// DefaultCookieName is used unless configuration overrides it.
	DefaultCookieName = "polysite_preview"

	// DefaultTTL bounds how long one issued preview lasts.
	DefaultTTL = 30 * time.Minute
)

// Manager signs and validates preview cookies.
type Manager struct {
	store  *sessions.CookieStore
	name   string
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a Manager. An empty signing key gets a random one, which is
// fine for single-instance deployments but invalidates previews on restart.
func New(signingKey, cookieName string, ttl time.Duration, logger *zap.Logger) *Manager {
	key := []byte(signingKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("preview cookie key not configured, using a random key; previews will not survive restarts")
	}
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: cookieName, ttl: ttl, logger: logger}
}

// Issue writes a preview cookie for one tenant onto the response.
func (m *Manager) Issue(w http.ResponseWriter, r *http.Request, tenantSlug string) error {
	session, _ := m.store.Get(r, m.name)
	session.Values["tenant"] = tenantSlug
	session.Values["expires"] = time.Now().UTC().Add(m.ttl).Unix()
	return session.Save(r, w)
}

// Active reports whether the request carries a valid preview cookie for the
// given tenant. A cookie for a different tenant, a tampered cookie, or an
// expired one all read as inactive.
func (m *Manager) Active(r *http.Request, tenantSlug string) bool {
	session, err := m.store.Get(r, m.name)
	if err != nil || session.IsNew {
		return false
	}
	slug, ok := session.Values["tenant"].(string)
	if !ok || slug != tenantSlug {
		return false
	}
	expires, ok := session.Values["expires"].(int64)
	if !ok || time.Now().UTC().Unix() > expires {
		return false
	}
	return true
}

// Clear expires the preview cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, m.name)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
