package security

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session data keys
const (
	SessionKeyFlash = "flash"
)

// SessionManager wraps scs.SessionManager with flash message helpers.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager stored in SQLite.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, lifetime time.Duration, secureCookies bool) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode // Lax so the post-redirect-get flow keeps the cookie
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// PutFlash stores a one-time message shown on the next rendered page.
// A nil manager silently drops the message.
func (sm *SessionManager) PutFlash(ctx context.Context, message string) {
	if sm == nil || sm.SessionManager == nil {
		return
	}
	sm.Put(ctx, SessionKeyFlash, message)
}

// PopFlash returns and clears the pending flash message.
func (sm *SessionManager) PopFlash(ctx context.Context) string {
	if sm == nil || sm.SessionManager == nil {
		return ""
	}
	return sm.PopString(ctx, SessionKeyFlash)
}
