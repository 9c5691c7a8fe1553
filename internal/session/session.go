package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys shared between the auth handlers and middleware.
const (
	KeyUserID    = "user_id"
	KeyUserEmail = "user_email"
	KeyUserName  = "user_name"
)

// New creates a new session manager configured with SQLite store. A nil db
// keeps the scs in-memory store, used when the content store is unconfigured.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if db != nil {
		sm.Store = sqlite3store.New(db)
	}

	// Configure session
	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}

// SetProfile caches the signed-in user's identity in the session so pages
// can greet the user without a database round trip. The token is renewed
// first to prevent session fixation.
func SetProfile(ctx context.Context, sm *scs.SessionManager, id int64, email, name string) error {
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}
	sm.Put(ctx, KeyUserID, id)
	sm.Put(ctx, KeyUserEmail, email)
	sm.Put(ctx, KeyUserName, name)
	return nil
}

// Profile reads the cached identity. Returns id 0 when nobody is signed in.
func Profile(ctx context.Context, sm *scs.SessionManager) (id int64, email, name string) {
	id = sm.GetInt64(ctx, KeyUserID)
	email = sm.GetString(ctx, KeyUserEmail)
	name = sm.GetString(ctx, KeyUserName)
	return id, email, name
}

// ClearProfile signs the user out, destroying all session data.
func ClearProfile(ctx context.Context, sm *scs.SessionManager) error {
	return sm.Destroy(ctx)
}
