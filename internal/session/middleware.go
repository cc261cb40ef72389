package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-site/internal/shared/telemetry"
)

const (
	contextKey = "session"
	// userIDKey mirrors the logged-in user id for request logging.
	userIDKey = "userId"
)

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

func (o Options) withDefaults() Options {
	if o.CookieName == "" {
		o.CookieName = "resume_session"
	}
	if o.TTL <= 0 {
		o.TTL = 24 * time.Hour
	}
	return o
}

// Middleware loads the request's session before the handler chain and saves
// it afterwards. A store failure on load degrades to a fresh anonymous session.
func Middleware(store Store, opts Options) gin.HandlerFunc {
	opts = opts.withDefaults()
	return func(c *gin.Context) {
		sess := load(c, store, opts.CookieName)
		sess.issue = func(id string) {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.CookieName, id, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
		}
		c.Set(contextKey, sess)
		publishUserID(c, sess)

		c.Next()

		publishUserID(c, sess)

		if err := save(c.Request.Context(), store, sess, opts.TTL); err != nil {
			telemetry.Error("session.save_failed", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err,
			})
		}
	}
}

// FromContext returns the request's session. Without the middleware it returns
// a detached session that is never persisted.
func FromContext(c *gin.Context) *Session {
	if c != nil {
		if v, ok := c.Get(contextKey); ok {
			if sess, ok := v.(*Session); ok {
				return sess
			}
		}
	}
	return New()
}

// RequireLogin aborts with a redirect to target unless the session is logged in.
func RequireLogin(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !FromContext(c).RequireLogin(c, target) {
			return
		}
		c.Next()
	}
}

func publishUserID(c *gin.Context, sess *Session) {
	if id := sess.UserID(); id > 0 {
		c.Set(userIDKey, id)
	} else {
		c.Set(userIDKey, int64(0))
	}
}

func load(c *gin.Context, store Store, cookieName string) *Session {
	token, err := c.Cookie(cookieName)
	if err != nil || !validToken(token) {
		return New()
	}
	values, err := store.Load(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			telemetry.Error("session.load_failed", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err,
			})
		}
		return New()
	}
	return restored(token, values)
}

func save(ctx context.Context, store Store, sess *Session, ttl time.Duration) error {
	if sess.staleID != "" {
		if err := store.Delete(ctx, sess.staleID); err != nil {
			return err
		}
		sess.staleID = ""
	}
	if !sess.dirty {
		return nil
	}
	if len(sess.values) == 0 {
		if sess.isNew {
			return nil
		}
		return store.Delete(ctx, sess.id)
	}
	return store.Save(ctx, sess.id, sess.values, sess.now().Add(ttl))
}
