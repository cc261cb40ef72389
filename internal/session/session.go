package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Keys written by Login and UpdateActivity.
const (
	KeyUserID       = "user_id"
	KeyUsername     = "username"
	KeyEmail        = "email"
	KeyLoggedIn     = "logged_in"
	KeyLoginTime    = "login_time"
	KeyLastActivity = "last_activity"

	flashPrefix = "flash_"
	tokenBytes  = 32
)

// Session is the state of one visitor for the duration of one request.
type Session struct {
	id      string
	values  map[string]any
	isNew   bool
	issued  bool
	dirty   bool
	staleID string
	issue   func(id string)
	now     func() time.Time
}

// New returns an empty, unsaved session with a fresh token.
func New() *Session {
	return &Session{
		id:     newToken(),
		values: make(map[string]any),
		isNew:  true,
		now:    time.Now,
	}
}

func restored(id string, values map[string]any) *Session {
	if values == nil {
		values = make(map[string]any)
	}
	return &Session{id: id, values: values, now: time.Now}
}

// ID returns the opaque session token.
func (s *Session) ID() string { return s.id }

func (s *Session) Set(key string, value any) {
	s.values[key] = value
	s.markDirty()
}

func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

func (s *Session) Remove(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.markDirty()
}

// Login records the authenticated identity and rotates the token.
func (s *Session) Login(userID int64, username, email string) {
	s.rotate()
	now := s.now().UTC()
	s.values[KeyUserID] = userID
	s.values[KeyUsername] = username
	s.values[KeyEmail] = email
	s.values[KeyLoggedIn] = true
	s.values[KeyLoginTime] = now
	s.values[KeyLastActivity] = now
	s.markDirty()
}

// IsLoggedIn is true only when logged_in holds the boolean true.
func (s *Session) IsLoggedIn() bool {
	v, ok := s.values[KeyLoggedIn].(bool)
	return ok && v
}

// Logout discards every value, including pending flash messages, and rotates the token.
func (s *Session) Logout() {
	s.rotate()
	s.values = make(map[string]any)
	s.markDirty()
}

// UpdateActivity stamps last_activity with the current time.
func (s *Session) UpdateActivity() {
	s.Set(KeyLastActivity, s.now().UTC())
}

// UserID returns the logged-in user's id, or 0.
func (s *Session) UserID() int64 {
	if !s.IsLoggedIn() {
		return 0
	}
	return toInt64(s.values[KeyUserID])
}

func (s *Session) Username() string {
	v, _ := s.values[KeyUsername].(string)
	return v
}

func (s *Session) Email() string {
	v, _ := s.values[KeyEmail].(string)
	return v
}

// SetFlash stores a message for the next GetFlash of the same type.
func (s *Session) SetFlash(kind, message string) {
	s.Set(flashPrefix+kind, message)
}

// GetFlash returns the flash message of the given type and removes it.
func (s *Session) GetFlash(kind string) (string, bool) {
	v, ok := s.values[flashPrefix+kind]
	if !ok {
		return "", false
	}
	s.Remove(flashPrefix + kind)
	msg, ok := v.(string)
	if !ok {
		msg = fmt.Sprint(v)
	}
	return msg, true
}

// Flashes consumes every pending flash message, keyed by type.
func (s *Session) Flashes() map[string]string {
	out := make(map[string]string)
	for key := range s.values {
		if kind, ok := strings.CutPrefix(key, flashPrefix); ok {
			out[kind], _ = s.GetFlash(kind)
		}
	}
	return out
}

// RequireLogin lets a logged-in request through and touches its activity.
// Otherwise it redirects to target and aborts the gin chain; the caller must
// return immediately when it reports false.
func (s *Session) RequireLogin(c *gin.Context, target string) bool {
	if s.IsLoggedIn() {
		s.UpdateActivity()
		return true
	}
	c.Redirect(http.StatusFound, target)
	c.Abort()
	return false
}

func (s *Session) rotate() {
	if !s.isNew && s.staleID == "" {
		s.staleID = s.id
	}
	s.id = newToken()
	s.isNew = true
	s.issued = false
}

func (s *Session) markDirty() {
	s.dirty = true
	if s.isNew && !s.issued && s.issue != nil {
		s.issued = true
		s.issue(s.id)
	}
}

func newToken() string {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session: crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

func validToken(token string) bool {
	if len(token) != tokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}

// toInt64 normalises ids that went through JSON (float64, json.Number) or not (int64).
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}
