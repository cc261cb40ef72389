package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"resume-site/internal/shared/metrics"
	"resume-site/internal/shared/telemetry"
	"resume-site/internal/shared/util"
	"resume-site/internal/users"
	"resume-site/internal/validate"
)

var (
	// ErrDuplicate means the username or email is already registered.
	ErrDuplicate = errors.New("username or email already exists")
	// ErrInvalidCredentials covers both an unknown identifier and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidInput means a required field was empty after sanitising.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable wraps storage failures.
	ErrUnavailable = errors.New("authentication unavailable")
)

const (
	msgRegistered   = "Registration successful! Please log in."
	msgDuplicate    = "Username or email already exists"
	msgRequired     = "All fields are required"
	msgPasswordLong = "Password must be at most 72 bytes long"
	msgLoggedIn     = "Login successful"
	msgInvalidLogin = "Invalid username or password"
	msgUnavailable  = "Something went wrong. Please try again later."
)

// Result is the outcome of Register or Authenticate. Err is nil on success and
// one of the package sentinels otherwise.
type Result struct {
	Success bool
	Message string
	User    *users.User
	Err     error
}

// SystemCredential is a bootstrap login checked before the users table. It is
// inactive unless both Username and Password are set.
type SystemCredential struct {
	Username string
	Password string
	UserID   int64
}

func (s SystemCredential) enabled() bool {
	return s.Username != "" && s.Password != ""
}

func (s SystemCredential) matches(identifier, password string) bool {
	if !s.enabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(identifier), []byte(s.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.Password)) == 1
	return userOK && passOK
}

// Service registers and authenticates users.
type Service struct {
	Users  *users.Service
	System SystemCredential
}

func NewService(usersSvc *users.Service, system SystemCredential) *Service {
	return &Service{Users: usersSvc, System: system}
}

// Register sanitises username and email, refuses duplicates and stores a
// hashed password. The password is stored as typed.
func (s *Service) Register(ctx context.Context, username, email, password string) Result {
	username = util.CleanInput(username)
	email = util.CleanInput(email)
	if username == "" || email == "" || password == "" {
		metrics.IncRegistration("invalid")
		return failure(msgRequired, ErrInvalidInput)
	}
	if len(password) > validate.MaxPasswordBytes {
		metrics.IncRegistration("invalid")
		return failure(msgPasswordLong, ErrInvalidInput)
	}

	exists, err := s.Users.Exists(ctx, username, email)
	if err != nil {
		return s.registrationError(username, err)
	}
	if exists {
		metrics.IncRegistration("exists")
		return failure(msgDuplicate, ErrDuplicate)
	}

	// The unique constraints decide races between concurrent signups.
	u, err := s.Users.Create(ctx, username, email, password)
	if err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			metrics.IncRegistration("exists")
			return failure(msgDuplicate, ErrDuplicate)
		}
		switch {
		case errors.Is(err, users.ErrEmptyPassword):
			metrics.IncRegistration("invalid")
			return failure(msgRequired, ErrInvalidInput)
		case errors.Is(err, bcrypt.ErrPasswordTooLong):
			metrics.IncRegistration("invalid")
			return failure(msgPasswordLong, ErrInvalidInput)
		}
		return s.registrationError(username, err)
	}

	metrics.IncRegistration("success")
	telemetry.Info("auth.registered", map[string]any{"user_id": u.ID})
	return Result{Success: true, Message: msgRegistered, User: &u}
}

func (s *Service) registrationError(username string, err error) Result {
	metrics.IncRegistration("error")
	telemetry.Error("auth.register_failed", map[string]any{"username": username, "error": err})
	return failure(msgUnavailable, ErrUnavailable)
}

// Authenticate checks the system credential first, then the users table by
// username or email. The identifier is cleaned the way Register stored it.
// Failures never reveal which part was wrong.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) Result {
	if s.System.matches(identifier, password) {
		metrics.IncLogin("system")
		telemetry.Warn("auth.system_login", map[string]any{"user_id": s.System.UserID})
		return Result{
			Success: true,
			Message: msgLoggedIn,
			User:    &users.User{ID: s.System.UserID, Username: s.System.Username},
		}
	}

	u, err := s.Users.FindByIdentifier(ctx, util.CleanInput(identifier))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			metrics.IncLogin("invalid")
			return failure(msgInvalidLogin, ErrInvalidCredentials)
		}
		metrics.IncLogin("error")
		telemetry.Error("auth.lookup_failed", map[string]any{"error": err})
		return failure(msgUnavailable, ErrUnavailable)
	}
	if !s.Users.Verify(password, u.PasswordHash) {
		metrics.IncLogin("invalid")
		return failure(msgInvalidLogin, ErrInvalidCredentials)
	}

	if err := s.Users.TouchLastLogin(ctx, u.ID); err != nil {
		telemetry.Warn("auth.touch_last_login_failed", map[string]any{"user_id": u.ID, "error": err})
	}
	metrics.IncLogin("success")
	return Result{Success: true, Message: msgLoggedIn, User: &u}
}

func failure(msg string, err error) Result {
	return Result{Message: msg, Err: err}
}
