package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/shire-forum/shire/internal/auth"
	"github.com/shire-forum/shire/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserContextKey is the key for storing the current user in request context
	UserContextKey contextKey = "user"
)

// UserResolver looks up the account named by a session claim
type UserResolver interface {
	FindUserByUsername(ctx context.Context, username string) (models.User, bool, error)
}

// Sessions resolves the current user from the signed session cookie and
// establishes or clears that cookie on behalf of handlers.
type Sessions struct {
	codec      *auth.SessionCodec
	users      UserResolver
	cookieName string
	secure     bool
	logger     *zap.Logger
}

// NewSessions creates the session manager
func NewSessions(codec *auth.SessionCodec, users UserResolver, cookieName string, secure bool, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{
		codec:      codec,
		users:      users,
		cookieName: cookieName,
		secure:     secure,
		logger:     logger,
	}
}

// Load resolves the current user once per request. A cookie that fails
// verification or names an unknown user is cleared and the request proceeds
// anonymously. Store failures are fatal for the request.
func (s *Sessions) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		username, err := s.codec.Decode(cookie.Value)
		if err != nil {
			s.logger.Debug("discarding invalid session", zap.Error(err))
			s.Clear(w)
			next.ServeHTTP(w, r)
			return
		}

		user, found, err := s.users.FindUserByUsername(r.Context(), username)
		if err != nil {
			s.logger.Error("failed to resolve session user", zap.String("username", username), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if !found {
			s.logger.Info("clearing orphaned session", zap.String("username", username))
			s.Clear(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Establish stores username as the session claim
func (s *Sessions) Establish(w http.ResponseWriter, username string) error {
	value, err := s.codec.Encode(username)
	if err != nil {
		return err
	}
	http.SetCookie(w, s.cookie(value, 0))
	return nil
}

// Clear removes the session claim
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s *Sessions) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CurrentUser extracts the resolved user from request context
func CurrentUser(r *http.Request) (models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(models.User)
	return user, ok
}
