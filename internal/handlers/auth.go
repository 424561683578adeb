package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/shire-forum/shire/internal/middleware"
	"github.com/shire-forum/shire/internal/models"
	"github.com/shire-forum/shire/internal/store"
)

// Form error messages, checked in this order on signup
const (
	ErrMissingUsername  = "Missing username"
	ErrMissingPassword  = "Missing password"
	ErrPasswordMismatch = "The two passwords do not match"
	ErrPasswordTooShort = "Password must be at least 5 characters"
	ErrMissingRace      = "Missing race"
	ErrUnknownRace      = "Unknown race"
	ErrMissingClass     = "Missing class"
	ErrUnknownClass     = "Unknown class"
	ErrMissingGender    = "Missing gender"
	ErrUnknownGender    = "Unknown gender"
	ErrUsernameTaken    = "Username taken, please try another one"

	// ErrInvalidLogin is shared by unknown usernames and wrong passwords
	ErrInvalidLogin = "Invalid username or password"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 5

// UserStore persists and resolves accounts
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (models.User, bool, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}

// PasswordHasher derives and checks password hashes
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// SessionWriter establishes and clears the session claim
type SessionWriter interface {
	Establish(w http.ResponseWriter, username string) error
	Clear(w http.ResponseWriter)
}

type AuthHandler struct {
	responder
	users    UserStore
	hasher   PasswordHasher
	sessions SessionWriter
	tracker  ActivityTracker
}

func NewAuthHandler(users UserStore, hasher PasswordHasher, sessions SessionWriter, tracker ActivityTracker, views Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		responder: responder{views: views, logger: logger},
		users:     users,
		hasher:    hasher,
		sessions:  sessions,
		tracker:   tracker,
	}
}

// SignupForm holds the submitted signup fields
type SignupForm struct {
	Username  string
	Password  string
	Password2 string
	Race      string
	Class     string
	Gender    string
}

type signupPage struct {
	Page
	Form    SignupForm
	Races   []string
	Classes []string
	Genders []string
}

type loginPage struct {
	Page
	Username string
}

// ValidateSignup returns the first failing check's message, or "" when the
// form is acceptable. Username availability is checked on insert.
func ValidateSignup(f SignupForm) string {
	switch {
	case f.Username == "":
		return ErrMissingUsername
	case f.Password == "":
		return ErrMissingPassword
	case f.Password != f.Password2:
		return ErrPasswordMismatch
	case len(f.Password) < MinPasswordLength:
		return ErrPasswordTooShort
	case f.Race == "":
		return ErrMissingRace
	case !models.IsValidRace(f.Race):
		return ErrUnknownRace
	case f.Class == "":
		return ErrMissingClass
	case !models.IsValidClass(f.Class):
		return ErrUnknownClass
	case f.Gender == "":
		return ErrMissingGender
	case !models.IsValidGender(f.Gender):
		return ErrUnknownGender
	}
	return ""
}

// Signup handles account creation
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CurrentUser(r); ok {
		redirect(w, r, "/profile/")
		return
	}

	page := signupPage{
		Page:    newPage(r),
		Races:   models.Races,
		Classes: models.Classes,
		Genders: models.Genders,
	}

	if r.Method == http.MethodPost {
		page.Form = SignupForm{
			Username:  r.FormValue("username"),
			Password:  r.FormValue("password"),
			Password2: r.FormValue("password2"),
			Race:      r.FormValue("race"),
			Class:     r.FormValue("class"),
			Gender:    r.FormValue("gender"),
		}

		page.Error = ValidateSignup(page.Form)
		if page.Error == "" {
			created, err := h.createUser(r.Context(), page.Form)
			switch {
			case errors.Is(err, store.ErrUsernameTaken):
				page.Error = ErrUsernameTaken
			case err != nil:
				h.serverError(w, r, err)
				return
			default:
				h.logger.Info("user signed up", zap.String("username", created.Username), zap.Int64("user_id", created.ID))
				redirect(w, r, "/login/")
				return
			}
		}
	}

	page.Form.Password, page.Form.Password2 = "", ""
	h.render(w, r, http.StatusOK, "signup", page)
}

func (h *AuthHandler) createUser(ctx context.Context, f SignupForm) (models.User, error) {
	hash, err := h.hasher.Hash(f.Password)
	if err != nil {
		return models.User{}, err
	}
	return h.users.CreateUser(ctx, models.User{
		Username: f.Username,
		PwHash:   hash,
		Race:     f.Race,
		Class:    f.Class,
		Gender:   f.Gender,
	})
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CurrentUser(r); ok {
		redirect(w, r, "/quests/")
		return
	}

	page := loginPage{Page: newPage(r)}

	if r.Method == http.MethodPost {
		page.Username = r.FormValue("username")
		password := r.FormValue("password")

		user, found, err := h.users.FindUserByUsername(r.Context(), page.Username)
		if err != nil {
			h.serverError(w, r, err)
			return
		}

		if !found || !h.hasher.Verify(password, user.PwHash) {
			page.Error = ErrInvalidLogin
			h.render(w, r, http.StatusOK, "login", page)
			return
		}

		if err := h.sessions.Establish(w, user.Username); err != nil {
			h.serverError(w, r, err)
			return
		}
		if h.tracker != nil {
			if err := h.tracker.MarkActive(r.Context(), user.Username); err != nil {
				h.logger.Warn("failed to mark user active", zap.String("username", user.Username), zap.Error(err))
			}
		}

		h.logger.Info("user logged in", zap.String("username", user.Username), zap.Int64("user_id", user.ID))
		redirect(w, r, "/quests/")
		return
	}

	h.render(w, r, http.StatusOK, "login", page)
}

// Logout clears the session claim
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)

	if user, ok := middleware.CurrentUser(r); ok && h.tracker != nil {
		if err := h.tracker.MarkInactive(r.Context(), user.Username); err != nil {
			h.logger.Warn("failed to mark user inactive", zap.String("username", user.Username), zap.Error(err))
		}
	}

	redirect(w, r, "/")
}
