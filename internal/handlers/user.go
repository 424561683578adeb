package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/shire-forum/shire/internal/middleware"
	"github.com/shire-forum/shire/internal/models"
)

// UserLister lists registered usernames
type UserLister interface {
	ListUsernames(ctx context.Context) ([]string, error)
}

type UserHandler struct {
	responder
	users UserLister
}

func NewUserHandler(users UserLister, views Renderer, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		responder: responder{views: views, logger: logger},
		users:     users,
	}
}

type usersPage struct {
	Page
	Usernames []string
}

type profilePage struct {
	Page
	User models.User
}

// Index is the landing page; signed-in users go straight to the quests
func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CurrentUser(r); ok {
		redirect(w, r, "/quests/")
		return
	}
	h.render(w, r, http.StatusOK, "index", newPage(r))
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	usernames, err := h.users.ListUsernames(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "users", usersPage{Page: newPage(r), Usernames: usernames})
}

// Profile shows the current user's traits
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	page := newPage(r)
	if page.CurrentUser == nil {
		redirect(w, r, "/signup/")
		return
	}
	h.render(w, r, http.StatusOK, "profile", profilePage{Page: page, User: *page.CurrentUser})
}
