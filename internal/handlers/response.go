package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/shire-forum/shire/internal/middleware"
	"github.com/shire-forum/shire/internal/models"
)

// Renderer writes a named page
type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}

// ActivityTracker records presence and post activity. Implementations are
// best effort; failures are logged and never fail a request.
type ActivityTracker interface {
	MarkActive(ctx context.Context, username string) error
	MarkInactive(ctx context.Context, username string) error
	ActiveCount(ctx context.Context) (int64, error)
	RecordPost(ctx context.Context, username string) error
	TopPosters(ctx context.Context, limit int64) ([]models.PosterRank, error)
}

// Page carries the fields every template reads
type Page struct {
	CurrentUser *models.User
	Error       string
}

func newPage(r *http.Request) Page {
	var p Page
	if user, ok := middleware.CurrentUser(r); ok {
		p.CurrentUser = &user
	}
	return p
}

// responder holds the rendering and logging shared by every handler
type responder struct {
	views  Renderer
	logger *zap.Logger
}

func (h responder) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.views.Render(w, status, page, data); err != nil {
		h.serverError(w, r, err)
	}
}

func (h responder) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.Error(err),
	)
	if renderErr := h.views.Render(w, http.StatusInternalServerError, "500", newPage(r)); renderErr != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NotFound renders the generic not-found page
func (h responder) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404", newPage(r))
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}
