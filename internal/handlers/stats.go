package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/shire-forum/shire/internal/models"
	"github.com/shire-forum/shire/internal/stats"
)

// TopPosterLimit caps the activity leaderboard on the stats page
const TopPosterLimit = 5

// DemographicsCounter tallies users by trait
type DemographicsCounter interface {
	CountDemographics(ctx context.Context) (models.Demographics, error)
}

type StatsHandler struct {
	responder
	counter  DemographicsCounter
	reporter *stats.Reporter
	tracker  ActivityTracker
}

func NewStatsHandler(counter DemographicsCounter, reporter *stats.Reporter, tracker ActivityTracker, views Renderer, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		responder: responder{views: views, logger: logger},
		counter:   counter,
		reporter:  reporter,
		tracker:   tracker,
	}
}

type statsPage struct {
	Page
	Report            stats.Report
	ActivityEnabled   bool
	ActiveAdventurers int64
	TopPosters        []models.PosterRank
}

// Show renders the demographics report and, when tracked, live activity
func (h *StatsHandler) Show(w http.ResponseWriter, r *http.Request) {
	demographics, err := h.counter.CountDemographics(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	report, err := h.reporter.Build(demographics)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	page := statsPage{Page: newPage(r), Report: report}
	h.loadActivity(r.Context(), &page)

	h.render(w, r, http.StatusOK, "stats", page)
}

// loadActivity degrades to zero values when the tracker is unreachable
func (h *StatsHandler) loadActivity(ctx context.Context, page *statsPage) {
	if h.tracker == nil {
		return
	}
	page.ActivityEnabled = true

	active, err := h.tracker.ActiveCount(ctx)
	if err != nil {
		h.logger.Warn("failed to read active users", zap.Error(err))
	} else {
		page.ActiveAdventurers = active
	}

	top, err := h.tracker.TopPosters(ctx, TopPosterLimit)
	if err != nil {
		h.logger.Warn("failed to read leaderboard", zap.Error(err))
	} else {
		page.TopPosters = top
	}
}
