package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shire-forum/shire/internal/models"
	"github.com/shire-forum/shire/internal/stats"
	"github.com/shire-forum/shire/internal/views"
)

type fakeCounter struct {
	demographics models.Demographics
	err          error
}

func (f fakeCounter) CountDemographics(context.Context) (models.Demographics, error) {
	return f.demographics, f.err
}

// brokenTracker fails every call
type brokenTracker struct{}

var errUnreachable = errors.New("cache unreachable")

func (brokenTracker) MarkActive(context.Context, string) error   { return errUnreachable }
func (brokenTracker) MarkInactive(context.Context, string) error { return errUnreachable }
func (brokenTracker) ActiveCount(context.Context) (int64, error) { return 0, errUnreachable }
func (brokenTracker) RecordPost(context.Context, string) error   { return errUnreachable }
func (brokenTracker) TopPosters(context.Context, int64) ([]models.PosterRank, error) {
	return nil, errUnreachable
}

func newTestRenderer(t *testing.T) *views.Renderer {
	t.Helper()
	r, err := views.New()
	require.NoError(t, err)
	return r
}

func TestStatsShowDegradesWhenTrackerFails(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := NewStatsHandler(
		fakeCounter{demographics: models.Demographics{
			Total:   2,
			Races:   map[string]int{models.RaceElf: 2},
			Classes: map[string]int{models.ClassWizard: 1, models.ClassRanger: 1},
			Genders: map[string]int{models.GenderFemale: 2},
		}},
		stats.NewReporter(nil),
		brokenTracker{},
		newTestRenderer(t),
		zap.New(core),
	)

	rec := httptest.NewRecorder()
	h.Show(rec, httptest.NewRequest(http.MethodGet, "/stats/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Elf: 100.0% (2)")
	assert.Contains(t, body, "Wizard: 50.0% (1)")
	assert.Contains(t, body, "0 adventurers signed in.")
	assert.Equal(t, 2, logs.Len())
}

func TestStatsShowStoreFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := NewStatsHandler(fakeCounter{err: errors.New("disk on fire")}, stats.NewReporter(nil), nil, newTestRenderer(t), zap.New(core))

	rec := httptest.NewRecorder()
	h.Show(rec, httptest.NewRequest(http.MethodGet, "/stats/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "request failed", logs.All()[0].Message)
}
