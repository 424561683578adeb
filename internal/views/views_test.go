package views

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	CurrentUser *struct{ Username string }
	Error       string
}

func TestRenderAllPagesParse(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{"index", "users", "profile", "quests", "posts", "add_quest", "login", "signup", "stats", "404", "500"} {
		_, ok := r.pages[name]
		assert.True(t, ok, name)
	}
}

func TestRenderWritesStatusAndError(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusNotFound, "404", page{Error: "<lost>"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "&lt;lost&gt;")
	assert.Contains(t, rec.Body.String(), "Log in")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.Error(t, r.Render(rec, http.StatusOK, "dragon", nil))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestRenderFailureWritesNothing(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	// users.html needs .Usernames, which this value lacks
	assert.Error(t, r.Render(rec, http.StatusOK, "users", page{}))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestChartURIOnlyTrustsSVGDataURIs(t *testing.T) {
	chartURI := funcs["chartURI"].(func(string) template.URL)

	assert.Equal(t, template.URL("data:image/svg+xml;base64,AAAA"), chartURI("data:image/svg+xml;base64,AAAA"))
	assert.Equal(t, template.URL(""), chartURI("javascript:alert(1)"))
}
