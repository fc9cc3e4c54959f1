package dialog_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbnav/internal/syncer"
	"github.com/leapstack-labs/dbnav/internal/ui/features"
	"github.com/leapstack-labs/dbnav/internal/ui/features/dialog"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

func setup(t *testing.T) *features.TestFixture {
	t.Helper()
	return features.SetupTestFixture(t, func(r chi.Router, s *syncer.Syncer) error {
		return dialog.SetupRoutes(r, s.Store())
	})
}

func TestResolve(t *testing.T) {
	f := setup(t)
	var chosen []string
	require.NoError(t, f.Store.SetDialog(core.Dialog{
		Title:        "Pick",
		Options:      []string{"Left", "Right"},
		Actions:      []func(){func() { chosen = append(chosen, "left") }, func() { chosen = append(chosen, "right") }},
		ButtonStyles: []string{"", ""},
		Visible:      true,
	}))

	rec := f.Post("/api/dialog/1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"right"}, chosen)
	assert.False(t, f.Store.Dialog().Visible)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		open    bool
		wantErr string
	}{
		{"not a number", "/api/dialog/yes", true, "dialog option"},
		{"out of range", "/api/dialog/5", true, "out of range"},
		{"no dialog", "/api/dialog/0", false, "no dialog is open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			if tt.open {
				require.NoError(t, f.Store.SetDialog(core.Dialog{
					Options:      []string{"OK"},
					Actions:      []func(){nil},
					ButtonStyles: []string{""},
					Visible:      true,
				}))
			}

			rec := f.Post(tt.path, nil)

			assert.Contains(t, rec.Body.String(), tt.wantErr)
			assert.Equal(t, tt.open, f.Store.Dialog().Visible)
		})
	}
}
