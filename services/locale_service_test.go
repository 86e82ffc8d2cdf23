package services

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func TestTranslator_LoadsJSONAndYAMLWithFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"cart":{"empty":"Your cart is empty","title":"Cart"}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "id.yaml"), []byte("cart:\n  empty: Keranjang kosong\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	tr, err := LoadTranslator(dir, "en")
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "id"}, tr.Languages())
	assert.Equal(t, "Keranjang kosong", tr.T("id", "cart.empty"))
	assert.Equal(t, "Cart", tr.T("id", "cart.title"))
	assert.Equal(t, "missing.key", tr.T("id", "missing.key"))
	assert.Equal(t, "def", tr.Message("fr", "nope", "def"))
}

func TestTranslator_MissingDirIsEmpty(t *testing.T) {
	tr, err := LoadTranslator(filepath.Join(t.TempDir(), "absent"), "en")
	require.NoError(t, err)
	assert.Empty(t, tr.Languages())
}

func TestErrorMessage(t *testing.T) {
	tr := NewTranslator("en")
	require.NoError(t, tr.AddBundle("en", ".json", []byte(`{"errors":{"notFound":"Nothing here"}}`)))

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"network", &models.NetworkError{Op: "GET /x", Err: errors.New("dial")}, "Network error. Please check your connection."},
		{"server message wins", &models.APIError{Status: 400, Data: models.ErrorBody{Message: "Email taken", Title: "Bad"}}, "Email taken"},
		{"title next", &models.APIError{Status: 400, Data: models.ErrorBody{Title: "One or more validation errors occurred."}}, "One or more validation errors occurred."},
		{"unauthorized", &models.APIError{Status: http.StatusUnauthorized}, "Unauthorized. Please log in again."},
		{"forbidden", &models.APIError{Status: http.StatusForbidden}, "You do not have permission to perform this action."},
		{"localized not found", &models.APIError{Status: http.StatusNotFound}, "Nothing here"},
		{"server", &models.APIError{Status: http.StatusInternalServerError}, "Server error. Please try again later."},
		{"other status", &models.APIError{Status: 418}, "Something went wrong. Please try again. (418)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorMessage(tr, "en", tc.err))
		})
	}

	alert := ErrorAlert(tr, "en", &models.APIError{Status: 500})
	assert.Equal(t, models.AlertError, alert.Kind)
	assert.Equal(t, models.BannerDuration.Milliseconds(), alert.DismissAfterMS)
}
