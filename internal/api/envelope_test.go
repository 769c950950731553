package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
)

func TestEnvelopeTransformer_WrapsSuccess(t *testing.T) {
	body := AuthorResponse{ID: "a", Name: "Vladimir Lenin"}

	got, err := EnvelopeTransformer(nil, "200", body)

	require.NoError(t, err)
	assert.Equal(t, SuccessEnvelope{Info: body}, got)
}

func TestEnvelopeTransformer_NilBecomesEmptyObject(t *testing.T) {
	got, err := EnvelopeTransformer(nil, "200", nil)

	require.NoError(t, err)
	assert.Equal(t, SuccessEnvelope{Info: struct{}{}}, got)
}

func TestEnvelopeTransformer_RendersAPIError(t *testing.T) {
	apiErr := toAPIError(domainerrors.ValidationWithDetails("validation failed", map[string]string{"name": "is required"}))

	got, err := EnvelopeTransformer(nil, "400", apiErr)

	require.NoError(t, err)
	env, ok := got.(ErrorEnvelope)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, "validation failed", env.Error)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Equal(t, map[string]string{"name": "is required"}, env.Details)
}

func TestEnvelopeTransformer_LeavesEnvelopesAlone(t *testing.T) {
	already := ErrorEnvelope{Error: "x"}

	got, err := EnvelopeTransformer(nil, "500", already)

	require.NoError(t, err)
	assert.Equal(t, already, got)
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domainerrors.Validation("bad"), http.StatusBadRequest, "VALIDATION"},
		{"not found", domainerrors.NotFound("gone"), http.StatusBadRequest, "NOT_FOUND"},
		{"authentication", domainerrors.Authentication("who"), http.StatusUnauthorized, "AUTHENTICATION"},
		{"authorization", domainerrors.Authorization("not yours"), http.StatusUnauthorized, "AUTHORIZATION"},
		{"referential integrity", domainerrors.ReferentialIntegrity("in use"), http.StatusForbidden, "REFERENTIAL_INTEGRITY"},
		{"storage", domainerrors.Storage("disk"), http.StatusInternalServerError, "STORAGE"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "STORAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := toAPIError(tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.GetStatus())
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestToAPIError_StorageHidesCause(t *testing.T) {
	apiErr := toAPIError(domainerrors.Wrap(errors.New("database is locked"), domainerrors.CodeStorage, "insert author"))

	assert.NotContains(t, apiErr.Message, "locked")
}
