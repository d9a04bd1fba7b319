package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/llm"
)

func TestRoleID_InvalidSegments(t *testing.T) {
	s := &Server{}

	for _, segment := range []string{"abc", "0", "-3", "1.5"} {
		t.Run(segment, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/roles/"+segment+"/match", nil)
			req.SetPathValue("id", segment)
			recorder := httptest.NewRecorder()

			id := s.roleID(recorder, req)
			assert.Equal(t, 0, id)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestRoleID_Valid(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest("POST", "/roles/42/match", nil)
	req.SetPathValue("id", "42")
	recorder := httptest.NewRecorder()

	assert.Equal(t, 42, s.roleID(recorder, req))
}

func TestDecodeMatchRequest(t *testing.T) {
	req := httptest.NewRequest("POST", "/roles/1/match", strings.NewReader(`{"model":"lite"}`))
	decoded, err := decodeMatchRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "lite", decoded.Model)
}

func TestDecodeMatchRequest_EmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/roles/1/match", nil)
	decoded, err := decodeMatchRequest(req)
	require.NoError(t, err)
	assert.Empty(t, decoded.Model)
}

func TestDecodeMatchRequest_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/roles/1/match", strings.NewReader(`{bad`))
	_, err := decodeMatchRequest(req)
	assert.Error(t, err)
}

func TestMatchOptions_TierSelection(t *testing.T) {
	s := &Server{tier: llm.TierAdvanced}

	opts, err := s.matchOptions(7, matchRequest{})
	require.NoError(t, err)
	assert.Equal(t, llm.TierAdvanced, opts.Tier)
	assert.Equal(t, 7, opts.RoleID)

	opts, err = s.matchOptions(7, matchRequest{Model: "lite"})
	require.NoError(t, err)
	assert.Equal(t, llm.TierLite, opts.Tier)

	opts, err = s.matchOptions(7, matchRequest{Model: "standard"})
	require.NoError(t, err)
	assert.Equal(t, llm.TierStandard, opts.Tier)

	_, err = s.matchOptions(7, matchRequest{Model: "enormous"})
	assert.Error(t, err)
}
