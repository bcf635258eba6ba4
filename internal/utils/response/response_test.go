package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mongolearn/lessons-api/internal/odm"
	"github.com/mongolearn/lessons-api/internal/utils/response"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	err := response.WriteJSON(w, http.StatusCreated, map[string]string{"id": "abc"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "abc", got["id"])
}

func TestGeneralError(t *testing.T) {
	resp := response.GeneralError(errors.New("boom"))
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "boom", resp.Error)
}

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{odm.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", odm.ErrNotFound), http.StatusNotFound},
		{odm.ErrValidation, http.StatusBadRequest},
		{odm.ErrInvalidID, http.StatusBadRequest},
		{odm.ErrUnknownVirtual, http.StatusBadRequest},
		{odm.ErrDuplicate, http.StatusConflict},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, response.StatusFromError(tc.err), "error: %v", tc.err)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, response.WriteError(w, odm.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "document not found")
}
