package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(23, 3, 10)

	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 20, meta.Offset)
	assert.Equal(t, uint64(23), meta.TotalCount)
}

func TestNewPaginationMeta_ZeroLimit(t *testing.T) {
	meta := NewPaginationMeta(5, 1, 0)

	assert.Zero(t, meta.TotalPages)
	assert.Zero(t, meta.Offset)
}

func TestSuccessList_NilListIsEmptyArray(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, SuccessList[string](c, "ok", nil, 0, 1, 10))

	var body struct {
		Status bool `json:"status"`
		Body   struct {
			List []string `json:"list"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Status)
	assert.NotNil(t, body.Body.List)
	assert.Contains(t, rec.Body.String(), `"list":[]`)
}
