package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryDate(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?from=2024-05-01&bad=01/05/2024", nil)

	d, err := QueryDate(r, "from")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2024-05-01", d.Format(DateLayout))

	d, err = QueryDate(r, "to")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = QueryDate(r, "bad")
	assert.Error(t, err)
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=20&neg=-1&word=ten", nil)

	n, err := QueryInt(r, "limit", 0)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = QueryInt(r, "offset", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = QueryInt(r, "neg", 0)
	assert.Error(t, err)
	_, err = QueryInt(r, "word", 0)
	assert.Error(t, err)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	assert.NoError(t, DecodeJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Error(t, DecodeJSON(strings.NewReader(`{"a":1,"b":2}`), &v))
}

func TestHttpError(t *testing.T) {
	w := httptest.NewRecorder()
	HttpError(w, http.StatusTeapot, "nope")

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"nope"}`, w.Body.String())
}
