package presentation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/velocity-express/internal/application"
	"github.com/RaikyD/velocity-express/internal/domain"
	"github.com/RaikyD/velocity-express/internal/fixtures"
	"github.com/RaikyD/velocity-express/internal/pricing"
	"github.com/RaikyD/velocity-express/internal/repository"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mem := repository.NewMemoryStore()
	set, err := fixtures.Load()
	require.NoError(t, err)
	require.NoError(t, fixtures.Seed(context.Background(), set, mem, mem))

	h := NewRouter(
		application.NewShipmentsService(mem, nil, nil),
		application.NewTariffsService(mem, nil),
		pricing.NewEstimator(pricing.DefaultRates),
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ActorHeader, "tester")

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, b
}

type listBody struct {
	Items []domain.Shipment `json:"items"`
	Total int               `json:"total"`
}

func TestListShipments(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		query string
		total int
		first string
	}{
		{"all", "", 10, "VCX1000001"},
		{"status delivered", "?status=delivered", 3, "VCX1000001"},
		{"status all", "?status=all", 10, "VCX1000001"},
		{"search destination", "?q=bandung", 2, "VCX1000001"},
		{"date range", "?from=2024-05-03&to=2024-05-04", 2, "VCX1000003"},
		{"inverted range", "?from=2024-05-09&to=2024-05-01", 0, ""},
		{"sorted by cost desc", "?sort=cost&dir=desc", 10, "VCX1000009"},
		{"paged", "?sort=created_at&limit=2&offset=8", 10, "VCX1000009"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := do(t, srv, http.MethodGet, "/api/shipments"+tt.query, "")
			require.Equal(t, http.StatusOK, res.StatusCode, string(body))

			var got listBody
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.total, got.Total)
			if tt.first != "" {
				require.NotEmpty(t, got.Items)
				assert.Equal(t, tt.first, got.Items[0].TrackingNumber)
			} else {
				assert.Empty(t, got.Items)
			}
		})
	}
}

func TestListShipments_BadRequest(t *testing.T) {
	srv := newTestServer(t)

	for _, q := range []string{"?status=lost", "?from=05-01-2024", "?sort=colour", "?dir=sideways", "?limit=-1"} {
		res, body := do(t, srv, http.MethodGet, "/api/shipments"+q, "")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "%s: %s", q, body)
	}
}

func TestShipmentLifecycle(t *testing.T) {
	srv := newTestServer(t)

	res, body := do(t, srv, http.MethodPost, "/api/shipments", `{
		"tracking_number": "VCX2000001", "status": "pending", "service": "express",
		"recipient_name": "Tono", "destination": "Bogor", "weight_kg": 2.5, "cost": 30000
	}`)
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))

	res, _ = do(t, srv, http.MethodPost, "/api/shipments", `{
		"tracking_number": "VCX2000001", "status": "pending", "service": "express", "weight_kg": 1
	}`)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, _ = do(t, srv, http.MethodPost, "/api/shipments", `{"tracking_number": "X", "status": "lost"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = do(t, srv, http.MethodPatch, "/api/shipments/VCX2000001/status", `{"status":"in_transit"}`)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	res, body = do(t, srv, http.MethodGet, "/api/shipments/VCX2000001", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var sh domain.Shipment
	require.NoError(t, json.Unmarshal(body, &sh))
	assert.Equal(t, domain.StatusInTransit, sh.Status)
	assert.False(t, sh.CreatedAt.IsZero())

	res, _ = do(t, srv, http.MethodGet, "/api/shipments/NOPE", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = do(t, srv, http.MethodPatch, "/api/shipments/NOPE/status", `{"status":"delivered"}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGenerateShipments(t *testing.T) {
	srv := newTestServer(t)

	res, body := do(t, srv, http.MethodPost, "/api/shipments/generate?count=3", "")
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var got struct {
		Created []string `json:"created_trackings"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Len(t, got.Created, 3)
}

func TestEstimate(t *testing.T) {
	srv := newTestServer(t)

	res, body := do(t, srv, http.MethodPost, "/api/estimate", `{
		"type": "electronics", "weight_kg": 1, "length_cm": 100, "width_cm": 100, "height_cm": 100,
		"declared_value": 1000000, "fragile": true
	}`)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	var est pricing.Estimate
	require.NoError(t, json.Unmarshal(body, &est))
	assert.InDelta(t, 6_005_000, est.Total, 1e-6)

	res, _ = do(t, srv, http.MethodPost, "/api/estimate", `{"weight_kg": 0}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = do(t, srv, http.MethodPost, "/api/estimate", `{"weight_kg": 1, "colour": "red"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestTariffs(t *testing.T) {
	srv := newTestServer(t)

	res, body := do(t, srv, http.MethodGet, "/api/tariffs?sort=price_per_kg&dir=desc", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list []domain.Tariff
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 3)
	assert.Equal(t, "Drone", list[0].Name)

	res, body = do(t, srv, http.MethodPost, "/api/tariffs", `{"name":"Same Day","service":"express","base_price":20000,"price_per_kg":10000}`)
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
	var created domain.Tariff
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "tester", created.UpdatedBy)

	res, body = do(t, srv, http.MethodPut, "/api/tariffs/"+created.ID.String(), `{"name":"Same Day","service":"express","base_price":22000,"price_per_kg":10000}`)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	res, body = do(t, srv, http.MethodGet, "/api/tariffs/history?tariff_id="+created.ID.String(), "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var hist []domain.RateChange
	require.NoError(t, json.Unmarshal(body, &hist))
	require.Len(t, hist, 1)
	assert.Equal(t, int64(20000), hist[0].OldPrice)
	assert.Equal(t, int64(22000), hist[0].NewPrice)
	assert.Equal(t, "tester", hist[0].ChangedBy)

	res, _ = do(t, srv, http.MethodDelete, "/api/tariffs/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	res, _ = do(t, srv, http.MethodDelete, "/api/tariffs/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = do(t, srv, http.MethodPut, "/api/tariffs/not-a-uuid", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = do(t, srv, http.MethodPost, "/api/tariffs", `{"name":"","service":"express"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestStaticAndHealth(t *testing.T) {
	srv := newTestServer(t)

	res, body := do(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "VeloCity Express")

	res, _ = do(t, srv, http.MethodGet, "/static/app.js", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = do(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestCreateShipment_Multipart(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "shipment.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte(`{"tracking_number":"VCX3000001","status":"pending","service":"drone","weight_kg":0.3}`))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	res, err := srv.Client().Post(srv.URL+"/api/shipments", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, err = srv.Client().Post(srv.URL+"/api/shipments", "application/xml", strings.NewReader("<x/>"))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
}
