// internal/api/api_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsintel/chainsight/internal/cache"
	"github.com/opsintel/chainsight/internal/service"
)

const testCSV = `Supplier,Product,Warehouse Location,Logistics Partner,Shipping Method,Unit Price,Quantity,Total Cost,Delivery Date,Delivery Status
Acme,Widget,NYC,FastShip,Air,10.00,10,100.00,2024-06-10,Delivered
Bolt,Gadget,LAX,SlowBoat,Sea,20.00,5,100.00,2024-06-12,Delayed
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0644))

	insights := service.NewInsightService(path, cache.NewNoopSnapshotCache(),
		service.WithClock(func() time.Time {
			return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
		}))
	uploads := service.NewUploadService(t.TempDir(), insights)

	return NewRouter(&Services{Insights: insights, Uploads: uploads}, nil)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestInsightEndpoints(t *testing.T) {
	router := newTestRouter(t)

	paths := []string{
		"/api/v1/insights/overview",
		"/api/v1/insights/risk",
		"/api/v1/insights/performance",
		"/api/v1/insights/inventory",
		"/api/v1/insights/cost",
		"/api/v1/insights/recommendations",
		"/api/v1/insights/snapshot",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestOverviewPayload(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/insights/overview", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Counts struct {
			Suppliers int `json:"total_suppliers"`
		} `json:"counts"`
		RiskLevel string `json:"risk_level"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, 2, payload.Counts.Suppliers)
	// One of two orders is delayed: 50% at risk.
	assert.Equal(t, "high", payload.RiskLevel)
}

func TestUploadRejectsUnknownFormat(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/dataset/upload", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	parsed, allowAll := normalizeAllowedOrigins([]string{"http://a.com, http://b.com", " "})
	assert.False(t, allowAll)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, parsed)

	_, allowAll = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, allowAll)
}
