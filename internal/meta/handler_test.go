package meta_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/meta"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/metrics"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthBody struct {
	Status string `json:"status"`
	Checks struct {
		Database struct {
			Status string `json:"status"`
			Driver string `json:"driver"`
			Error  string `json:"error"`
		} `json:"database"`
	} `json:"checks"`
}

func TestHealth(t *testing.T) {
	// Given: Open pool
	cfg := testutil.NewTestConfig()
	pool := testutil.SetupTestDB(t)
	h := meta.NewHandler(cfg, pool, nil)

	router := testutil.SetupTestRouter()
	router.GET("/health", h.Health)

	// When: Healthy
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)
	var body healthBody
	testutil.ParseResponse(t, recorder, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "up", body.Checks.Database.Status)
	assert.Equal(t, "sqlite", body.Checks.Database.Driver)

	// When: The pool has been closed
	require.NoError(t, pool.Close())
	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	// Then: 503 with the reason
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	body = healthBody{}
	testutil.ParseResponse(t, recorder, &body)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "down", body.Checks.Database.Status)
	assert.NotEmpty(t, body.Checks.Database.Error)
}

func TestMetricsEndpoint(t *testing.T) {
	// Given: Metrics with pool stats registered
	cfg := testutil.NewTestConfig()
	pool := testutil.SetupTestDB(t)
	m := metrics.New("meta_test")
	require.NoError(t, m.RegisterDB(pool.SQLDB(), pool.Driver()))
	m.Observe("company", "save", time.Now(), nil)

	router := testutil.SetupTestRouter()
	router.GET("/metrics", meta.NewHandler(cfg, pool, m).Metrics())

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/metrics"})

	// Then: Prometheus text exposition with repository and pool series
	require.Equal(t, http.StatusOK, recorder.Code)
	text := recorder.Body.String()
	assert.Contains(t, text, `meta_test_repository_operations_total{entity="company",op="save",result="ok"} 1`)
	assert.Contains(t, text, "go_sql_max_open_connections")
}

func TestMetrics_DisabledIsNil(t *testing.T) {
	h := meta.NewHandler(testutil.NewTestConfig(), nil, nil)
	assert.Nil(t, h.Metrics())
}
