package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{err: nil, want: ResultOK},
		{err: &sharedError.NotFoundError{Entity: "company", ID: "x"}, want: ResultNotFound},
		{err: &sharedError.ConflictError{Entity: "company", Key: "code"}, want: ResultAlreadyExists},
		{err: &sharedError.ReferenceError{Parent: "company"}, want: ResultInvalidReference},
		{err: &sharedError.StateError{Current: "inactive", Target: "inactive"}, want: ResultAlreadyInTargetState},
		{err: &sharedError.StateError{Current: "completed", Target: "cancelled"}, want: ResultInvalidTransition},
		{err: &sharedError.UnavailableError{}, want: ResultUnavailable},
		{err: fmt.Errorf("service: %w", &sharedError.NotFoundError{}), want: ResultNotFound},
		{err: sharedError.NewPersistenceError("boom", nil), want: ResultError},
		{err: errors.New("plain"), want: ResultError},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, Result(tc.err))
		})
	}
}

func TestObserve(t *testing.T) {
	// Given: Fresh collectors
	m := New("test")

	// When: Two operations finish
	m.Observe("company", "save", time.Now(), nil)
	m.Observe("company", "save", time.Now(), &sharedError.ConflictError{})

	// Then: One count per result, latency per operation
	assert.Equal(t, float64(1), promtestutil.ToFloat64(m.operations.WithLabelValues("company", "save", ResultOK)))
	assert.Equal(t, float64(1), promtestutil.ToFloat64(m.operations.WithLabelValues("company", "save", ResultAlreadyExists)))
	assert.Equal(t, 1, promtestutil.CollectAndCount(m.latency))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() { m.Observe("company", "save", time.Now(), nil) })
	assert.Nil(t, m.Registry())
	require.NoError(t, m.RegisterDB(nil, "sqlite"))
}
