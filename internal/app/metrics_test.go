package app

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountPropagations(t *testing.T) {
	s := newTestService()
	path := writeSession(t, s, singleCircuitDocument())

	_, err := s.Resolve(context.Background(), ResolveRequest{SessionPath: path})
	require.NoError(t, err)
	_, err = s.Inspect(context.Background(), InspectRequest{SessionPath: path})
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.Metrics.PropagationRuns))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.Metrics.PropagationConflicts))
	assert.Positive(t, testutil.ToFloat64(s.Metrics.PropagationPasses))
}
