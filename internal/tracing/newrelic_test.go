package tracing

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"example.com/fleet/services/rental/config"
)

func TestNoopTracerIsSafe(t *testing.T) {
	tracer := NewNoopTracer()

	txn := tracer.StartTransaction("GET /api/v1/rentals")
	require.Nil(t, txn)

	// A nil transaction must not panic any of the instrumentation hooks
	require.NotPanics(t, func() {
		segment := tracer.StartSpan("repository.List", txn)
		require.NotNil(t, segment)
		tracer.AddAttribute(txn, "request_id", "abc-123")
		tracer.RecordError(txn, errors.New("boom"))
		tracer.EndTransaction(txn)
		tracer.Close()
	})
}

func TestNewTracerWithoutLicenseKeyIsDisabled(t *testing.T) {
	tracer, err := NewTracer(config.TracingConfig{})
	require.NoError(t, err)
	require.NotNil(t, tracer)

	require.Nil(t, tracer.StartTransaction("GET /health"))
}
