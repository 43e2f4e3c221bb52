package otel_test

import (
	"booktable/infras/otel/mocks"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func TestScope_TraceIfError(t *testing.T) {
	rec := mocks.NewOtel()

	func() (err error) {
		_, scope := rec.NewScope(context.Background(), "service", "service.ok")
		defer scope.End()
		defer func() { scope.TraceIfError(err) }()

		return nil
	}()

	func() {
		_, scope := rec.NewScope(context.Background(), "service", "service.failed")
		defer scope.End()

		scope.TraceError(errors.New("boom"))
	}()

	require.Len(t, rec.Ended(), 2)
	assert.Equal(t, []string{"service.failed"}, rec.Failed())

	failed := rec.Ended()[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Equal(t, "boom", failed.Status().Description)
	require.Len(t, failed.Events(), 1)
	assert.Equal(t, "exception", failed.Events()[0].Name)
}

func TestScope_SetAttributes(t *testing.T) {
	rec := mocks.NewOtel()
	at := time.Date(2025, 4, 11, 19, 0, 0, 0, time.UTC)

	_, scope := rec.NewScope(context.Background(), "repository", "repository.restaurant.Get")
	scope.SetAttribute("query", "SELECT 1")
	scope.SetAttributes(map[string]any{
		"approved": true,
		"people":   4,
		"rating":   4.5,
		"times":    []string{"19:00", "20:00"},
		"at":       at,
		"other":    struct{ N int }{N: 1},
	})
	scope.AddEvent("loaded")
	scope.End()

	require.Len(t, rec.Ended(), 1)

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range rec.Ended()[0].Attributes() {
		got[kv.Key] = kv.Value
	}

	assert.Equal(t, "SELECT 1", got["query"].AsString())
	assert.True(t, got["approved"].AsBool())
	assert.Equal(t, int64(4), got["people"].AsInt64())
	assert.InDelta(t, 4.5, got["rating"].AsFloat64(), 0.0001)
	assert.Equal(t, []string{"19:00", "20:00"}, got["times"].AsStringSlice())
	assert.Equal(t, "2025-04-11T19:00:00Z", got["at"].AsString())
	assert.Equal(t, "{1}", got["other"].AsString())
	assert.Equal(t, "loaded", rec.Ended()[0].Events()[0].Name)
	assert.Empty(t, rec.Failed())
}
