package shared

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var traceIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Regexp(t, traceIDPattern, id)

	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, id, other)
}

func TestGetTraceID_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 42)
	assert.Empty(t, GetTraceID(ctx))
}
