package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermitBoundsConcurrency(t *testing.T) {
	p := NewPermit(2)

	require.NoError(t, p.Acquire(context.Background()))
	require.NoError(t, p.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Acquire(ctx)
	assert.Error(t, err, "a third acquire must block once capacity is exhausted")

	p.Release()
	require.NoError(t, p.Acquire(context.Background()), "a release must free a slot for a new acquire")
}
