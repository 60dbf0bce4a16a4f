package round

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/neo/botspotter_backend/internal/comments"
	"github.com/neo/botspotter_backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastBatch(ctx context.Context) ([]comments.Comment, error) {
	return []comments.Comment{
		{ID: "bot-0", Source: types.SourceGeneratedBot, IsBotted: true},
	}, nil
}

func TestLoadWaitsForMinimumDelay(t *testing.T) {
	start := time.Now()
	p := Load(context.Background(), 100*time.Millisecond, fastBatch)

	batch, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, batch)
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond,
		"fast generation must still wait out the display delay")
	assert.Equal(t, LoadReady, p.State())
}

func TestLoadWaitsForSlowGeneration(t *testing.T) {
	slow := func(ctx context.Context) ([]comments.Comment, error) {
		time.Sleep(200 * time.Millisecond)
		return fastBatch(ctx)
	}

	start := time.Now()
	p := Load(context.Background(), 20*time.Millisecond, slow)

	// After the delay but before generation finishes, clients see the
	// "still working" state.
	assert.Eventually(t, func() bool {
		return p.State() == LoadStillWorking
	}, 150*time.Millisecond, 5*time.Millisecond)

	batch, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, batch)
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
	assert.Equal(t, LoadReady, p.State())
}

func TestLoadCancellationDiscardsLateResult(t *testing.T) {
	generated := make(chan struct{})
	slow := func(ctx context.Context) ([]comments.Comment, error) {
		<-generated
		return fastBatch(ctx)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := Load(ctx, 10*time.Millisecond, slow)

	cancel()
	_, err := p.Wait(context.Background())
	assert.Error(t, err)
	assert.Equal(t, LoadCanceled, p.State())

	// The stale generation completing later must not flip the state.
	close(generated)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, LoadCanceled, p.State())
}

func TestLoadGenerationError(t *testing.T) {
	failing := func(ctx context.Context) ([]comments.Comment, error) {
		return nil, fmt.Errorf("provider exploded")
	}

	p := Load(context.Background(), 10*time.Millisecond, failing)
	_, err := p.Wait(context.Background())
	assert.Error(t, err)
}

func TestWaitHonorsCallerContext(t *testing.T) {
	never := func(ctx context.Context) ([]comments.Comment, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	p := Load(context.Background(), time.Millisecond, never)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := p.Wait(ctx)
	assert.Error(t, err)
}
