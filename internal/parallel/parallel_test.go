package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFor_VisitsAll(t *testing.T) {
	const n = 100
	var seen [n]atomic.Int32

	err := For(context.Background(), n, func(_ context.Context, i int) error {
		seen[i].Add(1)
		return nil
	}, Config{NumWorkers: 4})

	assert.NoError(t, err)
	for i := range seen {
		assert.Equal(t, int32(1), seen[i].Load(), "item %d", i)
	}
}

func TestFor_RespectsLimit(t *testing.T) {
	var running, peak atomic.Int32

	err := For(context.Background(), 50, func(_ context.Context, _ int) error {
		cur := running.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		running.Add(-1)
		return nil
	}, Config{NumWorkers: 3})

	assert.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestFor_FirstError(t *testing.T) {
	boom := errors.New("boom")
	err := For(context.Background(), 10, func(_ context.Context, i int) error {
		if i == 3 {
			return boom
		}
		return nil
	}, Config{NumWorkers: 1})

	assert.ErrorIs(t, err, boom)
}

func TestFor_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := For(ctx, 10, func(_ context.Context, _ int) error {
		calls.Add(1)
		return nil
	}, DefaultConfig())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFor_Empty(t *testing.T) {
	assert.NoError(t, For(context.Background(), 0, nil, DefaultConfig()))
}
