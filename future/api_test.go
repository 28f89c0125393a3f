package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltfishpr/async/future/executors"
)

func TestAsync(t *testing.T) {
	f := Async(func() (int, error) {
		return 42, nil
	})

	val, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}

func TestAsync_Error(t *testing.T) {
	wantErr := errors.New("boom")

	f := Async(func() (int, error) {
		return 0, wantErr
	})

	_, err := f.Get()
	assert.ErrorIs(t, err, wantErr)
}

func TestSubmit_RecoversPanic(t *testing.T) {
	f := Submit(executors.GoExecutor{}, func() (int, error) {
		panic("boom")
	})

	_, err := f.Get()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "boom")
}

func TestCtxSubmit(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "payload")

	f := CtxSubmit(ctx, executors.GoExecutor{}, func(ctx context.Context) (string, error) {
		return ctx.Value(key{}).(string), nil
	})

	val, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "payload", val)
}

func TestDone2(t *testing.T) {
	wantErr := errors.New("boom")

	f := Done2("v", wantErr)
	require.True(t, f.IsDone())

	val, err := f.Get()
	assert.Equal(t, "v", val)
	assert.ErrorIs(t, err, wantErr)
}

func TestAwait(t *testing.T) {
	val, err := Await(Done("now"))
	require.NoError(t, err)
	assert.Equal(t, "now", val)
}

func TestThen(t *testing.T) {
	f := Then(Done(10), func(val int, err error) (string, error) {
		if err != nil {
			return "", err
		}
		return "n=10", nil
	})

	val, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "n=10", val)
}

func TestThen_PropagatesError(t *testing.T) {
	wantErr := errors.New("boom")

	f := Then(Done2(0, wantErr), func(val int, err error) (int, error) {
		return val, err
	})

	_, err := f.Get()
	assert.ErrorIs(t, err, wantErr)
}

func TestTimeout_Expires(t *testing.T) {
	p := NewPromise[string]()

	f := Timeout(p.Future(), 10*time.Millisecond)
	_, err := f.Get()
	assert.ErrorIs(t, err, ErrTimeout)

	// The original future is unaffected and can still resolve.
	p.Set("late", nil)
	val, err := p.Future().Get()
	require.NoError(t, err)
	assert.Equal(t, "late", val)
}

func TestTimeout_CompletesFirst(t *testing.T) {
	p := NewPromise[string]()
	f := Timeout(p.Future(), time.Minute)

	p.Set("fast", nil)

	val, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "fast", val)
}

func TestUntil_DeadlineInPast(t *testing.T) {
	p := NewPromise[int]()

	f := Until(p.Future(), time.Now().Add(-time.Second))
	_, err := f.Get()
	assert.ErrorIs(t, err, ErrTimeout)

	p.Set(0, nil)
}

func TestWithContext_Canceled(t *testing.T) {
	p := NewPromise[int]()
	ctx, cancel := context.WithCancel(context.Background())

	f := WithContext(ctx, p.Future())
	cancel()

	_, err := f.Get()
	assert.ErrorIs(t, err, context.Canceled)

	p.Set(0, nil)
}

func TestWithContext_Resolves(t *testing.T) {
	p := NewPromise[int]()
	f := WithContext(context.Background(), p.Future())

	p.Set(5, nil)

	val, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 5, val)
}

func TestAllOf(t *testing.T) {
	f1 := Done(1)
	f2 := Async(func() (int, error) { return 2, nil })
	f3 := Done(3)

	vals, err := AllOf(f1, f2, f3).Get()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, vals)
}

func TestAllOf_FailsFast(t *testing.T) {
	wantErr := errors.New("boom")

	pending := NewPromise[int]()
	f := AllOf(Done(1), Done2(0, wantErr), pending.Future())

	_, err := f.Get()
	assert.ErrorIs(t, err, wantErr)

	pending.Set(3, nil)
}

func TestAllOf_Empty(t *testing.T) {
	f := AllOf[int]()
	require.True(t, f.IsDone())

	vals, err := f.Get()
	require.NoError(t, err)
	assert.Empty(t, vals)
}
