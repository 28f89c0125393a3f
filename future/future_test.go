package future

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPromise_SetAndGet(t *testing.T) {
	p := NewPromise[string]()
	p.Set("value", nil)

	val, err := p.Future().Get()
	require.NoError(t, err)
	assert.Equal(t, "value", val)
}

func TestPromise_SetError(t *testing.T) {
	wantErr := errors.New("boom")

	p := NewPromise[string]()
	p.Set("", wantErr)

	_, err := p.Future().Get()
	assert.ErrorIs(t, err, wantErr)
}

func TestPromise_Set_AlreadySatisfied(t *testing.T) {
	p := NewPromise[int]()
	p.Set(1, nil)

	assert.Panics(t, func() {
		p.Set(2, nil)
	})
}

func TestPromise_SetSafety(t *testing.T) {
	p := NewPromise[int]()

	assert.True(t, p.SetSafety(1, nil))
	assert.False(t, p.SetSafety(2, nil))

	val, err := p.Future().Get()
	require.NoError(t, err)
	assert.Equal(t, 1, val)
}

func TestPromise_IsFree(t *testing.T) {
	p := NewPromise[int]()
	assert.True(t, p.IsFree())

	p.Set(1, nil)
	assert.False(t, p.IsFree())
}

func TestFuture_Get_BlocksUntilSet(t *testing.T) {
	p := NewPromise[int]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Set(42, nil)
	}()

	val, err := p.Future().Get()
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}

func TestFuture_Done(t *testing.T) {
	p := NewPromise[int]()
	f := p.Future()

	select {
	case <-f.Done():
		t.Fatal("done channel closed before Set")
	default:
	}

	p.Set(1, nil)

	select {
	case <-f.Done():
	default:
		t.Fatal("done channel not closed after Set")
	}
}

func TestFuture_IsDone(t *testing.T) {
	p := NewPromise[int]()
	f := p.Future()
	assert.False(t, f.IsDone())

	p.Set(1, nil)
	assert.True(t, f.IsDone())
}

func TestFuture_Subscribe_RunsOnResolve(t *testing.T) {
	p := NewPromise[string]()
	f := p.Future()

	var got []string
	f.Subscribe(func(val string, err error) {
		got = append(got, "a:"+val)
	})
	f.Subscribe(func(val string, err error) {
		got = append(got, "b:"+val)
	})

	// Callbacks run synchronously inside Set, in subscription order.
	p.Set("x", nil)
	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestFuture_Subscribe_AlreadyResolved(t *testing.T) {
	p := NewPromise[int]()
	p.Set(7, nil)

	calls := 0
	p.Future().Subscribe(func(val int, err error) {
		calls++
		assert.Equal(t, 7, val)
		assert.NoError(t, err)
	})
	assert.Equal(t, 1, calls)
}

func TestFuture_Subscribe_ReceivesError(t *testing.T) {
	wantErr := errors.New("boom")

	p := NewPromise[int]()
	var gotErr error
	p.Future().Subscribe(func(val int, err error) {
		gotErr = err
	})

	p.Set(0, wantErr)
	assert.ErrorIs(t, gotErr, wantErr)
}
