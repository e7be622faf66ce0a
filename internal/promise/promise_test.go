package promise

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTest = errors.New("test error")

func TestFuture(t *testing.T) {
	t.Run("complete then get", func(t *testing.T) {
		f := New[int]()
		f.Complete(15)

		v, err := f.Get()
		require.NoError(t, err)
		assert.Equal(t, 15, v)
	})

	t.Run("error then get", func(t *testing.T) {
		f := New[string]()
		f.Error(errTest)

		v, err := f.Get()
		require.ErrorIs(t, err, errTest)
		assert.Empty(t, v)
	})

	t.Run("only the first settle counts", func(t *testing.T) {
		f := New[int]()
		f.Complete(1)
		f.Complete(2)
		f.Error(errTest)

		v, err := f.Get()
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("get replays the cached result", func(t *testing.T) {
		f := New[int]()
		f.Error(errTest)

		for range 3 {
			_, err := f.Get()
			assert.ErrorIs(t, err, errTest)
		}
	})

	t.Run("get blocks until settled", func(t *testing.T) {
		f := New[int]()
		go func() {
			time.Sleep(20 * time.Millisecond)
			f.Complete(7)
		}()

		start := time.Now()
		v, err := f.Get()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("concurrent getters see the same value", func(t *testing.T) {
		f := New[int]()
		var wg sync.WaitGroup
		results := make([]int, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := f.Get()
				assert.NoError(t, err)
				results[i] = v
			}()
		}
		f.Complete(99)
		wg.Wait()

		for _, v := range results {
			assert.Equal(t, 99, v)
		}
	})

	t.Run("settling without a reader does not block", func(t *testing.T) {
		f := New[int]()
		assert.NotPanics(t, func() {
			f.Complete(3)
		})
	})
}
