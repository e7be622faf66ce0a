package spindle

import (
	"sync"
	"testing"
	"time"

	"github.com/casualjim/spindle/internal/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	limiter := NewLimiter(8)
	release := make(chan struct{})

	var started sync.WaitGroup
	started.Add(2)
	spawn := func(name string) *Thread[string] {
		th, err := Spawn(func() string {
			started.Done()
			<-release
			return name
		}, Name(name), WithRegistry(registry), WithLimiter(limiter))
		require.NoError(t, err)
		return th
	}

	first := spawn("first")
	time.Sleep(time.Millisecond)
	second := spawn("second")
	started.Wait()

	snapshot := registry.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, first.ID(), snapshot[0].ID)
	assert.Equal(t, "first", snapshot[0].Name)
	assert.Equal(t, second.ID(), snapshot[1].ID)
	assert.Equal(t, "second", snapshot[1].Name)
	assert.False(t, snapshot[0].Started.After(snapshot[1].Started))
	if native.Supported() {
		assert.Positive(t, snapshot[0].NativeID)
		assert.Positive(t, snapshot[1].NativeID)
	}

	close(release)
	for _, th := range []*Thread[string]{first, second} {
		_, err := th.Join()
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		return registry.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
	assert.Empty(t, registry.Snapshot())
}
