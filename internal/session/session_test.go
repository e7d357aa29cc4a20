package session

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID("alice")
	assert.True(t, strings.HasPrefix(string(id), "alice-"))

	anon := NewID("")
	assert.True(t, strings.HasPrefix(string(anon), "user-"))
}

func TestRegistryAddRemove(t *testing.T) {
	r := NewRegistry()
	assert.Zero(t, r.Count())

	r.Add(Info{ID: "a", User: "alice"})
	r.Add(Info{ID: "b", User: "bob"})
	assert.Equal(t, 2, r.Count())

	info, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alice", info.User)
	assert.False(t, info.StartedAt.IsZero())

	r.Remove("a")
	r.Remove("missing")
	assert.Equal(t, 1, r.Count())

	_, ok = r.Get("a")
	assert.False(t, ok)
}

func TestRegistrySetGame(t *testing.T) {
	r := NewRegistry()
	r.Add(Info{ID: "a"})

	assert.True(t, r.SetGame("a", "2048_campaign"))
	info, _ := r.Get("a")
	assert.Equal(t, "2048_campaign", info.GameID)

	assert.False(t, r.SetGame("missing", "2048"))
	assert.Equal(t, 1, r.Count())
}

func TestRegistryListOrder(t *testing.T) {
	r := NewRegistry()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	r.Add(Info{ID: "late", StartedAt: base.Add(time.Minute)})
	r.Add(Info{ID: "early", StartedAt: base})
	r.Add(Info{ID: "tie", StartedAt: base})

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, ID("early"), list[0].ID)
	assert.Equal(t, ID("tie"), list[1].ID)
	assert.Equal(t, ID("late"), list[2].ID)

	// The snapshot is detached from the registry
	list[0].User = "changed"
	info, _ := r.Get("early")
	assert.Empty(t, info.User)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := ID(fmt.Sprintf("s-%d", i))
			r.Add(Info{ID: id})
			r.SetGame(id, "2048")
			_ = r.List()
			if i%2 == 0 {
				r.Remove(id)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, r.Count())
}
