package ai

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHistoryUnknownConversation(t *testing.T) {
	store := NewMemoryStore(10)

	history := store.GetHistory("never-seen")
	assert.NotNil(t, history)
	assert.Empty(t, history)

	// The id is now tracked, so a later append is visible.
	store.Append("never-seen", Message{Role: RoleUser, Content: "hi"})
	assert.Len(t, store.GetHistory("never-seen"), 1)
}

func TestAppendTrimsOnRead(t *testing.T) {
	store := NewMemoryStore(5)

	for i := 0; i < 7; i++ {
		store.Append("c", Message{Role: RoleUser, Content: fmt.Sprintf("msg-%d", i)})
	}

	history := store.GetHistory("c")
	require.Len(t, history, 4) // cap 5 minus the reserved system slot

	// Most recent messages, original relative order.
	for i, m := range history {
		assert.Equal(t, fmt.Sprintf("msg-%d", i+3), m.Content)
	}
}

func TestSetHistoryReplacesWholesale(t *testing.T) {
	store := NewMemoryStore(10)
	store.Append("c", Message{Role: RoleUser, Content: "old"})

	replacement := []Message{
		{Role: RoleUser, Content: "a", Name: "alice"},
		{Role: RoleAssistant, Content: "b"},
	}
	store.SetHistory("c", replacement)

	assert.Equal(t, replacement, store.GetHistory("c"))
}

func TestSetHistoryOverCapacityTrimmedOnRead(t *testing.T) {
	store := NewMemoryStore(3)

	var msgs []Message
	for i := 0; i < 6; i++ {
		msgs = append(msgs, Message{Role: RoleUser, Content: fmt.Sprintf("msg-%d", i)})
	}
	store.SetHistory("c", msgs)

	history := store.GetHistory("c")
	require.Len(t, history, 2)
	assert.Equal(t, "msg-4", history[0].Content)
	assert.Equal(t, "msg-5", history[1].Content)
}

func TestGetHistoryReturnsCopy(t *testing.T) {
	store := NewMemoryStore(10)
	store.Append("c", Message{Role: RoleUser, Content: "original"})

	history := store.GetHistory("c")
	history[0].Content = "mutated"

	assert.Equal(t, "original", store.GetHistory("c")[0].Content)
}

// Concurrent calls for the same conversation id have no defined interleaving
// order; this only checks that the store itself stays race-free.
func TestConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(20)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.Append("shared", Message{Role: RoleUser, Content: fmt.Sprintf("w%d-%d", n, j)})
				_ = store.GetHistory("shared")
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.GetHistory("shared"), 19)
}
