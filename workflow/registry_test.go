package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDispatchRoutesByMessageID(t *testing.T) {
	r := NewRegistry()
	ch := r.Register("msg-1")

	require.True(t, r.Dispatch("msg-1", Reaction{ActorID: "mod-a", Emoji: ApproveEmoji}))
	assert.False(t, r.Dispatch("msg-2", Reaction{ActorID: "mod-a", Emoji: ApproveEmoji}))

	got := <-ch
	assert.Equal(t, "mod-a", got.ActorID)
	assert.Equal(t, 1, r.PendingCount())
}

func TestRegistryUnregisterDropsReactions(t *testing.T) {
	r := NewRegistry()
	r.Register("msg-1")
	r.Unregister("msg-1")

	assert.False(t, r.Dispatch("msg-1", Reaction{ActorID: "mod-a", Emoji: ApproveEmoji}))
	assert.Zero(t, r.PendingCount())
}

func TestRegistryDispatchNeverBlocks(t *testing.T) {
	r := NewRegistry()
	r.Register("msg-1")

	for n := 0; n < reactionBuffer; n++ {
		require.True(t, r.Dispatch("msg-1", Reaction{ActorID: "mod-a", Emoji: ApproveEmoji}))
	}
	// Buffer full: the reaction is dropped instead of blocking the gateway
	// handler.
	assert.False(t, r.Dispatch("msg-1", Reaction{ActorID: "mod-a", Emoji: ApproveEmoji}))
}
