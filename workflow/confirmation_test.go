package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applyCall struct {
	userID    string
	guildID   string
	delta     float64
	reason    string
	moderator string
}

type fakeLedger struct {
	mu       sync.Mutex
	count    float64
	calls    []applyCall
	failWith error
}

func (l *fakeLedger) Apply(userID, guildID string, delta float64, reason, moderator string) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failWith != nil {
		return 0, l.failWith
	}
	l.calls = append(l.calls, applyCall{userID, guildID, delta, reason, moderator})
	l.count += delta
	if l.count < 0 {
		l.count = 0
	}
	return l.count, nil
}

func (l *fakeLedger) applyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

type fakeGate struct {
	moderators map[string]bool
}

func (g fakeGate) CanInitiate(actorID string) bool { return g.moderators[actorID] }
func (g fakeGate) CanConfirm(actorID string) bool  { return g.moderators[actorID] }

func modGate(ids ...string) fakeGate {
	g := fakeGate{moderators: make(map[string]bool)}
	for _, id := range ids {
		g.moderators[id] = true
	}
	return g
}

func TestNewIntentRejectsZeroStrikeReduction(t *testing.T) {
	_, err := NewIntent("member", "guild", "Achievement: clean month", -1, "mod-a", 0)
	require.ErrorIs(t, err, ErrNothingToReduce)
}

func TestNewIntentClampsProjection(t *testing.T) {
	intent, err := NewIntent("member", "guild", "Achievement: clean month", -1, "mod-a", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, intent.CurrentCount)
	assert.Equal(t, 0.0, intent.ProjectedCount)
	assert.NotEmpty(t, intent.ID)
}

func TestApproveAppliesOnceWithCompositeAttribution(t *testing.T) {
	intent, err := NewIntent("member", "guild", "Achievement: clean month", -1, "mod-a", 3)
	require.NoError(t, err)

	ledger := &fakeLedger{count: 3}
	c := New(intent, modGate("mod-a", "mod-b"), ledger, Options{Timeout: time.Second, BotUserID: "bot"})

	reactions := make(chan Reaction, 8)
	reactions <- Reaction{ActorID: "bot", Emoji: ApproveEmoji}           // bot's own seed
	reactions <- Reaction{ActorID: "rando", Emoji: ApproveEmoji}        // not a moderator
	reactions <- Reaction{ActorID: "mod-b", Emoji: "🎉"}                 // wrong emoji
	reactions <- Reaction{ActorID: "evil-bot", Emoji: ApproveEmoji, Bot: true}
	reactions <- Reaction{ActorID: "mod-b", Emoji: ApproveEmoji}

	result := c.Run(context.Background(), reactions)

	require.NoError(t, result.Err)
	assert.Equal(t, StateApproved, result.State)
	assert.Equal(t, "mod-b", result.ConfirmerID)
	assert.Equal(t, 2.0, result.NewCount)

	require.Len(t, ledger.calls, 1)
	call := ledger.calls[0]
	assert.Equal(t, "member", call.userID)
	assert.Equal(t, "guild", call.guildID)
	assert.Equal(t, -1.0, call.delta)
	assert.Contains(t, call.moderator, "mod-a")
	assert.Contains(t, call.moderator, "mod-b")
}

func TestCancelDoesNotTouchLedger(t *testing.T) {
	intent, err := NewIntent("member", "guild", "Achievement: clean month", -1, "mod-a", 3)
	require.NoError(t, err)

	ledger := &fakeLedger{count: 3}
	c := New(intent, modGate("mod-a", "mod-b"), ledger, Options{Timeout: time.Second})

	reactions := make(chan Reaction, 1)
	reactions <- Reaction{ActorID: "mod-b", Emoji: CancelEmoji}

	result := c.Run(context.Background(), reactions)

	assert.Equal(t, StateCancelled, result.State)
	assert.Equal(t, "mod-b", result.ConfirmerID)
	assert.Zero(t, ledger.applyCount())
}

func TestExpiryAppliesNothing(t *testing.T) {
	intent, err := NewIntent("member", "guild", "Achievement: clean month", -1, "mod-a", 3)
	require.NoError(t, err)

	ledger := &fakeLedger{count: 3}
	c := New(intent, modGate("mod-a", "mod-b"), ledger, Options{Timeout: 20 * time.Millisecond})

	result := c.Run(context.Background(), make(chan Reaction))

	assert.Equal(t, StateExpired, result.State)
	assert.Equal(t, StateExpired, c.State())
	assert.Zero(t, ledger.applyCount())
}

func TestUnqualifiedReactionsLeaveIntentProposed(t *testing.T) {
	intent, err := NewIntent("member", "guild", "Achievement: clean month", -1, "mod-a", 3)
	require.NoError(t, err)

	ledger := &fakeLedger{count: 3}
	c := New(intent, modGate("mod-a", "mod-b"), ledger, Options{Timeout: 50 * time.Millisecond})

	reactions := make(chan Reaction, 2)
	reactions <- Reaction{ActorID: "rando", Emoji: ApproveEmoji}
	reactions <- Reaction{ActorID: "rando2", Emoji: CancelEmoji}

	result := c.Run(context.Background(), reactions)

	// Nothing qualified, so the run waited out the window.
	assert.Equal(t, StateExpired, result.State)
	assert.Zero(t, ledger.applyCount())
}

func TestAtMostOneTransition(t *testing.T) {
	intent, err := NewIntent("member", "guild", "Achievement: clean month", -1, "mod-a", 3)
	require.NoError(t, err)

	ledger := &fakeLedger{count: 3}
	c := New(intent, modGate("mod-a", "mod-b", "mod-c"), ledger, Options{Timeout: time.Second})

	reactions := make(chan Reaction, 3)
	reactions <- Reaction{ActorID: "mod-b", Emoji: ApproveEmoji}
	reactions <- Reaction{ActorID: "mod-c", Emoji: ApproveEmoji}
	reactions <- Reaction{ActorID: "mod-c", Emoji: CancelEmoji}

	result := c.Run(context.Background(), reactions)

	assert.Equal(t, StateApproved, result.State)
	assert.Equal(t, "mod-b", result.ConfirmerID)
	require.Equal(t, 1, ledger.applyCount())
	// The run returned after the first transition; later reactions were
	// never consumed.
	assert.Len(t, reactions, 2)
}

func TestDistinctConfirmerPolicy(t *testing.T) {
	intent, err := NewIntent("member", "guild", "Achievement: clean month", -1, "mod-a", 3)
	require.NoError(t, err)

	ledger := &fakeLedger{count: 3}
	c := New(intent, modGate("mod-a", "mod-b"), ledger, Options{
		Timeout:                  time.Second,
		RequireDistinctConfirmer: true,
	})

	reactions := make(chan Reaction, 2)
	reactions <- Reaction{ActorID: "mod-a", Emoji: ApproveEmoji} // initiator self-approving
	reactions <- Reaction{ActorID: "mod-b", Emoji: ApproveEmoji}

	result := c.Run(context.Background(), reactions)

	assert.Equal(t, StateApproved, result.State)
	assert.Equal(t, "mod-b", result.ConfirmerID)
	require.Len(t, ledger.calls, 1)
}

func TestApplyFailureSurfaced(t *testing.T) {
	intent, err := NewIntent("member", "guild", "Achievement: clean month", -1, "mod-a", 3)
	require.NoError(t, err)

	boom := errors.New("disk full")
	ledger := &fakeLedger{count: 3, failWith: boom}
	c := New(intent, modGate("mod-a", "mod-b"), ledger, Options{Timeout: time.Second})

	reactions := make(chan Reaction, 1)
	reactions <- Reaction{ActorID: "mod-b", Emoji: ApproveEmoji}

	result := c.Run(context.Background(), reactions)

	assert.Equal(t, StateApproved, result.State)
	require.ErrorIs(t, result.Err, boom)
	assert.Zero(t, ledger.applyCount())
}

func TestContextCancellationExpires(t *testing.T) {
	intent, err := NewIntent("member", "guild", "Achievement: clean month", -1, "mod-a", 3)
	require.NoError(t, err)

	ledger := &fakeLedger{count: 3}
	c := New(intent, modGate("mod-b"), ledger, Options{Timeout: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := c.Run(ctx, make(chan Reaction))

	assert.Equal(t, StateExpired, result.State)
	assert.Zero(t, ledger.applyCount())
}

func TestCompositeModerator(t *testing.T) {
	label := CompositeModerator("mod-a", "mod-b")
	assert.Contains(t, label, "mod-a")
	assert.Contains(t, label, "mod-b")
}
