package workflow

import (
	"context"
	"fmt"
	"time"
)

// State is the lifecycle state of a confirmation. A confirmation starts
// proposed and ends in exactly one of the three terminal states.
type State string

const (
	StateProposed  State = "proposed"
	StateApproved  State = "approved"
	StateCancelled State = "cancelled"
	StateExpired   State = "expired"
)

// Reaction emojis attached to a confirmation prompt.
const (
	ApproveEmoji = "✅"
	CancelEmoji  = "❌"
)

// DefaultTimeout bounds how long a proposed confirmation waits for a
// qualifying reaction.
const DefaultTimeout = 300 * time.Second

// Reaction is one reaction event observed on the confirmation prompt.
type Reaction struct {
	ActorID string
	Emoji   string
	Bot     bool
}

// Ledger applies a strike delta for a member and returns the new count.
// Implemented by the strikes database package in production and by fakes in
// tests.
type Ledger interface {
	Apply(userID, guildID string, delta float64, reason, moderator string) (float64, error)
}

// Gate decides whether an actor may initiate or confirm a strike mutation.
// It is consulted again for every reaction; guild roles can change while a
// confirmation is pending, so nothing is cached from proposal time.
type Gate interface {
	CanInitiate(actorID string) bool
	CanConfirm(actorID string) bool
}

// Options tunes a single confirmation run.
type Options struct {
	// Timeout bounds the wait for a qualifying reaction. Zero means
	// DefaultTimeout.
	Timeout time.Duration
	// RequireDistinctConfirmer rejects the initiator's own approval when set.
	RequireDistinctConfirmer bool
	// BotUserID filters out the bot's own seed reactions.
	BotUserID string
}

// Result is the terminal outcome of a confirmation run.
type Result struct {
	State       State
	ConfirmerID string
	NewCount    float64
	// Err is set when the approved mutation failed at the storage layer.
	// The ledger was not retried; the prompt must surface the failure.
	Err error
}

// Confirmation runs one reaction-gated confirmation for one intent. Each
// instance is independent: two pending confirmations for the same member do
// not know about each other, the ledger transaction is what serializes their
// applies.
type Confirmation struct {
	intent *Intent
	gate   Gate
	ledger Ledger
	opts   Options
	state  State
}

// New creates a confirmation in the proposed state.
func New(intent *Intent, gate Gate, ledger Ledger, opts Options) *Confirmation {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Confirmation{
		intent: intent,
		gate:   gate,
		ledger: ledger,
		opts:   opts,
		state:  StateProposed,
	}
}

// State reports the current lifecycle state.
func (c *Confirmation) State() State {
	return c.state
}

// Run consumes reaction events until the first qualifying one triggers a
// terminal transition, or the timeout elapses. It returns after exactly one
// transition; reactions arriving later are never observed, so a confirmation
// cannot fire twice.
func (c *Confirmation) Run(ctx context.Context, reactions <-chan Reaction) Result {
	timer := time.NewTimer(c.opts.Timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.state = StateExpired
			return Result{State: StateExpired}
		case <-timer.C:
			c.state = StateExpired
			return Result{State: StateExpired}
		case r, ok := <-reactions:
			if !ok {
				// Source closed; wait out the timer.
				reactions = nil
				continue
			}
			if !c.qualifies(r) {
				continue
			}
			switch r.Emoji {
			case ApproveEmoji:
				return c.approve(r.ActorID)
			case CancelEmoji:
				c.state = StateCancelled
				return Result{State: StateCancelled, ConfirmerID: r.ActorID}
			}
		}
	}
}

// qualifies reports whether a reaction may trigger a transition: the right
// emoji, not from a bot, from an actor the gate accepts, and from someone
// other than the initiator when the distinct-confirmer policy is on.
func (c *Confirmation) qualifies(r Reaction) bool {
	if r.Emoji != ApproveEmoji && r.Emoji != CancelEmoji {
		return false
	}
	if r.Bot || r.ActorID == "" || r.ActorID == c.opts.BotUserID {
		return false
	}
	if c.opts.RequireDistinctConfirmer && r.ActorID == c.intent.InitiatorID {
		return false
	}
	return c.gate.CanConfirm(r.ActorID)
}

// approve commits the intent to the ledger exactly once. The moderator label
// records both the initiator and the confirmer.
func (c *Confirmation) approve(confirmerID string) Result {
	c.state = StateApproved
	moderator := CompositeModerator(c.intent.InitiatorID, confirmerID)
	newCount, err := c.ledger.Apply(c.intent.SubjectUserID, c.intent.GuildID, c.intent.Delta, c.intent.ReasonLabel, moderator)
	if err != nil {
		return Result{
			State:       StateApproved,
			ConfirmerID: confirmerID,
			Err:         fmt.Errorf("failed to apply strike delta for intent %s: %w", c.intent.ID, err),
		}
	}
	return Result{State: StateApproved, ConfirmerID: confirmerID, NewCount: newCount}
}

// CompositeModerator renders the attribution label for an approved intent,
// carrying both identities into the history entry.
func CompositeModerator(initiatorID, confirmerID string) string {
	return fmt.Sprintf("%s (confirmed by %s)", initiatorID, confirmerID)
}
