package workflow

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNothingToReduce is returned when a reduction is proposed against a
// member who has no strikes. Such an intent would be a no-op, so it is
// rejected before any prompt is shown.
var ErrNothingToReduce = errors.New("member has no strikes to reduce")

// Intent describes a proposed strike mutation awaiting confirmation.
// It is immutable once created; the current count is a snapshot taken at
// proposal time and the projected count is already clamped at zero.
type Intent struct {
	ID             string
	SubjectUserID  string
	GuildID        string
	ReasonLabel    string
	Delta          float64
	InitiatorID    string
	CurrentCount   float64
	ProjectedCount float64
	CreatedAt      time.Time
}

// NewIntent builds a confirmation intent for the given subject.
func NewIntent(subjectUserID, guildID, reasonLabel string, delta float64, initiatorID string, currentCount float64) (*Intent, error) {
	if delta < 0 && currentCount <= 0 {
		return nil, ErrNothingToReduce
	}

	projected := currentCount + delta
	if projected < 0 {
		projected = 0
	}

	return &Intent{
		ID:             uuid.NewString(),
		SubjectUserID:  subjectUserID,
		GuildID:        guildID,
		ReasonLabel:    reasonLabel,
		Delta:          delta,
		InitiatorID:    initiatorID,
		CurrentCount:   currentCount,
		ProjectedCount: projected,
		CreatedAt:      time.Now(),
	}, nil
}
