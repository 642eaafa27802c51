package selection

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

// SetRig forces the next pick on the wheel, replacing any rig already set
func SetRig(w *domain.Wheel, targetID uuid.UUID, hidden bool, reason, setBy string, now time.Time) error {
	if !w.Settings.AllowRigging {
		return domain.ErrRiggingDisabled
	}
	reason = strings.TrimSpace(reason)
	if w.Settings.RequireReasonForRigging && reason == "" {
		return domain.ErrReasonRequired
	}

	w.Rigging = &domain.Rigging{
		TargetParticipantID: targetID,
		Hidden:              hidden,
		Reason:              reason,
		SetBy:               setBy,
		SetAt:               now,
	}
	return nil
}

// ClearRig removes any pending rig. Safe to call on an unrigged wheel.
func ClearRig(w *domain.Wheel) {
	w.Rigging = nil
}

// IsVisibleRig reports whether end users may be told the next pick is rigged.
// Use this rather than checking w.Rigging directly.
func IsVisibleRig(w *domain.Wheel) bool {
	return w.Rigging != nil && !w.Rigging.Hidden
}
