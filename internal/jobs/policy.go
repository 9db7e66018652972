package jobs

import (
	"fmt"

	"github.com/your-org/jobboard/internal/risk"
)

// Decision is what the submission workflow does with a freshly scanned job.
type Decision struct {
	Status Status `json:"status"`
	// Notify is set when an admin must be told about the job right away.
	Notify  bool   `json:"notify"`
	Message string `json:"message"`
}

// Decide maps a risk tier to the initial status of a submitted job.
// Nothing is auto-published: even low-risk jobs wait for admin approval.
func Decide(tier risk.Tier) Decision {
	switch tier {
	case risk.TierHigh:
		return Decision{
			Status:  StatusBlocked,
			Notify:  true,
			Message: "Multiple red flags detected. This job has been auto-blocked and flagged for admin review.",
		}
	case risk.TierMedium:
		return Decision{
			Status:  StatusReview,
			Message: "Some concerns detected. This job will require manual admin review before approval.",
		}
	default:
		return Decision{
			Status:  StatusPending,
			Message: "This job posting appears safe. It will be submitted for admin approval.",
		}
	}
}

// Action is an admin disposition of a job.
type Action string

const (
	ActionApprove      Action = "approve"
	ActionReject       Action = "reject"
	ActionBan          Action = "ban"
	ActionConfirmBlock Action = "confirm_block"
	ActionOverride     Action = "override"
)

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionApprove, ActionReject, ActionBan, ActionConfirmBlock, ActionOverride:
		return a, nil
	default:
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidInput, s)
	}
}

// Transition returns the status a job in from moves to under action.
// Blocked jobs leave the blocked state only through confirm_block, override
// or ban.
func Transition(from Status, action Action) (Status, error) {
	var to Status
	ok := false
	switch action {
	case ActionApprove:
		to, ok = StatusApproved, from == StatusPending || from == StatusReview
	case ActionReject:
		to, ok = StatusRejected, from == StatusPending || from == StatusReview
	case ActionBan:
		to, ok = StatusBanned, from != StatusBanned
	case ActionConfirmBlock:
		to, ok = StatusBanned, from == StatusBlocked
	case ActionOverride:
		to, ok = StatusApproved, from == StatusBlocked
	}
	if !ok {
		return from, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, from)
	}
	return to, nil
}
