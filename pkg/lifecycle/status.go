package lifecycle

import "fmt"

type Status string

const (
	StatusPending    Status = "Pending"
	StatusSuccessful Status = "Successful"
	StatusCanceled   Status = "Canceled"
)

// EndDateUnlimited is the literal end_date value meaning the subscription
// never expires.
const EndDateUnlimited = "unlimited"

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusSuccessful, StatusCanceled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid submission status: %q", s)
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSuccessful, StatusCanceled:
		return true
	}
	return false
}

// CanTransition is the single place the transition rule lives. The rule is
// deliberately permissive: any valid status may move to any valid status,
// including back to Pending. The server-side business layer may still veto
// a specific change.
func CanTransition(from, to Status) bool {
	return from.Valid() && to.Valid()
}

type Action string

const (
	ActionApprove     Action = "approve"      // -> Successful
	ActionReject      Action = "reject"       // -> Canceled
	ActionMarkPending Action = "mark_pending" // -> Pending
)

// OfferedActions lists the status changes the admin UI presents for a
// submission in the given status. CanTransition stays broader on purpose;
// this is the display rule, kept next to it so the two cannot drift apart.
func OfferedActions(from Status) []Action {
	var actions []Action
	if from != StatusSuccessful {
		actions = append(actions, ActionApprove)
	}
	if from != StatusCanceled {
		actions = append(actions, ActionReject)
	}
	if from == StatusSuccessful || from == StatusCanceled {
		actions = append(actions, ActionMarkPending)
	}
	return actions
}

func (a Action) Target() Status {
	switch a {
	case ActionApprove:
		return StatusSuccessful
	case ActionReject:
		return StatusCanceled
	default:
		return StatusPending
	}
}
