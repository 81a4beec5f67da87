package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "Successful", "Canceled"} {
		got, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, Status(valid), got)
	}

	for _, invalid := range []string{"", "pending", "Expired", "Done"} {
		_, err := ParseStatus(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestCanTransitionIsPermissive(t *testing.T) {
	statuses := []Status{StatusPending, StatusSuccessful, StatusCanceled}
	for _, from := range statuses {
		for _, to := range statuses {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CanTransition(StatusPending, Status("Expired")))
	assert.False(t, CanTransition(Status("bogus"), StatusPending))
}

func TestOfferedActions(t *testing.T) {
	tests := []struct {
		from Status
		want []Action
	}{
		{from: StatusPending, want: []Action{ActionApprove, ActionReject}},
		{from: StatusSuccessful, want: []Action{ActionReject, ActionMarkPending}},
		{from: StatusCanceled, want: []Action{ActionApprove, ActionMarkPending}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OfferedActions(tt.from), string(tt.from))
	}
}

func TestActionTargets(t *testing.T) {
	assert.Equal(t, StatusSuccessful, ActionApprove.Target())
	assert.Equal(t, StatusCanceled, ActionReject.Target())
	assert.Equal(t, StatusPending, ActionMarkPending.Target())
}
