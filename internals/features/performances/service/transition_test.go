package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "performance_backend/internals/features/performances/model"
	"performance_backend/internals/features/performances/repository"
)

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		"cancel":             ActionCancel,
		"cancel_performance": ActionCancel,
		"restore":            ActionRestore,
		"change":             ActionChange,
		"approve":            ActionApprove,
		" Reject ":           ActionReject,
		"resetApproval":      ActionResetApproval,
		"reset_approval":     ActionResetApproval,
	}
	for in, want := range cases {
		got, ok := ParseAction(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseAction("delete")
	assert.False(t, ok)
}

func TestTransition_Table(t *testing.T) {
	reason := "no stage crew"

	tests := []struct {
		action Action
		p      Payload
		want   repository.Changes
	}{
		{ActionCancel, Payload{}, repository.Changes{model.ColStatus: "Cancelled"}},
		{ActionRestore, Payload{}, repository.Changes{model.ColStatus: "Scheduled"}},
		{ActionChange, Payload{NewDate: "2025-12-01 (Mon)"}, repository.Changes{model.ColDate: "2025-12-01 (Mon)"}},
		{ActionApprove, Payload{}, repository.Changes{model.ColApprovalStatus: "Approved", model.ColRejectionReason: nil}},
		{ActionReject, Payload{Reason: &reason}, repository.Changes{model.ColApprovalStatus: "Rejected", model.ColRejectionReason: reason}},
		{ActionReject, Payload{}, repository.Changes{model.ColApprovalStatus: "Rejected", model.ColRejectionReason: ""}},
		{ActionResetApproval, Payload{}, repository.Changes{model.ColApprovalStatus: "Unreviewed", model.ColRejectionReason: nil}},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			got, err := Transition(tt.action, tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransition_ChangeRequiresDate(t *testing.T) {
	got, err := Transition(ActionChange, Payload{NewDate: "  "})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransition_UnknownIsNoop(t *testing.T) {
	got, err := Transition(Action("explode"), Payload{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Every change set touching ApprovalStatus must also decide RejectionReason.
func TestTransition_ApprovalAlwaysSetsReason(t *testing.T) {
	for _, a := range []Action{ActionApprove, ActionReject, ActionResetApproval} {
		got, err := Transition(a, Payload{})
		require.NoError(t, err)
		_, ok := got[model.ColRejectionReason]
		assert.True(t, ok, a)
		if got[model.ColApprovalStatus] != string(model.ApprovalRejected) {
			assert.Nil(t, got[model.ColRejectionReason], a)
		}
	}
}
