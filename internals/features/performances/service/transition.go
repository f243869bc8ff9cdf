package service

import (
	"strings"

	model "performance_backend/internals/features/performances/model"
	"performance_backend/internals/features/performances/repository"
)

type Action string

const (
	ActionCancel        Action = "cancel"
	ActionRestore       Action = "restore"
	ActionChange        Action = "change"
	ActionApprove       Action = "approve"
	ActionReject        Action = "reject"
	ActionResetApproval Action = "resetApproval"
)

var actionAliases = map[string]Action{
	"cancel":             ActionCancel,
	"cancel_performance": ActionCancel,
	"restore":            ActionRestore,
	"change":             ActionChange,
	"approve":            ActionApprove,
	"reject":             ActionReject,
	"resetapproval":      ActionResetApproval,
	"reset_approval":     ActionResetApproval,
}

// ParseAction resolves a requested action name, including legacy form values.
func ParseAction(s string) (Action, bool) {
	a, ok := actionAliases[strings.ToLower(strings.TrimSpace(s))]
	return a, ok
}

type Payload struct {
	NewDate string
	// Reason is only read by reject; nil stores "".
	Reason *string
}

// Transition returns the column changes for an action. Every action that
// touches ApprovalStatus also sets RejectionReason in the same change set.
func Transition(a Action, p Payload) (repository.Changes, error) {
	switch a {
	case ActionCancel:
		return repository.Changes{model.ColStatus: string(model.LifecycleCancelled)}, nil
	case ActionRestore:
		return repository.Changes{model.ColStatus: string(model.LifecycleScheduled)}, nil
	case ActionChange:
		d := strings.TrimSpace(p.NewDate)
		if d == "" {
			return nil, newError(KindValidation, "new_date is required for change", nil)
		}
		return repository.Changes{model.ColDate: d}, nil
	case ActionApprove:
		return repository.Changes{
			model.ColApprovalStatus:  string(model.ApprovalApproved),
			model.ColRejectionReason: nil,
		}, nil
	case ActionReject:
		reason := ""
		if p.Reason != nil {
			reason = *p.Reason
		}
		return repository.Changes{
			model.ColApprovalStatus:  string(model.ApprovalRejected),
			model.ColRejectionReason: reason,
		}, nil
	case ActionResetApproval:
		return repository.Changes{
			model.ColApprovalStatus:  string(model.ApprovalUnreviewed),
			model.ColRejectionReason: nil,
		}, nil
	default:
		return nil, nil
	}
}
