package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "performance_backend/internals/features/performances/model"
	"performance_backend/internals/features/performances/service"
)

func TestCreateRequest_NormalizeAndValidate(t *testing.T) {
	v := NewValidator()

	// decomposed Hangul (NFD) becomes composed
	req := CreatePerformanceRequest{ID: " 12 ", Date: " 2025-11-06 ", Venue: "\u1100\u1161", EventType: "Cancelled"}
	req.Normalize()
	require.NoError(t, req.Validate(v))
	assert.Equal(t, "12", req.ID)
	assert.Equal(t, "2025-11-06", req.Date)
	assert.Equal(t, "\uac00", req.Venue)
	assert.Equal(t, "Cancelled", req.Status)

	in := req.ToInput()
	assert.Equal(t, service.CreateInput{ID: "12", Date: "2025-11-06", Venue: "\uac00", InitialStatus: "Cancelled"}, in)
}

func TestCreateRequest_FieldErrors(t *testing.T) {
	v := NewValidator()

	req := CreatePerformanceRequest{Status: "Postponed"}
	req.Normalize()
	fe := FieldErrors(req.Validate(v))
	require.NotNil(t, fe)
	assert.Equal(t, []string{"is required"}, fe["id"])
	assert.Equal(t, []string{"is required"}, fe["date"])
	assert.Equal(t, []string{"must be Scheduled or Cancelled"}, fe["status"])

	assert.Nil(t, FieldErrors(assert.AnError))
}

func TestActionRequest_ToPayload(t *testing.T) {
	reason := "  stage "
	req := ActionRequest{Action: " Reject ", RejectionReason: &reason}
	req.Normalize()

	p := req.ToPayload()
	assert.Equal(t, "Reject", req.Action)
	require.NotNil(t, p.Reason)
	assert.Equal(t, "  stage ", *p.Reason)

	req = ActionRequest{Action: "reject"}
	req.Normalize()
	assert.Nil(t, req.ToPayload().Reason)
}

func TestFromModel_HidesReasonUnlessRejected(t *testing.T) {
	reason := "stale"
	approved := string(model.ApprovalApproved)
	m := &model.PerformanceModel{ID: "1", ApprovalStatus: &approved, RejectionReason: &reason}

	out := FromModel(m)
	assert.Equal(t, "Approved", out.ApprovalStatus)
	assert.Equal(t, "Scheduled", out.LifecycleStatus)
	assert.Nil(t, out.RejectionReason)

	legacy := model.LegacyRejectedLabel
	m.ApprovalStatus = &legacy
	out = FromModel(m)
	assert.Equal(t, "Rejected", out.ApprovalStatus)
	require.NotNil(t, out.RejectionReason)
	assert.Equal(t, "stale", *out.RejectionReason)
}

func TestListQuery_Normalize(t *testing.T) {
	q := ListPerformanceQuery{Mode: " TRASH ", SearchDate: " 2025-12 "}
	q.Normalize()
	assert.Equal(t, "trash", q.Mode)
	assert.Equal(t, "2025-12", q.SearchDate)
}
