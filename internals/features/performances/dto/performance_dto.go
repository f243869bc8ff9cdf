// file: internals/features/performances/dto/performance_dto.go
package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	model "performance_backend/internals/features/performances/model"
	"performance_backend/internals/features/performances/service"
)

/* =========================================================
   Shared helpers
   ========================================================= */

// clean: NFC + trim, so Hangul typed on different keyboards compares equal.
func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func cleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := norm.NFC.String(*s)
	return &v
}

// NewValidator reports field names by their json tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("lifecycle", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseLifecycleStatus(fl.Field().String())
		return ok
	})
	return v
}

// FieldErrors flattens validator output into {field: [messages]}.
// Returns nil when err is not a validation error.
func FieldErrors(err error) map[string][]string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	out := make(map[string][]string, len(ves))
	for _, fe := range ves {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "max":
			msg = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "lifecycle":
			msg = "must be Scheduled or Cancelled"
		default:
			msg = "is invalid (" + fe.Tag() + ")"
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}

/* =========================================================
   Requests: CREATE
   ========================================================= */

type CreatePerformanceRequest struct {
	ID        string `json:"id"         form:"id"         validate:"required,max=64"`
	Location  string `json:"location"   form:"location"   validate:"max=255"`
	Category  string `json:"category"   form:"category"   validate:"max=255"`
	Title     string `json:"title"      form:"title"      validate:"max=500"`
	Date      string `json:"date"       form:"date"       validate:"required,max=64"`
	Venue     string `json:"venue"      form:"venue"      validate:"max=255"`
	TeamSetup string `json:"team_setup" form:"team_setup" validate:"max=500"`
	Notes     string `json:"notes"      form:"notes"`
	// "event_type" is what the old form posted.
	Status    string `json:"status"     form:"status"     validate:"omitempty,lifecycle"`
	EventType string `json:"event_type" form:"event_type" validate:"omitempty,lifecycle"`
}

func (r *CreatePerformanceRequest) Normalize() {
	r.ID = clean(r.ID)
	r.Location = clean(r.Location)
	r.Category = clean(r.Category)
	r.Title = clean(r.Title)
	r.Date = clean(r.Date)
	r.Venue = clean(r.Venue)
	r.TeamSetup = clean(r.TeamSetup)
	r.Notes = clean(r.Notes)
	r.Status = clean(r.Status)
	r.EventType = clean(r.EventType)
	if r.Status == "" {
		r.Status = r.EventType
	}
}

func (r *CreatePerformanceRequest) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r *CreatePerformanceRequest) ToInput() service.CreateInput {
	return service.CreateInput{
		ID:            r.ID,
		Location:      r.Location,
		Category:      r.Category,
		Title:         r.Title,
		Date:          r.Date,
		Venue:         r.Venue,
		TeamSetup:     r.TeamSetup,
		Notes:         r.Notes,
		InitialStatus: r.Status,
	}
}

/* =========================================================
   Requests: ACTION
   ========================================================= */

type ActionRequest struct {
	Action          string  `json:"action"           form:"action"`
	NewDate         string  `json:"new_date"         form:"new_date"`
	RejectionReason *string `json:"rejection_reason" form:"rejection_reason"`
}

func (r *ActionRequest) Normalize() {
	r.Action = clean(r.Action)
	r.NewDate = clean(r.NewDate)
	r.RejectionReason = cleanPtr(r.RejectionReason)
}

func (r *ActionRequest) ToPayload() service.Payload {
	return service.Payload{NewDate: r.NewDate, Reason: r.RejectionReason}
}

/* =========================================================
   Query (list)
   ========================================================= */

type ListPerformanceQuery struct {
	Mode       string `query:"mode"`
	SearchDate string `query:"search_date"`
}

func (q *ListPerformanceQuery) Normalize() {
	q.Mode = strings.ToLower(clean(q.Mode))
	q.SearchDate = clean(q.SearchDate)
}

/* =========================================================
   Response DTO
   ========================================================= */

type PerformanceResponse struct {
	ID              string  `json:"id"`
	Location        string  `json:"location"`
	Category        string  `json:"category"`
	Title           string  `json:"title"`
	Date            string  `json:"date"`
	Venue           string  `json:"venue"`
	TeamSetup       string  `json:"team_setup"`
	Notes           string  `json:"notes"`
	LifecycleStatus string  `json:"lifecycle_status"`
	ApprovalStatus  string  `json:"approval_status"`
	RejectionReason *string `json:"rejection_reason"`
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func FromModel(m *model.PerformanceModel) PerformanceResponse {
	approval := m.Approval()
	var reason *string
	if approval == model.ApprovalRejected {
		r := str(m.RejectionReason)
		reason = &r
	}
	return PerformanceResponse{
		ID:              m.ID,
		Location:        str(m.Location),
		Category:        str(m.Category),
		Title:           str(m.Title),
		Date:            str(m.Date),
		Venue:           str(m.Venue),
		TeamSetup:       str(m.TeamSetup),
		Notes:           str(m.Notes),
		LifecycleStatus: string(m.Lifecycle()),
		ApprovalStatus:  string(approval),
		RejectionReason: reason,
	}
}

func FromModels(list []model.PerformanceModel) []PerformanceResponse {
	out := make([]PerformanceResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

/* =========================================================
   Action result
   ========================================================= */

type ActionResponse struct {
	ID      string               `json:"id"`
	Action  string               `json:"action"`
	Outcome string               `json:"outcome"`
	Record  *PerformanceResponse `json:"record,omitempty"`
}

func FromResult(r *service.Result) ActionResponse {
	out := ActionResponse{ID: r.ID, Action: r.Action, Outcome: string(r.Outcome)}
	if r.Record != nil {
		rec := FromModel(r.Record)
		out.Record = &rec
	}
	return out
}
