package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	model "performance_backend/internals/features/performances/model"
	"performance_backend/internals/features/performances/repository"
)

// PerformanceService is what the HTTP layer calls; the store handle is passed per call.
type PerformanceService interface {
	ListRecords(ctx context.Context, store repository.Store, mode, searchDate string) (*Listing, error)
	CreateRecord(ctx context.Context, store repository.Store, in CreateInput) (*model.PerformanceModel, error)
	PerformAction(ctx context.Context, store repository.Store, id, action string, p Payload) (*Result, error)
	NextSuggestedID(ctx context.Context, store repository.Store) (string, error)
	GetRecord(ctx context.Context, store repository.Store, id string) (*model.PerformanceModel, error)
}

type Listing struct {
	View    View
	Today   string
	Records []model.PerformanceModel
}

type CreateInput struct {
	ID        string
	Location  string
	Category  string
	Title     string
	Date      string
	Venue     string
	TeamSetup string
	Notes     string
	// InitialStatus: "" means Scheduled.
	InitialStatus string
}

type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeIgnored Outcome = "ignored"
)

type Result struct {
	ID      string
	Action  string
	Outcome Outcome
	Record  *model.PerformanceModel
}

type performanceSvc struct {
	loc *time.Location
	now func() time.Time
}

func NewPerformanceService(loc *time.Location, now func() time.Time) PerformanceService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &performanceSvc{loc: loc, now: now}
}

func (s *performanceSvc) today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

func (s *performanceSvc) ListRecords(ctx context.Context, store repository.Store, mode, searchDate string) (*Listing, error) {
	today := s.today()
	v := ResolveView(mode, searchDate, today)

	rows, err := store.Query(ctx, v.Filter, v.Ordering)
	if err != nil {
		log.Printf("[Performances] ERROR list mode=%s err=%v", v.Mode, err)
		return nil, newError(KindBackendUnavailable, "failed to load performances", err)
	}
	return &Listing{View: v, Today: today, Records: rows}, nil
}

func (s *performanceSvc) CreateRecord(ctx context.Context, store repository.Store, in CreateInput) (*model.PerformanceModel, error) {
	id := strings.TrimSpace(in.ID)
	date := strings.TrimSpace(in.Date)
	if id == "" {
		return nil, newError(KindValidation, "id is required", nil)
	}
	if date == "" {
		return nil, newError(KindValidation, "date is required", nil)
	}
	status, ok := model.ParseLifecycleStatus(in.InitialStatus)
	if !ok {
		return nil, newError(KindValidation, "unknown initial status "+in.InitialStatus, nil)
	}

	m := &model.PerformanceModel{
		ID:             id,
		Location:       optional(in.Location),
		Category:       optional(in.Category),
		Title:          optional(in.Title),
		Date:           &date,
		Venue:          optional(in.Venue),
		TeamSetup:      optional(in.TeamSetup),
		Notes:          optional(in.Notes),
		Status:         ptr(string(status)),
		ApprovalStatus: ptr(string(model.ApprovalUnreviewed)),
	}

	if err := store.Insert(ctx, m); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			log.Printf("[Performances] CONFLICT create id=%s", id)
			return nil, newError(KindDuplicateIdentifier, "performance id "+id+" already exists", err)
		}
		log.Printf("[Performances] ERROR create id=%s err=%v", id, err)
		return nil, newError(KindBackendUnavailable, "failed to create performance", err)
	}
	log.Printf("[Performances] OK create id=%s date=%s", id, date)
	return m, nil
}

func (s *performanceSvc) PerformAction(ctx context.Context, store repository.Store, id, action string, p Payload) (*Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, newError(KindValidation, "id is required", nil)
	}

	a, ok := ParseAction(action)
	if !ok {
		log.Printf("[Performances] IGNORED action=%q id=%s", action, id)
		return &Result{ID: id, Action: action, Outcome: OutcomeIgnored}, nil
	}

	changes, err := Transition(a, p)
	if err != nil {
		return nil, err
	}

	n, err := store.Update(ctx, id, changes)
	if err != nil {
		log.Printf("[Performances] ERROR %s id=%s err=%v", a, id, err)
		return nil, newError(KindBackendUnavailable, "failed to apply "+string(a), err)
	}
	if n == 0 {
		log.Printf("[Performances] NOT FOUND %s id=%s", a, id)
		return nil, newError(KindNotFound, "performance "+id+" not found", nil)
	}

	rec, err := store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindNotFound, "performance "+id+" not found", err)
		}
		return nil, newError(KindBackendUnavailable, "failed to reload performance", err)
	}
	log.Printf("[Performances] OK %s id=%s", a, id)
	return &Result{ID: id, Action: string(a), Outcome: OutcomeApplied, Record: rec}, nil
}

func (s *performanceSvc) NextSuggestedID(ctx context.Context, store repository.Store) (string, error) {
	ids, err := store.ListIDs(ctx)
	if err != nil {
		return "", newError(KindBackendUnavailable, "failed to compute next id", err)
	}
	return SuggestNextID(ids), nil
}

func (s *performanceSvc) GetRecord(ctx context.Context, store repository.Store, id string) (*model.PerformanceModel, error) {
	rec, err := store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindNotFound, "performance "+id+" not found", err)
		}
		return nil, newError(KindBackendUnavailable, "failed to load performance", err)
	}
	return rec, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func ptr[T any](v T) *T { return &v }
