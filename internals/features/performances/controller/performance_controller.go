// file: internals/features/performances/controller/performance_controller.go
package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	helper "performance_backend/internals/helpers"

	dto "performance_backend/internals/features/performances/dto"
	model "performance_backend/internals/features/performances/model"
	"performance_backend/internals/features/performances/repository"
	"performance_backend/internals/features/performances/service"
)

/* =========================
   Controller
   ========================= */

// StoreProvider hands out a store bound to one pooled connection for the
// duration of fn.
type StoreProvider interface {
	Scoped(ctx context.Context, fn func(repository.Store) error) error
}

type PerformanceController struct {
	Stores    StoreProvider
	Svc       service.PerformanceService
	Validator *validator.Validate
}

func NewPerformanceController(stores StoreProvider, svc service.PerformanceService) *PerformanceController {
	return &PerformanceController{
		Stores:    stores,
		Svc:       svc,
		Validator: dto.NewValidator(),
	}
}

/* =========================
   Small helpers
   ========================= */

// getID decodes the :id segment; ids are free text and arrive percent-encoded.
func (ctl *PerformanceController) getID(c *fiber.Ctx) (string, error) {
	raw, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		return "", errors.New("malformed id")
	}
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", errors.New("missing id")
	}
	return id, nil
}

// mapServiceError: service kind → HTTP status + message
func mapServiceError(err error) (int, string) {
	var se *service.Error
	if !errors.As(err, &se) {
		return http.StatusInternalServerError, err.Error()
	}
	switch se.Kind {
	case service.KindDuplicateIdentifier:
		return http.StatusConflict, se.Message
	case service.KindValidation:
		return http.StatusUnprocessableEntity, se.Message
	case service.KindNotFound:
		return http.StatusNotFound, se.Message
	case service.KindBackendUnavailable:
		return http.StatusServiceUnavailable, se.Message
	default:
		return http.StatusInternalServerError, se.Error()
	}
}

func writeServiceError(c *fiber.Ctx, err error) error {
	code, msg := mapServiceError(err)
	return helper.JsonError(c, code, msg)
}

// scoped runs fn with a request-bound store; a failed acquisition is a backend failure.
func (ctl *PerformanceController) scoped(c *fiber.Ctx, fn func(repository.Store) error) error {
	err := ctl.Stores.Scoped(c.UserContext(), fn)
	if err != nil && service.KindOf(err) == "" {
		log.Printf("[Performances] ERROR acquire connection: %v", err)
		return &service.Error{Kind: service.KindBackendUnavailable, Message: "storage backend unavailable", Err: err}
	}
	return err
}

/*
=========================================================

	LIST
	GET /api/performances
	Query: mode (all|trash), search_date
	=========================================================
*/
func (ctl *PerformanceController) List(c *fiber.Ctx) error {
	var q dto.ListPerformanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	q.Normalize()

	var (
		listing *service.Listing
		nextID  string
	)
	err := ctl.scoped(c, func(store repository.Store) error {
		var err error
		if listing, err = ctl.Svc.ListRecords(c.UserContext(), store, q.Mode, q.SearchDate); err != nil {
			return err
		}
		nextID, err = ctl.Svc.NextSuggestedID(c.UserContext(), store)
		return err
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonList(c, listing.View.Title, dto.FromModels(listing.Records), fiber.Map{
		"mode":         listing.View.Mode,
		"title":        listing.View.Title,
		"display_date": listing.View.DisplayDate,
		"today":        listing.Today,
		"next_id":      nextID,
	})
}

/*
=========================================================

	NEXT ID
	GET /api/performances/next-id
	=========================================================
*/
func (ctl *PerformanceController) NextID(c *fiber.Ctx) error {
	var nextID string
	err := ctl.scoped(c, func(store repository.Store) error {
		var err error
		nextID, err = ctl.Svc.NextSuggestedID(c.UserContext(), store)
		return err
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"next_id": nextID})
}

/*
=========================================================

	DETAIL
	GET /api/performances/:id
	=========================================================
*/
func (ctl *PerformanceController) Get(c *fiber.Ctx) error {
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var rec *model.PerformanceModel
	err = ctl.scoped(c, func(store repository.Store) error {
		var err error
		rec, err = ctl.Svc.GetRecord(c.UserContext(), store, id)
		return err
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(rec))
}

/*
=========================================================

	CREATE
	POST /api/performances
	Body: JSON / form CreatePerformanceRequest
	=========================================================
*/
func (ctl *PerformanceController) Create(c *fiber.Ctx) error {
	var req dto.CreatePerformanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	req.Normalize()
	if err := req.Validate(ctl.Validator); err != nil {
		if fe := dto.FieldErrors(err); fe != nil {
			return helper.JsonValidationError(c, fe)
		}
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var rec *model.PerformanceModel
	err := ctl.scoped(c, func(store repository.Store) error {
		var err error
		rec, err = ctl.Svc.CreateRecord(c.UserContext(), store, req.ToInput())
		return err
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonCreated(c, "Created", dto.FromModel(rec))
}

/*
=========================================================

	ACTION
	POST /api/performances/:id/actions
	Body: { action, new_date?, rejection_reason? }
	=========================================================
*/
func (ctl *PerformanceController) Action(c *fiber.Ctx) error {
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var req dto.ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	req.Normalize()

	var res *service.Result
	err = ctl.scoped(c, func(store repository.Store) error {
		var err error
		res, err = ctl.Svc.PerformAction(c.UserContext(), store, id, req.Action, req.ToPayload())
		return err
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	msg := "Updated"
	if res.Outcome == service.OutcomeIgnored {
		msg = "Unknown action, nothing changed"
	}
	return helper.JsonUpdated(c, msg, dto.FromResult(res))
}
