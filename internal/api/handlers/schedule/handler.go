package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vhpires/groupcast/internal/api/respond"
	"github.com/vhpires/groupcast/internal/config"
	"github.com/vhpires/groupcast/internal/model"
	deliveryrepo "github.com/vhpires/groupcast/internal/repository/delivery"
	schedulerepo "github.com/vhpires/groupcast/internal/repository/schedule"
	schedulesvc "github.com/vhpires/groupcast/internal/service/schedule"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/schedule/mock.go -package=mocks

type scheduleService interface {
	Activate(ctx context.Context, strategy retry.Strategy, scheduleID uuid.UUID, groupIDs []string) ([]model.Delivery, error)
	Deactivate(ctx context.Context, strategy retry.Strategy, scheduleID uuid.UUID) error
}

type deliveryService interface {
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]model.Delivery, error)
}

// Handler handles the schedule activation boundary: the only API
// surface that enqueues dispatch work.
type Handler struct {
	schedules  scheduleService
	deliveries deliveryService
	validator  *validator.Validate
	cfg        *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(s scheduleService, d deliveryService, v *validator.Validate, cfg *config.Config) *Handler {
	return &Handler{schedules: s, deliveries: d, validator: v, cfg: cfg}
}

// ActivateRequest carries the target groups of an activation.
type ActivateRequest struct {
	GroupIDs []string `json:"group_ids" validate:"required,min=1,dive,required"`
}

// Activate handles POST requests to activate a schedule and create its
// deliveries.
func (h *Handler) Activate(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ActivateRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	deliveries, err := h.schedules.Activate(c.Request.Context(), h.cfg.Retry, id, req.GroupIDs)
	if err != nil {
		if errors.Is(err, schedulerepo.ErrScheduleNotFound) {
			zlog.Logger.Warn().Str("schedule_id", id.String()).Msg("schedule not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("schedule not found"))
			return
		}
		if errors.Is(err, schedulesvc.ErrNoTargetGroups) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("schedule_id", id.String()).Msg("failed to activate schedule")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, deliveries)
}

// Deactivate handles POST requests to deactivate a schedule.
func (h *Handler) Deactivate(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.schedules.Deactivate(c.Request.Context(), h.cfg.Retry, id); err != nil {
		if errors.Is(err, schedulerepo.ErrScheduleNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("schedule not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("schedule_id", id.String()).Msg("failed to deactivate schedule")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "schedule deactivated")
}

// ListDeliveries handles GET requests for all deliveries of a schedule.
func (h *Handler) ListDeliveries(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deliveries, err := h.deliveries.ListBySchedule(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, deliveryrepo.ErrNoDeliveriesFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("no deliveries found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("schedule_id", id.String()).Msg("failed to list deliveries")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, deliveries)
}

func parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	return id, true
}
