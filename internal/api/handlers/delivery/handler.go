package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vhpires/groupcast/internal/api/respond"
	"github.com/vhpires/groupcast/internal/config"
	"github.com/vhpires/groupcast/internal/model"
	deliveryrepo "github.com/vhpires/groupcast/internal/repository/delivery"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/delivery/mock.go -package=mocks

type deliveryService interface {
	GetStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.DeliveryStatus, error)
}

// Handler exposes delivery status reads. Delivery outcomes are async;
// this endpoint is how they become visible.
type Handler struct {
	service deliveryService
	cfg     *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(s deliveryService, cfg *config.Config) *Handler {
	return &Handler{service: s, cfg: cfg}
}

// GetStatus handles GET requests for the status of one delivery.
func (h *Handler) GetStatus(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	status, err := h.service.GetStatusByID(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, deliveryrepo.ErrDeliveryNotFound) {
			zlog.Logger.Warn().Str("delivery_id", id.String()).Msg("delivery not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("delivery not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("delivery_id", id.String()).Msg("failed to get delivery status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, status)
}
