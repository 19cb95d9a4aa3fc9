package instance

import (
	"fmt"
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/vhpires/groupcast/internal/api/respond"
	"github.com/vhpires/groupcast/internal/gateway"
)

// Handler is a thin passthrough to the messaging provider for group
// synchronization: the dashboard lists an instance's groups before
// targeting a schedule at them.
type Handler struct {
	provider gateway.Provider
}

// NewHandler creates a new Handler instance.
func NewHandler(p gateway.Provider) *Handler {
	return &Handler{provider: p}
}

// GetGroups handles GET requests for the groups of an instance.
func (h *Handler) GetGroups(c *ginext.Context) {
	instanceID := c.Param("id")
	if instanceID == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing instance id"))
		return
	}

	groups, err := h.provider.GetGroups(c.Request.Context(), instanceID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("instance_id", instanceID).Msg("failed to fetch instance groups")
		respond.Fail(c.Writer, http.StatusBadGateway, fmt.Errorf("failed to fetch groups"))
		return
	}

	respond.OK(c.Writer, groups)
}

// Connect handles POST requests to (re)connect an instance session.
func (h *Handler) Connect(c *ginext.Context) {
	instanceID := c.Param("id")
	if instanceID == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing instance id"))
		return
	}

	if err := h.provider.Connect(c.Request.Context(), instanceID); err != nil {
		zlog.Logger.Error().Err(err).Str("instance_id", instanceID).Msg("failed to connect instance")
		respond.Fail(c.Writer, http.StatusBadGateway, fmt.Errorf("failed to connect instance"))
		return
	}

	respond.OK(c.Writer, "connect requested")
}
