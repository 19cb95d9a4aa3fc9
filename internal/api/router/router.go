package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/vhpires/groupcast/internal/api/handlers/delivery"
	"github.com/vhpires/groupcast/internal/api/handlers/instance"
	"github.com/vhpires/groupcast/internal/api/handlers/schedule"
	"github.com/vhpires/groupcast/internal/middlewares"
)

// New builds the API surface around the dispatch engine: schedule
// activation (the enqueue boundary), delivery status reads, and the
// instance group-sync passthrough.
func New(schedules *schedule.Handler, deliveries *delivery.Handler, instances *instance.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api")
	{
		api.POST("/schedules/:id/activate", schedules.Activate)
		api.POST("/schedules/:id/deactivate", schedules.Deactivate)
		api.GET("/schedules/:id/deliveries", schedules.ListDeliveries)

		api.GET("/deliveries/:id", deliveries.GetStatus)

		api.GET("/instances/:id/groups", instances.GetGroups)
		api.POST("/instances/:id/connect", instances.Connect)
	}

	return e
}
