package controllers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prakultomar-web/rabbitmq-server/internal/runtime"
	logpkg "github.com/prakultomar-web/rabbitmq-server/pkg/log"
)

// ControllerRegistry manages all HTTP controllers.
type ControllerRegistry struct {
	general     *GeneralController
	maintenance *MaintenanceController
	queues      *QueuesController
}

// NewControllerRegistry creates a new controller registry.
func NewControllerRegistry(rt *runtime.Runtime, logger logpkg.Logger) *ControllerRegistry {
	return &ControllerRegistry{
		general:     NewGeneralController(rt),
		maintenance: NewMaintenanceController(rt, logger),
		queues:      NewQueuesController(rt),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux,
// plus the Prometheus metrics endpoint.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.maintenance.RegisterRoutes(mux)
	r.queues.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
}
