package controllers

import (
	"net/http"

	"github.com/prakultomar-web/rabbitmq-server/internal/maintenance"
	"github.com/prakultomar-web/rabbitmq-server/internal/runtime"
)

// GeneralController handles health and node overview endpoints.
type GeneralController struct {
	rt *runtime.Runtime
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime) *GeneralController {
	return &GeneralController{rt: rt}
}

// RegisterRoutes registers general routes with the given mux.
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/healthz", c.handleHealth)
	mux.HandleFunc("/v1/overview", c.handleOverview)
}

// handleHealth returns the health status of the node's storage.
//
// Returns 200 OK with {"status": "ok"} if healthy, 503 Service Unavailable
// otherwise. The maintenance status is reported in the body but does not
// affect the status code; routers should use the gRPC health endpoint for
// serving decisions.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	self := c.rt.Membership().Self()
	writeJSON(w, map[string]string{
		"status":      "ok",
		"maintenance": string(c.rt.Maintenance().Status(r.Context(), self, maintenance.LocalRead)),
	})
}

// handleOverview reports the node's identity and cluster view.
func (c *GeneralController) handleOverview(w http.ResponseWriter, r *http.Request) {
	running := c.rt.Membership().RunningNodes()
	nodes := make([]string, 0, len(running))
	for _, n := range running {
		nodes = append(nodes, string(n))
	}
	writeJSON(w, map[string]any{
		"node":        string(c.rt.Membership().Self()),
		"running":     nodes,
		"connections": c.rt.Connections().CountLocal(),
	})
}
