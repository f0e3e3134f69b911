package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/prakultomar-web/rabbitmq-server/internal/queues"
	"github.com/prakultomar-web/rabbitmq-server/internal/runtime"
)

// QueuesController manages the node's queue records.
type QueuesController struct {
	rt *runtime.Runtime
}

// NewQueuesController creates a new queues controller.
func NewQueuesController(rt *runtime.Runtime) *QueuesController {
	return &QueuesController{rt: rt}
}

// RegisterRoutes registers queue routes with the given mux.
func (c *QueuesController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/queues", c.handleList)
	mux.HandleFunc("/v1/queues/create", c.handleCreate)
}

type queueCreateReq struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// handleCreate declares a queue on this node. Kind is "classic" or
// "quorum"; classic is the default.
func (c *QueuesController) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req queueCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Queue name is required")
		return
	}
	kind := queues.KindClassic
	switch req.Kind {
	case "", string(queues.KindClassic):
	case string(queues.KindQuorum):
		kind = queues.KindQuorum
	default:
		writeError(w, http.StatusBadRequest, "Unknown queue kind")
		return
	}
	q, err := c.rt.Queues().Ensure(req.Name, kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create queue")
		return
	}
	writeCreated(w, q)
}

// handleList returns the queues hosted on this node.
func (c *QueuesController) handleList(w http.ResponseWriter, r *http.Request) {
	qs, err := c.rt.Queues().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list queues")
		return
	}
	if qs == nil {
		qs = []queues.Queue{}
	}
	writeJSON(w, map[string]any{"queues": qs})
}
