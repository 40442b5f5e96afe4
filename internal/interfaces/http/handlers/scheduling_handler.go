package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/application/scheduling"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/workorder"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// SchedulingHandler serves the engine's three operations.
type SchedulingHandler struct {
	engine     *scheduling.Engine
	monitor    *scheduling.Monitor
	compliance *scheduling.ComplianceService
}

// NewSchedulingHandler builds the handler.
func NewSchedulingHandler(engine *scheduling.Engine, monitor *scheduling.Monitor, compliance *scheduling.ComplianceService) *SchedulingHandler {
	return &SchedulingHandler{engine: engine, monitor: monitor, compliance: compliance}
}

type generateResponse struct {
	ScopeID    common.ScopeID         `json:"scope_id"`
	Created    int                    `json:"created"`
	WorkOrders []*workorder.WorkOrder `json:"work_orders"`
}

// Generate runs one scheduling batch for the scope.
//
//	POST /api/v1/scopes/:scope_id/schedule/generate
func (h *SchedulingHandler) Generate(c *gin.Context) {
	scopeID := common.ScopeID(c.Param("scope_id"))

	created, err := h.engine.GenerateWorkOrders(c.Request.Context(), scopeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, generateResponse{
		ScopeID:    scopeID,
		Created:    len(created),
		WorkOrders: created,
	})
}

type escalateResponse struct {
	ScopeID    common.ScopeID         `json:"scope_id"`
	Escalated  int                    `json:"escalated"`
	WorkOrders []*workorder.WorkOrder `json:"work_orders"`
}

// Escalate runs one escalation pass for the scope.
//
//	POST /api/v1/scopes/:scope_id/schedule/escalate
func (h *SchedulingHandler) Escalate(c *gin.Context) {
	scopeID := common.ScopeID(c.Param("scope_id"))

	escalated, err := h.monitor.EscalateOverdue(c.Request.Context(), scopeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, escalateResponse{
		ScopeID:    scopeID,
		Escalated:  len(escalated),
		WorkOrders: escalated,
	})
}

// Compliance returns the compliance summary for one asset.
//
//	GET /api/v1/equipment/:equipment_id/compliance
func (h *SchedulingHandler) Compliance(c *gin.Context) {
	equipmentID := common.ID(c.Param("equipment_id"))

	record, err := h.compliance.GetComplianceSummary(c.Request.Context(), equipmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
