package handlers

import (
	"net/http"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/app"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/employment"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/response"
)

type EmploymentHandler struct {
	employments *app.EmploymentService
}

func NewEmploymentHandler(employments *app.EmploymentService) *EmploymentHandler {
	return &EmploymentHandler{employments: employments}
}

type employmentUpdateRequest struct {
	Status  string     `json:"status"`
	EndDate *time.Time `json:"end_date"`
}

// List dispatches on the actor's role: employers see records they
// employ on, everyone else their own employment history.
func (h *EmploymentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	var items []employment.Employment
	switch actor.Role {
	case user.RoleEmployer:
		items, err = h.employments.ListByEmployer(r.Context(), actor.ID)
	default:
		items, err = h.employments.ListByEmployee(r.Context(), actor.ID)
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *EmploymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	employmentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req employmentUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" && req.EndDate == nil {
		response.Error(w, common.NewError(common.CodeValidation, "nothing to update", nil))
		return
	}
	updated, err := h.employments.Update(r.Context(), actor, employmentID, employment.Status(req.Status), req.EndDate)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
