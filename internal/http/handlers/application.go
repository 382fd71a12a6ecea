package handlers

import (
	"net/http"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/app"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/application"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/middleware"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
}

func NewApplicationHandler(applications *app.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type applicationStatusRequest struct {
	Status  string     `json:"status"`
	Salary  int        `json:"salary"`
	Terms   string     `json:"terms"`
	EndDate *time.Time `json:"end_date"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applyRequest
	// An empty body is a bare apply without a cover letter.
	if err := decodeJSONOptional(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.applications.Apply(r.Context(), userID, jobID, req.CoverLetter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// List dispatches on the actor's role: apprentices see their own
// applications, employers the applications to their jobs.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	var items []application.Application
	switch actor.Role {
	case user.RoleEmployer:
		items, err = h.applications.ListByEmployer(r.Context(), actor.ID)
	default:
		items, err = h.applications.ListByApprentice(r.Context(), actor.ID)
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByJob(r.Context(), actor, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applicationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), actor, applicationID, application.Status(req.Status), app.AcceptTerms{
		Salary:  req.Salary,
		Terms:   req.Terms,
		EndDate: req.EndDate,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
