package handlers

import (
	"net/http"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/app"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/job"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/middleware"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/response"
)

type HireHandler struct {
	hires *app.HireService
}

func NewHireHandler(hires *app.HireService) *HireHandler {
	return &HireHandler{hires: hires}
}

type hireRequest struct {
	Salary         int        `json:"salary"`
	EmploymentType string     `json:"employment_type"`
	StartDate      *time.Time `json:"start_date"`
	Notes          string     `json:"notes"`
}

type hireStatusRequest struct {
	Status    string     `json:"status"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type hireRespondRequest struct {
	Accept bool `json:"accept"`
}

type hireListResponse struct {
	Hires []job.Hire    `json:"hires"`
	Stats app.HireStats `json:"stats"`
}

// Create handles POST /jobs/{id}/hires/{userId}.
func (h *HireHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	candidateID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req hireRequest
	// Terms are optional; an empty body means job defaults.
	if err := decodeJSONOptional(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.hires.Create(r.Context(), actor, jobID, candidateID, app.HireTerms{
		Salary:         req.Salary,
		EmploymentType: job.Type(req.EmploymentType),
		StartDate:      req.StartDate,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// UpdateStatus handles PATCH /jobs/{jobId}/hires/{hireId}/status.
func (h *HireHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := idFromPath(r, 4)
	if err != nil {
		response.Error(w, err)
		return
	}
	hireID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req hireStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	updated, err := h.hires.UpdateStatus(r.Context(), actor, jobID, hireID, job.HireStatus(req.Status), req.StartDate, req.EndDate)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

// ListByJob handles GET /jobs/{id}/hires.
func (h *HireHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
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
	hires, err := h.hires.ListByJob(r.Context(), actor, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, hireListResponse{Hires: hires, Stats: app.ComputeHireStats(hires)})
}

// ListMine handles GET /hires for the candidate.
func (h *HireHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	hires, err := h.hires.ListByCandidate(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, hireListResponse{Hires: hires, Stats: app.ComputeHireStats(hires)})
}

func (h *HireHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	hireID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.hires.Get(r.Context(), actor, hireID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *HireHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	hireID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	timeline, err := h.hires.Timeline(r.Context(), actor, hireID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, timeline)
}

// Respond handles POST /hires/{id}/respond.
func (h *HireHandler) Respond(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	hireID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req hireRespondRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.hires.RespondToOffer(r.Context(), actor, hireID, req.Accept)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
