package handlers

import (
	"context"
	"net/http"

	"hospital-portal/core/incidents"
	"hospital-portal/core/store"
	"hospital-portal/core/utils"
)

type IncidentService interface {
	List(ctx context.Context) ([]store.IncidentReport, error)
	Get(ctx context.Context, id int64) (*store.IncidentReport, error)
	Search(ctx context.Context, keyword string) ([]store.IncidentReport, error)
	Add(ctx context.Context, in incidents.Input) (*store.IncidentReport, error)
	Delete(ctx context.Context, id int64) error
}

type IncidentsHandler struct {
	svc    IncidentService
	logger *utils.Logger
}

func NewIncidentsHandler(svc IncidentService, logger *utils.Logger) *IncidentsHandler {
	return &IncidentsHandler{svc: svc, logger: logger}
}

func (h *IncidentsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, msgReportNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h *IncidentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgReportNotFound)
		return
	}
	report, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, msgReportNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (h *IncidentsHandler) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Search(r.Context(), urlParam(r, "keyword"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, msgReportNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h *IncidentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in incidents.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	report, err := h.svc.Add(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, h.logger, err, msgReportNotFound)
		return
	}
	WriteJSON(w, http.StatusCreated, report)
}

func (h *IncidentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgReportNotFound)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, h.logger, err, msgReportNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, deletedBody{Message: "incident report deleted", DeletedID: id})
}
