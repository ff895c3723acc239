package handlers

import (
	"context"
	"net/http"

	"hospital-portal/core/faqs"
	"hospital-portal/core/store"
	"hospital-portal/core/utils"
)

type FAQService interface {
	List(ctx context.Context) ([]store.FAQ, error)
	Get(ctx context.Context, id int64) (*store.FAQ, error)
	ListByCategory(ctx context.Context, category string) ([]store.FAQ, error)
	Search(ctx context.Context, keyword string) ([]store.FAQ, error)
	Add(ctx context.Context, in faqs.Input) (*store.FAQ, error)
	Update(ctx context.Context, id int64, in faqs.Input) (*store.FAQ, error)
	Delete(ctx context.Context, id int64) error
}

type FAQsHandler struct {
	svc    FAQService
	logger *utils.Logger
}

func NewFAQsHandler(svc FAQService, logger *utils.Logger) *FAQsHandler {
	return &FAQsHandler{svc: svc, logger: logger}
}

func (h *FAQsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, msgFAQNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h *FAQsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgFAQNotFound)
		return
	}
	faq, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, msgFAQNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, faq)
}

func (h *FAQsHandler) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Search(r.Context(), urlParam(r, "keyword"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, msgFAQNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h *FAQsHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListByCategory(r.Context(), urlParam(r, "category"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, msgFAQNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h *FAQsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in faqs.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	faq, err := h.svc.Add(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, h.logger, err, msgFAQNotFound)
		return
	}
	WriteJSON(w, http.StatusCreated, faq)
}

func (h *FAQsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgFAQNotFound)
		return
	}
	var in faqs.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	faq, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, h.logger, err, msgFAQNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, faq)
}

func (h *FAQsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgFAQNotFound)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, h.logger, err, msgFAQNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, deletedBody{Message: "faq deleted", DeletedID: id})
}
