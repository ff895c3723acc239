// Package faqs implements the FAQ knowledge-base operations on top of the record store.
package faqs

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-portal/core/metrics"
	"hospital-portal/core/store"
	"hospital-portal/core/validation"
)

const entity = "faq"

type Service struct {
	store   store.FAQsStore
	metrics *metrics.Metrics
}

func NewService(st store.FAQsStore, m *metrics.Metrics) *Service {
	return &Service{store: st, metrics: m}
}

// List returns every FAQ, newest first.
func (s *Service) List(ctx context.Context) ([]store.FAQ, error) {
	start := time.Now()
	items, err := s.store.ListFAQs(ctx, store.FAQFilter{})
	s.observe("list", err, start)
	return items, err
}

func (s *Service) Get(ctx context.Context, id int64) (*store.FAQ, error) {
	start := time.Now()
	faq, err := s.store.GetFAQ(ctx, id)
	s.observe("get", err, start)
	return faq, err
}

// ListByCategory is an exact, case-sensitive match on category.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]store.FAQ, error) {
	start := time.Now()
	items, err := s.store.ListFAQs(ctx, store.FAQFilter{Category: category})
	s.observe("list_by_category", err, start)
	return items, err
}

// Search matches keyword as a substring of question, answer or category.
// A blank keyword returns everything.
func (s *Service) Search(ctx context.Context, keyword string) ([]store.FAQ, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.List(ctx)
	}
	start := time.Now()
	items, err := s.store.ListFAQs(ctx, store.FAQFilter{Search: keyword})
	s.observe("search", err, start)
	return items, err
}

func (s *Service) Add(ctx context.Context, in Input) (*store.FAQ, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	start := time.Now()
	faq, err := s.store.CreateFAQ(ctx, &store.FAQ{Category: in.Category, Question: in.Question, Answer: in.Answer})
	s.observe("create", err, start)
	return faq, err
}

// Update fully replaces an existing FAQ; a missing id is ErrNotFound, never an insert.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*store.FAQ, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	start := time.Now()
	faq, err := s.store.UpdateFAQ(ctx, &store.FAQ{ID: id, Category: in.Category, Question: in.Question, Answer: in.Answer})
	s.observe("update", err, start)
	return faq, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.store.DeleteFAQ(ctx, id)
	s.observe("delete", err, start)
	return err
}

func (s *Service) validate(in Input) error {
	err := Validate(in)
	var verr *validation.Error
	if errors.As(err, &verr) {
		s.metrics.ValidationFailed(entity, verr.Field, verr.Rule)
	}
	return err
}

func (s *Service) observe(op string, err error, start time.Time) {
	s.metrics.ObserveStore(entity, op, err, errors.Is(err, store.ErrNotFound), time.Since(start))
}
