package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/webstack-art/FormNest/internal/cache"
	"github.com/webstack-art/FormNest/internal/engine"
	"github.com/webstack-art/FormNest/internal/model"
	"github.com/webstack-art/FormNest/internal/repository"
)

// AnalyticsService serves aggregated reports, caching the pure aggregation
// result in Redis until the next accepted or deleted submission.
type AnalyticsService struct {
	forms          repository.FormRepo
	submissions    repository.SubmissionRepo
	analyticsCache cache.AnalyticsCache
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(
	forms repository.FormRepo,
	submissions repository.SubmissionRepo,
	analyticsCache cache.AnalyticsCache,
) *AnalyticsService {
	return &AnalyticsService{
		forms:          forms,
		submissions:    submissions,
		analyticsCache: analyticsCache,
	}
}

// Report returns the analytics report for a form after an ownership check.
func (s *AnalyticsService) Report(ctx context.Context, formID, ownerID string) (*model.AnalyticsReport, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	if form.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	// Cache errors degrade to recomputation, never to request failure.
	cached, err := s.analyticsCache.GetReport(ctx, formID)
	if err != nil {
		logrus.WithError(err).WithField("formId", formID).Warn("analytics cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	submissions, err := s.submissions.GetByFormID(ctx, formID)
	if err != nil {
		return nil, err
	}
	report := engine.Aggregate(form, deref(submissions))

	if err := s.analyticsCache.SetReport(ctx, formID, &report); err != nil {
		logrus.WithError(err).WithField("formId", formID).Warn("analytics cache write failed")
	}
	return &report, nil
}

func deref(submissions []*model.Submission) []model.Submission {
	out := make([]model.Submission, 0, len(submissions))
	for _, s := range submissions {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}
