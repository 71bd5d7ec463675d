package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/webstack-art/FormNest/internal/cache"
	"github.com/webstack-art/FormNest/internal/engine"
	"github.com/webstack-art/FormNest/internal/model"
	"github.com/webstack-art/FormNest/internal/repository"
)

var (
	ErrLoginRequired      = errors.New("this form requires login")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// SubmitRequest carries one candidate submission into the intake pipeline.
type SubmitRequest struct {
	FormID       string
	Answers      []model.Answer
	RespondentID string
	IPAddress    string
	UserAgent    string
}

// SubmissionService runs the submission intake pipeline around the pure
// validation engine: load the form, snapshot the stored count, validate,
// persist on acceptance, bump the form counter, drop the cached analytics
// and notify live viewers.
type SubmissionService struct {
	forms          repository.FormRepo
	submissions    repository.SubmissionRepo
	analyticsCache cache.AnalyticsCache
	broadcaster    Broadcaster
	now            func() time.Time
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(
	forms repository.FormRepo,
	submissions repository.SubmissionRepo,
	analyticsCache cache.AnalyticsCache,
) *SubmissionService {
	return &SubmissionService{
		forms:          forms,
		submissions:    submissions,
		analyticsCache: analyticsCache,
		now:            time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events.
func (s *SubmissionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates and, on acceptance, stores a submission. A rejected
// submission is reported through the returned ValidationResult, not through
// the error value; the error covers collaborator failures only.
func (s *SubmissionService) Submit(ctx context.Context, req *SubmitRequest) (*model.Submission, *model.ValidationResult, error) {
	form, err := s.forms.GetByID(ctx, req.FormID)
	if err != nil {
		return nil, nil, fmt.Errorf("load form: %w", err)
	}
	if form == nil {
		return nil, nil, ErrFormNotFound
	}

	if form.Settings.RequireLogin && req.RespondentID == "" {
		return nil, nil, ErrLoginRequired
	}

	// Snapshot of the stored count. Two concurrent submissions near the
	// limit can read the same snapshot and both pass; the $inc below is
	// atomic but happens after the decision. Accepted trade-off of a pure
	// validator (the engine tests pin this behavior down).
	count, err := s.submissions.CountByFormID(ctx, req.FormID)
	if err != nil {
		return nil, nil, fmt.Errorf("count submissions: %w", err)
	}

	result := engine.Validate(form, req.Answers, s.now(), count)
	if !result.Accepted {
		logrus.WithFields(logrus.Fields{
			"formId":     req.FormID,
			"violations": len(result.Violations),
		}).Debug("submission rejected")
		return nil, &result, nil
	}

	submission := &model.Submission{
		FormID:       req.FormID,
		Answers:      result.NormalizedAnswers,
		RespondentID: req.RespondentID,
		IPAddress:    req.IPAddress,
		UserAgent:    req.UserAgent,
		SubmittedAt:  s.now(),
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, nil, fmt.Errorf("store submission: %w", err)
	}

	// Post-acceptance side effects. The submission is already durable;
	// failures here are logged, not surfaced to the respondent.
	if err := s.forms.IncrementResponseCount(ctx, req.FormID, 1); err != nil {
		logrus.WithError(err).WithField("formId", req.FormID).Warn("failed to bump response counter")
	}
	if err := s.analyticsCache.Invalidate(ctx, req.FormID); err != nil {
		logrus.WithError(err).WithField("formId", req.FormID).Warn("failed to invalidate analytics cache")
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToViewers(req.FormID, "new_response", submission)
	}

	logrus.WithFields(logrus.Fields{
		"formId":       req.FormID,
		"submissionId": submission.ID,
	}).Info("submission accepted")
	return submission, &result, nil
}

// ListByForm returns a form's submissions, newest first, after an ownership
// check.
func (s *SubmissionService) ListByForm(ctx context.Context, formID, ownerID string) ([]*model.Submission, error) {
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
	return s.submissions.GetByFormID(ctx, formID)
}

// Delete removes one submission and decrements the form counter.
func (s *SubmissionService) Delete(ctx context.Context, submissionID, ownerID string) error {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}
	if submission == nil {
		return ErrSubmissionNotFound
	}

	form, err := s.forms.GetByID(ctx, submission.FormID)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrFormNotFound
	}
	if form.OwnerID != ownerID {
		return ErrNotOwner
	}

	if err := s.submissions.Delete(ctx, submissionID); err != nil {
		return err
	}
	if err := s.forms.IncrementResponseCount(ctx, submission.FormID, -1); err != nil {
		logrus.WithError(err).WithField("formId", submission.FormID).Warn("failed to decrement response counter")
	}
	if err := s.analyticsCache.Invalidate(ctx, submission.FormID); err != nil {
		logrus.WithError(err).WithField("formId", submission.FormID).Warn("failed to invalidate analytics cache")
	}
	return nil
}
