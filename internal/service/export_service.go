package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/webstack-art/FormNest/internal/engine"
	"github.com/webstack-art/FormNest/internal/model"
	"github.com/webstack-art/FormNest/internal/repository"
)

// ExportService streams a form's submissions as CSV. The row projection is
// the engine's; this service only owns the CSV plumbing and ownership check.
type ExportService struct {
	forms       repository.FormRepo
	submissions repository.SubmissionRepo
}

// NewExportService creates a new export service.
func NewExportService(forms repository.FormRepo, submissions repository.SubmissionRepo) *ExportService {
	return &ExportService{forms: forms, submissions: submissions}
}

// WriteCSV writes the export of one form to w: a header row, then one row
// per submission in storage order.
func (s *ExportService) WriteCSV(ctx context.Context, formID, ownerID string, w io.Writer) error {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrFormNotFound
	}
	if form.OwnerID != ownerID {
		return ErrNotOwner
	}

	submissions, err := s.submissions.GetByFormID(ctx, formID)
	if err != nil {
		return err
	}

	subs := make([]model.Submission, 0, len(submissions))
	for _, sub := range submissions {
		subs = append(subs, *sub)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(engine.ExportHeader(form)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range engine.ExportRows(form, subs) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
