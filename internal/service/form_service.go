package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/webstack-art/FormNest/internal/engine"
	"github.com/webstack-art/FormNest/internal/model"
	"github.com/webstack-art/FormNest/internal/repository"
)

var (
	ErrFormNotFound  = errors.New("form not found")
	ErrNotOwner      = errors.New("form does not belong to this host")
	ErrInvalidSchema = errors.New("invalid form schema")
)

// FormService handles form authoring. It owns the schema well-formedness
// contract: everything the submission validator assumes about a schema is
// enforced here, at save time.
type FormService struct {
	forms       repository.FormRepo
	broadcaster Broadcaster
}

// NewFormService creates a new form service.
func NewFormService(forms repository.FormRepo) *FormService {
	return &FormService{forms: forms}
}

// SetBroadcaster sets the broadcaster for WebSocket events.
func (s *FormService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create validates and persists a new form schema.
func (s *FormService) Create(ctx context.Context, form *model.FormSchema) (string, error) {
	if err := ValidateSchema(form); err != nil {
		return "", err
	}
	if form.Settings.SubmitButtonText == "" {
		form.Settings.SubmitButtonText = "Submit"
	}
	return s.forms.Create(ctx, form)
}

// Update validates the new schema and persists it, keeping ownership and the
// response counter intact.
func (s *FormService) Update(ctx context.Context, form *model.FormSchema) error {
	existing, err := s.forms.GetByID(ctx, form.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFormNotFound
	}
	if existing.OwnerID != form.OwnerID {
		return ErrNotOwner
	}
	if err := ValidateSchema(form); err != nil {
		return err
	}
	return s.forms.Update(ctx, form)
}

// GetByID returns a form, or ErrFormNotFound.
func (s *FormService) GetByID(ctx context.Context, id string) (*model.FormSchema, error) {
	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// ListByOwner returns all forms of a host, newest first.
func (s *FormService) ListByOwner(ctx context.Context, ownerID string) ([]*model.FormSchema, error) {
	return s.forms.GetByOwnerID(ctx, ownerID)
}

// Delete removes a form after an ownership check.
func (s *FormService) Delete(ctx context.Context, id, ownerID string) error {
	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrFormNotFound
	}
	if form.OwnerID != ownerID {
		return ErrNotOwner
	}
	if err := s.forms.Delete(ctx, id); err != nil {
		return err
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToViewers(id, "form_deleted", map[string]string{"formId": id})
		s.broadcaster.DisconnectForm(id)
	}
	return nil
}

// ValidateSchema checks a form schema's well-formedness: known field types,
// unique ids, labels present, option lists exactly on option-bounded fields
// with unique values, and conditional rules that reference real fields
// without self-references or cycles. All problems are accumulated so an
// author sees every one in a single round trip.
func ValidateSchema(form *model.FormSchema) error {
	var result *multierror.Error

	if form.Title == "" {
		result = multierror.Append(result, errors.New("form title must not be empty"))
	}
	if len(form.Fields) == 0 {
		result = multierror.Append(result, errors.New("form must have at least one field"))
	}

	seen := make(map[string]struct{}, len(form.Fields))
	for i := range form.Fields {
		f := &form.Fields[i]

		if f.ID == "" {
			result = multierror.Append(result, fmt.Errorf("field %d has no id", i))
			continue
		}
		if _, dup := seen[f.ID]; dup {
			result = multierror.Append(result, fmt.Errorf("duplicate field id %q", f.ID))
		}
		seen[f.ID] = struct{}{}

		if !engine.KnownType(f.Type) {
			result = multierror.Append(result, fmt.Errorf("field %q has unknown type %q", f.ID, f.Type))
		}
		if f.Label == "" {
			result = multierror.Append(result, fmt.Errorf("field %q has no label", f.ID))
		}

		if engine.IsOptionBounded(f.Type) {
			if len(f.Options) == 0 {
				result = multierror.Append(result, fmt.Errorf("field %q needs a non-empty option list", f.ID))
			}
			optionValues := make(map[string]struct{}, len(f.Options))
			for _, o := range f.Options {
				if _, dup := optionValues[o.Value]; dup {
					result = multierror.Append(result, fmt.Errorf("field %q has duplicate option value %q", f.ID, o.Value))
				}
				optionValues[o.Value] = struct{}{}
			}
		} else if len(f.Options) > 0 {
			result = multierror.Append(result, fmt.Errorf("field %q of type %q must not carry options", f.ID, f.Type))
		}
	}

	for i := range form.Fields {
		f := &form.Fields[i]
		rule := f.ConditionalLogic
		if rule == nil {
			continue
		}
		if rule.Action != model.ActionShow && rule.Action != model.ActionHide {
			result = multierror.Append(result, fmt.Errorf("field %q has unknown rule action %q", f.ID, rule.Action))
		}
		if rule.ConditionFieldID == f.ID {
			result = multierror.Append(result, fmt.Errorf("field %q references itself in its conditional rule", f.ID))
			continue
		}
		if _, ok := seen[rule.ConditionFieldID]; !ok {
			result = multierror.Append(result, fmt.Errorf("field %q references unknown field %q", f.ID, rule.ConditionFieldID))
		}
	}

	for _, cycle := range ruleCycles(form) {
		result = multierror.Append(result, fmt.Errorf("conditional rules form a cycle: %v", cycle))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSchema, err)
	}
	return nil
}

// ruleCycles walks the conditional dependency graph (field -> field it
// depends on) and reports every cycle once. The one-hop evaluator would not
// recurse through a cycle at runtime, but a cyclic schema is still an
// authoring mistake and is rejected here.
func ruleCycles(form *model.FormSchema) [][]string {
	dependsOn := make(map[string]string, len(form.Fields))
	for i := range form.Fields {
		f := &form.Fields[i]
		if f.ConditionalLogic != nil {
			dependsOn[f.ID] = f.ConditionalLogic.ConditionFieldID
		}
	}

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(dependsOn))
	var cycles [][]string

	for i := range form.Fields {
		start := form.Fields[i].ID
		if state[start] != unvisited {
			continue
		}

		var path []string
		node := start
		for {
			if state[node] == inStack {
				// Found the cycle entry point; slice the path from there.
				for j, id := range path {
					if id == node {
						cycles = append(cycles, append([]string(nil), path[j:]...))
						break
					}
				}
				break
			}
			if state[node] == done {
				break
			}
			state[node] = inStack
			path = append(path, node)
			next, ok := dependsOn[node]
			if !ok {
				break
			}
			node = next
		}
		for _, id := range path {
			state[id] = done
		}
	}

	return cycles
}
