package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/propside/portal-go/internal/domain/template"
	"github.com/propside/portal-go/internal/domain/user"
	"github.com/propside/portal-go/internal/notify"
	"github.com/propside/portal-go/internal/permission"
	"github.com/propside/portal-go/internal/repository"
	"gorm.io/datatypes"
	"k8s.io/klog/v2"
)

type TemplateService struct {
	Repos *repository.Repos
	Bus   *notify.ChangeBus
}

func NewTemplateService(repos *repository.Repos, bus *notify.ChangeBus) *TemplateService {
	return &TemplateService{Repos: repos, Bus: bus}
}

func (s *TemplateService) CreateTemplate(ctx context.Context, actor user.User, input template.CreateTemplateDTO) (template.Template, error) {
	if !permission.Allowed(actor.Role, permission.TemplateCreate) {
		return template.Template{}, ErrPermissionDenied
	}

	category := template.Category(input.Category)
	fields, err := validateTemplate(category, input.Fields, input.CommissionPercentage)
	if err != nil {
		return template.Template{}, err
	}

	t := template.Template{
		Name:                 input.Name,
		Description:          input.Description,
		Category:             category,
		Fields:               datatypes.NewJSONType(fields),
		CommissionPercentage: input.CommissionPercentage,
		CreatedBy:            actor.UID,
	}
	if err := s.Repos.Template.CreateTemplate(&t); err != nil {
		klog.Errorf("Failed to persist template: %v", err)
		return template.Template{}, err
	}

	s.publish(ctx, notify.ChangeCreated, t.TID)
	return t, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, actor user.User, id uint, input template.UpdateTemplateDTO) (template.Template, error) {
	if !permission.Allowed(actor.Role, permission.TemplateUpdate) {
		return template.Template{}, ErrPermissionDenied
	}

	t, err := s.Repos.Template.GetTemplateByID(id)
	if err != nil {
		return template.Template{}, ErrTemplateNotFound
	}

	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Category != nil {
		t.Category = template.Category(*input.Category)
	}
	if input.Fields != nil {
		t.Fields = datatypes.NewJSONType(input.Fields)
	}
	if input.CommissionPercentage != nil {
		t.CommissionPercentage = input.CommissionPercentage
	}

	fields, err := validateTemplate(t.Category, t.Fields.Data(), t.CommissionPercentage)
	if err != nil {
		return template.Template{}, err
	}
	t.Fields = datatypes.NewJSONType(fields)

	if err := s.Repos.Template.UpdateTemplate(&t); err != nil {
		klog.Errorf("Failed to update template %d: %v", id, err)
		return template.Template{}, err
	}

	s.publish(ctx, notify.ChangeUpdated, t.TID)
	return t, nil
}

// DeleteTemplate removes the template only. Documents and contracts issued
// from it keep their frozen field snapshots untouched.
func (s *TemplateService) DeleteTemplate(ctx context.Context, actor user.User, id uint) error {
	if !permission.Allowed(actor.Role, permission.TemplateDelete) {
		return ErrPermissionDenied
	}

	if _, err := s.Repos.Template.GetTemplateByID(id); err != nil {
		return ErrTemplateNotFound
	}
	if err := s.Repos.Template.DeleteTemplate(id); err != nil {
		klog.Errorf("Failed to delete template %d: %v", id, err)
		return err
	}

	s.publish(ctx, notify.ChangeDeleted, id)
	return nil
}

// AddTemplateField appends one field to the template's ordered field list.
func (s *TemplateService) AddTemplateField(ctx context.Context, actor user.User, id uint, f template.Field) (template.Template, error) {
	return s.patchFields(ctx, actor, id, func(fields []template.Field) ([]template.Field, error) {
		return template.AddField(fields, f), nil
	})
}

// UpdateTemplateField replaces the field carrying the same id.
func (s *TemplateService) UpdateTemplateField(ctx context.Context, actor user.User, id uint, f template.Field) (template.Template, error) {
	return s.patchFields(ctx, actor, id, func(fields []template.Field) ([]template.Field, error) {
		return template.UpdateField(fields, f), nil
	})
}

// RemoveTemplateField drops a field. Removing the last remaining field is
// rejected.
func (s *TemplateService) RemoveTemplateField(ctx context.Context, actor user.User, id uint, fieldID string) (template.Template, error) {
	return s.patchFields(ctx, actor, id, func(fields []template.Field) ([]template.Field, error) {
		out, err := template.RemoveField(fields, fieldID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return out, nil
	})
}

func (s *TemplateService) patchFields(ctx context.Context, actor user.User, id uint, edit func([]template.Field) ([]template.Field, error)) (template.Template, error) {
	if !permission.Allowed(actor.Role, permission.TemplateUpdate) {
		return template.Template{}, ErrPermissionDenied
	}

	t, err := s.Repos.Template.GetTemplateByID(id)
	if err != nil {
		return template.Template{}, ErrTemplateNotFound
	}

	edited, err := edit(t.Fields.Data())
	if err != nil {
		return template.Template{}, err
	}
	fields, err := validateTemplate(t.Category, edited, t.CommissionPercentage)
	if err != nil {
		return template.Template{}, err
	}
	t.Fields = datatypes.NewJSONType(fields)

	if err := s.Repos.Template.UpdateTemplate(&t); err != nil {
		klog.Errorf("Failed to update template %d: %v", id, err)
		return template.Template{}, err
	}

	s.publish(ctx, notify.ChangeUpdated, t.TID)
	return t, nil
}

func (s *TemplateService) GetTemplate(actor user.User, id uint) (template.Template, error) {
	if !permission.Allowed(actor.Role, permission.TemplateView) {
		return template.Template{}, ErrPermissionDenied
	}
	t, err := s.Repos.Template.GetTemplateByID(id)
	if err != nil {
		return template.Template{}, ErrTemplateNotFound
	}
	return t, nil
}

func (s *TemplateService) ListTemplates(actor user.User) ([]template.Template, error) {
	if !permission.Allowed(actor.Role, permission.TemplateView) {
		return nil, ErrPermissionDenied
	}
	return s.Repos.Template.ListTemplates()
}

func (s *TemplateService) ListTemplatesByCategory(actor user.User, category template.Category) ([]template.Template, error) {
	if !permission.Allowed(actor.Role, permission.TemplateView) {
		return nil, ErrPermissionDenied
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}
	return s.Repos.Template.ListTemplatesByCategory(category)
}

func (s *TemplateService) publish(ctx context.Context, action notify.ChangeAction, id uint) {
	if s.Bus == nil {
		return
	}
	event := notify.ChangeEvent{
		Collection: notify.CollectionTemplates,
		Action:     action,
		ID:         fmt.Sprintf("%d", id),
	}
	if err := s.Bus.Publish(ctx, notify.CollectionTemplates, event); err != nil {
		klog.Warningf("Template change notification failed: %v", err)
	}
}

// validateTemplate normalizes and checks a template's field list and
// commission. Fields without an id get a fresh one; duplicate ids, empty
// labels and unknown types are rejected.
func validateTemplate(category template.Category, fields []template.Field, commission *float64) ([]template.Field, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: template needs at least one field", ErrValidation)
	}

	out := make([]template.Field, len(fields))
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if strings.TrimSpace(f.Label) == "" {
			return nil, fmt.Errorf("%w: field %d has no label", ErrValidation, i)
		}
		if !f.Type.Valid() {
			return nil, fmt.Errorf("%w: field %q has unknown type %q", ErrValidation, f.Label, f.Type)
		}
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("%w: duplicate field id %q", ErrValidation, f.ID)
		}
		seen[f.ID] = true
		out[i] = f
	}

	if category == template.CategoryContracts {
		if commission == nil {
			return nil, fmt.Errorf("%w: contract templates require a commission percentage", ErrValidation)
		}
		if *commission < 0 || *commission > 100 {
			return nil, fmt.Errorf("%w: commission percentage must be between 0 and 100", ErrValidation)
		}
	}

	return out, nil
}
