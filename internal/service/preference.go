package service

import (
	"context"
	"fmt"

	"doccenter/internal/model"
)

// PreferenceService persists UI preferences.
type PreferenceService interface {
	// ViewMode returns the document center layout, ViewTable when unset or invalid.
	ViewMode(ctx context.Context) (model.ViewMode, error)
	SetViewMode(ctx context.Context, mode model.ViewMode) error
}

type preferenceService struct {
	base
}

// NewPreferenceService constructs a new PreferenceService.
func NewPreferenceService(d Deps) PreferenceService {
	return &preferenceService{base: newBase(d)}
}

func (s *preferenceService) ViewMode(ctx context.Context) (model.ViewMode, error) {
	v, ok, err := s.Preferences.Get(ctx, model.ViewModeKey)
	if err != nil {
		return "", err
	}
	if m := model.ViewMode(v); ok && m.Valid() {
		return m, nil
	}
	return model.ViewTable, nil
}

func (s *preferenceService) SetViewMode(ctx context.Context, mode model.ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}
	return s.Preferences.Set(ctx, model.ViewModeKey, string(mode))
}
