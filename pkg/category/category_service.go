package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// categoriesSettingName is the key-value entry holding the user-edited
// category list as a JSON array of strings.
const categoriesSettingName = "userCategories"

type Service interface {
	// Read returns the persisted category list, or the fixed defaults when
	// nothing usable is stored. Reading never writes the defaults back.
	Read(ctx context.Context) ([]string, error)
	// Write sanitizes and persists a user-edited list and returns what was
	// actually stored. This is the only path that mutates category data.
	Write(ctx context.Context, raw []string) ([]string, error)
}

type ServiceImpl struct {
	repo SettingsRepo
}

func NewCategoryService(repo SettingsRepo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Read(ctx context.Context) ([]string, error) {
	stored, err := s.repo.Get(ctx, categoriesSettingName)
	if errors.Is(err, ErrSettingNotFound) {
		return DefaultCategories(), nil
	}
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal([]byte(stored), &categories); err != nil {
		// Stored value is unusable; the registry is non-critical, so fall
		// back to defaults instead of surfacing the decode failure.
		log.Warnf("could not decode stored categories, falling back to defaults: %v", err)
		return DefaultCategories(), nil
	}
	if len(categories) == 0 {
		return DefaultCategories(), nil
	}

	return categories, nil
}

func (s *ServiceImpl) Write(ctx context.Context, raw []string) ([]string, error) {
	sanitized := Sanitize(raw)

	encoded, err := json.Marshal(sanitized)
	if err != nil {
		return nil, fmt.Errorf("could not encode categories: %w", err)
	}

	if err := s.repo.Set(ctx, categoriesSettingName, string(encoded)); err != nil {
		return nil, err
	}

	return sanitized, nil
}
