package service

import (
	"context"
	"strings"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
	"github.com/Lixing-Zhang/restaurant-api/internal/repository"
	"github.com/Lixing-Zhang/restaurant-api/internal/validation"
)

// MenuService handles business logic for the menu catalog
type MenuService struct {
	repo      repository.MenuRepository
	validator *validation.Validator
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuRepository, validator *validation.Validator) *MenuService {
	return &MenuService{
		repo:      repo,
		validator: validator,
	}
}

// ListMenu returns the catalog narrowed by filter. Blank text filters are ignored.
func (s *MenuService) ListMenu(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	if strings.TrimSpace(filter.Query) == "" {
		filter.Query = ""
	}
	if strings.TrimSpace(string(filter.Category)) == "" {
		filter.Category = ""
	}
	return s.repo.List(ctx, filter)
}

// GetMenuItem returns a menu item by ID
func (s *MenuService) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateMenuItem validates req and stores a new item. A failed validation
// returns validation.Errors and writes nothing.
func (s *MenuService) CreateMenuItem(ctx context.Context, req models.CreateMenuItemRequest) (*models.MenuItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenuItem overwrites an existing item. Validation runs before the
// existence check, so an invalid body for an unknown id is still a
// validation error. Past orders keep their frozen prices.
func (s *MenuService) UpdateMenuItem(ctx context.Context, id int64, req models.UpdateMenuItemRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	return s.repo.Update(ctx, &models.MenuItem{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
}

// DeleteMenuItem removes an item; order lines referencing it are left as they are
func (s *MenuService) DeleteMenuItem(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
