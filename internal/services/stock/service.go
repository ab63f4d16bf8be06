// Package stock provides inventory tracking and classification services.
package stock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/stocktake/stocktake/internal/config"
	"github.com/stocktake/stocktake/internal/database"
	"github.com/stocktake/stocktake/internal/models"
	"github.com/stocktake/stocktake/internal/repository"
	"github.com/stocktake/stocktake/internal/util"
)

// ErrInvalidInput indicates a request failed validation.
var ErrInvalidInput = errors.New("invalid input")

// Service provides inventory operations.
type Service struct {
	db          *database.DB
	cfg         *config.Config
	items       *repository.ItemRepository
	idGenerator *util.IDGenerator
}

// NewService creates a new stock service.
func NewService(db *database.DB, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		cfg:         cfg,
		items:       repository.NewItemRepository(db.DB),
		idGenerator: util.NewIDGenerator(),
	}
}

// Snapshot returns all items ordered by category then name.
func (s *Service) Snapshot(ctx context.Context) ([]*models.Item, error) {
	return s.items.List(ctx)
}

// Overview returns the category summaries and dashboard counts for the
// current inventory. Configured categories appear even when empty.
func (s *Service) Overview(ctx context.Context) ([]*models.CategorySummary, *models.DashboardSummary, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing items: %w", err)
	}

	summaries, dashboard := Aggregate(items, s.cfg.CategoryNames())
	return summaries, dashboard, nil
}

// GetItem retrieves a single item.
func (s *Service) GetItem(ctx context.Context, id string) (*models.Item, error) {
	return s.items.Get(ctx, id)
}

// CreateItem creates a new inventory item. When no threshold is given,
// the category's configured default applies.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*models.Item, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", ErrInvalidInput)
	}

	threshold := s.cfg.DefaultThresholdFor(category)
	if input.Threshold != nil {
		if *input.Threshold < 0 {
			return nil, fmt.Errorf("%w: threshold must be non-negative", ErrInvalidInput)
		}
		threshold = *input.Threshold
	}

	item := &models.Item{
		ID:        s.idGenerator.NewID(),
		Name:      name,
		Category:  category,
		Quantity:  input.Quantity,
		Threshold: threshold,
	}

	if err := s.items.Create(ctx, nil, item); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return item, nil
}

// UpdateItem rewrites an item's name, category, and levels.
func (s *Service) UpdateItem(ctx context.Context, input UpdateItemInput) (*models.Item, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if input.Quantity < 0 || input.Threshold < 0 {
		return nil, fmt.Errorf("%w: quantity and threshold must be non-negative", ErrInvalidInput)
	}

	item, err := s.items.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	item.Name = name
	item.Category = category
	item.Quantity = input.Quantity
	item.Threshold = input.Threshold

	if err := s.items.Update(ctx, nil, item); err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem removes an item from the inventory.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.items.Delete(ctx, nil, id)
}

// ApplyChanges applies a batch of quantity and threshold edits in one
// transaction. Either every change lands or none does.
func (s *Service) ApplyChanges(ctx context.Context, changes []models.QuantityChange) error {
	if len(changes) == 0 {
		return nil
	}

	for _, change := range changes {
		if change.Quantity < 0 {
			return fmt.Errorf("%w: quantity must be non-negative", ErrInvalidInput)
		}
		if change.Threshold != nil && *change.Threshold < 0 {
			return fmt.Errorf("%w: threshold must be non-negative", ErrInvalidInput)
		}
	}

	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, change := range changes {
			if err := s.items.ApplyChange(ctx, tx, change); err != nil {
				return err
			}
		}
		return nil
	})
}
