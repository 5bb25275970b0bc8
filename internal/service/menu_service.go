package service

import (
	"context"
	"errors"
	"log"

	"foodorder/internal/domain"
)

var (
	ErrInvalidMenuItem  = errors.New("invalid menu item payload")
	ErrMenuItemNotFound = errors.New("menu item not found")
)

type MenuService struct {
	repo      MenuRepository
	describer Describer
	publisher FeedPublisher
}

func NewMenuService(repo MenuRepository, describer Describer, publisher FeedPublisher) *MenuService {
	return &MenuService{repo: repo, describer: describer, publisher: publisher}
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if item.ID == "" || item.Name == "" || item.Price < 0 || !item.Category.Valid() {
		return ErrInvalidMenuItem
	}
	if err := s.repo.CreateMenuItem(item); err != nil {
		return err
	}
	s.publishChange(ctx, item.ID)
	return nil
}

func (s *MenuService) List() ([]domain.MenuItem, error) {
	return s.repo.ListMenuItems()
}

func (s *MenuService) Get(id string) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(id)
}

func (s *MenuService) Update(ctx context.Context, item *domain.MenuItem) error {
	if item.Name == "" || item.Price < 0 || !item.Category.Valid() {
		return ErrInvalidMenuItem
	}
	rows, err := s.repo.UpdateMenuItem(item)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMenuItemNotFound
	}
	s.publishChange(ctx, item.ID)
	return nil
}

func (s *MenuService) Delete(ctx context.Context, id string) (int64, error) {
	rows, err := s.repo.DeleteMenuItem(id)
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		s.publishChange(ctx, id)
	}
	return rows, nil
}

// publishChange notifies connected views that the catalog moved; they
// refetch the menu rather than patch state, so the event carries only the
// item ID. Best effort, the write already committed.
func (s *MenuService) publishChange(ctx context.Context, itemID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishMenuChanged(ctx, itemID); err != nil {
		log.Printf("publish menu change %s: %v", itemID, err)
	}
}

// Describe drafts a menu description. The describer already degrades to a
// fallback string, so this never fails.
func (s *MenuService) Describe(ctx context.Context, dishName, ingredients string) string {
	return s.describer.Describe(ctx, dishName, ingredients)
}

var _ MenuServiceInterface = (*MenuService)(nil)
