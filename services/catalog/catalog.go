package catalog

import (
	"context"
	"errors"
	"regexp"

	"github.com/sirupsen/logrus"

	"resto-mongo-api/models"
	"resto-mongo-api/services/allocator"
	"resto-mongo-api/store"
)

var (
	ErrInvalidCategoryID = errors.New("category id must be lowercase alphanumeric, underscore or hyphen")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrItemNotFound      = errors.New("item not found")
)

const Collection = "menu"

var categoryIDPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Service mutates category documents in the menu collection. Item-list
// writes are read-modify-write of the whole array: without optimistic
// locking, concurrent writers to the same category lose updates
// (last writer wins).
type Service struct {
	store      store.Store
	optimistic bool
}

func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{store: st}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

// WithOptimisticLocking makes every item-list write supply the category
// version it read; stale writes fail with store.ErrConflict and the caller
// retries.
func WithOptimisticLocking() Option {
	return func(s *Service) { s.optimistic = true }
}

func (s *Service) CreateCategory(ctx context.Context, id, name, prefix string) (*models.Category, error) {
	if !categoryIDPattern.MatchString(id) {
		return nil, ErrInvalidCategoryID
	}
	if !allocator.ValidPrefix(prefix) {
		return nil, allocator.ErrInvalidPrefix
	}
	exists, err := s.store.Exists(ctx, Collection, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateCategory
	}

	category := &models.Category{
		ID:           id,
		CategoryName: name,
		Prefix:       prefix,
		Items:        []models.Item{},
	}
	if err := s.writeCategory(ctx, category); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"category": id, "prefix": prefix}).Info("category created")
	return category, nil
}

// DeleteCategory removes the document and every item in it. Historical
// orders keep their denormalized item copies, so nothing else is touched.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, Collection, id); err != nil {
		return err
	}
	logrus.WithField("category", id).Info("category deleted")
	return nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := s.store.Get(ctx, Collection, id, &category); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.store.List(ctx, Collection, "categoryName", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Service) AddItem(ctx context.Context, categoryID, name string, price int64, stockStatus string) (*models.Item, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	existing := make([]string, 0, len(category.Items))
	for _, it := range category.Items {
		existing = append(existing, it.ItemID)
	}
	itemID, err := allocator.NextItemID(category.Prefix, existing)
	if err != nil {
		return nil, err
	}

	if stockStatus == "" {
		stockStatus = models.StockStatusIn
	}
	item := models.Item{ItemID: itemID, Name: name, Price: price, StockStatus: stockStatus}
	category.Items = append(category.Items, item)
	if err := s.writeCategory(ctx, category); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"category": categoryID, "item": itemID}).Info("item added")
	return &item, nil
}

func (s *Service) EditItem(ctx context.Context, categoryID, itemID, name string, price int64, stockStatus string) (*models.Item, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, it := range category.Items {
		if it.ItemID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrItemNotFound
	}

	if stockStatus == "" {
		stockStatus = models.StockStatusIn
	}
	category.Items[idx] = models.Item{ItemID: itemID, Name: name, Price: price, StockStatus: stockStatus}
	if err := s.writeCategory(ctx, category); err != nil {
		return nil, err
	}
	item := category.Items[idx]
	return &item, nil
}

// DeleteItem filters itemID out of the list and writes it back. Deleting an
// id that is already gone leaves the list unchanged and succeeds.
func (s *Service) DeleteItem(ctx context.Context, categoryID, itemID string) error {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	filtered := category.Items[:0:0]
	for _, it := range category.Items {
		if it.ItemID != itemID {
			filtered = append(filtered, it)
		}
	}
	category.Items = filtered
	if category.Items == nil {
		category.Items = []models.Item{}
	}
	return s.writeCategory(ctx, category)
}

func (s *Service) writeCategory(ctx context.Context, category *models.Category) error {
	if s.optimistic {
		readVersion := category.Version
		category.Version = readVersion + 1
		return s.store.PutVersioned(ctx, Collection, category.ID, category, readVersion)
	}
	return s.store.Put(ctx, Collection, category.ID, category)
}
