package repository

import (
	"context"
	"fmt"

	"bucketlist/internal/models"
	"bucketlist/internal/observability"

	"gorm.io/gorm"
)

// ItemRepository defines persistence operations for bucketlist items.
type ItemRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	ListByBucketlist(ctx context.Context, bucketlistID uint, opts ListOptions) ([]models.Item, int64, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uint) error
	DeleteByBucketlist(ctx context.Context, bucketlistID uint) (int64, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository returns a new ItemRepository implementation.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := conn(ctx, r.db).First(&item, id).Error; err != nil {
		if isNotFound(err) {
			return nil, models.NewNotFoundError("Item", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

func (r *itemRepository) ListByBucketlist(ctx context.Context, bucketlistID uint, opts ListOptions) (_ []models.Item, _ int64, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "ListByBucketlist", "items")
	defer func() { observability.EndSpan(span, err) }()

	opts = opts.Normalize()
	query := conn(ctx, r.db).Model(&models.Item{}).Where("bucketlist_id = ?", bucketlistID)
	if opts.Query != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(opts.Query))
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	items := []models.Item{}
	if total == 0 {
		return items, 0, nil
	}
	if err := query.Order("id ASC").Offset(opts.Offset()).Limit(opts.Limit).Find(&items).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return items, total, nil
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "Create", "items")
	defer func() { observability.EndSpan(span, err) }()

	if err := conn(ctx, r.db).Create(item).Error; err != nil {
		if isUniqueConstraintError(err) {
			return duplicateName(item.Name)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *models.Item) error {
	result := conn(ctx, r.db).Model(&models.Item{ID: item.ID}).Updates(map[string]any{
		"name":          item.Name,
		"done":          item.Done,
		"date_modified": item.DateModified,
	})
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return duplicateName(item.Name)
		}
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Item", item.ID)
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&models.Item{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Item", id)
	}
	return nil
}

// DeleteByBucketlist removes every item of bucketlistID and returns how many were removed.
func (r *itemRepository) DeleteByBucketlist(ctx context.Context, bucketlistID uint) (int64, error) {
	result := conn(ctx, r.db).Where("bucketlist_id = ?", bucketlistID).Delete(&models.Item{})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

func duplicateName(name string) *models.AppError {
	return models.NewConflictError(fmt.Sprintf("Item %q already exists in this bucketlist", name))
}
