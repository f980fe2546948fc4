package repository

import (
	"context"
	"fmt"

	"bucketlist/internal/cache"
	"bucketlist/internal/models"
	"bucketlist/internal/observability"

	"gorm.io/gorm"
)

// BucketlistRepository defines persistence operations for bucketlists.
type BucketlistRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Bucketlist, error)
	ListByOwner(ctx context.Context, owner string, opts ListOptions) ([]models.Bucketlist, int64, error)
	Create(ctx context.Context, bucketlist *models.Bucketlist) error
	Update(ctx context.Context, bucketlist *models.Bucketlist) error
	Delete(ctx context.Context, id uint) error
}

type bucketlistRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewBucketlistRepository returns a BucketlistRepository. c may be nil or disabled.
func NewBucketlistRepository(db *gorm.DB, c *cache.Cache) BucketlistRepository {
	return &bucketlistRepository{db: db, cache: c}
}

// GetByID serves reads outside a transaction from the cache. Reads inside a
// transaction always hit the database so load-check-mutate sees current rows.
func (r *bucketlistRepository) GetByID(ctx context.Context, id uint) (bucketlist *models.Bucketlist, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "GetByID", "bucketlists")
	defer func() { observability.EndSpan(span, err) }()

	var b models.Bucketlist
	load := func() error {
		if err := conn(ctx, r.db).First(&b, id).Error; err != nil {
			if isNotFound(err) {
				return models.NewNotFoundError("Bucketlist", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	if InTransaction(ctx) {
		err = load()
	} else {
		err = r.cache.Aside(ctx, "bucketlist", cache.BucketlistKey(id), &b, cache.BucketlistTTL, load)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bucketlistRepository) ListByOwner(ctx context.Context, owner string, opts ListOptions) (_ []models.Bucketlist, _ int64, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "ListByOwner", "bucketlists")
	defer func() { observability.EndSpan(span, err) }()

	opts = opts.Normalize()
	query := conn(ctx, r.db).Model(&models.Bucketlist{}).Where("users_email = ?", owner)
	if opts.Query != "" {
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, containsPattern(opts.Query))
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	bucketlists := []models.Bucketlist{}
	if total == 0 {
		return bucketlists, 0, nil
	}
	if err := query.Order("id ASC").Offset(opts.Offset()).Limit(opts.Limit).Find(&bucketlists).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return bucketlists, total, nil
}

func (r *bucketlistRepository) Create(ctx context.Context, bucketlist *models.Bucketlist) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "Create", "bucketlists")
	defer func() { observability.EndSpan(span, err) }()

	if err := conn(ctx, r.db).Omit("Owner", "Items").Create(bucketlist).Error; err != nil {
		if isUniqueConstraintError(err) {
			return duplicateTitle(bucketlist.Title)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bucketlistRepository) Update(ctx context.Context, bucketlist *models.Bucketlist) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "Update", "bucketlists")
	defer func() { observability.EndSpan(span, err) }()

	result := conn(ctx, r.db).Model(&models.Bucketlist{ID: bucketlist.ID}).Updates(map[string]any{
		"title":         bucketlist.Title,
		"date_modified": bucketlist.DateModified,
	})
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return duplicateTitle(bucketlist.Title)
		}
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Bucketlist", bucketlist.ID)
	}

	r.invalidate(ctx, bucketlist.ID)
	return nil
}

func (r *bucketlistRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "Delete", "bucketlists")
	defer func() { observability.EndSpan(span, err) }()

	result := conn(ctx, r.db).Delete(&models.Bucketlist{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Bucketlist", id)
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *bucketlistRepository) invalidate(ctx context.Context, id uint) {
	afterCommit(ctx, func(ctx context.Context) {
		r.cache.Invalidate(ctx, cache.BucketlistKey(id))
	})
}

func duplicateTitle(title string) *models.AppError {
	return models.NewConflictError(fmt.Sprintf("Bucketlist %q already exists", title))
}
