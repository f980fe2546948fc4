package service

import (
	"context"
	"time"

	"bucketlist/internal/models"
	"bucketlist/internal/observability"
	"bucketlist/internal/repository"
	"bucketlist/internal/validation"
)

type ItemService struct {
	tx          repository.Transactor
	bucketlists repository.BucketlistRepository
	items       repository.ItemRepository
	now         func() time.Time
}

type CreateItemInput struct {
	Identity     string
	BucketlistID uint
	Name         string
	Done         bool
}

// UpdateItemInput changes the fields that are non-nil. At least one must be set.
type UpdateItemInput struct {
	Identity     string
	BucketlistID uint
	ItemID       uint
	Name         *string
	Done         *bool
}

type ItemPage struct {
	Items []models.Item
	Meta  models.PageMeta
}

func NewItemService(
	tx repository.Transactor,
	bucketlists repository.BucketlistRepository,
	items repository.ItemRepository,
) *ItemService {
	return &ItemService{
		tx:          tx,
		bucketlists: bucketlists,
		items:       items,
		now:         time.Now,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, in CreateItemInput) (_ *models.Item, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "ItemService", "CreateItem")
	defer func() { observability.EndSpan(span, err) }()

	name, err := validation.NormalizeItemName(in.Name)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	var item *models.Item
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.loadBucketlist(ctx, in.Identity, in.BucketlistID); err != nil {
			return err
		}
		now := s.now().UTC()
		item = &models.Item{
			Name:         name,
			Done:         in.Done,
			BucketlistID: in.BucketlistID,
			DateCreated:  now,
			DateModified: now,
		}
		return s.items.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns one page of a bucketlist's items. An empty bucketlist yields an empty page.
func (s *ItemService) ListItems(ctx context.Context, bucketlistID uint, in ListInput) (*ItemPage, error) {
	if _, err := s.loadBucketlist(ctx, in.Identity, bucketlistID); err != nil {
		return nil, err
	}

	opts := in.options()
	items, total, err := s.items.ListByBucketlist(ctx, bucketlistID, opts)
	if err != nil {
		return nil, err
	}
	return &ItemPage{
		Items: items,
		Meta:  models.NewPageMeta(opts.Page, opts.Limit, total),
	}, nil
}

func (s *ItemService) GetItem(ctx context.Context, identity string, bucketlistID, itemID uint) (*models.Item, error) {
	return s.loadItem(ctx, identity, bucketlistID, itemID)
}

func (s *ItemService) UpdateItem(ctx context.Context, in UpdateItemInput) (_ *models.Item, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "ItemService", "UpdateItem")
	defer func() { observability.EndSpan(span, err) }()

	if in.Name == nil && in.Done == nil {
		return nil, models.NewValidationError("Provide a name or done value to update")
	}
	var name string
	if in.Name != nil {
		if name, err = validation.NormalizeItemName(*in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	var item *models.Item
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		it, err := s.loadItem(ctx, in.Identity, in.BucketlistID, in.ItemID)
		if err != nil {
			return err
		}
		if in.Name != nil {
			it.Name = name
		}
		if in.Done != nil {
			it.Done = *in.Done
		}
		it.DateModified = s.now().UTC()
		if err := s.items.Update(ctx, it); err != nil {
			return err
		}
		item = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, identity string, bucketlistID, itemID uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.loadItem(ctx, identity, bucketlistID, itemID); err != nil {
			return err
		}
		return s.items.Delete(ctx, itemID)
	})
}

func (s *ItemService) loadBucketlist(ctx context.Context, identity string, id uint) (*models.Bucketlist, error) {
	bucketlist, err := s.bucketlists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeBucketlist(identity, bucketlist); err != nil {
		return nil, err
	}
	return bucketlist, nil
}

// loadItem resolves the bucketlist first so a foreign bucketlist is Forbidden
// regardless of whether the item exists.
func (s *ItemService) loadItem(ctx context.Context, identity string, bucketlistID, itemID uint) (*models.Item, error) {
	bucketlist, err := s.loadBucketlist(ctx, identity, bucketlistID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeItem(identity, bucketlist, item); err != nil {
		return nil, err
	}
	return item, nil
}
