package service

import (
	"context"
	"time"

	"bucketlist/internal/models"
	"bucketlist/internal/observability"
	"bucketlist/internal/repository"
	"bucketlist/internal/validation"
)

type BucketlistService struct {
	tx          repository.Transactor
	bucketlists repository.BucketlistRepository
	items       repository.ItemRepository
	now         func() time.Time
}

type CreateBucketlistInput struct {
	Identity string
	Title    string
}

type UpdateBucketlistInput struct {
	Identity     string
	BucketlistID uint
	Title        string
}

// ListInput selects a page of the caller's resources.
type ListInput struct {
	Identity string
	Query    string
	Page     int
	Limit    int
}

func (in ListInput) options() repository.ListOptions {
	return repository.ListOptions{Query: in.Query, Page: in.Page, Limit: in.Limit}.Normalize()
}

type BucketlistPage struct {
	Bucketlists []models.Bucketlist
	Meta        models.PageMeta
}

func NewBucketlistService(
	tx repository.Transactor,
	bucketlists repository.BucketlistRepository,
	items repository.ItemRepository,
) *BucketlistService {
	return &BucketlistService{
		tx:          tx,
		bucketlists: bucketlists,
		items:       items,
		now:         time.Now,
	}
}

func (s *BucketlistService) CreateBucketlist(ctx context.Context, in CreateBucketlistInput) (_ *models.Bucketlist, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "BucketlistService", "CreateBucketlist")
	defer func() { observability.EndSpan(span, err) }()

	title, err := validation.NormalizeTitle(in.Title)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	now := s.now().UTC()
	bucketlist := &models.Bucketlist{
		Title:        title,
		UsersEmail:   in.Identity,
		DateCreated:  now,
		DateModified: now,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.bucketlists.Create(ctx, bucketlist)
	})
	if err != nil {
		return nil, err
	}
	return bucketlist, nil
}

// ListBucketlists returns one page of the caller's bucketlists. An owner with no
// matching bucketlists at all gets a NotFound error.
func (s *BucketlistService) ListBucketlists(ctx context.Context, in ListInput) (*BucketlistPage, error) {
	opts := in.options()
	bucketlists, total, err := s.bucketlists.ListByOwner(ctx, in.Identity, opts)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, &models.AppError{Code: models.CodeNotFound, Message: "No bucketlists found"}
	}
	return &BucketlistPage{
		Bucketlists: bucketlists,
		Meta:        models.NewPageMeta(opts.Page, opts.Limit, total),
	}, nil
}

func (s *BucketlistService) GetBucketlist(ctx context.Context, identity string, id uint) (*models.Bucketlist, error) {
	return s.loadOwned(ctx, identity, id)
}

func (s *BucketlistService) UpdateBucketlist(ctx context.Context, in UpdateBucketlistInput) (_ *models.Bucketlist, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "BucketlistService", "UpdateBucketlist")
	defer func() { observability.EndSpan(span, err) }()

	title, err := validation.NormalizeTitle(in.Title)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	var bucketlist *models.Bucketlist
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		b, err := s.loadOwned(ctx, in.Identity, in.BucketlistID)
		if err != nil {
			return err
		}
		b.Title = title
		b.DateModified = s.now().UTC()
		if err := s.bucketlists.Update(ctx, b); err != nil {
			return err
		}
		bucketlist = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bucketlist, nil
}

// DeleteBucketlist removes the bucketlist and all of its items in one transaction.
func (s *BucketlistService) DeleteBucketlist(ctx context.Context, identity string, id uint) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "BucketlistService", "DeleteBucketlist")
	defer func() { observability.EndSpan(span, err) }()

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.loadOwned(ctx, identity, id); err != nil {
			return err
		}
		if _, err := s.items.DeleteByBucketlist(ctx, id); err != nil {
			return err
		}
		return s.bucketlists.Delete(ctx, id)
	})
}

// loadOwned loads a bucketlist (NotFound) and checks ownership (Forbidden), in that order.
func (s *BucketlistService) loadOwned(ctx context.Context, identity string, id uint) (*models.Bucketlist, error) {
	bucketlist, err := s.bucketlists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeBucketlist(identity, bucketlist); err != nil {
		return nil, err
	}
	return bucketlist, nil
}
