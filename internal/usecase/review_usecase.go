package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type ReviewUsecase struct {
	reviews  repo.ReviewRepository
	products repo.ProductRepository
}

func NewReviewUsecase(reviews repo.ReviewRepository, products repo.ProductRepository) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews, products: products}
}

type ReviewInput struct {
	Rating int
	Text   string
}

func (in ReviewInput) validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return errInvalid("rating must be between 1 and 5")
	}
	return nil
}

func (u *ReviewUsecase) product(ctx context.Context, slug string) (model.Product, error) {
	p, ok, err := u.products.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return model.Product{}, dbError(err)
	}
	if !ok {
		return model.Product{}, errNotFound("product")
	}
	return p, nil
}

// Create は1商品につき1件まで
func (u *ReviewUsecase) Create(ctx context.Context, p model.Principal, slug string, in ReviewInput) (model.Review, error) {
	if err := in.validate(); err != nil {
		return model.Review{}, err
	}
	prod, err := u.product(ctx, slug)
	if err != nil {
		return model.Review{}, err
	}

	rv := model.Review{UserID: p.UserID, ProductID: prod.ID, Rating: in.Rating, Text: in.Text}
	if err := u.reviews.Create(ctx, &rv); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Review{}, errInvalid("you have already reviewed this product")
		}
		return model.Review{}, dbError(err)
	}
	rv.Product = &prod
	return rv, nil
}

func (u *ReviewUsecase) ListForProduct(ctx context.Context, slug string) ([]model.Review, error) {
	prod, err := u.product(ctx, slug)
	if err != nil {
		return nil, err
	}
	list, err := u.reviews.ListByProduct(ctx, prod.ID)
	if err != nil {
		return nil, dbError(err)
	}
	return list, nil
}

func (u *ReviewUsecase) Mine(ctx context.Context, p model.Principal) ([]model.Review, error) {
	list, err := u.reviews.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, dbError(err)
	}
	return list, nil
}

func (u *ReviewUsecase) MyReview(ctx context.Context, p model.Principal, slug string) (model.Review, error) {
	prod, err := u.product(ctx, slug)
	if err != nil {
		return model.Review{}, err
	}
	rv, ok, err := u.reviews.FindByUserAndProduct(ctx, p.UserID, prod.ID)
	if err != nil {
		return model.Review{}, dbError(err)
	}
	if !ok {
		return model.Review{}, errNotFound("review")
	}
	return rv, nil
}

func (u *ReviewUsecase) UpdateMine(ctx context.Context, p model.Principal, slug string, in ReviewInput) (model.Review, error) {
	if err := in.validate(); err != nil {
		return model.Review{}, err
	}
	rv, err := u.MyReview(ctx, p, slug)
	if err != nil {
		return model.Review{}, err
	}
	rv.Rating = in.Rating
	rv.Text = in.Text
	if err := u.reviews.Update(ctx, &rv); err != nil {
		return model.Review{}, dbError(err)
	}
	return rv, nil
}

// DeleteMine は物理削除
func (u *ReviewUsecase) DeleteMine(ctx context.Context, p model.Principal, slug string) error {
	rv, err := u.MyReview(ctx, p, slug)
	if err != nil {
		return err
	}
	if err := u.reviews.Delete(ctx, rv.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("review")
		}
		return dbError(err)
	}
	return nil
}
