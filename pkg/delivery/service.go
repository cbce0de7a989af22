package delivery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

var ErrInvalidCost = errors.New("delivery cost must be a non-negative number")

type Service interface {
	List(ctx context.Context, search string, limit, offset int) ([]DeliveryOption, error)
	Get(ctx context.Context, ref string) (DeliveryOption, error)
	Create(ctx context.Context, option DeliveryOption) (DeliveryOption, error)
	Update(ctx context.Context, option DeliveryOption) (DeliveryOption, error)
	Delete(ctx context.Context, ref string) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, search string, limit, offset int) ([]DeliveryOption, error) {
	return s.repo.GetAll(ctx, search, limit, offset)
}

func (s *ServiceImpl) Get(ctx context.Context, ref string) (DeliveryOption, error) {
	return s.repo.Get(ctx, ref)
}

func (s *ServiceImpl) Create(ctx context.Context, option DeliveryOption) (DeliveryOption, error) {
	if err := validateCost(option.Cost); err != nil {
		return DeliveryOption{}, err
	}

	maxSuffix, err := s.repo.MaxRefSuffix(ctx)
	if err != nil {
		return DeliveryOption{}, fmt.Errorf("failed to seed delivery option ref allocator: %w", err)
	}
	option.Ref = ids.NewAllocator(RefPrefix, maxSuffix).Next()
	option.Created = time.Now()

	if err := s.repo.Store(ctx, option); err != nil {
		return DeliveryOption{}, err
	}
	return option, nil
}

func (s *ServiceImpl) Update(ctx context.Context, option DeliveryOption) (DeliveryOption, error) {
	if err := validateCost(option.Cost); err != nil {
		return DeliveryOption{}, err
	}

	updated, err := s.repo.Update(ctx, option)
	if err != nil {
		return DeliveryOption{}, err
	}
	if !updated {
		return DeliveryOption{}, ErrDeliveryOptionNotFound
	}
	return option, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, ref string) (bool, error) {
	return s.repo.Delete(ctx, ref)
}

func validateCost(cost float64) error {
	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return ErrInvalidCost
	}
	return nil
}
