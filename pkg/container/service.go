package container

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

var ErrInvalidCost = errors.New("container cost must be a non-negative number")

type Service interface {
	List(ctx context.Context, search string, limit, offset int) ([]FoodContainer, error)
	Get(ctx context.Context, ref string) (FoodContainer, error)
	Create(ctx context.Context, container FoodContainer) (FoodContainer, error)
	Update(ctx context.Context, container FoodContainer) (FoodContainer, error)
	Delete(ctx context.Context, ref string) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, search string, limit, offset int) ([]FoodContainer, error) {
	return s.repo.GetAll(ctx, search, limit, offset)
}

func (s *ServiceImpl) Get(ctx context.Context, ref string) (FoodContainer, error) {
	return s.repo.Get(ctx, ref)
}

func (s *ServiceImpl) Create(ctx context.Context, container FoodContainer) (FoodContainer, error) {
	if err := validateCost(container.Cost); err != nil {
		return FoodContainer{}, err
	}

	maxSuffix, err := s.repo.MaxRefSuffix(ctx)
	if err != nil {
		return FoodContainer{}, fmt.Errorf("failed to seed container ref allocator: %w", err)
	}
	container.Ref = ids.NewAllocator(RefPrefix, maxSuffix).Next()
	container.Created = time.Now()

	if err := s.repo.Store(ctx, container); err != nil {
		return FoodContainer{}, err
	}
	return container, nil
}

func (s *ServiceImpl) Update(ctx context.Context, container FoodContainer) (FoodContainer, error) {
	if err := validateCost(container.Cost); err != nil {
		return FoodContainer{}, err
	}

	updated, err := s.repo.Update(ctx, container)
	if err != nil {
		return FoodContainer{}, err
	}
	if !updated {
		return FoodContainer{}, ErrContainerNotFound
	}
	return container, nil
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
