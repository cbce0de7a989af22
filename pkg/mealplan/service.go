package mealplan

import (
	"context"
	"fmt"
	"time"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

type Service interface {
	List(ctx context.Context, search string, limit, offset int) ([]MealPlan, error)
	Get(ctx context.Context, ref string) (MealPlan, error)
	Create(ctx context.Context, plan MealPlan) (MealPlan, error)
	Update(ctx context.Context, plan MealPlan) (MealPlan, error)
	Delete(ctx context.Context, ref string) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, search string, limit, offset int) ([]MealPlan, error) {
	return s.repo.GetAll(ctx, search, limit, offset)
}

func (s *ServiceImpl) Get(ctx context.Context, ref string) (MealPlan, error) {
	return s.repo.Get(ctx, ref)
}

func (s *ServiceImpl) Create(ctx context.Context, plan MealPlan) (MealPlan, error) {
	maxSuffix, err := s.repo.MaxRefSuffix(ctx)
	if err != nil {
		return MealPlan{}, fmt.Errorf("failed to seed meal plan ref allocator: %w", err)
	}
	plan.Ref = ids.NewAllocator(RefPrefix, maxSuffix).Next()
	plan.Created = time.Now()

	if err := s.repo.Store(ctx, plan); err != nil {
		return MealPlan{}, err
	}
	return plan, nil
}

func (s *ServiceImpl) Update(ctx context.Context, plan MealPlan) (MealPlan, error) {
	updated, err := s.repo.Update(ctx, plan)
	if err != nil {
		return MealPlan{}, err
	}
	if !updated {
		return MealPlan{}, ErrMealPlanNotFound
	}
	return plan, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, ref string) (bool, error) {
	return s.repo.Delete(ctx, ref)
}
