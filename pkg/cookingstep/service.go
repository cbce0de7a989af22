package cookingstep

import (
	"context"
	"fmt"
	"time"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

type Service interface {
	List(ctx context.Context, search string, limit, offset int) ([]CookingStep, error)
	Get(ctx context.Context, ref string) (CookingStep, error)
	Create(ctx context.Context, step CookingStep) (CookingStep, error)
	Update(ctx context.Context, step CookingStep) (CookingStep, error)
	Delete(ctx context.Context, ref string) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, search string, limit, offset int) ([]CookingStep, error) {
	return s.repo.GetAll(ctx, search, limit, offset)
}

func (s *ServiceImpl) Get(ctx context.Context, ref string) (CookingStep, error) {
	return s.repo.Get(ctx, ref)
}

func (s *ServiceImpl) Create(ctx context.Context, step CookingStep) (CookingStep, error) {
	maxSuffix, err := s.repo.MaxRefSuffix(ctx)
	if err != nil {
		return CookingStep{}, fmt.Errorf("failed to seed cooking step ref allocator: %w", err)
	}
	step.Ref = ids.NewAllocator(RefPrefix, maxSuffix).Next()
	step.Created = time.Now()

	if err := s.repo.Store(ctx, step); err != nil {
		return CookingStep{}, err
	}
	return step, nil
}

func (s *ServiceImpl) Update(ctx context.Context, step CookingStep) (CookingStep, error) {
	updated, err := s.repo.Update(ctx, step)
	if err != nil {
		return CookingStep{}, err
	}
	if !updated {
		return CookingStep{}, ErrCookingStepNotFound
	}
	return step, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, ref string) (bool, error) {
	return s.repo.Delete(ctx, ref)
}
