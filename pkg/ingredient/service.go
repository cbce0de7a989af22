package ingredient

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/event_bus"
	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

var ErrInvalidFacts = errors.New("nutritional values and cost must be non-negative numbers")

type Service interface {
	List(ctx context.Context, search string, limit, offset int) ([]Ingredient, error)
	Get(ctx context.Context, ref string) (Ingredient, error)
	Create(ctx context.Context, ingredient Ingredient) (Ingredient, error)
	Update(ctx context.Context, ingredient Ingredient) (Ingredient, error)
	Delete(ctx context.Context, ref string) (bool, error)
	// Catalog returns a facts snapshot for the given references. References
	// that no longer resolve are absent from the snapshot; aggregation fails
	// open on those.
	Catalog(ctx context.Context, refs []string) (nutrition.Catalog, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) Service {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) List(ctx context.Context, search string, limit, offset int) ([]Ingredient, error) {
	return s.repo.GetAll(ctx, search, limit, offset)
}

func (s *ServiceImpl) Get(ctx context.Context, ref string) (Ingredient, error) {
	return s.repo.Get(ctx, ref)
}

func (s *ServiceImpl) Create(ctx context.Context, ingredient Ingredient) (Ingredient, error) {
	if err := validateFacts(ingredient.Facts); err != nil {
		return Ingredient{}, err
	}

	maxSuffix, err := s.repo.MaxRefSuffix(ctx)
	if err != nil {
		return Ingredient{}, fmt.Errorf("failed to seed ingredient ref allocator: %w", err)
	}
	ingredient.Ref = ids.NewAllocator(RefPrefix, maxSuffix).Next()
	ingredient.Created = time.Now()

	if err := s.repo.Store(ctx, ingredient); err != nil {
		return Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ServiceImpl) Update(ctx context.Context, ingredient Ingredient) (Ingredient, error) {
	if err := validateFacts(ingredient.Facts); err != nil {
		return Ingredient{}, err
	}

	updated, err := s.repo.Update(ctx, ingredient)
	if err != nil {
		return Ingredient{}, err
	}
	if !updated {
		return Ingredient{}, ErrIngredientNotFound
	}

	// Stored recipe totals keep the values from their last save; subscribers
	// only refresh denormalized data and warn about staleness.
	err = s.eventBus.Publish(event_bus.NewEvent(ctx, "ingredient.updated", event_bus.IngredientUpdated{
		Ref:  ingredient.Ref,
		Name: ingredient.Name,
	}))
	if err != nil {
		log.Errorf("failed to publish ingredient update event: %v", err)
	}

	return ingredient, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, ref string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, ref)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, "ingredient.deleted", event_bus.IngredientDeleted{Ref: ref}))
	if err != nil {
		log.Errorf("failed to publish ingredient delete event: %v", err)
	}
	return true, nil
}

func (s *ServiceImpl) Catalog(ctx context.Context, refs []string) (nutrition.Catalog, error) {
	ingredients, err := s.repo.GetByRefs(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ingredient catalog: %w", err)
	}
	catalog := make(nutrition.Catalog, len(ingredients))
	for _, ingredient := range ingredients {
		catalog[ingredient.Ref] = ingredient.Facts
	}
	return catalog, nil
}

func validateFacts(facts nutrition.Facts) error {
	for _, v := range []float64{facts.Calories, facts.Carbs, facts.Protein, facts.Fat, facts.CostPerKilo} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidFacts
		}
	}
	return nil
}
