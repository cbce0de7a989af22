package recipe

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/event_bus"
	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/storage"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

// DuplicateNameSuffix is appended to the name of a duplicated recipe.
const DuplicateNameSuffix = " (Copia)"

type Service interface {
	List(ctx context.Context, search string, limit, offset int) ([]Recipe, error)
	Get(ctx context.Context, ref string) (Recipe, error)
	Create(ctx context.Context, recipe Recipe) (Recipe, error)
	Update(ctx context.Context, recipe Recipe) (Recipe, error)
	Delete(ctx context.Context, ref string) (bool, error)
	// Duplicate copies an existing recipe (name suffixed "(Copia)"), its
	// ingredient list and cooking steps verbatim, and recomputes totals
	// against the current catalog instead of copying the stored ones.
	Duplicate(ctx context.Context, ref string) (Recipe, error)
	// Preview computes totals for an unsaved ingredient list. It runs the
	// same aggregation as the save path, so the form preview and the
	// persisted value always agree.
	Preview(ctx context.Context, entries []IngredientEntry) (nutrition.Totals, []string, error)
	// TotalsByRefs exposes stored recipe totals for the weekly menu roll-up.
	TotalsByRefs(ctx context.Context, refs []string) (map[string]nutrition.Totals, error)
	AttachImage(ctx context.Context, ref string, filename string, contentType string, body io.Reader) (string, error)
}

// CatalogReader supplies ingredient facts snapshots; implemented by the
// ingredient service.
type CatalogReader interface {
	Catalog(ctx context.Context, refs []string) (nutrition.Catalog, error)
}

type ServiceImpl struct {
	repo    Repository
	catalog CatalogReader
	images  storage.ImageStore
}

func NewService(repo Repository, catalog CatalogReader, images storage.ImageStore, eventBus *event_bus.EventBus) Service {
	service := &ServiceImpl{repo: repo, catalog: catalog, images: images}
	event_bus.SubscribeTyped[event_bus.IngredientDeleted](
		eventBus,
		"ingredient.deleted",
		func(e event_bus.EventT[event_bus.IngredientDeleted]) error {
			refs, err := service.repo.RefsUsingIngredient(e.Context(), e.Data.Ref)
			if err != nil {
				return err
			}
			if len(refs) > 0 {
				// Dangling references stay in place and contribute zero from
				// the next recomputation on.
				log.Warnf("ingredient %s deleted while still referenced by recipes %v", e.Data.Ref, refs)
			}
			return nil
		},
	)
	event_bus.SubscribeTyped[event_bus.IngredientUpdated](
		eventBus,
		"ingredient.updated",
		func(e event_bus.EventT[event_bus.IngredientUpdated]) error {
			refs, err := service.repo.RefsUsingIngredient(e.Context(), e.Data.Ref)
			if err != nil {
				return err
			}
			if len(refs) > 0 {
				log.Debugf("ingredient %s changed; %d recipe(s) keep totals from their last save", e.Data.Ref, len(refs))
			}
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) List(ctx context.Context, search string, limit, offset int) ([]Recipe, error) {
	return s.repo.GetAll(ctx, search, limit, offset)
}

func (s *ServiceImpl) Get(ctx context.Context, ref string) (Recipe, error) {
	return s.repo.Get(ctx, ref)
}

func (s *ServiceImpl) Create(ctx context.Context, recipe Recipe) (Recipe, error) {
	totals, err := s.computeTotals(ctx, recipe.Ingredients)
	if err != nil {
		return Recipe{}, err
	}
	recipe.Totals = totals

	maxSuffix, err := s.repo.MaxRefSuffix(ctx)
	if err != nil {
		return Recipe{}, fmt.Errorf("failed to seed recipe ref allocator: %w", err)
	}
	recipe.Ref = ids.NewAllocator(RefPrefix, maxSuffix).Next()
	recipe.Created = time.Now()

	if err := s.repo.Store(ctx, recipe); err != nil {
		return Recipe{}, err
	}
	return recipe, nil
}

func (s *ServiceImpl) Update(ctx context.Context, recipe Recipe) (Recipe, error) {
	totals, err := s.computeTotals(ctx, recipe.Ingredients)
	if err != nil {
		return Recipe{}, err
	}
	recipe.Totals = totals

	updated, err := s.repo.Update(ctx, recipe)
	if err != nil {
		return Recipe{}, err
	}
	if !updated {
		return Recipe{}, ErrRecipeNotFound
	}
	return recipe, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, ref string) (bool, error) {
	return s.repo.Delete(ctx, ref)
}

func (s *ServiceImpl) Duplicate(ctx context.Context, ref string) (Recipe, error) {
	original, err := s.repo.Get(ctx, ref)
	if err != nil {
		return Recipe{}, err
	}

	duplicate := original
	duplicate.Name = original.Name + DuplicateNameSuffix
	duplicate.Ingredients = append([]IngredientEntry{}, original.Ingredients...)
	duplicate.StepRefs = append([]string{}, original.StepRefs...)

	// Recompute against the current catalog: the copy may get different
	// totals than the original if prices or nutrition changed since its save.
	return s.Create(ctx, duplicate)
}

func (s *ServiceImpl) Preview(ctx context.Context, entries []IngredientEntry) (nutrition.Totals, []string, error) {
	refs := ingredientRefs(entries)
	catalog, err := s.catalog.Catalog(ctx, refs)
	if err != nil {
		return nutrition.Totals{}, nil, err
	}
	totals, unresolved := nutrition.RecipeTotals(toEntries(entries), catalog)
	return totals, unresolved, nil
}

func (s *ServiceImpl) TotalsByRefs(ctx context.Context, refs []string) (map[string]nutrition.Totals, error) {
	return s.repo.TotalsByRefs(ctx, refs)
}

func (s *ServiceImpl) AttachImage(ctx context.Context, ref string, filename string, contentType string, body io.Reader) (string, error) {
	if _, err := s.repo.Get(ctx, ref); err != nil {
		return "", err
	}

	key := fmt.Sprintf("recipes/%s/%s%s", ref, uuid.NewString(), path.Ext(filename))
	url, err := s.images.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to upload recipe image: %w", err)
	}

	ok, err := s.repo.UpdateImageURL(ctx, ref, url)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrRecipeNotFound
	}
	return url, nil
}

func (s *ServiceImpl) computeTotals(ctx context.Context, entries []IngredientEntry) (nutrition.Totals, error) {
	refs := ingredientRefs(entries)
	catalog, err := s.catalog.Catalog(ctx, refs)
	if err != nil {
		return nutrition.Totals{}, err
	}
	totals, unresolved := nutrition.RecipeTotals(toEntries(entries), catalog)
	if len(unresolved) > 0 {
		log.Warnf("recipe totals computed with unresolved ingredient refs %v; their contribution is zero", unresolved)
	}
	return totals, nil
}

func ingredientRefs(entries []IngredientEntry) []string {
	refs := make([]string, 0, len(entries))
	for _, entry := range entries {
		refs = append(refs, entry.IngredientRef)
	}
	return refs
}
