package customer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/event_bus"
	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

var ErrInvalidEmail = errors.New("invalid customer email")

type Service interface {
	List(ctx context.Context, search string, limit, offset int) ([]Customer, error)
	Get(ctx context.Context, ref string) (Customer, error)
	Create(ctx context.Context, customer Customer) (Customer, error)
	Update(ctx context.Context, customer Customer) (Customer, error)
	Delete(ctx context.Context, ref string) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository, eventBus *event_bus.EventBus) Service {
	service := &ServiceImpl{repo: repo}

	// Restriction lists keep dangling ingredient refs; flag them so the
	// kitchen can clean up by hand.
	event_bus.SubscribeTyped[event_bus.IngredientDeleted](
		eventBus,
		"ingredient.deleted",
		func(e event_bus.EventT[event_bus.IngredientDeleted]) error {
			log.Warnf("ingredient %s deleted; customer restriction lists referencing it are now stale", e.Data.Ref)
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) List(ctx context.Context, search string, limit, offset int) ([]Customer, error) {
	return s.repo.GetAll(ctx, search, limit, offset)
}

func (s *ServiceImpl) Get(ctx context.Context, ref string) (Customer, error) {
	return s.repo.Get(ctx, ref)
}

func (s *ServiceImpl) Create(ctx context.Context, customer Customer) (Customer, error) {
	if err := validateEmail(customer.Email); err != nil {
		return Customer{}, err
	}

	maxSuffix, err := s.repo.MaxRefSuffix(ctx)
	if err != nil {
		return Customer{}, fmt.Errorf("failed to seed customer ref allocator: %w", err)
	}
	customer.Ref = ids.NewAllocator(RefPrefix, maxSuffix).Next()
	customer.Created = time.Now()

	if err := s.repo.Store(ctx, customer); err != nil {
		return Customer{}, err
	}
	return customer, nil
}

func (s *ServiceImpl) Update(ctx context.Context, customer Customer) (Customer, error) {
	if err := validateEmail(customer.Email); err != nil {
		return Customer{}, err
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return Customer{}, err
	}
	return customer, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, ref string) (bool, error) {
	return s.repo.Delete(ctx, ref)
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}
