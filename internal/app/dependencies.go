package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/auth"
	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/config"
	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/event_bus"
	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/storage"
	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/utils"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/container"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/cookingstep"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/customer"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/delivery"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/ingredient"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/mealplan"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/recipe"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/weeklymenu"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	AuthTokenValidator *auth.TokenValidator
	EventBus           *event_bus.EventBus
	ImageStore         storage.ImageStore
	Clock              utils.Clock

	IngredientService ingredient.Service
	IngredientHandler *ingredient.Handler

	RecipeService recipe.Service
	RecipeHandler *recipe.Handler

	MealPlanService mealplan.Service
	MealPlanHandler *mealplan.Handler

	WeeklyMenuService weeklymenu.Service
	WeeklyMenuHandler *weeklymenu.Handler

	CustomerService customer.Service
	CustomerHandler *customer.Handler

	ContainerService container.Service
	ContainerHandler *container.Handler

	DeliveryService delivery.Service
	DeliveryHandler *delivery.Handler

	CookingStepService cookingstep.Service
	CookingStepHandler *cookingstep.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.AuthTokenValidator = auth.NewTokenValidator(cfg.Auth.JWTSecret)
	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	imageStore, err := storage.NewS3ImageStore(context.Background(), cfg.Storage)
	if err != nil {
		return nil, err
	}
	deps.ImageStore = imageStore

	deps.IngredientService = ingredient.NewService(ingredient.NewRepository(db), deps.EventBus)
	deps.IngredientHandler = ingredient.NewHandler(deps.IngredientService)

	deps.RecipeService = recipe.NewService(recipe.NewRepository(db), deps.IngredientService, deps.ImageStore, deps.EventBus)
	deps.RecipeHandler = recipe.NewHandler(deps.RecipeService)

	deps.MealPlanService = mealplan.NewService(mealplan.NewRepository(db))
	deps.MealPlanHandler = mealplan.NewHandler(deps.MealPlanService)

	deps.WeeklyMenuService = weeklymenu.NewService(weeklymenu.NewRepository(db), deps.RecipeService, deps.Clock)
	deps.WeeklyMenuHandler = weeklymenu.NewHandler(deps.WeeklyMenuService)

	deps.CustomerService = customer.NewService(customer.NewRepository(db), deps.EventBus)
	deps.CustomerHandler = customer.NewHandler(deps.CustomerService)

	deps.ContainerService = container.NewService(container.NewRepository(db))
	deps.ContainerHandler = container.NewHandler(deps.ContainerService)

	deps.DeliveryService = delivery.NewService(delivery.NewRepository(db))
	deps.DeliveryHandler = delivery.NewHandler(deps.DeliveryService)

	deps.CookingStepService = cookingstep.NewService(cookingstep.NewRepository(db))
	deps.CookingStepHandler = cookingstep.NewHandler(deps.CookingStepService)

	return deps, nil
}
