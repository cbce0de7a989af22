package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Ingredients
	r.HandleFunc("/api/ingredient", deps.IngredientHandler.List).Methods("GET")
	r.HandleFunc("/api/ingredient", deps.IngredientHandler.Create).Methods("POST")
	r.HandleFunc("/api/ingredient/{ref}", deps.IngredientHandler.Get).Methods("GET")
	r.HandleFunc("/api/ingredient/{ref}", deps.IngredientHandler.Update).Methods("PUT")
	r.HandleFunc("/api/ingredient/{ref}", deps.IngredientHandler.Delete).Methods("DELETE")

	// Recipes
	r.HandleFunc("/api/recipe", deps.RecipeHandler.List).Methods("GET")
	r.HandleFunc("/api/recipe", deps.RecipeHandler.Create).Methods("POST")
	r.HandleFunc("/api/recipe/preview", deps.RecipeHandler.Preview).Methods("POST")
	r.HandleFunc("/api/recipe/{ref}", deps.RecipeHandler.Get).Methods("GET")
	r.HandleFunc("/api/recipe/{ref}", deps.RecipeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/recipe/{ref}", deps.RecipeHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/recipe/{ref}/duplicate", deps.RecipeHandler.Duplicate).Methods("POST")
	r.HandleFunc("/api/recipe/{ref}/image", deps.RecipeHandler.UploadImage).Methods("PUT")

	// Meal plans
	r.HandleFunc("/api/meal-plan", deps.MealPlanHandler.List).Methods("GET")
	r.HandleFunc("/api/meal-plan", deps.MealPlanHandler.Create).Methods("POST")
	r.HandleFunc("/api/meal-plan/{ref}", deps.MealPlanHandler.Get).Methods("GET")
	r.HandleFunc("/api/meal-plan/{ref}", deps.MealPlanHandler.Update).Methods("PUT")
	r.HandleFunc("/api/meal-plan/{ref}", deps.MealPlanHandler.Delete).Methods("DELETE")

	// Weekly menus
	r.HandleFunc("/api/weekly-menu", deps.WeeklyMenuHandler.List).Methods("GET")
	r.HandleFunc("/api/weekly-menu", deps.WeeklyMenuHandler.Create).Methods("POST")
	r.HandleFunc("/api/weekly-menu/{ref}", deps.WeeklyMenuHandler.Get).Methods("GET")
	r.HandleFunc("/api/weekly-menu/{ref}", deps.WeeklyMenuHandler.Update).Methods("PUT")
	r.HandleFunc("/api/weekly-menu/{ref}", deps.WeeklyMenuHandler.Delete).Methods("DELETE")

	// Customers
	r.HandleFunc("/api/customer", deps.CustomerHandler.List).Methods("GET")
	r.HandleFunc("/api/customer", deps.CustomerHandler.Create).Methods("POST")
	r.HandleFunc("/api/customer/{ref}", deps.CustomerHandler.Get).Methods("GET")
	r.HandleFunc("/api/customer/{ref}", deps.CustomerHandler.Update).Methods("PUT")
	r.HandleFunc("/api/customer/{ref}", deps.CustomerHandler.Delete).Methods("DELETE")

	// Food containers
	r.HandleFunc("/api/container", deps.ContainerHandler.List).Methods("GET")
	r.HandleFunc("/api/container", deps.ContainerHandler.Create).Methods("POST")
	r.HandleFunc("/api/container/{ref}", deps.ContainerHandler.Get).Methods("GET")
	r.HandleFunc("/api/container/{ref}", deps.ContainerHandler.Update).Methods("PUT")
	r.HandleFunc("/api/container/{ref}", deps.ContainerHandler.Delete).Methods("DELETE")

	// Delivery options
	r.HandleFunc("/api/delivery-option", deps.DeliveryHandler.List).Methods("GET")
	r.HandleFunc("/api/delivery-option", deps.DeliveryHandler.Create).Methods("POST")
	r.HandleFunc("/api/delivery-option/{ref}", deps.DeliveryHandler.Get).Methods("GET")
	r.HandleFunc("/api/delivery-option/{ref}", deps.DeliveryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/delivery-option/{ref}", deps.DeliveryHandler.Delete).Methods("DELETE")

	// Cooking steps
	r.HandleFunc("/api/cooking-step", deps.CookingStepHandler.List).Methods("GET")
	r.HandleFunc("/api/cooking-step", deps.CookingStepHandler.Create).Methods("POST")
	r.HandleFunc("/api/cooking-step/{ref}", deps.CookingStepHandler.Get).Methods("GET")
	r.HandleFunc("/api/cooking-step/{ref}", deps.CookingStepHandler.Update).Methods("PUT")
	r.HandleFunc("/api/cooking-step/{ref}", deps.CookingStepHandler.Delete).Methods("DELETE")
}
