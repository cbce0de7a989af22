package customer

import "time"

// RefPrefix is the reference code prefix for customers ("CU8").
const RefPrefix = "CU"

// Customer is a subscriber of the meal-prep service. RestrictedIngredients
// lists ingredient references the customer cannot eat; the kitchen consults
// it when picking the restriction action for a recipe entry.
type Customer struct {
	Ref                   string
	Name                  string
	LastName              string
	Email                 string
	Phone                 string
	Address               string
	MealPlanRef           string
	RestrictedIngredients []string
	Notes                 string
	Created               time.Time
}
