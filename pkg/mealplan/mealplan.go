package mealplan

import "time"

// RefPrefix is the reference code prefix for meal plans ("MP3").
const RefPrefix = "MP"

// MealPlan is a plan type offered to customers (e.g. a 1500 kcal plan).
// Weekly menu cells reference plans by Ref.
type MealPlan struct {
	Ref         string
	Name        string
	Description string
	Created     time.Time
}
