package weeklymenu

import (
	"time"

	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

// RefPrefix is the reference code prefix for weekly menus ("WM2").
const RefPrefix = "WM"

// CellRefPrefix is the reference code prefix for plan cells ("WP15").
const CellRefPrefix = "WP"

// Weekday names the five working days a menu covers, using the kitchen's
// own labels.
type Weekday string

const (
	Monday    Weekday = "lunes"
	Tuesday   Weekday = "martes"
	Wednesday Weekday = "miercoles"
	Thursday  Weekday = "jueves"
	Friday    Weekday = "viernes"
)

// Weekdays returns the five days in menu order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
}

// SlotRecipes holds up to five recipe references for one plan cell, one per
// meal slot. An empty string means no recipe selected for that slot.
type SlotRecipes struct {
	Breakfast      string
	MorningSnack   string
	Lunch          string
	AfternoonSnack string
	Dinner         string
}

// Refs returns the slot references in meal order, empty slots included.
func (s SlotRecipes) Refs() []string {
	return []string{s.Breakfast, s.MorningSnack, s.Lunch, s.AfternoonSnack, s.Dinner}
}

// PlanCell is one (meal plan, weekday) cell of a weekly menu. Cost and
// Calories are computed from the referenced recipes' stored totals at save
// time and rounded to 2 decimals.
type PlanCell struct {
	Ref         string
	MealPlanRef string
	Day         Weekday
	Slots       SlotRecipes
	Cost        float64
	Calories    float64
}

type WeeklyMenu struct {
	Ref     string
	Name    string
	Created time.Time
	Cells   []PlanCell
}

// Totals derives the whole-menu aggregate by summing the stored cell totals.
// Derived at read time, never persisted.
func (m WeeklyMenu) Totals() nutrition.CellTotals {
	cells := make([]nutrition.CellTotals, 0, len(m.Cells))
	for _, cell := range m.Cells {
		cells = append(cells, nutrition.CellTotals{Cost: cell.Cost, Calories: cell.Calories})
	}
	week := nutrition.SumWeek(cells)
	week.Cost = nutrition.Round2(week.Cost)
	week.Calories = nutrition.Round2(week.Calories)
	return week
}
