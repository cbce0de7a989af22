package weeklymenu

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type WeeklyMenuDTO struct {
	Ref     string        `json:"ref,omitempty"`
	Name    string        `json:"name"`
	Cells   []PlanCellDTO `json:"cells"`
	Totals  *TotalsDTO    `json:"totals,omitempty"`
	Created string        `json:"created,omitempty"`
}

type PlanCellDTO struct {
	Ref            string  `json:"ref,omitempty"`
	MealPlanRef    string  `json:"mealPlanRef"`
	Day            string  `json:"day"`
	Breakfast      string  `json:"breakfast,omitempty"`
	MorningSnack   string  `json:"morningSnack,omitempty"`
	Lunch          string  `json:"lunch,omitempty"`
	AfternoonSnack string  `json:"afternoonSnack,omitempty"`
	Dinner         string  `json:"dinner,omitempty"`
	Cost           float64 `json:"cost"`
	Calories       float64 `json:"calories"`
}

type TotalsDTO struct {
	Cost     float64 `json:"cost"`
	Calories float64 `json:"calories"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List weekly menus without their cell grids
// @Tags WeeklyMenu
// @Produce json
// @Param search query string false "Name filter"
// @Success 200 {array} WeeklyMenuDTO
// @Router /api/weekly-menu [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing weekly menus")
	w.Header().Set("Content-Type", "application/json")

	search := r.URL.Query().Get("search")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	menus, err := h.service.List(r.Context(), search, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]WeeklyMenuDTO, 0, len(menus))
	for _, menu := range menus {
		dtos = append(dtos, ToDTO(menu))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get one weekly menu with its cells and derived week totals
// @Tags WeeklyMenu
// @Produce json
// @Param ref path string true "Weekly menu reference"
// @Success 200 {object} WeeklyMenuDTO
// @Failure 404 {string} string "Weekly Menu Not Found"
// @Router /api/weekly-menu/{ref} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	menu, err := h.service.Get(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrWeeklyMenuNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(menu)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a weekly menu; cell totals are computed from stored recipe totals
// @Tags WeeklyMenu
// @Accept json
// @Produce json
// @Param menu body WeeklyMenuDTO true "Weekly menu"
// @Success 201 {object} WeeklyMenuDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/weekly-menu [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new weekly menu")
	w.Header().Set("Content-Type", "application/json")

	var dto WeeklyMenuDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), FromDTO(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update godoc
// @Summary Replace a weekly menu's name and cell grid
// @Tags WeeklyMenu
// @Accept json
// @Produce json
// @Param ref path string true "Weekly menu reference"
// @Param menu body WeeklyMenuDTO true "Weekly menu"
// @Success 200 {object} WeeklyMenuDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Weekly Menu Not Found"
// @Router /api/weekly-menu/{ref} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	var dto WeeklyMenuDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Ref != "" && dto.Ref != ref {
		http.Error(w, "Invalid weekly menu ref in request body", http.StatusBadRequest)
		return
	}
	menu := FromDTO(dto)
	menu.Ref = ref

	updated, err := h.service.Update(r.Context(), menu)
	if err != nil {
		if errors.Is(err, ErrWeeklyMenuNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete godoc
// @Summary Delete a weekly menu and its cells
// @Tags WeeklyMenu
// @Param ref path string true "Weekly menu reference"
// @Success 204 "No Content"
// @Failure 404 {string} string "Weekly Menu Not Found"
// @Router /api/weekly-menu/{ref} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	if err := h.service.Delete(r.Context(), ref); err != nil {
		if errors.Is(err, ErrWeeklyMenuNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ToDTO(menu WeeklyMenu) WeeklyMenuDTO {
	cells := make([]PlanCellDTO, 0, len(menu.Cells))
	for _, cell := range menu.Cells {
		cells = append(cells, PlanCellDTO{
			Ref:            cell.Ref,
			MealPlanRef:    cell.MealPlanRef,
			Day:            string(cell.Day),
			Breakfast:      cell.Slots.Breakfast,
			MorningSnack:   cell.Slots.MorningSnack,
			Lunch:          cell.Slots.Lunch,
			AfternoonSnack: cell.Slots.AfternoonSnack,
			Dinner:         cell.Slots.Dinner,
			Cost:           cell.Cost,
			Calories:       cell.Calories,
		})
	}
	dto := WeeklyMenuDTO{
		Ref:   menu.Ref,
		Name:  menu.Name,
		Cells: cells,
	}
	if len(menu.Cells) > 0 {
		totals := menu.Totals()
		dto.Totals = &TotalsDTO{Cost: totals.Cost, Calories: totals.Calories}
	}
	if !menu.Created.IsZero() {
		dto.Created = menu.Created.Format(time.RFC3339)
	}
	return dto
}

func FromDTO(dto WeeklyMenuDTO) WeeklyMenu {
	cells := make([]PlanCell, 0, len(dto.Cells))
	for _, cellDTO := range dto.Cells {
		cells = append(cells, PlanCell{
			Ref:         cellDTO.Ref,
			MealPlanRef: cellDTO.MealPlanRef,
			Day:         Weekday(cellDTO.Day),
			Slots: SlotRecipes{
				Breakfast:      cellDTO.Breakfast,
				MorningSnack:   cellDTO.MorningSnack,
				Lunch:          cellDTO.Lunch,
				AfternoonSnack: cellDTO.AfternoonSnack,
				Dinner:         cellDTO.Dinner,
			},
		})
	}
	return WeeklyMenu{
		Ref:   dto.Ref,
		Name:  dto.Name,
		Cells: cells,
	}
}
