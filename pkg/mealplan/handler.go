package mealplan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type MealPlanDTO struct {
	Ref         string `json:"ref,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Created     string `json:"created,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List meal plans
// @Tags MealPlan
// @Produce json
// @Param search query string false "Name filter"
// @Success 200 {array} MealPlanDTO
// @Router /api/meal-plan [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing meal plans")
	w.Header().Set("Content-Type", "application/json")

	search := r.URL.Query().Get("search")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	plans, err := h.service.List(r.Context(), search, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]MealPlanDTO, 0, len(plans))
	for _, plan := range plans {
		dtos = append(dtos, ToDTO(plan))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get one meal plan
// @Tags MealPlan
// @Produce json
// @Param ref path string true "Meal plan reference"
// @Success 200 {object} MealPlanDTO
// @Failure 404 {string} string "Meal Plan Not Found"
// @Router /api/meal-plan/{ref} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	plan, err := h.service.Get(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrMealPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(plan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a meal plan
// @Tags MealPlan
// @Accept json
// @Produce json
// @Param plan body MealPlanDTO true "Meal plan"
// @Success 201 {object} MealPlanDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/meal-plan [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new meal plan")
	w.Header().Set("Content-Type", "application/json")

	var dto MealPlanDTO
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
// @Summary Update a meal plan
// @Tags MealPlan
// @Accept json
// @Produce json
// @Param ref path string true "Meal plan reference"
// @Param plan body MealPlanDTO true "Meal plan"
// @Success 200 {object} MealPlanDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Meal Plan Not Found"
// @Router /api/meal-plan/{ref} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	var dto MealPlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Ref != "" && dto.Ref != ref {
		http.Error(w, "Invalid meal plan ref in request body", http.StatusBadRequest)
		return
	}
	plan := FromDTO(dto)
	plan.Ref = ref

	updated, err := h.service.Update(r.Context(), plan)
	if err != nil {
		if errors.Is(err, ErrMealPlanNotFound) {
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
// @Summary Delete a meal plan
// @Tags MealPlan
// @Param ref path string true "Meal plan reference"
// @Success 204 "No Content"
// @Failure 404 {string} string "Meal Plan Not Found"
// @Router /api/meal-plan/{ref} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	deleted, err := h.service.Delete(r.Context(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "meal plan not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ToDTO(plan MealPlan) MealPlanDTO {
	created := ""
	if !plan.Created.IsZero() {
		created = plan.Created.Format(time.RFC3339)
	}
	return MealPlanDTO{
		Ref:         plan.Ref,
		Name:        plan.Name,
		Description: plan.Description,
		Created:     created,
	}
}

func FromDTO(dto MealPlanDTO) MealPlan {
	return MealPlan{
		Ref:         dto.Ref,
		Name:        dto.Name,
		Description: dto.Description,
	}
}
