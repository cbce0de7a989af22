package ingredient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

type IngredientDTO struct {
	Ref         string  `json:"ref,omitempty"`
	Name        string  `json:"name"`
	Calories    float64 `json:"calories"`
	Carbs       float64 `json:"carbohydrates"`
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
	CostPerKilo float64 `json:"costPerKilo"`
	Created     string  `json:"created,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List catalog ingredients
// @Description Get ingredients, optionally filtered by a name search
// @Tags Ingredient
// @Produce json
// @Param search query string false "Name filter"
// @Success 200 {array} IngredientDTO
// @Router /api/ingredient [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing ingredients")
	w.Header().Set("Content-Type", "application/json")

	search := r.URL.Query().Get("search")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	ingredients, err := h.service.List(r.Context(), search, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]IngredientDTO, 0, len(ingredients))
	for _, ingredient := range ingredients {
		dtos = append(dtos, ToDTO(ingredient))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get one ingredient by reference
// @Tags Ingredient
// @Produce json
// @Param ref path string true "Ingredient reference"
// @Success 200 {object} IngredientDTO
// @Failure 404 {string} string "Ingredient Not Found"
// @Router /api/ingredient/{ref} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	ingredient, err := h.service.Get(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrIngredientNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(ingredient)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a new catalog ingredient
// @Tags Ingredient
// @Accept json
// @Produce json
// @Param ingredient body IngredientDTO true "Ingredient"
// @Success 201 {object} IngredientDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/ingredient [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new ingredient")
	w.Header().Set("Content-Type", "application/json")

	var dto IngredientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), FromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidFacts) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
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
// @Summary Update an ingredient
// @Tags Ingredient
// @Accept json
// @Produce json
// @Param ref path string true "Ingredient reference"
// @Param ingredient body IngredientDTO true "Ingredient"
// @Success 200 {object} IngredientDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Ingredient Not Found"
// @Router /api/ingredient/{ref} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	var dto IngredientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Ref != "" && dto.Ref != ref {
		http.Error(w, "Invalid ingredient ref in request body", http.StatusBadRequest)
		return
	}
	ingredient := FromDTO(dto)
	ingredient.Ref = ref

	updated, err := h.service.Update(r.Context(), ingredient)
	if err != nil {
		if errors.Is(err, ErrIngredientNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidFacts) {
			http.Error(w, err.Error(), http.StatusBadRequest)
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
// @Summary Delete an ingredient
// @Tags Ingredient
// @Param ref path string true "Ingredient reference"
// @Success 204 "No Content"
// @Failure 404 {string} string "Ingredient Not Found"
// @Router /api/ingredient/{ref} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	deleted, err := h.service.Delete(r.Context(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "ingredient not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ToDTO(ingredient Ingredient) IngredientDTO {
	created := ""
	if !ingredient.Created.IsZero() {
		created = ingredient.Created.Format(time.RFC3339)
	}
	return IngredientDTO{
		Ref:         ingredient.Ref,
		Name:        ingredient.Name,
		Calories:    ingredient.Facts.Calories,
		Carbs:       ingredient.Facts.Carbs,
		Protein:     ingredient.Facts.Protein,
		Fat:         ingredient.Facts.Fat,
		CostPerKilo: ingredient.Facts.CostPerKilo,
		Created:     created,
	}
}

func FromDTO(dto IngredientDTO) Ingredient {
	return Ingredient{
		Ref:  dto.Ref,
		Name: dto.Name,
		Facts: nutrition.Facts{
			Calories:    dto.Calories,
			Carbs:       dto.Carbs,
			Protein:     dto.Protein,
			Fat:         dto.Fat,
			CostPerKilo: dto.CostPerKilo,
		},
	}
}
