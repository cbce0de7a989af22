package recipe

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

type RecipeDTO struct {
	Ref         string     `json:"ref,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Ingredients []EntryDTO `json:"ingredients"`
	Steps       []string   `json:"steps,omitempty"`
	Totals      TotalsDTO  `json:"totals"`
	Created     string     `json:"created,omitempty"`
}

type EntryDTO struct {
	IngredientRef string  `json:"ingredientRef"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	Restriction   string  `json:"restriction,omitempty"`
	SubstituteRef string  `json:"substituteRef,omitempty"`
}

type TotalsDTO struct {
	Cost     float64 `json:"cost"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbohydrates"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}

type PreviewResponseDTO struct {
	Totals     TotalsDTO `json:"totals"`
	Unresolved []string  `json:"unresolvedRefs,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List recipes
// @Tags Recipe
// @Produce json
// @Param search query string false "Name filter"
// @Success 200 {array} RecipeDTO
// @Router /api/recipe [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing recipes")
	w.Header().Set("Content-Type", "application/json")

	search := r.URL.Query().Get("search")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	recipes, err := h.service.List(r.Context(), search, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RecipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		dtos = append(dtos, ToDTO(recipe))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get one recipe with its ingredient list and totals
// @Tags Recipe
// @Produce json
// @Param ref path string true "Recipe reference"
// @Success 200 {object} RecipeDTO
// @Failure 404 {string} string "Recipe Not Found"
// @Router /api/recipe/{ref} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	recipe, err := h.service.Get(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(recipe)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a recipe; totals are computed from the current catalog
// @Tags Recipe
// @Accept json
// @Produce json
// @Param recipe body RecipeDTO true "Recipe"
// @Success 201 {object} RecipeDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/recipe [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new recipe")
	w.Header().Set("Content-Type", "application/json")

	var dto RecipeDTO
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
// @Summary Update a recipe; totals are recomputed from the current catalog
// @Tags Recipe
// @Accept json
// @Produce json
// @Param ref path string true "Recipe reference"
// @Param recipe body RecipeDTO true "Recipe"
// @Success 200 {object} RecipeDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Recipe Not Found"
// @Router /api/recipe/{ref} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	var dto RecipeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Ref != "" && dto.Ref != ref {
		http.Error(w, "Invalid recipe ref in request body", http.StatusBadRequest)
		return
	}
	recipe := FromDTO(dto)
	recipe.Ref = ref

	updated, err := h.service.Update(r.Context(), recipe)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
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
// @Summary Delete a recipe
// @Tags Recipe
// @Param ref path string true "Recipe reference"
// @Success 204 "No Content"
// @Failure 404 {string} string "Recipe Not Found"
// @Router /api/recipe/{ref} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	deleted, err := h.service.Delete(r.Context(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "recipe not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Duplicate godoc
// @Summary Duplicate a recipe, recomputing totals from the current catalog
// @Tags Recipe
// @Produce json
// @Param ref path string true "Recipe reference"
// @Success 201 {object} RecipeDTO
// @Failure 404 {string} string "Recipe Not Found"
// @Router /api/recipe/{ref}/duplicate [post]
func (h *Handler) Duplicate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Duplicating recipe")
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	duplicate, err := h.service.Duplicate(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ToDTO(duplicate)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Preview godoc
// @Summary Compute totals for an unsaved ingredient list
// @Description Used by the recipe form for its live preview; runs the same aggregation as the save path
// @Tags Recipe
// @Accept json
// @Produce json
// @Param ingredients body []EntryDTO true "Ingredient entries"
// @Success 200 {object} PreviewResponseDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/recipe/preview [post]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var entryDTOs []EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&entryDTOs); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries := make([]IngredientEntry, 0, len(entryDTOs))
	for _, dto := range entryDTOs {
		entries = append(entries, entryFromDTO(dto))
	}

	totals, unresolved, err := h.service.Preview(r.Context(), entries)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	response := PreviewResponseDTO{Totals: totalsToDTO(totals), Unresolved: unresolved}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UploadImage godoc
// @Summary Attach an image to a recipe
// @Tags Recipe
// @Accept mpfd
// @Produce json
// @Param ref path string true "Recipe reference"
// @Param image formData file true "Image file"
// @Success 200 {object} object{imageUrl=string}
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Recipe Not Found"
// @Router /api/recipe/{ref}/image [put]
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.service.AttachImage(r.Context(), ref, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"imageUrl": url}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func ToDTO(recipe Recipe) RecipeDTO {
	entries := make([]EntryDTO, 0, len(recipe.Ingredients))
	for _, entry := range recipe.Ingredients {
		entries = append(entries, EntryDTO{
			IngredientRef: entry.IngredientRef,
			Quantity:      entry.Quantity,
			Unit:          string(entry.Unit),
			Restriction:   string(entry.Restriction),
			SubstituteRef: entry.SubstituteRef,
		})
	}
	created := ""
	if !recipe.Created.IsZero() {
		created = recipe.Created.Format(time.RFC3339)
	}
	return RecipeDTO{
		Ref:         recipe.Ref,
		Name:        recipe.Name,
		Description: recipe.Description,
		ImageURL:    recipe.ImageURL,
		Ingredients: entries,
		Steps:       recipe.StepRefs,
		Totals:      totalsToDTO(recipe.Totals),
		Created:     created,
	}
}

func FromDTO(dto RecipeDTO) Recipe {
	entries := make([]IngredientEntry, 0, len(dto.Ingredients))
	for _, entryDTO := range dto.Ingredients {
		entries = append(entries, entryFromDTO(entryDTO))
	}
	return Recipe{
		Ref:         dto.Ref,
		Name:        dto.Name,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
		Ingredients: entries,
		StepRefs:    dto.Steps,
	}
}

func entryFromDTO(dto EntryDTO) IngredientEntry {
	return IngredientEntry{
		IngredientRef: dto.IngredientRef,
		Quantity:      dto.Quantity,
		Unit:          Unit(dto.Unit),
		Restriction:   RestrictionAction(dto.Restriction),
		SubstituteRef: dto.SubstituteRef,
	}
}

func totalsToDTO(totals nutrition.Totals) TotalsDTO {
	return TotalsDTO{
		Cost:     totals.Cost,
		Calories: totals.Calories,
		Carbs:    totals.Carbs,
		Protein:  totals.Protein,
		Fat:      totals.Fat,
	}
}
