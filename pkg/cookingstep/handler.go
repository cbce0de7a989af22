package cookingstep

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CookingStepDTO struct {
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
// @Summary List cooking steps
// @Tags CookingStep
// @Produce json
// @Param search query string false "Name filter"
// @Success 200 {array} CookingStepDTO
// @Router /api/cooking-step [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing cooking steps")
	w.Header().Set("Content-Type", "application/json")

	search := r.URL.Query().Get("search")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	steps, err := h.service.List(r.Context(), search, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CookingStepDTO, 0, len(steps))
	for _, step := range steps {
		dtos = append(dtos, ToDTO(step))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get one cooking step
// @Tags CookingStep
// @Produce json
// @Param ref path string true "Cooking step reference"
// @Success 200 {object} CookingStepDTO
// @Failure 404 {string} string "Cooking Step Not Found"
// @Router /api/cooking-step/{ref} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	step, err := h.service.Get(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrCookingStepNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(step)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a cooking step
// @Tags CookingStep
// @Accept json
// @Produce json
// @Param step body CookingStepDTO true "Cooking step"
// @Success 201 {object} CookingStepDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/cooking-step [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new cooking step")
	w.Header().Set("Content-Type", "application/json")

	var dto CookingStepDTO
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
// @Summary Update a cooking step
// @Tags CookingStep
// @Accept json
// @Produce json
// @Param ref path string true "Cooking step reference"
// @Param step body CookingStepDTO true "Cooking step"
// @Success 200 {object} CookingStepDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Cooking Step Not Found"
// @Router /api/cooking-step/{ref} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	var dto CookingStepDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Ref != "" && dto.Ref != ref {
		http.Error(w, "Invalid cooking step ref in request body", http.StatusBadRequest)
		return
	}
	step := FromDTO(dto)
	step.Ref = ref

	updated, err := h.service.Update(r.Context(), step)
	if err != nil {
		if errors.Is(err, ErrCookingStepNotFound) {
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
// @Summary Delete a cooking step
// @Tags CookingStep
// @Param ref path string true "Cooking step reference"
// @Success 204 "No Content"
// @Failure 404 {string} string "Cooking Step Not Found"
// @Router /api/cooking-step/{ref} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	deleted, err := h.service.Delete(r.Context(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "cooking step not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ToDTO(step CookingStep) CookingStepDTO {
	created := ""
	if !step.Created.IsZero() {
		created = step.Created.Format(time.RFC3339)
	}
	return CookingStepDTO{
		Ref:         step.Ref,
		Name:        step.Name,
		Description: step.Description,
		Created:     created,
	}
}

func FromDTO(dto CookingStepDTO) CookingStep {
	return CookingStep{
		Ref:         dto.Ref,
		Name:        dto.Name,
		Description: dto.Description,
	}
}
