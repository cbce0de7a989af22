package container

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type FoodContainerDTO struct {
	Ref         string  `json:"ref,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Cost        float64 `json:"cost"`
	Created     string  `json:"created,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List food containers
// @Tags FoodContainer
// @Produce json
// @Param search query string false "Name filter"
// @Success 200 {array} FoodContainerDTO
// @Router /api/container [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing food containers")
	w.Header().Set("Content-Type", "application/json")

	search := r.URL.Query().Get("search")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	containers, err := h.service.List(r.Context(), search, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]FoodContainerDTO, 0, len(containers))
	for _, container := range containers {
		dtos = append(dtos, ToDTO(container))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get one food container
// @Tags FoodContainer
// @Produce json
// @Param ref path string true "Container reference"
// @Success 200 {object} FoodContainerDTO
// @Failure 404 {string} string "Container Not Found"
// @Router /api/container/{ref} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	container, err := h.service.Get(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrContainerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(container)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a food container
// @Tags FoodContainer
// @Accept json
// @Produce json
// @Param container body FoodContainerDTO true "Food container"
// @Success 201 {object} FoodContainerDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/container [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new food container")
	w.Header().Set("Content-Type", "application/json")

	var dto FoodContainerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), FromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidCost) {
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
// @Summary Update a food container
// @Tags FoodContainer
// @Accept json
// @Produce json
// @Param ref path string true "Container reference"
// @Param container body FoodContainerDTO true "Food container"
// @Success 200 {object} FoodContainerDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Container Not Found"
// @Router /api/container/{ref} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	var dto FoodContainerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Ref != "" && dto.Ref != ref {
		http.Error(w, "Invalid container ref in request body", http.StatusBadRequest)
		return
	}
	container := FromDTO(dto)
	container.Ref = ref

	updated, err := h.service.Update(r.Context(), container)
	if err != nil {
		if errors.Is(err, ErrContainerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidCost) {
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
// @Summary Delete a food container
// @Tags FoodContainer
// @Param ref path string true "Container reference"
// @Success 204 "No Content"
// @Failure 404 {string} string "Container Not Found"
// @Router /api/container/{ref} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	deleted, err := h.service.Delete(r.Context(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "food container not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ToDTO(container FoodContainer) FoodContainerDTO {
	created := ""
	if !container.Created.IsZero() {
		created = container.Created.Format(time.RFC3339)
	}
	return FoodContainerDTO{
		Ref:         container.Ref,
		Name:        container.Name,
		Description: container.Description,
		Cost:        container.Cost,
		Created:     created,
	}
}

func FromDTO(dto FoodContainerDTO) FoodContainer {
	return FoodContainer{
		Ref:         dto.Ref,
		Name:        dto.Name,
		Description: dto.Description,
		Cost:        dto.Cost,
	}
}
