package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DeliveryOptionDTO struct {
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
// @Summary List delivery options
// @Tags DeliveryOption
// @Produce json
// @Param search query string false "Name filter"
// @Success 200 {array} DeliveryOptionDTO
// @Router /api/delivery-option [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing delivery options")
	w.Header().Set("Content-Type", "application/json")

	search := r.URL.Query().Get("search")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	options, err := h.service.List(r.Context(), search, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]DeliveryOptionDTO, 0, len(options))
	for _, option := range options {
		dtos = append(dtos, ToDTO(option))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get one delivery option
// @Tags DeliveryOption
// @Produce json
// @Param ref path string true "Delivery option reference"
// @Success 200 {object} DeliveryOptionDTO
// @Failure 404 {string} string "Delivery Option Not Found"
// @Router /api/delivery-option/{ref} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	option, err := h.service.Get(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrDeliveryOptionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(option)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a delivery option
// @Tags DeliveryOption
// @Accept json
// @Produce json
// @Param option body DeliveryOptionDTO true "Delivery option"
// @Success 201 {object} DeliveryOptionDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/delivery-option [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new delivery option")
	w.Header().Set("Content-Type", "application/json")

	var dto DeliveryOptionDTO
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
// @Summary Update a delivery option
// @Tags DeliveryOption
// @Accept json
// @Produce json
// @Param ref path string true "Delivery option reference"
// @Param option body DeliveryOptionDTO true "Delivery option"
// @Success 200 {object} DeliveryOptionDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Delivery Option Not Found"
// @Router /api/delivery-option/{ref} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	var dto DeliveryOptionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Ref != "" && dto.Ref != ref {
		http.Error(w, "Invalid delivery option ref in request body", http.StatusBadRequest)
		return
	}
	option := FromDTO(dto)
	option.Ref = ref

	updated, err := h.service.Update(r.Context(), option)
	if err != nil {
		if errors.Is(err, ErrDeliveryOptionNotFound) {
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
// @Summary Delete a delivery option
// @Tags DeliveryOption
// @Param ref path string true "Delivery option reference"
// @Success 204 "No Content"
// @Failure 404 {string} string "Delivery Option Not Found"
// @Router /api/delivery-option/{ref} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	deleted, err := h.service.Delete(r.Context(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "delivery option not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ToDTO(option DeliveryOption) DeliveryOptionDTO {
	created := ""
	if !option.Created.IsZero() {
		created = option.Created.Format(time.RFC3339)
	}
	return DeliveryOptionDTO{
		Ref:         option.Ref,
		Name:        option.Name,
		Description: option.Description,
		Cost:        option.Cost,
		Created:     created,
	}
}

func FromDTO(dto DeliveryOptionDTO) DeliveryOption {
	return DeliveryOption{
		Ref:         dto.Ref,
		Name:        dto.Name,
		Description: dto.Description,
		Cost:        dto.Cost,
	}
}
