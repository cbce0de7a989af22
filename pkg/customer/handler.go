package customer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CustomerDTO struct {
	Ref                   string   `json:"ref,omitempty"`
	Name                  string   `json:"name"`
	LastName              string   `json:"lastName,omitempty"`
	Email                 string   `json:"email,omitempty"`
	Phone                 string   `json:"phone,omitempty"`
	Address               string   `json:"address,omitempty"`
	MealPlanRef           string   `json:"mealPlanRef,omitempty"`
	RestrictedIngredients []string `json:"restrictedIngredients,omitempty"`
	Notes                 string   `json:"notes,omitempty"`
	Created               string   `json:"created,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List customers
// @Tags Customer
// @Produce json
// @Param search query string false "Name, last name or email filter"
// @Success 200 {array} CustomerDTO
// @Router /api/customer [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing customers")
	w.Header().Set("Content-Type", "application/json")

	search := r.URL.Query().Get("search")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	customers, err := h.service.List(r.Context(), search, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CustomerDTO, 0, len(customers))
	for _, customer := range customers {
		dtos = append(dtos, ToDTO(customer))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get one customer with their restriction list
// @Tags Customer
// @Produce json
// @Param ref path string true "Customer reference"
// @Success 200 {object} CustomerDTO
// @Failure 404 {string} string "Customer Not Found"
// @Router /api/customer/{ref} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	customer, err := h.service.Get(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(customer)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a customer
// @Tags Customer
// @Accept json
// @Produce json
// @Param customer body CustomerDTO true "Customer"
// @Success 201 {object} CustomerDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/customer [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new customer")
	w.Header().Set("Content-Type", "application/json")

	var dto CustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), FromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidEmail) {
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
// @Summary Update a customer and replace their restriction list
// @Tags Customer
// @Accept json
// @Produce json
// @Param ref path string true "Customer reference"
// @Param customer body CustomerDTO true "Customer"
// @Success 200 {object} CustomerDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Customer Not Found"
// @Router /api/customer/{ref} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ref := mux.Vars(r)["ref"]

	var dto CustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Ref != "" && dto.Ref != ref {
		http.Error(w, "Invalid customer ref in request body", http.StatusBadRequest)
		return
	}
	customer := FromDTO(dto)
	customer.Ref = ref

	updated, err := h.service.Update(r.Context(), customer)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidEmail) {
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
// @Summary Delete a customer
// @Tags Customer
// @Param ref path string true "Customer reference"
// @Success 204 "No Content"
// @Failure 404 {string} string "Customer Not Found"
// @Router /api/customer/{ref} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	deleted, err := h.service.Delete(r.Context(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ToDTO(customer Customer) CustomerDTO {
	created := ""
	if !customer.Created.IsZero() {
		created = customer.Created.Format(time.RFC3339)
	}
	return CustomerDTO{
		Ref:                   customer.Ref,
		Name:                  customer.Name,
		LastName:              customer.LastName,
		Email:                 customer.Email,
		Phone:                 customer.Phone,
		Address:               customer.Address,
		MealPlanRef:           customer.MealPlanRef,
		RestrictedIngredients: customer.RestrictedIngredients,
		Notes:                 customer.Notes,
		Created:               created,
	}
}

func FromDTO(dto CustomerDTO) Customer {
	return Customer{
		Ref:                   dto.Ref,
		Name:                  dto.Name,
		LastName:              dto.LastName,
		Email:                 dto.Email,
		Phone:                 dto.Phone,
		Address:               dto.Address,
		MealPlanRef:           dto.MealPlanRef,
		RestrictedIngredients: dto.RestrictedIngredients,
		Notes:                 dto.Notes,
	}
}
