package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/khanabid1694/sj-server/internal/order"
)

type SubmitOrderRequest struct {
	CustomerName  string       `json:"customerName" validate:"required"`
	Phone         string       `json:"phone" validate:"required"`
	Address       string       `json:"address" validate:"required"`
	Items         []order.Item `json:"items"`
	TotalAmount   float64      `json:"totalAmount" validate:"required"`
	PaymentMethod string       `json:"paymentMethod"`
	OrderID       string       `json:"orderId"`
}

type OrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

// OrderHandler serves the order intake route.
type OrderHandler struct {
	svc      order.Service
	validate *validator.Validate
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/orders", h.handleSubmit)
}

func (h *OrderHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var requestPayload SubmitOrderRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode order payload")
		respondWithJSON(w, http.StatusBadRequest, OrderResponse{
			Success: false,
			Message: "Invalid request payload",
		})
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			log.Error().Err(err).Msg("Unexpected error type during order validation")
			respondWithJSON(w, http.StatusInternalServerError, OrderResponse{
				Success: false,
				Message: "Internal validation error",
			})
			return
		}
		respondWithJSON(w, http.StatusBadRequest, OrderResponse{
			Success: false,
			Message: "Missing required order fields: customerName, phone, address and totalAmount are required",
		})
		return
	}

	o := order.Order{
		CustomerName:  requestPayload.CustomerName,
		Phone:         requestPayload.Phone,
		Address:       requestPayload.Address,
		Items:         requestPayload.Items,
		TotalAmount:   requestPayload.TotalAmount,
		PaymentMethod: requestPayload.PaymentMethod,
		OrderID:       requestPayload.OrderID,
	}

	ref, err := h.svc.Submit(r.Context(), &o)
	if err != nil {
		log.Error().Err(err).Msg("Failed to submit order")

		statusCode := mapErrorToStatusCode(err)

		var clientMessage string
		if errors.Is(err, order.ErrInvalidOrder) {
			clientMessage = "Missing required order fields"
		} else {
			clientMessage = "Failed to process order, please try again"
		}

		respondWithJSON(w, statusCode, OrderResponse{
			Success: false,
			Message: clientMessage,
		})
		return
	}

	respondWithJSON(w, http.StatusOK, OrderResponse{
		Success: true,
		Message: "Order received",
		OrderID: ref,
	})
}
