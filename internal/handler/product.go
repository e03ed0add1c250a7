package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/khanabid1694/sj-server/internal/product"
)

const maxUploadSize = 32 << 20 // 32 MiB form memory cap

type CreateProductRequest struct {
	Title       string `validate:"required"`
	Description string
	Weight      string
	Category    string `validate:"required"`
	ImageURL    string
}

// ProductHandler serves the product CRUD routes.
type ProductHandler struct {
	svc      product.Service
	validate *validator.Validate
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *ProductHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleList)
	router.Post("/products", h.handleCreate)
	router.Put("/products/{id}", h.handleUpdate)
	router.Delete("/products/{id}", h.handleDelete)
}

func (h *ProductHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	requestPayload := CreateProductRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Weight:      r.FormValue("weight"),
		Category:    r.FormValue("category"),
		ImageURL:    r.FormValue("imageUrl"),
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Title and category are required")
		return
	}

	input := product.CreateInput{
		Title:       requestPayload.Title,
		Description: requestPayload.Description,
		Weight:      requestPayload.Weight,
		Category:    requestPayload.Category,
		ImageURL:    requestPayload.ImageURL,
	}

	file, header, err := r.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		respondWithError(w, http.StatusBadRequest, "Invalid image file")
		return
	}
	if err == nil {
		defer file.Close()
		input.File = file
		input.Filename = header.Filename
	}

	if input.File == nil && input.ImageURL == "" {
		respondWithError(w, http.StatusBadRequest, "An image file or imageUrl is required")
		return
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create product")
		statusCode := mapErrorToStatusCode(err)
		if statusCode == http.StatusBadRequest {
			respondWithError(w, statusCode, err.Error())
		} else {
			respondWithError(w, statusCode, "Failed to create product")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) handleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	input := product.UpdateInput{
		Title:       formValuePtr(r, "title"),
		Description: formValuePtr(r, "description"),
		Weight:      formValuePtr(r, "weight"),
		Category:    formValuePtr(r, "category"),
		ImageURL:    formValuePtr(r, "imageUrl"),
	}

	file, header, err := r.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		respondWithError(w, http.StatusBadRequest, "Invalid image file")
		return
	}
	if err == nil {
		defer file.Close()
		input.File = file
		input.Filename = header.Filename
	}

	updated, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		log.Error().Err(err).Int64("product_id", id).Msg("Failed to update product")

		statusCode := mapErrorToStatusCode(err)

		var clientMessage string
		if errors.Is(err, product.ErrNotFound) {
			clientMessage = "Product not found"
		} else {
			clientMessage = "Failed to update product"
		}

		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Int64("product_id", id).Msg("Failed to delete product")
		respondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Product %d deleted", id)})
}

func parseID(raw string) (int64, error) {
	if raw == "" {
		return 0, errors.New("id is required")
	}
	return strconv.ParseInt(raw, 10, 64)
}

// formValuePtr distinguishes "field absent" (nil) from "field set to a
// value"; partial updates depend on that distinction.
func formValuePtr(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
