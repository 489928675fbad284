package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tuanvumaihuynh/product-api/internal/model"
	"github.com/tuanvumaihuynh/product-api/internal/service"
	"github.com/tuanvumaihuynh/product-api/pkg/validator"
)

const productDeletedMsg = "product deleted"

type productHandler struct {
	logger     *slog.Logger
	validator  validator.Validator
	productSvc service.ProductService
}

func newProductHandler(logger *slog.Logger, v validator.Validator, productSvc service.ProductService) *productHandler {
	return &productHandler{
		logger:     logger,
		validator:  v,
		productSvc: productSvc,
	}
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.productSvc.ListProducts(r.Context())
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	writeJSON(h.logger, w, r, http.StatusOK, products)
	return nil
}

func (h *productHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := productID(r, h.validator)
	if err != nil {
		return err
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service get product: %w", err)
	}

	writeJSON(h.logger, w, r, http.StatusOK, product)
	return nil
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var req createProductRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return err
	}

	if err := h.validator.Validate(req); err != nil {
		return fmt.Errorf("validate create product request: %w", err)
	}

	product, err := h.productSvc.CreateProduct(r.Context(), req.toParams())
	if err != nil {
		return fmt.Errorf("product service create product: %w", err)
	}

	writeJSON(h.logger, w, r, http.StatusCreated, product)
	return nil
}

func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	var req updateProductRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return err
	}
	req.ID = urlProductID(r)

	if err := h.validator.Validate(req); err != nil {
		return fmt.Errorf("validate update product request: %w", err)
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), req.toParams())
	if err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}

	writeJSON(h.logger, w, r, http.StatusOK, product)
	return nil
}

func (h *productHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) error {
	id, err := productID(r, h.validator)
	if err != nil {
		return err
	}

	product, err := h.productSvc.ToggleAvailability(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service toggle availability: %w", err)
	}

	writeJSON(h.logger, w, r, http.StatusOK, product)
	return nil
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := productID(r, h.validator)
	if err != nil {
		return err
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		return fmt.Errorf("product service delete product: %w", err)
	}

	writeJSON(h.logger, w, r, http.StatusOK, productDeletedMsg)
	return nil
}
