package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/product-api/internal/apperr"
	"github.com/tuanvumaihuynh/product-api/internal/service"
	"github.com/tuanvumaihuynh/product-api/pkg/ptr"
	"github.com/tuanvumaihuynh/product-api/pkg/validator"
)

const maxBodyBytes = 1 << 20 // 1 MB

// Body fields are decoded as any so a wrong JSON type is reported as a field
// error instead of a body error.

type productIDRequest struct {
	ID string `json:"id" validate:"positive_int"`
}

type createProductRequest struct {
	Name         any `json:"name" validate:"present,string_value,notblank,max=100"`
	Price        any `json:"price" validate:"present,numeric_value,positive"`
	Availability any `json:"availability" validate:"omitempty,boolean_value"`
}

type updateProductRequest struct {
	ID           string `json:"id" validate:"positive_int"`
	Name         any    `json:"name" validate:"present,string_value,notblank,max=100"`
	Price        any    `json:"price" validate:"present,numeric_value,positive"`
	Availability any    `json:"availability" validate:"present,boolean_value"`
}

func (req createProductRequest) toParams() service.CreateProductParams {
	name, _ := req.Name.(string)
	price, _ := validator.ParseNumber(req.Price)

	params := service.CreateProductParams{
		Name:  name,
		Price: price,
	}
	if availability, ok := validator.ParseBool(req.Availability); ok {
		params.Availability = ptr.New(availability)
	}

	return params
}

func (req updateProductRequest) toParams() service.UpdateProductParams {
	id, _ := strconv.ParseInt(req.ID, 10, 64)
	name, _ := req.Name.(string)
	price, _ := validator.ParseNumber(req.Price)
	availability, _ := validator.ParseBool(req.Availability)

	return service.UpdateProductParams{
		ID:           id,
		Name:         name,
		Price:        price,
		Availability: availability,
	}
}

// decodeJSONBody decodes the request body into dst. An empty body leaves dst untouched.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.InvalidRequestBodyErr.WrapParent(err)
	}

	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.InvalidRequestBodyErr.WrapParent(errors.New("unexpected data after JSON value"))
	}
	return nil
}

// productID validates the id path parameter.
func productID(r *http.Request, v validator.Validator) (int64, error) {
	req := productIDRequest{ID: urlProductID(r)}
	if err := v.Validate(req); err != nil {
		return 0, fmt.Errorf("validate product id: %w", err)
	}

	id, err := strconv.ParseInt(req.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse product id: %w", err)
	}
	return id, nil
}

func urlProductID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
