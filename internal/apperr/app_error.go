package apperr

import "github.com/tuanvumaihuynh/product-api/pkg/zerror"

const (
	ValidationErrorCode     = "VALIDATION_FAILED"
	ProductNotFoundCode     = "PRODUCT_NOT_FOUND"
	RouteNotFoundCode       = "ROUTE_NOT_FOUND"
	MethodNotAllowedCode    = "METHOD_NOT_ALLOWED"
	InvalidRequestBodyCode  = "INVALID_REQUEST_BODY"
	OriginNotAllowedCode    = "CORS_ORIGIN_NOT_ALLOWED"
	StorageUnavailableCode  = "STORAGE_UNAVAILABLE"
	InternalServerErrorCode = "INTERNAL_SERVER_ERROR"
)

var (
	ValidationErr         = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	ProductNotFoundErr    = zerror.NewNotFound(ProductNotFoundCode, "product not found")
	RouteNotFoundErr      = zerror.NewNotFound(RouteNotFoundCode, "route not found")
	MethodNotAllowedErr   = zerror.NewMethodNotAllowed(MethodNotAllowedCode, "method not allowed")
	InvalidRequestBodyErr = zerror.NewBadRequest(InvalidRequestBodyCode, "invalid request body")
	OriginNotAllowedErr   = zerror.NewForbidden(OriginNotAllowedCode, "origin not allowed")
	StorageUnavailableErr = zerror.NewServiceUnavailable(StorageUnavailableCode, "storage unavailable")
)
