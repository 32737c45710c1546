package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storefront-labs/storefront-backend/api/responses"
	"github.com/storefront-labs/storefront-backend/api/validators"
	productsvc "github.com/storefront-labs/storefront-backend/internal/products"
	"github.com/storefront-labs/storefront-backend/pkg/enums"
	pkgerrors "github.com/storefront-labs/storefront-backend/pkg/errors"
	"github.com/storefront-labs/storefront-backend/pkg/logger"
	"github.com/storefront-labs/storefront-backend/pkg/pagination"
	"github.com/storefront-labs/storefront-backend/pkg/types"
)

// ListProducts serves the catalog with filtering, sorting, and pagination.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseListProductsQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, result.Items, pagination.Meta(input.Pagination, result.Total))
	}
}

func parseListProductsQuery(r *http.Request) (*productsvc.ListProductsInput, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return nil, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	input := &productsvc.ListProductsInput{
		Pagination: pagination.Params{Page: page, Limit: limit},
		Filters: productsvc.ProductListFilters{
			Query:    validators.SanitizeString(validators.QueryValue(r, "query", "q"), 100),
			Category: validators.SanitizeString(validators.QueryValue(r, "category"), 255),
		},
	}

	if raw := validators.QueryValue(r, "minPrice", "min_price"); raw != "" {
		cents, err := types.ParseDecimalString(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must be a decimal number")
		}
		input.Filters.PriceMinCents = &cents
	}
	if raw := validators.QueryValue(r, "maxPrice", "max_price"); raw != "" {
		cents, err := types.ParseDecimalString(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "maxPrice must be a decimal number")
		}
		input.Filters.PriceMaxCents = &cents
	}

	if raw := validators.QueryValue(r, "sortBy", "sort_by"); raw != "" {
		field, err := enums.ParseProductSortField(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sortBy field")
		}
		order := enums.SortOrderAsc
		if rawOrder := validators.QueryValue(r, "sortOrder", "sort_order"); rawOrder != "" {
			order, err = enums.ParseSortOrder(rawOrder)
			if err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "sortOrder must be asc or desc")
			}
		}
		input.Sort = &productsvc.ProductSort{Field: field, Order: order}
	}

	return input, nil
}

// GetProduct serves a single catalog product.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}

		dto, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Price       string  `json:"price" validate:"required"`
	Image       string  `json:"image" validate:"required,min=5,max=500"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Inventory   int     `json:"inventory" validate:"gte=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=255"`
}

// CreateProduct handles admin catalog additions.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			Name:        payload.Name,
			Price:       payload.Price,
			Image:       payload.Image,
			Description: payload.Description,
			Inventory:   payload.Inventory,
			Category:    payload.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// DeleteProduct handles admin catalog removals.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
