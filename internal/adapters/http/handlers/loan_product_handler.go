package handlers

import (
	"errors"
	"strconv"

	"lendcheck/internal/core/services"
	"lendcheck/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanProductHandler handles loan product endpoints
type LoanProductHandler struct {
	productService *services.LoanProductService
}

// NewLoanProductHandler creates a new loan product handler
func NewLoanProductHandler(productService *services.LoanProductService) *LoanProductHandler {
	return &LoanProductHandler{productService: productService}
}

// Create creates a loan product
// @Summary Create loan product
// @Description Create a new loan product (admin only)
// @Tags LoanProducts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProductInput true "Product data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loan-products [post]
func (h *LoanProductHandler) Create(c *fiber.Ctx) error {
	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.ProductCode == "" || input.ProductName == "" || input.LoanType == "" {
		return response.BadRequest(c, "Product code, name and loan type are required")
	}

	product, err := h.productService.Add(c.Context(), &input)
	if err != nil {
		return h.mapProductError(c, err, "Failed to create loan product")
	}

	return response.Created(c, "Loan product created successfully", product)
}

// List lists loan products
// @Summary List loan products
// @Description List loan products with pagination
// @Tags LoanProducts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /loan-products [get]
func (h *LoanProductHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	result, err := h.productService.List(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loan products")
	}

	return response.Success(c, "Loan products retrieved successfully", result)
}

// GetByID gets a loan product by ID
// @Summary Get loan product
// @Description Get a loan product by ID
// @Tags LoanProducts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loan-products/{id} [get]
func (h *LoanProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	product, err := h.productService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return response.NotFound(c, "Loan product not found")
		}
		return response.InternalServerError(c, "Failed to get loan product")
	}

	return response.Success(c, "Loan product retrieved successfully", product)
}

// GetByCode gets a loan product by its product code
// @Summary Get loan product by code
// @Description Get a loan product by its unique product code
// @Tags LoanProducts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Product code"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loan-products/code/{code} [get]
func (h *LoanProductHandler) GetByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return response.BadRequest(c, "Product code is required")
	}

	product, err := h.productService.GetByCode(c.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return response.NotFound(c, "Loan product not found")
		}
		return response.InternalServerError(c, "Failed to get loan product")
	}

	return response.Success(c, "Loan product retrieved successfully", product)
}

// Update updates a loan product
// @Summary Update loan product
// @Description Update a loan product (admin only)
// @Tags LoanProducts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param body body services.ProductInput true "Product data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loan-products/{id} [put]
func (h *LoanProductHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.Update(c.Context(), uint(id), &input)
	if err != nil {
		return h.mapProductError(c, err, "Failed to update loan product")
	}

	return response.Success(c, "Loan product updated successfully", product)
}

// Delete deletes a loan product
// @Summary Delete loan product
// @Description Soft-delete a loan product (admin only)
// @Tags LoanProducts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loan-products/{id} [delete]
func (h *LoanProductHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.productService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return response.NotFound(c, "Loan product not found")
		}
		return response.InternalServerError(c, "Failed to delete loan product")
	}

	return response.Success(c, "Loan product deleted successfully", nil)
}

// mapProductError maps service errors to HTTP responses
func (h *LoanProductHandler) mapProductError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return response.NotFound(c, "Loan product not found")
	case errors.Is(err, services.ErrProductCodeTaken):
		return response.Conflict(c, "Product code already exists")
	case errors.Is(err, services.ErrInvalidAmountBounds),
		errors.Is(err, services.ErrInvalidTenureBounds),
		errors.Is(err, services.ErrInvalidInterestRate),
		errors.Is(err, services.ErrInvalidRiskWeight):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}
