package handlers

import (
	"errors"
	"strconv"

	"lendcheck/internal/core/services"
	"lendcheck/internal/pkg/pagination"
	"lendcheck/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanApplicationHandler handles loan application endpoints
type LoanApplicationHandler struct {
	applicationService *services.LoanApplicationService
}

// NewLoanApplicationHandler creates a new loan application handler
func NewLoanApplicationHandler(applicationService *services.LoanApplicationService) *LoanApplicationHandler {
	return &LoanApplicationHandler{applicationService: applicationService}
}

// UpdateStatusRequest represents status update request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Apply files a loan application and returns the full decision
// @Summary Apply for a loan
// @Description File a loan application; runs eligibility and risk scoring
// @Tags LoanApplications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicant_id path int true "Applicant ID"
// @Param product_id path int true "Loan product ID"
// @Param body body services.ApplicationInput true "Requested terms"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loan-applications/applicant/{applicant_id}/product/{product_id} [post]
func (h *LoanApplicationHandler) Apply(c *fiber.Ctx) error {
	applicantID, err := strconv.ParseUint(c.Params("applicant_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid applicant ID")
	}
	productID, err := strconv.ParseUint(c.Params("product_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var input services.ApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	decision, err := h.applicationService.Apply(c.Context(), uint(applicantID), uint(productID), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicantNotFound):
			return response.NotFound(c, "Applicant profile not found")
		case errors.Is(err, services.ErrProductNotFound):
			return response.NotFound(c, "Loan product not found")
		case errors.Is(err, services.ErrNonPositiveAmount),
			errors.Is(err, services.ErrNonPositiveTenure),
			errors.Is(err, services.ErrInactiveApplicant),
			errors.Is(err, services.ErrInactiveProduct):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to file loan application")
		}
	}

	return response.Created(c, "Loan application filed successfully", decision)
}

// GetByID gets a loan application with its latest risk assessment
// @Summary Get loan application
// @Description Get a loan application by ID with the latest risk assessment
// @Tags LoanApplications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loan-applications/{id} [get]
func (h *LoanApplicationHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, latest, err := h.applicationService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return response.NotFound(c, "Loan application not found")
		}
		return response.InternalServerError(c, "Failed to get loan application")
	}

	payload := fiber.Map{"application": application}
	if latest != nil {
		payload["latest_assessment"] = latest
	}

	return response.Success(c, "Loan application retrieved successfully", payload)
}

// ListByApplicant lists applications filed by one applicant
// @Summary List applications by applicant
// @Description List all loan applications filed by an applicant
// @Tags LoanApplications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicant_id path int true "Applicant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loan-applications/applicant/{applicant_id} [get]
func (h *LoanApplicationHandler) ListByApplicant(c *fiber.Ctx) error {
	applicantID, err := strconv.ParseUint(c.Params("applicant_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid applicant ID")
	}

	applications, err := h.applicationService.ListByApplicant(c.Context(), uint(applicantID))
	if err != nil {
		if errors.Is(err, services.ErrApplicantNotFound) {
			return response.NotFound(c, "Applicant profile not found")
		}
		return response.InternalServerError(c, "Failed to list loan applications")
	}

	return response.Success(c, "Loan applications retrieved successfully", applications)
}

// List lists loan applications with pagination
// @Summary List loan applications
// @Description List loan applications with pagination (admin only)
// @Tags LoanApplications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /loan-applications [get]
func (h *LoanApplicationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	applications, total, err := h.applicationService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loan applications")
	}

	return response.Success(c, "Loan applications retrieved successfully",
		pagination.NewResponse(applications, params, total))
}

// UpdateStatus moves an application to a new status
// @Summary Update application status
// @Description Update a loan application status (admin only)
// @Tags LoanApplications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param body body UpdateStatusRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loan-applications/{id}/status [put]
func (h *LoanApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	application, err := h.applicationService.UpdateStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			return response.NotFound(c, "Loan application not found")
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Invalid application status")
		case errors.Is(err, services.ErrTerminalStatus):
			return response.Conflict(c, "Application is in a terminal status")
		default:
			return response.InternalServerError(c, "Failed to update application status")
		}
	}

	return response.Success(c, "Application status updated successfully", application)
}
