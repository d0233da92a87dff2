package handlers

import (
	"errors"
	"strconv"

	"lendcheck/internal/core/services"
	"lendcheck/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EligibilityHandler handles eligibility scan endpoints
type EligibilityHandler struct {
	eligibilityService *services.EligibilityService
}

// NewEligibilityHandler creates a new eligibility handler
func NewEligibilityHandler(eligibilityService *services.EligibilityService) *EligibilityHandler {
	return &EligibilityHandler{eligibilityService: eligibilityService}
}

// ScanAll re-evaluates all pending applications
// @Summary Bulk eligibility scan
// @Description Re-evaluate every pending loan application (admin only)
// @Tags Eligibility
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /eligibility-risk/scan/all [post]
func (h *EligibilityHandler) ScanAll(c *fiber.Ctx) error {
	report, err := h.eligibilityService.ScanAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to run eligibility scan")
	}

	return response.Success(c, "Eligibility scan completed", report)
}

// AssessmentHistory lists risk assessments for one application
// @Summary Risk assessment history
// @Description List all risk assessments recorded for an application, newest first
// @Tags Eligibility
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /eligibility-risk/applications/{id}/assessments [get]
func (h *EligibilityHandler) AssessmentHistory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	assessments, err := h.eligibilityService.AssessmentHistory(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return response.NotFound(c, "Loan application not found")
		}
		return response.InternalServerError(c, "Failed to list risk assessments")
	}

	return response.Success(c, "Risk assessments retrieved successfully", assessments)
}
