package handlers

import (
	"errors"
	"strconv"

	"lendcheck/internal/core/services"
	"lendcheck/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApplicantHandler handles applicant profile endpoints
type ApplicantHandler struct {
	applicantService *services.ApplicantService
}

// NewApplicantHandler creates a new applicant handler
func NewApplicantHandler(applicantService *services.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{applicantService: applicantService}
}

// Create creates an applicant profile for the current user
// @Summary Create applicant profile
// @Description Create an applicant profile owned by the authenticated user
// @Tags Applicants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ApplicantInput true "Applicant data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /applicants [post]
func (h *ApplicantHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ApplicantInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.FullName == "" {
		return response.BadRequest(c, "Full name is required")
	}

	profile, err := h.applicantService.Create(c.Context(), userID, &input)
	if err != nil {
		return h.mapApplicantError(c, err, "Failed to create applicant profile")
	}

	return response.Created(c, "Applicant profile created successfully", profile)
}

// GetByID gets an applicant profile by ID
// @Summary Get applicant profile
// @Description Get an applicant profile by ID
// @Tags Applicants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Applicant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applicants/{id} [get]
func (h *ApplicantHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid applicant ID")
	}

	profile, err := h.applicantService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrApplicantNotFound) {
			return response.NotFound(c, "Applicant profile not found")
		}
		return response.InternalServerError(c, "Failed to get applicant profile")
	}

	return response.Success(c, "Applicant profile retrieved successfully", profile)
}

// ListMine lists the current user's applicant profiles
// @Summary List my applicant profiles
// @Description List applicant profiles owned by the authenticated user
// @Tags Applicants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /applicants/my [get]
func (h *ApplicantHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profiles, err := h.applicantService.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applicant profiles")
	}

	return response.Success(c, "Applicant profiles retrieved successfully", profiles)
}

// ListByUser lists the applicant profiles owned by a given user
// @Summary List applicant profiles by user
// @Description List applicant profiles owned by a user (admin only)
// @Tags Applicants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /applicants/user/{user_id} [get]
func (h *ApplicantHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	profiles, err := h.applicantService.ListByUser(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list applicant profiles")
	}

	return response.Success(c, "Applicant profiles retrieved successfully", profiles)
}

// Update updates an applicant profile owned by the current user
// @Summary Update applicant profile
// @Description Update an applicant profile (owner only)
// @Tags Applicants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Applicant ID"
// @Param body body services.ApplicantInput true "Applicant data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applicants/{id} [put]
func (h *ApplicantHandler) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid applicant ID")
	}

	var input services.ApplicantInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.applicantService.Update(c.Context(), uint(id), userID, &input)
	if err != nil {
		return h.mapApplicantError(c, err, "Failed to update applicant profile")
	}

	return response.Success(c, "Applicant profile updated successfully", profile)
}

// mapApplicantError maps service errors to HTTP responses
func (h *ApplicantHandler) mapApplicantError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrApplicantNotFound):
		return response.NotFound(c, "Applicant profile not found")
	case errors.Is(err, services.ErrNotProfileOwner):
		return response.Forbidden(c, "Profile belongs to another user")
	case errors.Is(err, services.ErrNegativeIncome),
		errors.Is(err, services.ErrNegativeObligations),
		errors.Is(err, services.ErrInvalidEmploymentType),
		errors.Is(err, services.ErrInvalidDateOfBirth),
		errors.Is(err, services.ErrInvalidDateFormat):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}
