package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hisaab/internal/service"
)

// ProfileHandler handles the seller profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get handles GET /api/v1/profile
// @Summary      Get seller profile
// @Tags         profile
// @Produce      json
// @Success      200 {object} APIResponse{data=domain.SellerProfile}
// @Failure      409 {object} APIResponse
// @Router       /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, profile)
}

// Update handles PUT /api/v1/profile
// @Summary      Create or replace the seller profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body body service.UpdateProfileInput true "Seller profile"
// @Success      200 {object} APIResponse{data=domain.SellerProfile}
// @Failure      400 {object} APIResponse
// @Router       /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req service.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "business_name is required")
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, profile)
}
