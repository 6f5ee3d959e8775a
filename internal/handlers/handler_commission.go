package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
)

// commissionHandler handles HTTP requests related to commission profiles.
type commissionHandler struct {
	commission portssvc.CommissionSvcFacade
}

func newCommissionHandler(cs portssvc.CommissionSvcFacade) *commissionHandler {
	return &commissionHandler{commission: cs}
}

// registerCommissionRoutes registers routes for commission profiles.
func registerCommissionRoutes(rg *gin.RouterGroup, cs portssvc.CommissionSvcFacade) {
	h := newCommissionHandler(cs)

	profiles := rg.Group("/commission-profiles")
	{
		profiles.GET("", h.listProfiles)
		profiles.POST("", h.createProfile)
		profiles.GET("/:profileID", h.getProfile)
		profiles.PATCH("/:profileID", h.updateProfile)
		profiles.DELETE("/:profileID", h.deactivateProfile)
	}
}

// listProfiles godoc
// @Summary List commission profiles
// @Tags commission
// @Produce json
// @Param includeInactive query bool false "Include deactivated profiles"
// @Success 200 {array} dto.CommissionProfileResponse
// @Security BearerAuth
// @Router /commission-profiles [get]
func (h *commissionHandler) listProfiles(c *gin.Context) {
	activeOnly := c.Query("includeInactive") != "true"
	profiles, err := h.commission.ListProfiles(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err, "Failed to list commission profiles")
		return
	}
	resp := make([]dto.CommissionProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, dto.ToCommissionProfileResponse(&profiles[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// getProfile godoc
// @Summary Get a commission profile
// @Tags commission
// @Produce json
// @Param profileID path string true "Profile ID"
// @Success 200 {object} dto.CommissionProfileResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /commission-profiles/{profileID} [get]
func (h *commissionHandler) getProfile(c *gin.Context) {
	p, err := h.commission.GetProfile(c.Request.Context(), c.Param("profileID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve commission profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionProfileResponse(p))
}

// createProfile godoc
// @Summary Create a commission profile (admin)
// @Tags commission
// @Accept json
// @Produce json
// @Param profile body dto.CreateCommissionProfileRequest true "Profile details"
// @Success 201 {object} dto.CommissionProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /commission-profiles [post]
func (h *commissionHandler) createProfile(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateCommissionProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	p, err := h.commission.CreateProfile(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create commission profile")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommissionProfileResponse(p))
}

// updateProfile godoc
// @Summary Update a commission profile (admin)
// @Description Existing transactions keep the snapshot they were created with
// @Tags commission
// @Accept json
// @Produce json
// @Param profileID path string true "Profile ID"
// @Param profile body dto.UpdateCommissionProfileRequest true "Fields to change"
// @Success 200 {object} dto.CommissionProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /commission-profiles/{profileID} [patch]
func (h *commissionHandler) updateProfile(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateCommissionProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	p, err := h.commission.UpdateProfile(c.Request.Context(), actor, c.Param("profileID"), req)
	if err != nil {
		respondError(c, err, "Failed to update commission profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionProfileResponse(p))
}

// deactivateProfile godoc
// @Summary Deactivate a commission profile (admin)
// @Tags commission
// @Param profileID path string true "Profile ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /commission-profiles/{profileID} [delete]
func (h *commissionHandler) deactivateProfile(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if err := h.commission.DeactivateProfile(c.Request.Context(), actor, c.Param("profileID")); err != nil {
		respondError(c, err, "Failed to deactivate commission profile")
		return
	}
	c.Status(http.StatusNoContent)
}
