package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homelink_backend/internal/dto"
	"homelink_backend/internal/middleware"
	"homelink_backend/internal/services"
)

type EntitlementHandler struct {
	*BaseHandler
	entitlementService services.EntitlementService
}

func NewEntitlementHandler(base *BaseHandler, entitlementService services.EntitlementService) *EntitlementHandler {
	return &EntitlementHandler{
		BaseHandler:        base,
		entitlementService: entitlementService,
	}
}

func (h *EntitlementHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public: the static tier catalog
	r.GET("/tiers", h.ListTiers)

	entitlements := r.Group("/entitlements")
	entitlements.Use(middleware.AuthMiddleware())
	{
		entitlements.GET("/me", h.GetStatus)
		entitlements.POST("/unlock", h.UnlockContact)
	}

	// External payment gateway callback - no user auth, the reference is
	// the idempotency key.
	r.POST("/payments/callback", h.PaymentCallback)
}

func (h *EntitlementHandler) ListTiers(c *gin.Context) {
	tiers, err := h.entitlementService.ListTiers(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tiers": tiers,
		"total": len(tiers),
	})
}

func (h *EntitlementHandler) GetStatus(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	status, err := h.entitlementService.CheckAllowance(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *EntitlementHandler) UnlockContact(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	var req dto.UnlockContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	res, err := h.entitlementService.UnlockContact(c.Request.Context(), userID, req.TargetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EntitlementHandler) PaymentCallback(c *gin.Context) {
	var req dto.PaymentCallbackRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	res, err := h.entitlementService.ApplySubscription(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
