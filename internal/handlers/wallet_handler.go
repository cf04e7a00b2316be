package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homelink_backend/internal/dto"
	"homelink_backend/internal/middleware"
	"homelink_backend/internal/models"
	"homelink_backend/internal/services"
)

type WalletHandler struct {
	*BaseHandler
	walletService services.WalletService
}

func NewWalletHandler(base *BaseHandler, walletService services.WalletService) *WalletHandler {
	return &WalletHandler{
		BaseHandler:   base,
		walletService: walletService,
	}
}

func (h *WalletHandler) RegisterRoutes(r *gin.RouterGroup) {
	wallet := r.Group("/wallet")
	wallet.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleProvider))
	{
		wallet.GET("", h.GetWallet)
		wallet.POST("/withdraw", h.Withdraw)
		wallet.GET("/commissions", h.ListCommissions)
		wallet.GET("/withdrawals", h.ListWithdrawals)
	}
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	providerID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	wallet, err := h.walletService.GetWallet(c.Request.Context(), providerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

func (h *WalletHandler) Withdraw(c *gin.Context) {
	providerID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.walletService.Withdraw(c.Request.Context(), providerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.WithdrawalResponse{
		ID:            request.ID,
		AmountPesewas: request.AmountPesewas,
		Method:        string(request.Method),
		AccountRef:    request.AccountRef,
		Status:        string(request.Status),
		CreatedAt:     request.CreatedAt,
	})
}

func (h *WalletHandler) ListCommissions(c *gin.Context) {
	providerID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	records, err := h.walletService.ListCommissions(c.Request.Context(), providerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	responses := make([]dto.CommissionResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, dto.CommissionResponse{
			ID:                r.ID,
			BookingID:         r.BookingID,
			GrossPesewas:      r.GrossPesewas,
			RateBps:           r.RateBps,
			CommissionPesewas: r.CommissionPesewas,
			PayoutPesewas:     r.PayoutPesewas,
			CreatedAt:         r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"commissions": responses,
		"total":       len(responses),
	})
}

func (h *WalletHandler) ListWithdrawals(c *gin.Context) {
	providerID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	requests, err := h.walletService.ListWithdrawals(c.Request.Context(), providerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	responses := make([]dto.WithdrawalResponse, 0, len(requests))
	for _, w := range requests {
		responses = append(responses, dto.WithdrawalResponse{
			ID:            w.ID,
			AmountPesewas: w.AmountPesewas,
			Method:        string(w.Method),
			AccountRef:    w.AccountRef,
			Status:        string(w.Status),
			CreatedAt:     w.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"withdrawals": responses,
		"total":       len(responses),
	})
}
