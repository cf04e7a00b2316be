package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homelink_backend/internal/dto"
	"homelink_backend/internal/middleware"
	"homelink_backend/internal/models"
	"homelink_backend/internal/services"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:bookingId", h.Get)
		bookings.PUT("/:bookingId/status", h.UpdateStatus)
		bookings.POST("/:bookingId/review", h.Review)
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}
	role := models.UserRole(h.GetAuthRole(c))

	bookings, err := h.bookingService.ListForUser(c.Request.Context(), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	responses := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *toBookingResponse(&bookings[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": responses,
		"total":    len(responses),
	})
}

func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), userID, c.Param("bookingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), userID, c.Param("bookingId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) Review(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.AttachReview(c.Request.Context(), userID, c.Param("bookingId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func toBookingResponse(b *models.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		ProviderID:    b.ProviderID,
		Category:      b.Category,
		ScheduledAt:   b.ScheduledAt,
		Address:       b.Address,
		City:          b.City,
		Notes:         b.Notes,
		Status:        string(b.Status),
		AmountPesewas: b.AmountPesewas,
		Rating:        b.Rating,
		ReviewText:    b.ReviewText,
		CreatedAt:     b.CreatedAt,
		CompletedAt:   b.CompletedAt,
	}
}
