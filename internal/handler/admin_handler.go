package handler

import (
	"net/http"

	"marketplace/internal/domain/model"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin（スタッフのみ）
type AdminHandler struct {
	uc *usecase.AdminUsecase
}

// DI
func NewAdminHandler(uc *usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// 空の項目は変更しない
type updateOrderStatusRequest struct {
	DeliveryStatus string `json:"delivery_status"`
	PaymentStatus  string `json:"payment_status"`
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, authn ...echo.MiddlewareFunc) {
	g := e.Group("/admin", authn...)
	g.Use(middleware.RequireCapability(model.CapStaff, "staff only"))

	g.POST("/sellers/:id/approve", h.approveSeller)
	g.PATCH("/orders/:tx_ref/status", h.updateOrderStatus)
}

func (h *AdminHandler) approveSeller(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ApproveSeller(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) updateOrderStatus(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req updateOrderStatusRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, err := h.uc.UpdateOrderStatus(c.Request().Context(), p, c.Param("tx_ref"), usecase.UpdateOrderStatusInput{
		DeliveryStatus: req.DeliveryStatus,
		PaymentStatus:  req.PaymentStatus,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
