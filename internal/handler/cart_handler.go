package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cart と /checkout のHTTP
type CartHandler struct {
	cart   *usecase.CartUsecase
	orders *usecase.OrderUsecase
}

// DI
func NewCartHandler(cart *usecase.CartUsecase, orders *usecase.OrderUsecase) *CartHandler {
	return &CartHandler{cart: cart, orders: orders}
}

// quantityは置き換え。0で削除
type upsertCartRequest struct {
	Slug     string `json:"slug" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,gte=0"`
}

type checkoutRequest struct {
	ShippingID string `json:"shipping_id" validate:"required"`
}

// authnはAuthJWT + LoadPrincipal
func (h *CartHandler) RegisterRoutes(e *echo.Echo, authn ...echo.MiddlewareFunc) {
	g := e.Group("/cart", authn...)
	g.GET("/", h.list)
	g.POST("/", h.upsert)

	e.POST("/checkout/", h.checkout, authn...)
}

func (h *CartHandler) list(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.cart.List(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) upsert(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req upsertCartRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	res, err := h.cart.Upsert(c.Request().Context(), p, usecase.UpsertCartInput{
		Slug:     req.Slug,
		Quantity: *req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	switch res.Action {
	case usecase.CartItemCreated:
		return c.JSON(http.StatusCreated, res.Item)
	case usecase.CartItemUpdated:
		return c.JSON(http.StatusOK, res.Item)
	default:
		return c.JSON(http.StatusOK, MessageResponse{Message: "item removed from cart"})
	}
}

func (h *CartHandler) checkout(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req checkoutRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, err := h.orders.Checkout(c.Request().Context(), p, usecase.CheckoutInput{ShippingID: req.ShippingID})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
