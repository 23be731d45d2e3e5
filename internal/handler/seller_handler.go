package handler

import (
	"net/http"

	"marketplace/internal/domain/model"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /sellers のHTTP。申請以外は承認済み出品者のみ。
type SellerHandler struct {
	uc *usecase.SellerUsecase
}

// DI
func NewSellerHandler(uc *usecase.SellerUsecase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

type sellerApplyRequest struct {
	BusinessName        string `json:"business_name" validate:"required,max=255"`
	BusinessDescription string `json:"business_description"`
	BusinessAddress     string `json:"business_address" validate:"max=255"`
	PhoneNumber         string `json:"phone_number" validate:"max=20"`
	WebsiteURL          string `json:"website_url" validate:"omitempty,url"`
	City                string `json:"city" validate:"max=100"`
	PostalCode          string `json:"postal_code" validate:"max=20"`
}

// priceは文字列で受ける（小数2桁）
type productRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Description  string `json:"description"`
	Price        string `json:"price" validate:"required"`
	InStock      *int   `json:"in_stock" validate:"omitempty,gte=0"`
	CategorySlug string `json:"category_slug" validate:"required"`
}

type productUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	Description  *string `json:"description"`
	Price        *string `json:"price"`
	InStock      *int    `json:"in_stock" validate:"omitempty,gte=0"`
	CategorySlug *string `json:"category_slug"`
}

func (h *SellerHandler) RegisterRoutes(e *echo.Echo, authn ...echo.MiddlewareFunc) {
	g := e.Group("/sellers", authn...)
	g.POST("/", h.apply)

	s := g.Group("", middleware.RequireCapability(model.CapSell, "approved seller only"))
	s.GET("/products/", h.listProducts)
	s.POST("/products/", h.createProduct)
	s.PUT("/products/:slug/", h.updateProduct)
	s.DELETE("/products/:slug/", h.deleteProduct)
	s.GET("/orders/", h.orders)
	s.GET("/orders/:tx_ref/", h.orderItems)
}

func (h *SellerHandler) apply(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req sellerApplyRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, err := h.uc.Apply(c.Request().Context(), p, usecase.SellerApplyInput{
		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
		BusinessAddress:     req.BusinessAddress,
		PhoneNumber:         req.PhoneNumber,
		WebsiteURL:          req.WebsiteURL,
		City:                req.City,
		PostalCode:          req.PostalCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) listProducts(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ListProducts(c.Request().Context(), p, c.QueryParam("page"), c.QueryParam("page_size"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) createProduct(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req productRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), p, usecase.ProductInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		InStock:      req.InStock,
		CategorySlug: req.CategorySlug,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SellerHandler) updateProduct(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req productUpdateRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), p, c.Param("slug"), usecase.ProductUpdateInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		InStock:      req.InStock,
		CategorySlug: req.CategorySlug,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) deleteProduct(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.DeleteProduct(c.Request().Context(), p, c.Param("slug")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "product deleted"})
}

func (h *SellerHandler) orders(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Orders(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) orderItems(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.OrderItems(c.Request().Context(), p, c.Param("tx_ref"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
