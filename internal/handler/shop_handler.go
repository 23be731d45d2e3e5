package handler

import (
	"net/http"

	"marketplace/internal/domain/model"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /shop の公開API。カテゴリ作成だけスタッフ限定。
type ShopHandler struct {
	uc *usecase.ShopUsecase
}

// DI
func NewShopHandler(uc *usecase.ShopUsecase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *ShopHandler) RegisterRoutes(e *echo.Echo, authn ...echo.MiddlewareFunc) {
	g := e.Group("/shop")

	g.GET("/categories/", h.categories)
	staff := append(append([]echo.MiddlewareFunc{}, authn...), middleware.RequireCapability(model.CapStaff, "staff only"))
	g.POST("/categories/", h.createCategory, staff...)
	g.GET("/categories/:slug/", h.byCategory)

	g.GET("/products/", h.products)
	g.GET("/products/:slug/", h.detail)
	g.GET("/sellers/:slug/", h.bySeller)
}

// ?page=&page_size=&name=&min_price=&max_price=&in_stock=
func filterFrom(c echo.Context) usecase.ProductFilterInput {
	return usecase.ProductFilterInput{
		Page:     c.QueryParam("page"),
		PageSize: c.QueryParam("page_size"),
		Name:     c.QueryParam("name"),
		MinPrice: c.QueryParam("min_price"),
		MaxPrice: c.QueryParam("max_price"),
		InStock:  c.QueryParam("in_stock"),
	}
}

func (h *ShopHandler) categories(c echo.Context) error {
	out, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) createCategory(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req createCategoryRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), p, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ShopHandler) byCategory(c echo.Context) error {
	out, err := h.uc.ProductsByCategory(c.Request().Context(), c.Param("slug"), filterFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) products(c echo.Context) error {
	out, err := h.uc.Products(c.Request().Context(), filterFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) detail(c echo.Context) error {
	out, err := h.uc.ProductDetail(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) bySeller(c echo.Context) error {
	out, err := h.uc.ProductsBySeller(c.Request().Context(), c.Param("slug"), filterFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
