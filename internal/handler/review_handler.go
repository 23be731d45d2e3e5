package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /reviews のHTTP。商品ごとのレビュー一覧だけ公開。
type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

// DI
func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type reviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"max=2000"`
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, authn ...echo.MiddlewareFunc) {
	g := e.Group("/reviews")
	g.GET("/product/:slug/", h.listForProduct)

	a := g.Group("", authn...)
	a.GET("/my/", h.mine)
	a.POST("/create/:slug/", h.create)
	a.GET("/detail/:slug/", h.detail)
	a.PUT("/detail/:slug/", h.update)
	a.DELETE("/detail/:slug/", h.delete)
}

func (h *ReviewHandler) listForProduct(c echo.Context) error {
	out, err := h.uc.ListForProduct(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) mine(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Mine(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) create(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req reviewRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, err := h.uc.Create(c.Request().Context(), p, c.Param("slug"), usecase.ReviewInput{Rating: req.Rating, Text: req.Text})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ReviewHandler) detail(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.MyReview(c.Request().Context(), p, c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) update(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req reviewRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, err := h.uc.UpdateMine(c.Request().Context(), p, c.Param("slug"), usecase.ReviewInput{Rating: req.Rating, Text: req.Text})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) delete(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.DeleteMine(c.Request().Context(), p, c.Param("slug")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "review deleted"})
}
