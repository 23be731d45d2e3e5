package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /profiles のHTTP（プロフィールと配送先住所）
type ProfileHandler struct {
	profiles  *usecase.ProfileUsecase
	addresses *usecase.AddressUsecase
}

// DI
func NewProfileHandler(profiles *usecase.ProfileUsecase, addresses *usecase.AddressUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, addresses: addresses}
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
	Avatar    *string `json:"avatar" validate:"omitempty,max=500"`
}

type addressRequest struct {
	FullName string `json:"full_name" validate:"required,max=1000"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Address  string `json:"address" validate:"required,max=1000"`
	City     string `json:"city" validate:"required,max=200"`
	Country  string `json:"country" validate:"required,max=200"`
	Zipcode  string `json:"zipcode" validate:"required,max=6"`
}

func (r addressRequest) input() usecase.AddressInput {
	return usecase.AddressInput{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  r.Address,
		City:     r.City,
		Country:  r.Country,
		Zipcode:  r.Zipcode,
	}
}

// authnはAuthJWT + LoadPrincipal
func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, authn ...echo.MiddlewareFunc) {
	g := e.Group("/profiles", authn...)

	g.GET("/", h.get)
	g.PUT("/", h.update)
	g.DELETE("/", h.deactivate)

	g.GET("/shipping_addresses/", h.listAddresses)
	g.POST("/shipping_addresses/", h.createAddress)
	g.GET("/shipping_addresses/detail/:id/", h.getAddress)
	g.PUT("/shipping_addresses/detail/:id/", h.updateAddress)
	g.DELETE("/shipping_addresses/detail/:id/", h.deleteAddress)
}

func (h *ProfileHandler) get(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.profiles.Get(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) update(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req updateProfileRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, err := h.profiles.Update(c.Request().Context(), p, usecase.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) deactivate(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.profiles.Deactivate(c.Request().Context(), p); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "account deactivated"})
}

func (h *ProfileHandler) listAddresses(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.addresses.List(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 同じ住所が登録済みなら200でそれを返す
func (h *ProfileHandler) createAddress(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req addressRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, created, err := h.addresses.Create(c.Request().Context(), p, req.input())
	if err != nil {
		return writeError(c, err)
	}
	if created {
		return c.JSON(http.StatusCreated, out)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) getAddress(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.addresses.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) updateAddress(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req addressRequest
	if msg, ok := bind(c, &req); !ok {
		return badRequest(c, msg)
	}

	out, err := h.addresses.Update(c.Request().Context(), p, c.Param("id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) deleteAddress(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.addresses.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "shipping address deleted"})
}
