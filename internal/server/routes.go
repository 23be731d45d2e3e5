package server

import (
	"marketplace/internal/handler"
	"marketplace/internal/metrics"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Shop    *handler.ShopHandler
	Seller  *handler.SellerHandler
	Review  *handler.ReviewHandler
	Admin   *handler.AdminHandler
	Health  *handler.HealthHandler
}

// authnは認証が必要なルートに付ける（AuthJWT + LoadPrincipal）
func RegisterRoutes(e *echo.Echo, h Handlers, authn ...echo.MiddlewareFunc) {
	h.Auth.RegisterRoutes(e)
	h.Profile.RegisterRoutes(e, authn...)
	h.Cart.RegisterRoutes(e, authn...)
	h.Order.RegisterRoutes(e, authn...)
	h.Shop.RegisterRoutes(e, authn...)
	h.Seller.RegisterRoutes(e, authn...)
	h.Review.RegisterRoutes(e, authn...)
	h.Admin.RegisterRoutes(e, authn...)
	h.Health.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
