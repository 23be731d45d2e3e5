package middleware

import (
	"net/http"

	"marketplace/internal/domain/model"
	"marketplace/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LoadPrincipal はAuthJWTの後に置く。
// DBの最新のuserでtoken_versionと有効状態を確認し、権限を1回だけ組み立てる。
func LoadPrincipal(users repository.UserRepository, sellers repository.SellerRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_idを取得する
			userID, ok := c.Get(CtxUserIDKey).(uuid.UUID)
			if !ok || userID == uuid.Nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			ctx := c.Request().Context()
			user, found, err := users.FindByID(ctx, userID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			if !found {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//token_versionが一致しなければ強制ログアウト扱い（401）
			if user.TokenVersion != tv || !user.IsActive {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			p := model.Principal{UserID: user.ID}
			seller, isSeller, err := sellers.FindByUserID(ctx, user.ID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			if isSeller {
				p.SellerID = &seller.ID
				p.Capabilities = model.CapabilitiesOf(user, &seller)
			} else {
				p.Capabilities = model.CapabilitiesOf(user, nil)
			}

			c.Set(CtxPrincipalKey, p)
			return next(c)
		}
	}
}

// RequireCapability はLoadPrincipalの後に置く。
func RequireCapability(capability model.Capability, msg string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := c.Get(CtxPrincipalKey).(model.Principal)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if !p.Can(capability) {
				return c.JSON(http.StatusForbidden, errorJSON(msg))
			}
			return next(c)
		}
	}
}
