package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/repository"
	"marketplace/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

// New はルートとミドルウェアを登録したechoを返す
func New(cfg config.Config, h Handlers, users repository.UserRepository, sellers repository.SellerRepository) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	if cfg.GoEnv == "prod" {
		e.Logger.SetLevel(log.INFO)
	} else {
		e.Logger.SetLevel(log.DEBUG)
	}

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.Metrics())

	RegisterRoutes(e, h,
		middleware.AuthJWT(cfg),
		middleware.LoadPrincipal(users, sellers),
	)
	return e
}

// Run はctxがキャンセルされるまで待ち、その後graceful shutdownする
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	e.Logger.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
