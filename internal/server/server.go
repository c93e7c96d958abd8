package server

import (
	"app/internal/logger"
	mw "app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// New はミドルウェアを組んだechoエンジンを返す。
func New(h Handlers, auth *usecase.AuthUsecase) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(mw.RequestID())
	e.Use(logger.Middleware())
	e.Use(mw.Metrics())

	RegisterRoutes(e, h, auth)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
