package server

import (
	"app/internal/handler"
	mw "app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Products  *handler.ProductHandler
	Movements *handler.MovementHandler
	Parties   *handler.PartyHandler
	Users     *handler.UserHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers, auth *usecase.AuthUsecase) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/auth/signup", h.Auth.Signup)
	e.POST("/auth/login", h.Auth.Login)

	// 要ログイン。viewerも読み取りはできる
	authed := e.Group("", mw.AuthSession(auth))
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)

	authed.GET("/products", h.Products.List)
	authed.GET("/products/low-stock", h.Products.LowStock)
	authed.GET("/products/:id", h.Products.Detail)
	authed.GET("/movements", h.Movements.List)
	authed.GET("/movements/:id", h.Movements.Detail)
	authed.GET("/parties", h.Parties.List)

	// 書き込みはowner/adminのみ（細かい権限はusecase側でも確認する）
	admin := authed.Group("", mw.AdminRoleGuard())
	admin.POST("/products", h.Products.Create)
	admin.PUT("/products/:id", h.Products.Update)
	admin.POST("/products/:id/restore", h.Products.Restore)
	admin.POST("/movements", h.Movements.Record)
	admin.PUT("/movements/:id", h.Movements.Edit)
	admin.POST("/parties", h.Parties.Upsert)
	admin.PUT("/parties/:id/name", h.Parties.Rename)
	admin.DELETE("/parties/:id", h.Parties.Deactivate)

	admin.GET("/admin/users", h.Users.List)
	admin.GET("/admin/users/pending", h.Users.ListPending)
	admin.POST("/admin/users/:username/approve", h.Users.Approve)
	admin.POST("/admin/users/:username/reject", h.Users.Reject)
	admin.PUT("/admin/users/:username/role", h.Users.SetRole)

	// 削除系はowner専用
	owner := authed.Group("", mw.OwnerRoleGuard())
	owner.DELETE("/products/:id", h.Products.Delete)
	owner.DELETE("/movements/:id", h.Movements.Delete)
	owner.DELETE("/admin/users/:username", h.Users.Delete)
}
