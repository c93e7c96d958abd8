package middleware

import (
	"net/http"
	"strings"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

const CtxActorKey = "actor" // usecase.Actor

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// bearerセッション検証ミドルウェア。
// tokenの署名・期限に加えて、ユーザーの現在のstatus/roleをDBで再確認する。
func AuthSession(auth *usecase.AuthUsecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			actor, err := auth.ValidateSession(c.Request().Context(), rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxActorKey, actor)

			return next(c)
		}
	}
}

// ActorFrom はミドルウェアが保存したActorを取り出す。
func ActorFrom(c echo.Context) (usecase.Actor, bool) {
	actor, ok := c.Get(CtxActorKey).(usecase.Actor)
	return actor, ok
}
