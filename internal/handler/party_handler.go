package handler

import (
	"net/http"

	"app/internal/domain/model"
	mw "app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PartyHandler struct {
	uc *usecase.PartyUsecase
}

// DI
func NewPartyHandler(uc *usecase.PartyUsecase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

func (h *PartyHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"

	parties, err := h.uc.List(c.Request().Context(), includeInactive)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, parties)
}

type partyRequest struct {
	Name string `json:"name"`
	Type string `json:"party_type"`
}

func (h *PartyHandler) Upsert(c echo.Context) error {
	actor, ok := mw.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req partyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	p, err := h.uc.Upsert(c.Request().Context(), actor, req.Name, model.NormalizePartyType(req.Type))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *PartyHandler) Rename(c echo.Context) error {
	actor, ok := mw.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.uc.Rename(c.Request().Context(), actor, id, req.Name); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PartyHandler) Deactivate(c echo.Context) error {
	actor, ok := mw.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Deactivate(c.Request().Context(), actor, id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
