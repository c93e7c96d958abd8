package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/domain/model"
	"app/internal/metrics"
	mw "app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MovementHandler struct {
	uc *usecase.InventoryUsecase
}

// DI
func NewMovementHandler(uc *usecase.InventoryUsecase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

type movementRequest struct {
	ProductID int64    `json:"product_id"`
	Type      string   `json:"movement_type"`
	Quantity  int64    `json:"quantity"`
	Price     *float64 `json:"price"`
	PartyName string   `json:"party"`
	PartyType string   `json:"party_type"`
	Notes     string   `json:"notes"`
	Date      string   `json:"movement_date"` // RFC3339または空
}

func (r movementRequest) date() (time.Time, error) {
	if r.Date == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, r.Date)
}

func (h *MovementHandler) List(c echo.Context) error {
	var in usecase.ListMovementsInput

	if v := c.QueryParam("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
		}
		in.ProductID = &id
	}

	if v := c.QueryParam("days"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid days"})
		}
		in.Days = &d
	}

	if v := c.QueryParams()["type"]; len(v) > 0 {
		for _, t := range v {
			in.Types = append(in.Types, model.MovementType(t))
		}
	}

	out, err := h.uc.ListMovements(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *MovementHandler) Detail(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	m, err := h.uc.GetMovement(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, m)
}

func (h *MovementHandler) Record(c echo.Context) error {
	actor, ok := mw.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req movementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	date, err := req.date()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid movement_date"})
	}

	m, err := h.uc.RecordMovement(c.Request().Context(), actor, usecase.RecordMovementInput{
		ProductID: req.ProductID,
		Type:      model.MovementType(req.Type),
		Quantity:  req.Quantity,
		Price:     req.Price,
		PartyName: req.PartyName,
		PartyType: model.NormalizePartyType(req.PartyType),
		Notes:     req.Notes,
		Date:      date,
	})
	if err != nil {
		return writeError(c, err)
	}

	metrics.MovementsRecorded.WithLabelValues(string(m.Type)).Inc()
	return c.JSON(http.StatusCreated, m)
}

func (h *MovementHandler) Edit(c echo.Context) error {
	actor, ok := mw.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req movementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	date, err := req.date()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid movement_date"})
	}

	m, err := h.uc.EditMovement(c.Request().Context(), actor, id, usecase.EditMovementInput{
		Type:      model.MovementType(req.Type),
		Quantity:  req.Quantity,
		Price:     req.Price,
		PartyName: req.PartyName,
		PartyType: model.NormalizePartyType(req.PartyType),
		Notes:     req.Notes,
		Date:      date,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, m)
}

// 削除は移動の在庫効果を取り消す（owner専用）
func (h *MovementHandler) Delete(c echo.Context) error {
	actor, ok := mw.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteMovement(c.Request().Context(), actor, id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
