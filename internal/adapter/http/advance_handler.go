package http

import (
	"context"
	"encoding/json"
	"net/http"

	uc "creator-advance-service/internal/usecase/advance"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AdvanceHandler struct{ uc *uc.Usecase }

func NewAdvanceHandler(u *uc.Usecase) *AdvanceHandler { return &AdvanceHandler{uc: u} }

type createAdvanceReq struct {
	CreatorID string `json:"creator_id" validate:"required,uuid"`
	// json.Number keeps the amount out of float64 on the way in.
	RequestedAmount json.Number `json:"requested_amount" validate:"required,dec2"`
}

func (h *AdvanceHandler) CreateAdvance(c echo.Context) error {
	var req createAdvanceReq
	if err := c.Bind(&req); err != nil {
		code, p := badRequest("Invalid Body", "request body is not valid JSON")
		return c.JSON(code, p)
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Problem{
			Title:   "Validation Failed",
			Detail:  "one or more fields are invalid",
			Status:  http.StatusBadRequest,
			Details: ToFieldErrors(err),
		})
	}

	creatorID, _ := uuid.Parse(req.CreatorID) // format checked by the validator
	amount, err := decimal.NewFromString(req.RequestedAmount.String())
	if err != nil {
		code, p := badRequest("Invalid Amount", "requested amount is not a valid number")
		return c.JSON(code, p)
	}

	dto, err := h.uc.Create(c.Request().Context(), uc.CreateAdvanceInput{
		CreatorID:       creatorID,
		RequestedAmount: amount,
	})
	if err != nil {
		code, p := problemFromErr(err)
		return c.JSON(code, p)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AdvanceHandler) ListByCreator(c echo.Context) error {
	creatorID, err := uuid.Parse(c.Param("creator_id"))
	if err != nil || creatorID == uuid.Nil {
		code, p := badRequest("Invalid Parameter", "creator id is required")
		return c.JSON(code, p)
	}

	pageNumber, ok := intQueryParam(c, "page_number", 1)
	if !ok {
		code, p := badRequest("Invalid Parameter", "page_number must be an integer")
		return c.JSON(code, p)
	}
	pageSize, ok := intQueryParam(c, "page_size", 10)
	if !ok {
		code, p := badRequest("Invalid Parameter", "page_size must be an integer")
		return c.JSON(code, p)
	}

	page, err := h.uc.GetByCreator(c.Request().Context(), uc.ListAdvancesInput{
		CreatorID:  creatorID,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	})
	if err != nil {
		code, p := problemFromErr(err)
		return c.JSON(code, p)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *AdvanceHandler) ApproveAdvance(c echo.Context) error {
	return h.transition(c, h.uc.Approve)
}

func (h *AdvanceHandler) RejectAdvance(c echo.Context) error {
	return h.transition(c, h.uc.Reject)
}

func (h *AdvanceHandler) transition(c echo.Context, op func(ctx context.Context, id uuid.UUID) (*uc.AdvanceDTO, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		code, p := badRequest("Invalid Parameter", "advance id must be a uuid")
		return c.JSON(code, p)
	}

	dto, err := op(c.Request().Context(), id)
	if err != nil {
		code, p := problemFromErr(err)
		return c.JSON(code, p)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdvanceHandler) Simulate(c echo.Context) error {
	raw := c.QueryParam("amount")
	if raw == "" {
		code, p := badRequest("Invalid Amount", "amount query parameter is required")
		return c.JSON(code, p)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		code, p := badRequest("Invalid Amount", "amount is not a valid number")
		return c.JSON(code, p)
	}

	sim, err := h.uc.Simulate(amount)
	if err != nil {
		code, p := problemFromErr(err)
		return c.JSON(code, p)
	}
	return c.JSON(http.StatusOK, sim)
}
