package handler

import (
	"investor-service/internal/delivery/http/dto"
	"investor-service/internal/pkg/response"
	"investor-service/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ConnectionHandler struct {
	uc usecase.ConnectionUsecase
}

type connectionRequest struct {
	InvestorID uuid.UUID `json:"investor_id"`
	Message    *string   `json:"message"`
}

func NewConnectionHandler(uc usecase.ConnectionUsecase) *ConnectionHandler {
	return &ConnectionHandler{uc: uc}
}

func (h *ConnectionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/request", h.Request)
	r.Get("/received", h.Received)
	r.Get("/sent", h.Sent)
	r.Get("/active", h.Active)
	r.Put("/:id/accept", h.Accept)
	r.Put("/:id/reject", h.Reject)
}

func (h *ConnectionHandler) Request(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	var req connectionRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidPayload(err)
	}
	if req.InvestorID == uuid.Nil {
		return invalidPayload(nil)
	}

	v, err := h.uc.RequestConnection(c.Context(), cred, req.InvestorID, req.Message)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Connection request sent", dto.NewConnectionViewResponse(v))
}

func (h *ConnectionHandler) Received(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListReceived(c.Context(), cred)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionResponses(items))
}

func (h *ConnectionHandler) Sent(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListSent(c.Context(), cred)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionViewResponses(items))
}

func (h *ConnectionHandler) Active(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListActive(c.Context(), cred)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionResponses(items))
}

func (h *ConnectionHandler) Accept(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	req, err := h.uc.Accept(c.Context(), cred, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Connection request accepted", dto.NewConnectionResponse(req))
}

func (h *ConnectionHandler) Reject(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	req, err := h.uc.Reject(c.Context(), cred, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Connection request rejected", dto.NewConnectionResponse(req))
}
