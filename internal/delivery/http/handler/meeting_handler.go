package handler

import (
	"time"

	"investor-service/internal/delivery/http/dto"
	"investor-service/internal/pkg/response"
	"investor-service/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MeetingHandler struct {
	uc usecase.MeetingUsecase
}

type scheduleMeetingRequest struct {
	ConnectionID uuid.UUID `json:"connection_id"`
	MeetingDate  time.Time `json:"meeting_date"`
	MeetingPlace string    `json:"meeting_place"`
	Message      *string   `json:"message"`
}

type rescheduleMeetingRequest struct {
	MeetingDate  time.Time `json:"meeting_date"`
	MeetingPlace string    `json:"meeting_place"`
	Message      *string   `json:"message"`
}

func NewMeetingHandler(uc usecase.MeetingUsecase) *MeetingHandler {
	return &MeetingHandler{uc: uc}
}

func (h *MeetingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/schedule", h.Schedule)
	r.Get("/received", h.Received)
	r.Get("/sent", h.Sent)
	r.Get("/upcoming", h.Upcoming)
	r.Put("/:id/accept", h.Accept)
	r.Put("/:id/reject", h.Reject)
	r.Put("/:id/reschedule", h.Reschedule)
	r.Delete("/:id/cancel", h.Cancel)
}

func (h *MeetingHandler) Schedule(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	var req scheduleMeetingRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidPayload(err)
	}
	if req.ConnectionID == uuid.Nil {
		return invalidPayload(nil)
	}

	v, err := h.uc.Schedule(c.Context(), cred, usecase.ScheduleMeetingInput{
		ConnectionID: req.ConnectionID,
		Date:         req.MeetingDate,
		Place:        req.MeetingPlace,
		Message:      req.Message,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Meeting scheduled", dto.NewMeetingViewResponse(v))
}

func (h *MeetingHandler) Received(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListReceived(c.Context(), cred)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeetingViewResponses(items))
}

func (h *MeetingHandler) Sent(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListSent(c.Context(), cred)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeetingViewResponses(items))
}

func (h *MeetingHandler) Upcoming(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListUpcoming(c.Context(), cred)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeetingResponses(items))
}

func (h *MeetingHandler) Accept(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	m, err := h.uc.Accept(c.Context(), cred, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Meeting accepted", dto.NewMeetingResponse(m))
}

func (h *MeetingHandler) Reject(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	m, err := h.uc.Reject(c.Context(), cred, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Meeting rejected", dto.NewMeetingResponse(m))
}

func (h *MeetingHandler) Reschedule(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req rescheduleMeetingRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidPayload(err)
	}

	m, err := h.uc.Reschedule(c.Context(), cred, id, usecase.RescheduleMeetingInput{
		Date:    req.MeetingDate,
		Place:   req.MeetingPlace,
		Message: req.Message,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Meeting rescheduled", dto.NewMeetingResponse(m))
}

func (h *MeetingHandler) Cancel(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	m, err := h.uc.Cancel(c.Context(), cred, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Meeting cancelled", dto.NewMeetingResponse(m))
}
