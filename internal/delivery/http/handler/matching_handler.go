package handler

import (
	"investor-service/internal/delivery/http/dto"
	"investor-service/internal/pkg/response"
	"investor-service/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchingHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchingHandler(uc usecase.MatchingUsecase) *MatchingHandler {
	return &MatchingHandler{uc: uc}
}

func (h *MatchingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/for-me", h.ForMe)
	r.Get("/score/:investorId", h.Score)
	r.Post("/calculate", h.Calculate)
	r.Get("/startups", h.Startups)
	r.Get("/startups/search", h.SearchStartups)
}

func (h *MatchingHandler) ForMe(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	items, err := h.uc.MatchesForStartup(c.Context(), cred)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInvestorMatchResponses(items))
}

func (h *MatchingHandler) Score(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "investorId")
	if err != nil {
		return err
	}

	m, err := h.uc.Score(c.Context(), cred, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInvestorMatchResponse(m))
}

func (h *MatchingHandler) Calculate(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	if err := h.uc.Recalculate(c.Context(), cred); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Matches recalculated", nil)
}

func (h *MatchingHandler) Startups(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	items, err := h.uc.MatchesForInvestor(c.Context(), cred)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStartupMatchResponses(items))
}

func (h *MatchingHandler) SearchStartups(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	items, err := h.uc.SearchStartups(c.Context(), cred, c.Query("sector"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStartupMatchResponses(items))
}
