package handler

import (
	"investor-service/internal/delivery/http/dto"
	"investor-service/internal/pkg/response"
	"investor-service/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"
)

type InvestorHandler struct {
	uc      usecase.InvestorUsecase
	details usecase.StartupDetailUsecase
}

type investorRequest struct {
	Name              *string          `json:"name"`
	Type              *string          `json:"type"`
	SectorsOfInterest *string          `json:"sectors_of_interest"`
	MinInvestment     *decimal.Decimal `json:"min_investment"`
	MaxInvestment     *decimal.Decimal `json:"max_investment"`
	Description       *string          `json:"description"`
	Location          *string          `json:"location"`
	Portfolio         *string          `json:"portfolio"`
	Website           *string          `json:"website"`
	Email             *string          `json:"email"`
}

func NewInvestorHandler(uc usecase.InvestorUsecase, details usecase.StartupDetailUsecase) *InvestorHandler {
	return &InvestorHandler{uc: uc, details: details}
}

func (h *InvestorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
	r.Get("/search", h.Search)
	r.Get("/startups/:startupId/details", h.StartupDetails)
	r.Get("/:id", h.GetByID)
}

func (h *InvestorHandler) Create(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	var req investorRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidPayload(err)
	}

	in := usecase.CreateInvestorInput{
		SectorsOfInterest: req.SectorsOfInterest,
		MinInvestment:     req.MinInvestment,
		MaxInvestment:     req.MaxInvestment,
		Description:       req.Description,
		Location:          req.Location,
		Portfolio:         req.Portfolio,
		Website:           req.Website,
		Email:             req.Email,
	}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Type != nil {
		in.Type = *req.Type
	}

	inv, err := h.uc.CreateProfile(c.Context(), cred, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Investor profile created", dto.NewInvestorResponse(inv))
}

func (h *InvestorHandler) GetMe(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	inv, err := h.uc.GetMyProfile(c.Context(), cred)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInvestorResponse(inv))
}

func (h *InvestorHandler) UpdateMe(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	var req investorRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidPayload(err)
	}

	inv, err := h.uc.UpdateMyProfile(c.Context(), cred, usecase.UpdateInvestorInput{
		Name:              req.Name,
		Type:              req.Type,
		SectorsOfInterest: req.SectorsOfInterest,
		MinInvestment:     req.MinInvestment,
		MaxInvestment:     req.MaxInvestment,
		Description:       req.Description,
		Location:          req.Location,
		Portfolio:         req.Portfolio,
		Website:           req.Website,
		Email:             req.Email,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Investor profile updated", dto.NewInvestorResponse(inv))
}

func (h *InvestorHandler) List(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), cred, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInvestorResponses(items))
}

func (h *InvestorHandler) Search(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}

	items, err := h.uc.SearchBySector(c.Context(), cred, c.Query("sector"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInvestorResponses(items))
}

func (h *InvestorHandler) GetByID(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	inv, err := h.uc.GetByID(c.Context(), cred, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInvestorResponse(inv))
}

func (h *InvestorHandler) StartupDetails(c fiber.Ctx) error {
	cred, err := credential(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "startupId")
	if err != nil {
		return err
	}

	d, err := h.details.GetDetails(c.Context(), cred, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStartupDetailResponse(d))
}
