package handler

import (
	"errors"
	"strconv"
	"strings"

	"investor-service/internal/delivery/http/middleware"
	"investor-service/internal/pkg/response"
	"investor-service/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

var errUnsupportedKind = errors.New("unclassified usecase error")

// mapUsecaseError turns a usecase error into an AppError by its kind. The
// message is the specific part of the error without the kind prefix.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	kinds := []struct {
		kind   error
		status int
	}{
		{usecase.ErrUnauthenticated, fiber.StatusUnauthorized},
		{usecase.ErrForbidden, fiber.StatusForbidden},
		{usecase.ErrNotFound, fiber.StatusNotFound},
		{usecase.ErrConflict, fiber.StatusConflict},
		{usecase.ErrValidation, fiber.StatusBadRequest},
	}
	for _, k := range kinds {
		if errors.Is(err, k.kind) {
			return middleware.NewAppError(k.status, publicMessage(err, k.kind), nil, err)
		}
	}

	if !errors.Is(err, usecase.ErrInternal) {
		err = errors.Join(errUnsupportedKind, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}

func publicMessage(err, kind error) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}

func credential(c fiber.Ctx) (string, error) {
	token, ok := middleware.Credential(c)
	if !ok {
		return "", middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return token, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return v, nil
}

func invalidPayload(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
}
