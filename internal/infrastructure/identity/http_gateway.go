package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"investor-service/internal/domain/actor"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HTTPGateway asks the auth service who the credential belongs to.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHTTPGateway(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPGateway {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("identity"),
	}
}

type currentUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (g *HTTPGateway) ResolveCurrentUser(ctx context.Context, credential string) (actor.Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return actor.Identity{}, ErrInvalidCredential
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/users/me", nil)
	if err != nil {
		return actor.Identity{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("auth service request failed", zap.Error(err))
		return actor.Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return actor.Identity{}, ErrInvalidCredential
	case resp.StatusCode >= 400:
		g.logger.Warn("auth service returned error status", zap.Int("status", resp.StatusCode))
		return actor.Identity{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body currentUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return actor.Identity{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	userID, err := uuid.Parse(strings.TrimSpace(body.ID))
	if err != nil {
		return actor.Identity{}, ErrInvalidCredential
	}

	return actor.Identity{UserID: userID, Role: actor.NormalizeRole(body.Role)}, nil
}
