package startupprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"investor-service/internal/domain/startup"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

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
		logger:     logger.Named("startupprofile"),
	}
}

func (g *HTTPGateway) GetByID(ctx context.Context, credential string, id uuid.UUID) (startup.Startup, error) {
	var p startupPayload
	if err := g.get(ctx, credential, "/api/startups/"+id.String(), &p); err != nil {
		return startup.Startup{}, err
	}
	return p.toDomain(), nil
}

func (g *HTTPGateway) GetByOwningUser(ctx context.Context, credential string, userID uuid.UUID) (startup.Startup, error) {
	var p startupPayload
	if err := g.get(ctx, credential, "/api/startups/user/"+userID.String(), &p); err != nil {
		return startup.Startup{}, err
	}
	return p.toDomain(), nil
}

func (g *HTTPGateway) GetAll(ctx context.Context, credential string) ([]startup.Startup, error) {
	var ps []startupPayload
	if err := g.get(ctx, credential, "/api/startups", &ps); err != nil {
		return nil, err
	}
	return startupsToDomain(ps), nil
}

func (g *HTTPGateway) SearchBySector(ctx context.Context, credential string, sector string) ([]startup.Startup, error) {
	var ps []startupPayload
	path := "/api/startups/search?secteur=" + url.QueryEscape(sector)
	if err := g.get(ctx, credential, path, &ps); err != nil {
		return nil, err
	}
	return startupsToDomain(ps), nil
}

func (g *HTTPGateway) GetTeam(ctx context.Context, credential string, startupID uuid.UUID) ([]startup.TeamMember, error) {
	var ps []teamMemberPayload
	if err := g.get(ctx, credential, "/api/team/startup/"+startupID.String(), &ps); err != nil {
		return nil, err
	}
	out := make([]startup.TeamMember, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.toDomain())
	}
	return out, nil
}

func (g *HTTPGateway) GetMilestones(ctx context.Context, credential string, startupID uuid.UUID) ([]startup.Milestone, error) {
	var ps []milestonePayload
	if err := g.get(ctx, credential, "/api/milestones/startup/"+startupID.String(), &ps); err != nil {
		return nil, err
	}
	out := make([]startup.Milestone, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.toDomain())
	}
	return out, nil
}

func (g *HTTPGateway) get(ctx context.Context, credential, path string, out any) error {
	if g.baseURL == "" {
		return fmt.Errorf("%w: base url is empty", ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(credential) != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("startup service request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		g.logger.Warn("startup service returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

func startupsToDomain(ps []startupPayload) []startup.Startup {
	out := make([]startup.Startup, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.toDomain())
	}
	return out
}
