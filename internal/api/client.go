package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/models"
	"go.uber.org/zap"
)

const maxBodyBytes = 4 << 20

// HTTPClient talks to the SEEDx REST API.
type HTTPClient struct {
	Base         string
	Token        string
	HTTP         *http.Client
	FetchTimeout time.Duration
	Logger       *zap.Logger
}

func NewHTTP(base, token string) *HTTPClient {
	return &HTTPClient{
		Base:         strings.TrimRight(base, "/"),
		Token:        strings.TrimSpace(token),
		HTTP:         http.DefaultClient,
		FetchTimeout: config.FetchTimeout,
		Logger:       zap.NewNop(),
	}
}

// HasSession reports whether authenticated endpoints can be called.
func (c *HTTPClient) HasSession() bool {
	return c.Token != ""
}

// ListProjects fetches the fundable projects in server order.
func (c *HTTPClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	ctx, cancel := c.fetchContext(ctx)
	defer cancel()
	body, err := c.do(ctx, "list projects", http.MethodGet, config.ProjectsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeProjects(body)
}

// TreasuryBalance fetches the deployable balance. A JSON null body yields (nil, nil).
func (c *HTTPClient) TreasuryBalance(ctx context.Context) (*models.TreasuryBalance, error) {
	if !c.HasSession() {
		return nil, ErrNoSession
	}
	ctx, cancel := c.fetchContext(ctx)
	defer cancel()
	body, err := c.do(ctx, "treasury balance", http.MethodGet, config.TreasuryBalancePath, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeBalance(body)
}

// TreasuryBalanceOrNil never fails: any error, including a missing session,
// is logged and reported as nil.
func (c *HTTPClient) TreasuryBalanceOrNil(ctx context.Context) *models.TreasuryBalance {
	bal, err := c.TreasuryBalance(ctx)
	if err != nil {
		c.logger().Warn("treasury balance unavailable", zap.Error(err))
		return nil
	}
	return bal
}

type allocateMetadata struct {
	DeploymentType models.DeploymentType `json:"deploymentType"`
	Notes          string                `json:"notes"`
}

type allocateBody struct {
	ProjectID   string           `json:"projectId"`
	AmountNgnts json.Number      `json:"amountNgnts"`
	Metadata    allocateMetadata `json:"metadata"`
}

type receiptEnvelope struct {
	models.Receipt
	Data *models.Receipt `json:"data"`
}

// Allocate submits a single allocation request. The idempotency key is sent
// as a header so the collaborator can deduplicate retries.
func (c *HTTPClient) Allocate(ctx context.Context, req models.DeploymentRequest, idempotencyKey string) (models.Receipt, error) {
	payload := allocateBody{
		ProjectID:   req.ProjectID,
		AmountNgnts: json.Number(req.Amount.StringFixed(2)),
		Metadata: allocateMetadata{
			DeploymentType: req.Metadata.DeploymentType,
			Notes:          req.Metadata.Notes,
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return models.Receipt{}, err
	}
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[config.IdempotencyHeader] = idempotencyKey
	}
	body, err := c.do(ctx, "allocate", http.MethodPost, config.TreasuryAllocatePath, bytes.NewReader(b), headers)
	if err != nil {
		return models.Receipt{}, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return models.Receipt{}, nil
	}
	var env receiptEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return models.Receipt{}, fmt.Errorf("allocate: decode receipt: %w", err)
	}
	if env.Data != nil {
		return *env.Data, nil
	}
	return env.Receipt, nil
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, body io.Reader, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}
	c.logger().Debug("api call",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(op, resp.StatusCode, data)
	}
	return data, nil
}

func (c *HTTPClient) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.FetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.FetchTimeout)
}

func (c *HTTPClient) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

type projectsEnvelope struct {
	Projects []models.Project `json:"projects"`
	Data     []models.Project `json:"data"`
}

func decodeProjects(body []byte) ([]models.Project, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []models.Project{}, nil
	}
	if trimmed[0] == '[' {
		var projects []models.Project
		if err := json.Unmarshal(trimmed, &projects); err != nil {
			return nil, fmt.Errorf("list projects: decode: %w", err)
		}
		return projects, nil
	}
	var env projectsEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("list projects: decode: %w", err)
	}
	if env.Projects != nil {
		return env.Projects, nil
	}
	if env.Data != nil {
		return env.Data, nil
	}
	return []models.Project{}, nil
}

func decodeBalance(body []byte) (*models.TreasuryBalance, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var bal *models.TreasuryBalance
	if err := json.Unmarshal(trimmed, &bal); err != nil {
		return nil, fmt.Errorf("treasury balance: decode: %w", err)
	}
	return bal, nil
}
