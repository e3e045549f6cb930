package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scaffold-wizard/core/utils"

	"go.uber.org/zap"
)

// Source is the collaborator contract for fetching entity metadata.
// Implementations never return a nil manifest together with a nil error.
type Source interface {
	GetEntityManifest(ctx context.Context, entityID string) (*EntityManifest, error)
}

// Config holds configuration for the metadata service client.
type Config struct {
	// BaseURL is the metadata service endpoint.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:9100"`
	// ApiKey is sent as X-Api-Key on every request.
	ApiKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// AllowFallback enables the synthesized-manifest degrade path when the
	// service is unreachable. When disabled, failures propagate.
	AllowFallback bool `mapstructure:"allow_fallback" default:"true"`
}

// Client fetches entity manifests from the remote metadata service.
//
// Failure policy: when the service is unreachable or returns garbage and
// fallback is enabled, the client logs a warning and returns a synthesized
// manifest with Fallback set instead of an error. The wizard keeps working
// against a degraded manifest and the operator sees the flag.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a metadata service client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}
}

// GetEntityManifest fetches the manifest for one entity.
func (c *Client) GetEntityManifest(ctx context.Context, entityID string) (*EntityManifest, error) {
	man, err := c.fetch(ctx, entityID)
	if err != nil {
		if !c.cfg.AllowFallback {
			return nil, err
		}
		c.logger.Warn("Metadata service unavailable, using synthesized fallback manifest",
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
		return Synthesize(entityID, nil), nil
	}

	man.ReadAt = time.Now()
	return man, nil
}

func (c *Client) fetch(ctx context.Context, entityID string) (*EntityManifest, error) {
	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/api/entities/" + entityID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build manifest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.ApiKey != "" {
		req.Header.Set("X-Api-Key", c.cfg.ApiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach metadata service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("metadata service returned status %d for entity %s", resp.StatusCode, entityID)
	}

	var wire manifestWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode manifest for entity %s: %w", entityID, err)
	}

	man := wire.EntityManifest
	man.MenuCode = utils.ToInt(wire.MenuCode)
	man.ActionCode = utils.ToInt(wire.ActionCode)

	man.Fields = make([]FieldManifest, 0, len(wire.Fields))
	for _, f := range wire.Fields {
		field := f.FieldManifest
		field.IsRequired = utils.ToBool(f.IsRequired)
		if f.Default != nil {
			field.Default = utils.ToString(f.Default)
		}
		man.Fields = append(man.Fields, field)
	}

	if errs := man.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("metadata service returned invalid manifest for entity %s: %s", entityID, strings.Join(errs, "; "))
	}

	return &man, nil
}

// manifestWire tolerates the metadata service's loose typing: some
// deployments serialize the access-control codes as strings, some as
// numbers. Field-level flags and defaults get the same treatment.
type manifestWire struct {
	EntityManifest
	MenuCode   any         `json:"menu_code"`
	ActionCode any         `json:"action_code"`
	Fields     []fieldWire `json:"fields"`
}

type fieldWire struct {
	FieldManifest
	IsRequired any `json:"is_required"`
	Default    any `json:"default"`
}
