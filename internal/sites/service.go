package sites

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// seoConfigSchema documents the shape of the denormalized SEO blob. Handlers
// write it; the service rejects malformed operator edits before they reach
// the payload builder.
const seoConfigSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "SiteSEOConfig",
  "type": "object",
  "properties": {
    "meta_title": { "type": "string" },
    "meta_description": { "type": "string" },
    "keywords": {
      "type": "array",
      "items": { "type": "string" }
    },
    "canonical_base": { "type": "string" },
    "indexing_enabled": { "type": "boolean" }
  },
  "additionalProperties": true
}
`

var compiledSEOSchema = jsonschema.MustCompileString("seo_config.json", seoConfigSchema)

// Service exposes the site operations the orchestrator and operator surfaces use.
type Service interface {
	CreateSite(ctx context.Context, input CreateSiteInput) (*Site, error)
	GetSite(ctx context.Context, id uuid.UUID) (*Site, error)
	ListAutomatable(ctx context.Context) ([]*Site, error)
	UpdateSEOConfig(ctx context.Context, id uuid.UUID, cfg map[string]any) (*Site, error)
	SetAutomationPaused(ctx context.Context, id uuid.UUID, paused bool) (*Site, error)
}

// CreateSiteInput captures the information required to register a site.
type CreateSiteInput struct {
	Name           string
	HomepageConfig map[string]any
	SEOConfig      map[string]any
}

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a site service instance.
func NewService(repo Repository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateSite(ctx context.Context, input CreateSiteInput) (*Site, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := validateSEOConfig(input.SEOConfig); err != nil {
		return nil, err
	}

	now := s.now()
	record := &Site{
		ID:             uuid.New(),
		Name:           name,
		Status:         string(StatusCreated),
		HomepageConfig: input.HomepageConfig,
		SEOConfig:      input.SEOConfig,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.repo.Create(ctx, record)
}

func (s *service) GetSite(ctx context.Context, id uuid.UUID) (*Site, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListAutomatable(ctx context.Context) ([]*Site, error) {
	return s.repo.ListAutomatable(ctx)
}

func (s *service) UpdateSEOConfig(ctx context.Context, id uuid.UUID, cfg map[string]any) (*Site, error) {
	if err := validateSEOConfig(cfg); err != nil {
		return nil, err
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.SEOConfig = cfg
	record.UpdatedAt = s.now()
	return s.repo.Update(ctx, record)
}

func (s *service) SetAutomationPaused(ctx context.Context, id uuid.UUID, paused bool) (*Site, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.AutomationPaused = paused
	record.UpdatedAt = s.now()
	return s.repo.Update(ctx, record)
}

func validateSEOConfig(cfg map[string]any) error {
	if cfg == nil {
		return nil
	}
	if err := compiledSEOSchema.Validate(normalizeForSchema(cfg)); err != nil {
		return ErrSEOConfigInvalid
	}
	return nil
}

// normalizeForSchema converts the blob into the interface shapes the schema
// validator expects (json.Unmarshal equivalents).
func normalizeForSchema(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			out[k] = normalizeForSchema(val)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, val := range tv {
			out[i] = normalizeForSchema(val)
		}
		return out
	case []string:
		out := make([]any, len(tv))
		for i, val := range tv {
			out[i] = val
		}
		return out
	case int:
		return float64(tv)
	case int64:
		return float64(tv)
	default:
		return v
	}
}
