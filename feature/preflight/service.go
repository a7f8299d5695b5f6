package preflight

import (
	"context"

	"backend-launcher/core/backend"
	"backend-launcher/core/storage"
	"backend-launcher/feature/preflight/checks"

	"go.uber.org/zap"
)

// Service runs the launch precondition checks.
type Service struct {
	cfg    backend.Config
	model  backend.ModelConfig
	store  storage.Client
	bucket string
	runner checks.Runner
	logger *zap.Logger
}

// NewService creates a new preflight service. store may be nil when no object
// storage is configured.
func NewService(cfg backend.Config, model backend.ModelConfig, store storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		cfg:    cfg,
		model:  model,
		store:  store,
		bucket: bucket,
		runner: checks.NewRunner(),
		logger: logger,
	}
}

// WithRunner overrides the command runner used for dependency probes.
func (s *Service) WithRunner(r checks.Runner) *Service {
	s.runner = r
	return s
}

// ResolveLayout verifies the backend tree and returns the resolved paths.
func (s *Service) ResolveLayout() (backend.Layout, error) {
	return checks.ResolveLayout(s.cfg)
}

// CheckDependencies probes the required Python packages in the resolved
// interpreter.
func (s *Service) CheckDependencies(ctx context.Context, layout backend.Layout) []checks.DepResult {
	return checks.CheckDependencies(ctx, s.runner, layout.Python, s.cfg.PackageList())
}

// EnsureModel verifies the model artifact, fetching it when a source is
// configured. No-op when the model check is disabled.
func (s *Service) EnsureModel(ctx context.Context, layout backend.Layout) (string, error) {
	if !s.model.Enabled() {
		return "", nil
	}
	return checks.EnsureModel(ctx, s.model, layout, s.store, s.bucket, s.logger)
}
