// Package wiring assembles repositories, providers and services for the
// CLI layer.
package wiring

import (
	"time"

	"github.com/specvet/specvet/internal/infrastructure/config"
	infraai "github.com/specvet/specvet/pkg/ai"
	"github.com/specvet/specvet/pkg/application"
	domainai "github.com/specvet/specvet/pkg/domain/ai"
	"github.com/specvet/specvet/pkg/storage"
)

// Workspace bundles everything a command needs.
type Workspace struct {
	Repo      *storage.FilesystemRepository
	Audit     *application.AuditService
	Simulator *application.SimulatorService
	Evaluator *application.EvaluatorService
	Compiler  *application.CompileService
	Approval  *application.ApprovalService
}

// NewWorkspace wires a workspace at root. Provider construction failure
// is not fatal here: the simulator degrades gracefully without one.
func NewWorkspace(root string) *Workspace {
	repo := storage.NewFilesystemRepository(root)
	audit := application.NewAuditService(repo)

	provider, err := LoadAIProvider(root)
	if err != nil {
		provider = nil
	}

	return &Workspace{
		Repo:      repo,
		Audit:     audit,
		Simulator: application.NewSimulatorService(provider, audit),
		Evaluator: application.NewEvaluatorService(repo, provider, audit),
		Compiler:  application.NewCompileService(repo, audit),
		Approval:  application.NewApprovalService(repo, audit),
	}
}

// LoadAIProvider builds the configured reasoning backend wrapped in
// retry/timeout resilience.
func LoadAIProvider(root string) (domainai.Provider, error) {
	cfg, err := config.LoadAIConfig(root)
	if err != nil {
		return nil, err
	}

	providerName := "ollama"
	modelName := ""
	resilience := infraai.DefaultResilienceConfig()

	if cfg != nil {
		if cfg.Provider != "" {
			providerName = cfg.Provider
		}
		if cfg.Model != "" {
			modelName = cfg.Model
		}
		if cfg.MaxRetries > 0 {
			resilience.MaxRetries = cfg.MaxRetries
		}
		if cfg.RetryDelayMs > 0 {
			resilience.RetryDelay = time.Duration(cfg.RetryDelayMs) * time.Millisecond
		}
		if cfg.TimeoutSec > 0 {
			resilience.Timeout = time.Duration(cfg.TimeoutSec) * time.Second
		}
	}

	base, err := infraai.GetDefaultProvider(providerName, modelName)
	if err != nil {
		return nil, err
	}

	return infraai.NewResilientProviderWithConfig(base, resilience), nil
}
