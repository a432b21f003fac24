// Package generate renders catalog templates through tool adapters and writes
// the resulting files. Only configured tools are ever written to, and a failure
// for one tool never stops another.
package generate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ariel-frischer/agentsync/internal/adapters"
	"github.com/ariel-frischer/agentsync/internal/catalog"
	"github.com/ariel-frischer/agentsync/internal/config"
	"github.com/ariel-frischer/agentsync/internal/detect"
	"github.com/ariel-frischer/agentsync/internal/history"
	"github.com/ariel-frischer/agentsync/internal/status"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotConfigured is returned for targets of a tool absent from the project.
	ErrNotConfigured = errors.New("tool is not configured in this project")
	// ErrNotManaged is returned for targets of a tool outside the configured allow-list.
	ErrNotManaged = errors.New("tool is excluded by configuration")
	// ErrUnknownArtifact is returned when a target names no catalog entry.
	ErrUnknownArtifact = errors.New("unknown catalog entry")
)

// Generator writes tool artifacts. It is safe for concurrent use.
type Generator struct {
	registry *adapters.Registry
	catalog  *catalog.Catalog
	cfg      *config.GlobalConfig
	logger   *zap.Logger
	history  *history.Writer
	detector *detect.Detector

	locks pathLocks
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithHistory records every Sync run through w.
func WithHistory(w *history.Writer) Option {
	return func(g *Generator) {
		g.history = w
	}
}

// New creates a Generator.
func New(registry *adapters.Registry, cat *catalog.Catalog, cfg *config.GlobalConfig, opts ...Option) *Generator {
	g := &Generator{
		registry: registry,
		catalog:  cat,
		cfg:      cfg,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.detector = detect.New(registry, cat, cfg, detect.WithLogger(g.logger))
	return g
}

// Detector returns the detector Sync uses, sharing this generator's inputs.
func (g *Generator) Detector() *detect.Detector {
	return g.detector
}

// Sync scans the project, then writes every stale or missing artifact of the
// selected tools (all managed tools when none are given). Unknown tool IDs fail
// the whole call before anything is read. Write failures are reported in the
// Result, not as the returned error.
func (g *Generator) Sync(ctx context.Context, projectRoot string, toolIDs ...string) (detect.Report, Result, error) {
	for _, id := range toolIDs {
		if _, err := g.registry.Get(id); err != nil {
			return detect.Report{}, Result{}, err
		}
	}

	report, err := g.detector.Scan(ctx, projectRoot)
	if err != nil {
		return detect.Report{}, Result{}, fmt.Errorf("scanning project: %w", err)
	}

	for _, a := range report.Anomalies() {
		g.logger.Warn("generated artifact is ahead of the catalog; leaving it untouched",
			zap.String("tool", a.ToolID),
			zap.String("path", a.Path),
			zap.String("generated_version", a.GeneratedVersion),
			zap.String("current_version", a.CurrentVersion),
		)
	}

	result := g.Generate(ctx, projectRoot, Plan(report, toolIDs...))
	g.record(projectRoot, result)
	return report, result, nil
}

// Generate writes the given targets. Targets are grouped per tool, tools run
// concurrently and writes to one path never overlap. Tools that are
// unregistered, unmanaged or absent from the project are refused without
// writing anything.
func (g *Generator) Generate(ctx context.Context, projectRoot string, targets []Target) Result {
	byTool := make(map[string][]Target)
	for _, t := range targets {
		byTool[t.ToolID] = append(byTool[t.ToolID], t)
	}
	toolIDs := make([]string, 0, len(byTool))
	for id := range byTool {
		toolIDs = append(toolIDs, id)
	}
	sort.Strings(toolIDs)

	opts := catalog.Options{LanguageInstruction: g.cfg.LanguageInstruction()}
	results := make([]ToolResult, len(toolIDs))

	var eg errgroup.Group
	eg.SetLimit(g.maxParallel())
	for i, id := range toolIDs {
		eg.Go(func() error {
			results[i] = g.generateTool(ctx, projectRoot, id, byTool[id], opts)
			return nil
		})
	}
	_ = eg.Wait() // workers report through results

	return Result{ProjectRoot: projectRoot, Tools: results}
}

func (g *Generator) generateTool(ctx context.Context, projectRoot, toolID string, targets []Target, opts catalog.Options) ToolResult {
	result := ToolResult{ToolID: toolID}
	failAll := func(err error) ToolResult {
		for _, t := range targets {
			result.Failed = append(result.Failed, Failure{Target: t, Err: err})
		}
		g.logger.Warn("refusing to generate for tool", zap.String("tool", toolID), zap.Error(err))
		return result
	}

	a, err := g.registry.Get(toolID)
	if err != nil {
		return failAll(err)
	}
	if !g.cfg.ManagesTool(toolID) {
		return failAll(ErrNotManaged)
	}
	configured, err := detect.IsConfigured(projectRoot, a)
	if err != nil {
		return failAll(fmt.Errorf("checking tool presence: %w", err))
	}
	if !configured {
		return failAll(ErrNotConfigured)
	}

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, Failure{Target: t, Err: err})
			continue
		}

		path, content, err := g.render(a, t, opts)
		if err != nil {
			result.Failed = append(result.Failed, Failure{Target: t, Err: err})
			continue
		}

		if err := g.write(filepath.Join(projectRoot, path), []byte(content)); err != nil {
			g.logger.Warn("failed to write artifact",
				zap.String("tool", toolID),
				zap.String("path", path),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, Failure{Target: t, Path: path, Err: err})
			continue
		}

		g.logger.Debug("wrote artifact", zap.String("tool", toolID), zap.String("path", path))
		result.Written = append(result.Written, path)
	}
	return result
}

// render returns the project-relative path and full file text for a target.
// The current catalog version is embedded as the marker.
func (g *Generator) render(a adapters.Adapter, t Target, opts catalog.Options) (string, string, error) {
	switch t.Kind {
	case status.KindSkill:
		entry, ok := g.catalog.LookupSkill(t.ID)
		if !ok {
			return "", "", fmt.Errorf("skill %q: %w", t.ID, ErrUnknownArtifact)
		}
		return adapters.SkillPath(a, entry.DirName), catalog.GenerateSkillContent(entry, opts), nil
	case status.KindCommand:
		entry, ok := g.catalog.LookupCommand(t.ID)
		if !ok {
			return "", "", fmt.Errorf("command %q: %w", t.ID, ErrUnknownArtifact)
		}
		return a.FilePath(t.ID), a.FormatFile(catalog.CommandContent(entry, opts)), nil
	default:
		return "", "", fmt.Errorf("unsupported artifact kind %q", t.Kind)
	}
}

func (g *Generator) write(path string, data []byte) error {
	unlock := g.locks.lock(path)
	defer unlock()
	return atomicWriteToFile(path, data)
}

func (g *Generator) record(projectRoot string, result Result) {
	if g.history == nil {
		return
	}
	for _, t := range result.Tools {
		if len(t.Written) == 0 && len(t.Failed) == 0 {
			continue
		}
		g.history.LogSync(projectRoot, t.ToolID, t.Written, t.FailedPaths())
	}
}

func (g *Generator) maxParallel() int {
	if g.cfg.MaxParallel < 1 {
		return config.DefaultMaxParallel
	}
	return g.cfg.MaxParallel
}
