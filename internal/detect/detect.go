// Package detect inspects a project for configured tools and reads the version
// marker of every generated artifact. Detection never fails on file contents:
// unreadable, unparsable or unmarked files are reported as not generated.
package detect

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/agentsync/internal/adapters"
	"github.com/ariel-frischer/agentsync/internal/catalog"
	"github.com/ariel-frischer/agentsync/internal/config"
	"github.com/ariel-frischer/agentsync/internal/frontmatter"
	"github.com/ariel-frischer/agentsync/internal/marker"
	"github.com/ariel-frischer/agentsync/internal/status"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Detector scans projects. It holds no per-scan state and is safe for concurrent use.
type Detector struct {
	registry *adapters.Registry
	catalog  *catalog.Catalog
	cfg      *config.GlobalConfig
	logger   *zap.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger sets the logger used for degraded-file warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Detector. The config is read, never modified.
func New(registry *adapters.Registry, cat *catalog.Catalog, cfg *config.GlobalConfig, opts ...Option) *Detector {
	d := &Detector{
		registry: registry,
		catalog:  cat,
		cfg:      cfg,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Scan reports every managed tool in tool ID order.
// Tools are inspected concurrently; the result order does not depend on timing.
func (d *Detector) Scan(ctx context.Context, projectRoot string) (Report, error) {
	tools := d.managedAdapters()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.maxParallel())

	results := make([]ToolReport, len(tools))
	for i, a := range tools {
		g.Go(func() error {
			report, err := d.scanAdapter(ctx, projectRoot, a)
			if err != nil {
				return err
			}
			results[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return Report{ProjectRoot: projectRoot, Tools: results}, nil
}

// ScanTool reports a single tool. An unknown tool ID fails before any file is touched.
func (d *Detector) ScanTool(ctx context.Context, projectRoot, toolID string) (ToolReport, error) {
	a, err := d.registry.Get(toolID)
	if err != nil {
		return ToolReport{}, err
	}
	return d.scanAdapter(ctx, projectRoot, a)
}

// IsConfigured reports whether the tool's presence directory exists under projectRoot.
func IsConfigured(projectRoot string, a adapters.Adapter) (bool, error) {
	info, err := os.Stat(filepath.Join(projectRoot, a.ConfigDir()))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (d *Detector) managedAdapters() []adapters.Adapter {
	all := d.registry.All()
	managed := make([]adapters.Adapter, 0, len(all))
	for _, a := range all {
		if d.cfg.ManagesTool(a.ToolID()) {
			managed = append(managed, a)
		}
	}
	for _, id := range d.cfg.Tools {
		if _, err := d.registry.Get(id); err != nil {
			d.logger.Warn("configured tool has no adapter", zap.String("tool", id))
		}
	}
	return managed
}

func (d *Detector) maxParallel() int {
	if d.cfg.MaxParallel < 1 {
		return config.DefaultMaxParallel
	}
	return d.cfg.MaxParallel
}

func (d *Detector) scanAdapter(ctx context.Context, projectRoot string, a adapters.Adapter) (ToolReport, error) {
	if err := ctx.Err(); err != nil {
		return ToolReport{}, err
	}

	configured, err := IsConfigured(projectRoot, a)
	if err != nil {
		d.logger.Warn("cannot check tool presence",
			zap.String("tool", a.ToolID()),
			zap.Error(err),
		)
	}

	report := ToolReport{
		ToolID:      a.ToolID(),
		DisplayName: a.DisplayName(),
		Configured:  configured,
	}

	for _, skill := range d.catalog.SkillTemplates() {
		item := status.ToolSkillStatus{
			ToolID:         a.ToolID(),
			Kind:           status.KindSkill,
			ID:             skill.ID,
			Path:           adapters.SkillPath(a, skill.DirName),
			Configured:     configured,
			CurrentVersion: skill.Version,
		}
		if configured {
			item.GeneratedVersion, item.Note = d.readMarker(projectRoot, item, skillBody)
		}
		report.Artifacts = append(report.Artifacts, item)
	}

	for _, cmd := range d.catalog.CommandTemplates() {
		item := status.ToolSkillStatus{
			ToolID:         a.ToolID(),
			Kind:           status.KindCommand,
			ID:             cmd.ID,
			Path:           a.FilePath(cmd.ID),
			Configured:     configured,
			CurrentVersion: cmd.Version,
		}
		if configured {
			item.GeneratedVersion, item.Note = d.readMarker(projectRoot, item, commandBody(a))
		}
		report.Artifacts = append(report.Artifacts, item)
	}

	return report, nil
}

// readMarker returns the marker version of the artifact, or "" and a note saying
// why the file does not count as generated. A missing file has no note.
func (d *Detector) readMarker(projectRoot string, item status.ToolSkillStatus, body func([]byte) (string, error)) (string, string) {
	data, err := os.ReadFile(filepath.Join(projectRoot, item.Path))
	if errors.Is(err, fs.ErrNotExist) {
		return "", ""
	}
	if err != nil {
		return "", d.degraded(item, "read failed", err)
	}

	text, err := body(data)
	if err != nil {
		return "", d.degraded(item, "unparsable", err)
	}

	version, err := marker.Extract(text)
	if err != nil {
		return "", d.degraded(item, "no usable version marker", err)
	}
	return version, ""
}

func (d *Detector) degraded(item status.ToolSkillStatus, reason string, err error) string {
	d.logger.Warn("treating artifact as not generated",
		zap.String("tool", item.ToolID),
		zap.String("kind", string(item.Kind)),
		zap.String("id", item.ID),
		zap.String("path", item.Path),
		zap.String("reason", reason),
		zap.Error(err),
	)
	return fmt.Sprintf("%s: %v", reason, err)
}

func skillBody(data []byte) (string, error) {
	_, body, err := frontmatter.Split(data)
	return body, err
}

// commandBody parses structured formats before the marker inside them is trusted.
func commandBody(a adapters.Adapter) func([]byte) (string, error) {
	if p, ok := a.(adapters.Parser); ok {
		return p.ParseFile
	}
	return func(data []byte) (string, error) { return string(data), nil }
}
