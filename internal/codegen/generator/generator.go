package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Alia5/fourccgen/internal/codegen/common"
	"github.com/Alia5/fourccgen/internal/codegen/extractor"
	"github.com/Alia5/fourccgen/internal/codegen/generator/golang"
	"github.com/Alia5/fourccgen/internal/codegen/meta"
	"github.com/Alia5/fourccgen/internal/codegen/scanner"
)

// ErrStale is returned by Check when an artifact on disk differs from what
// the current header would generate.
var ErrStale = errors.New("generated files are out of date")

// IOError is returned when reading or writing an artifact fails.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Config describes one generator run.
type Config struct {
	Header    string   // header to include, resolved on the preprocessor's search path
	Namespace string   // macro prefix, e.g. "DRM_FORMAT_"
	Exclude   []string // sentinel markers; nil selects scanner.DefaultExclude
	OutputDir string
	Go        golang.Options
}

type Generator struct {
	cfg    Config
	pp     extractor.Preprocessor
	logger *slog.Logger
}

func New(cfg Config, pp extractor.Preprocessor, logger *slog.Logger) *Generator {
	if cfg.Namespace == "" {
		cfg.Namespace = scanner.DefaultNamespace
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &Generator{
		cfg:    cfg,
		pp:     pp,
		logger: logger,
	}
}

// ScanAll runs the preprocessor once and parses its output into Metadata.
func (g *Generator) ScanAll(ctx context.Context) (*meta.Metadata, error) {
	g.logger.Info("Extracting macro definitions", "header", g.cfg.Header)
	output, err := extractor.Extract(ctx, g.pp, g.cfg.Header)
	if err != nil {
		return nil, err
	}

	entries := scanner.ScanDefinitions(output, scanner.Options{
		Namespace: g.cfg.Namespace,
		Exclude:   g.cfg.Exclude,
	})
	if len(entries) == 0 {
		g.logger.Warn("No format definitions found", "header", g.cfg.Header, "namespace", g.cfg.Namespace)
	}

	md := &meta.Metadata{
		Header:    g.cfg.Header,
		Namespace: g.cfg.Namespace,
		Entries:   entries,
		Digest:    common.EntriesDigest(g.cfg.Header, entries),
	}
	g.logger.Info("Found format definitions", "count", len(entries), "digest", md.Digest)
	return md, nil
}

// Render scans the header and renders both artifacts in memory.
func (g *Generator) Render(ctx context.Context) ([]golang.File, error) {
	md, err := g.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	return golang.Generate(g.logger, md, g.cfg.Go)
}

// Generate renders both artifacts and writes them to the output directory.
// Nothing is written unless both render successfully, and a failure while
// moving the files into place leaves the previous files on disk.
func (g *Generator) Generate(ctx context.Context) error {
	files, err := g.Render(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return &IOError{Op: "create output directory", Path: g.cfg.OutputDir, Err: err}
	}
	if err := writeFiles(g.cfg.OutputDir, files); err != nil {
		return err
	}

	for _, f := range files {
		g.logger.Info("Generated file", "file", filepath.Join(g.cfg.OutputDir, f.Name))
	}
	return nil
}

// Check renders both artifacts and compares them with the files on disk.
// It returns an error wrapping ErrStale listing every file that differs.
func (g *Generator) Check(ctx context.Context) error {
	files, err := g.Render(ctx)
	if err != nil {
		return err
	}

	var stale []string
	for _, f := range files {
		path := filepath.Join(g.cfg.OutputDir, f.Name)
		current, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return &IOError{Op: "read", Path: path, Err: err}
		}
		if !bytes.Equal(current, f.Content) {
			g.logger.Warn("Generated file is out of date", "file", path)
			stale = append(stale, path)
		}
	}

	if len(stale) > 0 {
		return fmt.Errorf("%w: %v", ErrStale, stale)
	}
	g.logger.Info("Generated files are up to date", "dir", g.cfg.OutputDir)
	return nil
}

// writeFiles stages every file next to its destination first and renames
// them into place only once all were written. Destinations replaced before a
// failed rename are restored from their backups.
func writeFiles(dir string, files []golang.File) error {
	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, f := range files {
		tmp, err := os.CreateTemp(dir, "."+f.Name+".*.tmp")
		if err != nil {
			cleanup()
			return &IOError{Op: "create", Path: filepath.Join(dir, f.Name), Err: err}
		}
		staged = append(staged, tmp.Name())

		_, werr := tmp.Write(f.Content)
		cerr := tmp.Close()
		if werr == nil {
			werr = cerr
		}
		if werr == nil {
			werr = os.Chmod(tmp.Name(), 0o644)
		}
		if werr != nil {
			cleanup()
			return &IOError{Op: "write", Path: filepath.Join(dir, f.Name), Err: werr}
		}
	}

	type placed struct{ dest, backup string }
	done := make([]placed, 0, len(files))
	rollback := func() {
		for i := len(done) - 1; i >= 0; i-- {
			p := done[i]
			if p.backup == "" {
				_ = os.Remove(p.dest)
				continue
			}
			_ = os.Rename(p.backup, p.dest)
		}
		cleanup()
	}

	for i, f := range files {
		dest := filepath.Join(dir, f.Name)
		backup, err := backupExisting(dir, dest)
		if err != nil {
			rollback()
			return &IOError{Op: "back up", Path: dest, Err: err}
		}
		if err := os.Rename(staged[i], dest); err != nil {
			if backup != "" {
				_ = os.Rename(backup, dest)
			}
			rollback()
			return &IOError{Op: "rename", Path: dest, Err: err}
		}
		done = append(done, placed{dest: dest, backup: backup})
	}

	for _, p := range done {
		if p.backup != "" {
			_ = os.Remove(p.backup)
		}
	}
	return nil
}

// backupExisting moves dest aside and returns where it went, or "" when
// there was nothing to move.
func backupExisting(dir, dest string) (string, error) {
	if _, err := os.Lstat(dest); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.bak")
	if err != nil {
		return "", err
	}
	backup := tmp.Name()
	_ = tmp.Close()
	if err := os.Rename(dest, backup); err != nil {
		_ = os.Remove(backup)
		return "", err
	}
	return backup, nil
}
