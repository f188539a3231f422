// Package golang renders the constant table and the enumeration as Go source.
package golang

import (
	"log/slog"

	"github.com/Alia5/fourccgen/internal/codegen/meta"
)

// File is one rendered artifact, relative to the output directory.
type File struct {
	Name    string
	Content []byte
}

// Generate renders both artifacts in memory. Nothing is written to disk, so a
// failure in either emitter leaves no partial output behind.
func Generate(logger *slog.Logger, md *meta.Metadata, opts Options) ([]File, error) {
	opts = opts.withDefaults()

	t, err := buildTable(md, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Built format table", "constants", len(t.Consts), "variants", len(t.Variants))

	consts, err := renderConstants(md, opts, t)
	if err != nil {
		return nil, err
	}
	logger.Debug("Rendered constant table", "file", opts.ConstsFile, "bytes", len(consts))

	enum, err := renderEnum(md, opts, t)
	if err != nil {
		return nil, err
	}
	logger.Debug("Rendered enumeration", "file", opts.EnumFile, "type", opts.TypeName, "bytes", len(enum))

	return []File{
		{Name: opts.ConstsFile, Content: consts},
		{Name: opts.EnumFile, Content: enum},
	}, nil
}
