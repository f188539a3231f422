package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/fourccgen/internal/codegen/extractor"
	"github.com/Alia5/fourccgen/internal/codegen/generator"
	"github.com/Alia5/fourccgen/internal/codegen/generator/golang"
	"github.com/Alia5/fourccgen/internal/log"
)

// PreprocessorFlags configure the external C preprocessor.
type PreprocessorFlags struct {
	Preprocessor    string        `help:"C preprocessor binary (clang or gcc compatible)" default:"clang" env:"FOURCCGEN_PREPROCESSOR"`
	PreprocessorArg []string      `help:"Extra argument passed to the preprocessor, e.g. -I/opt/include (repeatable)" sep:"none" env:"FOURCCGEN_PREPROCESSOR_ARG"`
	Timeout         time.Duration `help:"Abort the preprocessor after this long (0 waits forever)" default:"0s" env:"FOURCCGEN_TIMEOUT"`
}

func (p PreprocessorFlags) command(logger *slog.Logger, raw log.RawLogger) *extractor.Command {
	c := extractor.NewCommand(p.Preprocessor, p.PreprocessorArg, logger)
	c.Raw = raw
	return c
}

// runContext returns a context cancelled on interrupt and, if set, after Timeout.
func (p PreprocessorFlags) runContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if p.Timeout <= 0 {
		return ctx, stop
	}
	tctx, cancel := context.WithTimeout(ctx, p.Timeout)
	return tctx, func() {
		cancel()
		stop()
	}
}

// Source selects the header and the macros taken from it.
type Source struct {
	Header    string   `help:"Header to include from the preprocessor search path" default:"drm/drm_fourcc.h" env:"FOURCCGEN_HEADER"`
	Namespace string   `help:"Macro name prefix of format definitions" default:"DRM_FORMAT_" env:"FOURCCGEN_NAMESPACE"`
	Exclude   []string `help:"Drop definition lines containing any of these markers" default:"DRM_FORMAT_RESERVED,INVALID" env:"FOURCCGEN_EXCLUDE"`
}

type Generate struct {
	PreprocessorFlags `embed:""`
	Source            `embed:""`

	Output      string `help:"Directory the generated files are written to" default:"." type:"path" env:"FOURCCGEN_OUTPUT"`
	Package     string `help:"Package name of the generated files" default:"drmfourcc" env:"FOURCCGEN_PACKAGE"`
	TypeName    string `help:"Name of the generated enumeration type" default:"DrmFormat" env:"FOURCCGEN_TYPE_NAME"`
	ConstPrefix string `help:"Prefix of the generated numeric constants" default:"DRM_FOURCC_" env:"FOURCCGEN_CONST_PREFIX"`
	ConstsFile  string `help:"File name of the constant table" default:"consts.go" env:"FOURCCGEN_CONSTS_FILE"`
	EnumFile    string `help:"File name of the enumeration" default:"format.go" env:"FOURCCGEN_ENUM_FILE"`
	Check       bool   `help:"Only verify that the files on disk are up to date" env:"FOURCCGEN_CHECK"`
}

func (g *Generate) config() generator.Config {
	return generator.Config{
		Header:    g.Header,
		Namespace: g.Namespace,
		Exclude:   g.Exclude,
		OutputDir: g.Output,
		Go: golang.Options{
			Package:     g.Package,
			TypeName:    g.TypeName,
			ConstPrefix: g.ConstPrefix,
			ConstsFile:  g.ConstsFile,
			EnumFile:    g.EnumFile,
		},
	}
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, cancel := g.runContext()
	defer cancel()
	return g.run(ctx, g.command(logger, rawLogger), logger)
}

func (g *Generate) run(ctx context.Context, pp extractor.Preprocessor, logger *slog.Logger) error {
	logger.Info("Starting format code generation", "header", g.Header, "output", g.Output, "check", g.Check)

	gen := generator.New(g.config(), pp, logger)
	if g.Check {
		return gen.Check(ctx)
	}
	return gen.Generate(ctx)
}
