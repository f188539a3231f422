package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/Alia5/fourccgen/internal/codegen/common"
	"github.com/Alia5/fourccgen/internal/codegen/extractor"
	"github.com/Alia5/fourccgen/internal/codegen/generator"
	"github.com/Alia5/fourccgen/internal/codegen/meta"
	"github.com/Alia5/fourccgen/internal/log"
)

// Scan prints the format definitions found in the header without generating code.
type Scan struct {
	PreprocessorFlags `embed:""`
	Source            `embed:""`

	Format string `help:"Output format; auto prints a table on a terminal and JSON otherwise" enum:"auto,table,json" default:"auto" env:"FOURCCGEN_SCAN_FORMAT"`

	out io.Writer `kong:"-"`
}

type scanEntry struct {
	FullName  string `json:"fullName"`
	ShortName string `json:"shortName"`
	Variant   string `json:"variant"`
}

type scanResult struct {
	Header    string      `json:"header"`
	Namespace string      `json:"namespace"`
	Digest    string      `json:"digest"`
	Entries   []scanEntry `json:"entries"`
}

// Run is called by Kong when the scan command is executed.
func (s *Scan) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, cancel := s.runContext()
	defer cancel()
	return s.run(ctx, s.command(logger, rawLogger), logger)
}

func (s *Scan) run(ctx context.Context, pp extractor.Preprocessor, logger *slog.Logger) error {
	gen := generator.New(generator.Config{
		Header:    s.Header,
		Namespace: s.Namespace,
		Exclude:   s.Exclude,
	}, pp, logger)

	md, err := gen.ScanAll(ctx)
	if err != nil {
		return err
	}

	out := s.out
	if out == nil {
		out = os.Stdout
	}

	format := s.Format
	if format == "auto" || format == "" {
		format = "json"
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "table"
		}
	}

	if format == "table" {
		return writeTable(out, md)
	}
	return writeJSON(out, md)
}

func toScanResult(md *meta.Metadata) scanResult {
	res := scanResult{
		Header:    md.Header,
		Namespace: md.Namespace,
		Digest:    md.Digest,
		Entries:   make([]scanEntry, 0, len(md.Entries)),
	}
	for _, e := range md.Entries {
		res.Entries = append(res.Entries, scanEntry{
			FullName:  e.FullName,
			ShortName: e.ShortName,
			Variant:   common.EnumMemberCase(e.ShortName),
		})
	}
	return res
}

func writeJSON(w io.Writer, md *meta.Metadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toScanResult(md)); err != nil {
		return fmt.Errorf("encode scan result: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, md *meta.Metadata) error {
	res := toScanResult(md)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MACRO\tSHORT\tVARIANT")
	for _, e := range res.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.FullName, e.ShortName, e.Variant)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write scan table: %w", err)
	}
	_, err := fmt.Fprintf(w, "\n%d formats from <%s> (%s)\n", len(res.Entries), res.Header, res.Digest)
	return err
}
