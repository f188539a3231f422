package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"github.com/Alia5/fourccgen/internal/codegen/meta"
)

const constantsTemplate = `{{.Header}}
package {{.Package}}

/*
#include <stdint.h>
#include <{{.Include}}>
*/
import "C"

// Format codes as defined by <{{.Include}}>.
const (
{{- range .Consts}}
	{{.Name}} uint32 = C.{{.Macro}}
{{- end}}
)
`

type constantsData struct {
	Header  string
	Package string
	Include string
	Consts  []constBinding
}

// renderConstants emits the cgo constant table. Every value refers to the
// header macro itself so the binding always tracks the header.
func renderConstants(md *meta.Metadata, opts Options, t *table) ([]byte, error) {
	tmpl, err := template.New("constants").Parse(constantsTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	data := constantsData{
		Header:  writeFileHeader(md),
		Package: opts.Package,
		Include: md.Header,
		Consts:  t.Consts,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", opts.ConstsFile, err)
	}
	return src, nil
}
