package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"github.com/Alia5/fourccgen/internal/codegen/meta"
)

const enumTemplate = `{{.Header}}
package {{.Package}}

import "fmt"

// {{.TypeName}} is a buffer format code from <{{.Include}}>.
type {{.TypeName}} uint32

// Known {{.TypeName}} values. Each one is its constant from {{.ConstsFile}}.
const (
{{- range .Variants}}
	{{.Name}} {{$.TypeName}} = {{$.TypeName}}({{.Const}})
{{- end}}
)

// {{.ValuesFunc}} returns every known {{.TypeName}} in header order.
func {{.ValuesFunc}}() []{{.TypeName}} {
	return []{{.TypeName}}{
{{- range .Variants}}
		{{.Name}},
{{- end}}
	}
}

// {{.LookupFunc}} returns the {{.TypeName}} whose code is code. It reports
// false for codes this file was not generated with.
func {{.LookupFunc}}(code uint32) ({{.TypeName}}, bool) {
	switch code {
{{- range .Variants}}
	case {{.Const}}:
		return {{.Name}}, true
{{- end}}
	}
	return 0, false
}

// Code returns the numeric format code.
func (f {{.TypeName}}) Code() uint32 {
	return uint32(f)
}

func (f {{.TypeName}}) String() string {
	switch f {
{{- range .Variants}}
	case {{.Name}}:
		return "{{.Name}}"
{{- end}}
	}
	return fmt.Sprintf("{{.TypeName}}(0x%08x)", uint32(f))
}
`

type enumData struct {
	Header     string
	Package    string
	Include    string
	ConstsFile string
	TypeName   string
	ValuesFunc string
	LookupFunc string
	Variants   []enumVariant
}

// renderEnum emits the enumeration type, its reverse lookup and String.
// Discriminants and switch cases reference the constant table by name.
func renderEnum(md *meta.Metadata, opts Options, t *table) ([]byte, error) {
	tmpl, err := template.New("enum").Parse(enumTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	data := enumData{
		Header:     writeFileHeader(md),
		Package:    opts.Package,
		Include:    md.Header,
		ConstsFile: opts.ConstsFile,
		TypeName:   opts.TypeName,
		ValuesFunc: opts.valuesFunc(),
		LookupFunc: reverseLookupFunc,
		Variants:   t.Variants,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", opts.EnumFile, err)
	}
	return src, nil
}
