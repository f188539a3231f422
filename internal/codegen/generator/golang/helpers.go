package golang

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/Alia5/fourccgen/internal/codegen/common"
	"github.com/Alia5/fourccgen/internal/codegen/meta"
)

const (
	DefaultConstPrefix = "DRM_FOURCC_"
	DefaultTypeName    = "DrmFormat"
	DefaultPackage     = "drmfourcc"
	DefaultConstsFile  = "consts.go"
	DefaultEnumFile    = "format.go"
	reverseLookupFunc  = "FromNumericCode"
)

// Options control names in the generated package.
type Options struct {
	Package     string
	TypeName    string
	ConstPrefix string
	ConstsFile  string
	EnumFile    string
}

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = DefaultPackage
	}
	if o.TypeName == "" {
		o.TypeName = DefaultTypeName
	}
	if o.ConstPrefix == "" {
		o.ConstPrefix = DefaultConstPrefix
	}
	if o.ConstsFile == "" {
		o.ConstsFile = DefaultConstsFile
	}
	if o.EnumFile == "" {
		o.EnumFile = DefaultEnumFile
	}
	return o
}

func (o Options) valuesFunc() string { return o.TypeName + "Values" }

// CollisionError is returned when two entries map to the same generated name.
type CollisionError struct {
	Kind   string // "constant" or "variant"
	Name   string
	First  string // macro that claimed Name first
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s name %s generated for both %s and %s", e.Kind, e.Name, e.First, e.Second)
}

// IdentifierError is returned when a generated name is not a usable Go identifier.
type IdentifierError struct {
	Kind  string
	Name  string
	Macro string
}

func (e *IdentifierError) Error() string {
	if e.Macro == "" {
		return fmt.Sprintf("%s name %q is not a valid exported Go identifier", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s name %q derived from %s is not a valid exported Go identifier", e.Kind, e.Name, e.Macro)
}

// constBinding is one entry of the constant table.
type constBinding struct {
	Name  string // e.g., "DRM_FOURCC_XRGB8888"
	Macro string // e.g., "DRM_FORMAT_XRGB8888"
}

// enumVariant is one member of the enumeration, bound to a constBinding by name.
type enumVariant struct {
	Name  string // e.g., "Xrgb8888"
	Const string // e.g., "DRM_FOURCC_XRGB8888"
}

// table is the shared plan both emitters render from.
type table struct {
	Consts   []constBinding
	Variants []enumVariant
}

// buildTable derives both tables from the same entry list and rejects
// collisions. Consts[i] and Variants[i] always describe the same entry.
func buildTable(md *meta.Metadata, opts Options) (*table, error) {
	if !token.IsIdentifier(opts.Package) || opts.Package == "_" {
		return nil, &IdentifierError{Kind: "package", Name: opts.Package}
	}
	if !common.IsExportedIdent(opts.TypeName) {
		return nil, &IdentifierError{Kind: "type", Name: opts.TypeName}
	}

	// Names already taken by the generated package itself.
	reserved := map[string]string{
		opts.TypeName:     "generated type",
		reverseLookupFunc: "generated function",
		opts.valuesFunc(): "generated function",
		"C":               "cgo pseudo-package",
	}

	t := &table{
		Consts:   make([]constBinding, 0, len(md.Entries)),
		Variants: make([]enumVariant, 0, len(md.Entries)),
	}
	owners := make(map[string]string, 2*len(md.Entries))
	for k, v := range reserved {
		owners[k] = v
	}

	for _, e := range md.Entries {
		cname := opts.ConstPrefix + e.ShortName
		if !common.IsExportedIdent(cname) {
			return nil, &IdentifierError{Kind: "constant", Name: cname, Macro: e.FullName}
		}
		if prev, ok := owners[cname]; ok {
			return nil, &CollisionError{Kind: "constant", Name: cname, First: prev, Second: e.FullName}
		}
		owners[cname] = e.FullName

		vname := common.EnumMemberCase(e.ShortName)
		if !common.IsExportedIdent(vname) {
			return nil, &IdentifierError{Kind: "variant", Name: vname, Macro: e.FullName}
		}
		if prev, ok := owners[vname]; ok {
			return nil, &CollisionError{Kind: "variant", Name: vname, First: prev, Second: e.FullName}
		}
		owners[vname] = e.FullName

		t.Consts = append(t.Consts, constBinding{Name: cname, Macro: e.FullName})
		t.Variants = append(t.Variants, enumVariant{Name: vname, Const: cname})
	}

	return t, nil
}

// writeFileHeader returns the leading comment of every generated file.
func writeFileHeader(md *meta.Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by fourccgen from <%s>. DO NOT EDIT.\n", md.Header)
	if md.Digest != "" {
		fmt.Fprintf(&b, "// Source digest: %s\n", md.Digest)
	}
	return b.String()
}
