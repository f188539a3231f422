package scanner

import (
	"regexp"
	"strings"
)

const (
	// DefaultNamespace is the prefix every format macro in drm_fourcc.h carries.
	DefaultNamespace = "DRM_FORMAT_"
	// DefaultReservedMarker marks the reserved sentinel value.
	DefaultReservedMarker = "DRM_FORMAT_RESERVED"
	// DefaultInvalidMarker marks the invalid sentinel value and invalid modifiers.
	DefaultInvalidMarker = "INVALID"
)

// DefaultExclude lists the sentinel markers dropped when none are configured.
var DefaultExclude = []string{DefaultReservedMarker, DefaultInvalidMarker}

// FormatEntry is one format macro found in the preprocessor output.
type FormatEntry struct {
	FullName  string `json:"fullName"`  // e.g., "DRM_FORMAT_XRGB8888"
	ShortName string `json:"shortName"` // e.g., "XRGB8888"
}

// Options control which definitions ScanDefinitions keeps.
type Options struct {
	// Namespace is the macro name prefix. Empty selects DefaultNamespace.
	Namespace string
	// Exclude drops every line containing one of these substrings. Nil
	// selects DefaultExclude; an empty non-nil slice excludes nothing.
	Exclude []string
}

func (o Options) namespace() string {
	if o.Namespace == "" {
		return DefaultNamespace
	}
	return o.Namespace
}

func (o Options) exclude() []string {
	if o.Exclude == nil {
		return DefaultExclude
	}
	return o.Exclude
}

// DefinitionPattern returns the regexp matching object-like macro definitions
// in namespace. Group "full" is the whole macro name, group "short" the part
// after the namespace.
func DefinitionPattern(namespace string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*#define (?P<full>` + regexp.QuoteMeta(namespace) + `(?P<short>[A-Z0-9]+))\s`)
}

// ScanDefinitions extracts the format entries from `-dM` output, in order of
// first appearance. Lines containing an exclude marker are dropped before
// matching. No matches yields an empty, non-nil slice.
func ScanDefinitions(output string, opts Options) []FormatEntry {
	re := DefinitionPattern(opts.namespace())
	fullIdx := re.SubexpIndex("full")
	shortIdx := re.SubexpIndex("short")
	exclude := opts.exclude()

	entries := []FormatEntry{}
	seen := make(map[string]bool)

	for line := range strings.Lines(output) {
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if isExcluded(line, exclude) {
			continue
		}

		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		full := m[fullIdx]
		if seen[full] {
			continue
		}
		seen[full] = true

		entries = append(entries, FormatEntry{FullName: full, ShortName: m[shortIdx]})
	}

	return entries
}

func isExcluded(line string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(line, m) {
			return true
		}
	}
	return false
}
