package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	th "github.com/Alia5/fourccgen/internal/testing"
)

func TestScanDefinitionsSample(t *testing.T) {
	entries := ScanDefinitions(th.SampleOutput, Options{})

	assert.Equal(t, []FormatEntry{
		{FullName: "DRM_FORMAT_C8", ShortName: "C8"},
		{FullName: "DRM_FORMAT_R8", ShortName: "R8"},
		{FullName: "DRM_FORMAT_XRGB8888", ShortName: "XRGB8888"},
		{FullName: "DRM_FORMAT_ARGB8888", ShortName: "ARGB8888"},
		{FullName: "DRM_FORMAT_NV12", ShortName: "NV12"},
	}, entries)
}

func TestScanDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		opts     Options
		expected []FormatEntry
	}{
		{
			name:   "two matches one foreign macro",
			output: "#define NS_FOO 0x1\n#define NS_BAR 0x2\n#define OTHER_THING 5\n",
			opts:   Options{Namespace: "NS_"},
			expected: []FormatEntry{
				{FullName: "NS_FOO", ShortName: "FOO"},
				{FullName: "NS_BAR", ShortName: "BAR"},
			},
		},
		{
			name:   "reserved marker dropped before matching",
			output: "#define NAMESPACE_RESERVED 0xff\n#define NAMESPACE_OK 1\n",
			opts:   Options{Namespace: "NAMESPACE_", Exclude: []string{"NAMESPACE_RESERVED", "INVALID"}},
			expected: []FormatEntry{
				{FullName: "NAMESPACE_OK", ShortName: "OK"},
			},
		},
		{
			name:   "invalid marker anywhere on the line",
			output: "#define NS_A 1\n#define NS_B NS_INVALID\n",
			opts:   Options{Namespace: "NS_", Exclude: []string{"INVALID"}},
			expected: []FormatEntry{
				{FullName: "NS_A", ShortName: "A"},
			},
		},
		{
			name:     "function-like macro ignored",
			output:   "#define NS_CODE(a,b) ((a)|(b))\n",
			opts:     Options{Namespace: "NS_"},
			expected: []FormatEntry{},
		},
		{
			name:     "lowercase and underscore names ignored",
			output:   "#define NS_lower 1\n#define NS_MOD_X 2\n#define NS_ 3\n",
			opts:     Options{Namespace: "NS_"},
			expected: []FormatEntry{},
		},
		{
			name:     "name without value is not a definition of a code",
			output:   "#define NS_GUARD\n",
			opts:     Options{Namespace: "NS_"},
			expected: []FormatEntry{},
		},
		{
			name:   "leading whitespace and tab separator",
			output: "  #define NS_TAB\t7\r\n",
			opts:   Options{Namespace: "NS_"},
			expected: []FormatEntry{
				{FullName: "NS_TAB", ShortName: "TAB"},
			},
		},
		{
			name:   "repeated definition kept once at first position",
			output: "#define NS_A 1\n#define NS_B 2\n#define NS_A 1\n",
			opts:   Options{Namespace: "NS_"},
			expected: []FormatEntry{
				{FullName: "NS_A", ShortName: "A"},
				{FullName: "NS_B", ShortName: "B"},
			},
		},
		{
			name:   "empty exclude list keeps sentinels",
			output: "#define NS_INVALID 0\n",
			opts:   Options{Namespace: "NS_", Exclude: []string{}},
			expected: []FormatEntry{
				{FullName: "NS_INVALID", ShortName: "INVALID"},
			},
		},
		{
			name:   "namespace is matched literally",
			output: "#define A.B_X 1\n#define AxB_Y 2\n",
			opts:   Options{Namespace: "A.B_"},
			expected: []FormatEntry{
				{FullName: "A.B_X", ShortName: "X"},
			},
		},
		{
			name:     "empty output",
			output:   "",
			expected: []FormatEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScanDefinitions(tt.output, tt.opts))
		})
	}
}

func TestScanDefinitionsLongLines(t *testing.T) {
	long := "#define BIG_TABLE " + strings.Repeat("0x1, ", 200_000)
	output := long + "\r\n#define DRM_FORMAT_C8 1\r\n#define DRM_FORMAT_NV12\n" + long

	assert.Equal(t, []FormatEntry{{FullName: "DRM_FORMAT_C8", ShortName: "C8"}}, ScanDefinitions(output, Options{}))
}

func TestScanDefinitionsDeterministic(t *testing.T) {
	first := ScanDefinitions(th.SampleOutput, Options{})
	second := ScanDefinitions(th.SampleOutput, Options{})
	assert.Equal(t, first, second)
}

func TestDefinitionPatternGroups(t *testing.T) {
	re := DefinitionPattern("DRM_FORMAT_")
	m := re.FindStringSubmatch("#define DRM_FORMAT_YUYV fourcc_code('Y', 'U', 'Y', 'V')")
	if assert.NotNil(t, m) {
		assert.Equal(t, "DRM_FORMAT_YUYV", m[re.SubexpIndex("full")])
		assert.Equal(t, "YUYV", m[re.SubexpIndex("short")])
	}
}
