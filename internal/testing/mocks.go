package testing

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// SampleOutput is a trimmed `clang -E -dM` dump of <drm/drm_fourcc.h> mixed
// with unrelated compiler macros.
const SampleOutput = `#define __clang__ 1
#define DRM_FOURCC_H
#define fourcc_code(a,b,c,d) ((__u32)(a) | ((__u32)(b) << 8) | ((__u32)(c) << 16) | ((__u32)(d) << 24))
#define DRM_FORMAT_BIG_ENDIAN (1U<<31)
#define DRM_FORMAT_INVALID 0
#define DRM_FORMAT_C8 fourcc_code('C', '8', ' ', ' ')
#define DRM_FORMAT_R8 fourcc_code('R', '8', ' ', ' ')
#define DRM_FORMAT_XRGB8888 fourcc_code('X', 'R', '2', '4')
#define DRM_FORMAT_ARGB8888 fourcc_code('A', 'R', '2', '4')
#define DRM_FORMAT_NV12 fourcc_code('N', 'V', '1', '2')
#define DRM_FORMAT_RESERVED ((1ULL << 56) - 1)
#define DRM_FORMAT_MOD_VENDOR_NONE 0
#define DRM_FORMAT_MOD_INVALID fourcc_mod_code(NONE, DRM_FORMAT_RESERVED)
#define __UINT32_MAX__ 4294967295U
`

// MockPreprocessor returns canned output and records every program it receives.
type MockPreprocessor struct {
	Output   string
	Err      error
	Programs []string
}

func (m *MockPreprocessor) Preprocess(_ context.Context, program string) (string, error) {
	m.Programs = append(m.Programs, program)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Output, nil
}

// FakePreprocessorScript writes an executable shell script standing in for
// clang into a temp dir and returns its path. Tests are skipped on Windows.
func FakePreprocessorScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script preprocessors are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-cc")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake preprocessor: %v", err)
	}
	return path
}
