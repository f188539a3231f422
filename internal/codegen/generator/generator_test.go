package generator_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/fourccgen/internal/codegen/extractor"
	"github.com/Alia5/fourccgen/internal/codegen/generator"
	"github.com/Alia5/fourccgen/internal/codegen/generator/golang"
	th "github.com/Alia5/fourccgen/internal/testing"
)

func newGenerator(t *testing.T, pp extractor.Preprocessor, logs *bytes.Buffer) (*generator.Generator, string) {
	t.Helper()
	if logs == nil {
		logs = &bytes.Buffer{}
	}
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	gen := generator.New(generator.Config{
		Header:    "drm/drm_fourcc.h",
		OutputDir: dir,
	}, pp, logger)
	return gen, dir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestScanAll(t *testing.T) {
	mock := &th.MockPreprocessor{Output: th.SampleOutput}
	gen, _ := newGenerator(t, mock, nil)

	md, err := gen.ScanAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"#include <drm/drm_fourcc.h>\n"}, mock.Programs)
	assert.Equal(t, "drm/drm_fourcc.h", md.Header)
	assert.Equal(t, "DRM_FORMAT_", md.Namespace)
	assert.Len(t, md.Entries, 5)
	assert.NotEmpty(t, md.Digest)
}

func TestGenerateWritesBothFiles(t *testing.T) {
	gen, dir := newGenerator(t, &th.MockPreprocessor{Output: th.SampleOutput}, nil)

	require.NoError(t, gen.Generate(context.Background()))
	assert.ElementsMatch(t, []string{golang.DefaultConstsFile, golang.DefaultEnumFile}, listDir(t, dir))

	consts, err := os.ReadFile(filepath.Join(dir, golang.DefaultConstsFile))
	require.NoError(t, err)
	assert.Contains(t, string(consts), "DRM_FOURCC_XRGB8888 uint32 = C.DRM_FORMAT_XRGB8888")

	enum, err := os.ReadFile(filepath.Join(dir, golang.DefaultEnumFile))
	require.NoError(t, err)
	assert.Contains(t, string(enum), "Xrgb8888 DrmFormat = DrmFormat(DRM_FOURCC_XRGB8888)")

	info, err := os.Stat(filepath.Join(dir, golang.DefaultEnumFile))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestGenerateIsDeterministic(t *testing.T) {
	gen, dir := newGenerator(t, &th.MockPreprocessor{Output: th.SampleOutput}, nil)

	require.NoError(t, gen.Generate(context.Background()))
	first, err := os.ReadFile(filepath.Join(dir, golang.DefaultEnumFile))
	require.NoError(t, err)

	require.NoError(t, gen.Generate(context.Background()))
	second, err := os.ReadFile(filepath.Join(dir, golang.DefaultEnumFile))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, listDir(t, dir), 2, "no staging files left behind")
}

func TestGenerateFailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name  string
		pp    *th.MockPreprocessor
		check func(t *testing.T, err error)
	}{
		{
			name: "preprocessor failure",
			pp: &th.MockPreprocessor{Err: &extractor.PreprocessError{
				Path:   "clang",
				Stderr: "fatal error: 'drm/drm_fourcc.h' file not found",
				Err:    errors.New("exit status 1"),
			}},
			check: func(t *testing.T, err error) {
				var pe *extractor.PreprocessError
				assert.ErrorAs(t, err, &pe)
			},
		},
		{
			name: "launch failure",
			pp:   &th.MockPreprocessor{Err: &extractor.LaunchError{Path: "clang", Err: os.ErrNotExist}},
			check: func(t *testing.T, err error) {
				var le *extractor.LaunchError
				assert.ErrorAs(t, err, &le)
				assert.ErrorIs(t, err, os.ErrNotExist)
			},
		},
		{
			name: "name collision",
			pp:   &th.MockPreprocessor{Output: "#define DRM_FORMAT_C 1\n"},
			check: func(t *testing.T, err error) {
				var ce *golang.CollisionError
				assert.ErrorAs(t, err, &ce)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, dir := newGenerator(t, tt.pp, nil)

			err := gen.Generate(context.Background())
			require.Error(t, err)
			tt.check(t, err)
			assert.Empty(t, listDir(t, dir))
		})
	}
}

func TestGenerateEmptyWarns(t *testing.T) {
	var logs bytes.Buffer
	gen, dir := newGenerator(t, &th.MockPreprocessor{Output: "#define __clang__ 1\n"}, &logs)

	require.NoError(t, gen.Generate(context.Background()))
	assert.Len(t, listDir(t, dir), 2)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "No format definitions found")
}

func TestGenerateOutputDirIsFile(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "out")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	gen := generator.New(generator.Config{
		Header:    "drm/drm_fourcc.h",
		OutputDir: blocker,
	}, &th.MockPreprocessor{Output: th.SampleOutput}, logger)

	err := gen.Generate(context.Background())
	var ioe *generator.IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, blocker, ioe.Path)
}

func TestGenerateRestoresFilesWhenRenameFails(t *testing.T) {
	gen, dir := newGenerator(t, &th.MockPreprocessor{Output: th.SampleOutput}, nil)

	constsPath := filepath.Join(dir, golang.DefaultConstsFile)
	require.NoError(t, os.WriteFile(constsPath, []byte("package drmfourcc\n"), 0o644))
	// A non-empty directory where the enum file goes cannot be replaced.
	blocker := filepath.Join(dir, golang.DefaultEnumFile)
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "keep"), 0o755))

	err := gen.Generate(context.Background())
	var ioe *generator.IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, blocker, ioe.Path)

	consts, err := os.ReadFile(constsPath)
	require.NoError(t, err)
	assert.Equal(t, "package drmfourcc\n", string(consts))
	assert.DirExists(t, filepath.Join(blocker, "keep"))
	assert.ElementsMatch(t, []string{golang.DefaultConstsFile, golang.DefaultEnumFile}, listDir(t, dir))
}

func TestCheck(t *testing.T) {
	gen, dir := newGenerator(t, &th.MockPreprocessor{Output: th.SampleOutput}, nil)
	ctx := context.Background()

	err := gen.Check(ctx)
	assert.ErrorIs(t, err, generator.ErrStale)

	require.NoError(t, gen.Generate(ctx))
	assert.NoError(t, gen.Check(ctx))

	path := filepath.Join(dir, golang.DefaultEnumFile)
	require.NoError(t, os.WriteFile(path, []byte("package drmfourcc\n"), 0o644))
	err = gen.Check(ctx)
	assert.ErrorIs(t, err, generator.ErrStale)
	assert.Contains(t, err.Error(), golang.DefaultEnumFile)
	assert.NotContains(t, err.Error(), golang.DefaultConstsFile)
}
