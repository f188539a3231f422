package meta

import "github.com/Alia5/fourccgen/internal/codegen/scanner"

// Metadata holds everything scanned from one preprocessor run.
// Shared between the generator orchestrator and the emitters; both
// artifacts are rendered from the same Entries slice.
type Metadata struct {
	Header    string                // e.g., "drm/drm_fourcc.h"
	Namespace string                // e.g., "DRM_FORMAT_"
	Entries   []scanner.FormatEntry // in header declaration order
	Digest    string                // common.EntriesDigest of Header and Entries
}
