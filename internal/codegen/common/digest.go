package common

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/Alia5/fourccgen/internal/codegen/scanner"
)

// DigestPrefix tags digests written into generated file headers.
const DigestPrefix = "blake2b-256:"

// EntriesDigest hashes the header name and the ordered entry list. Two runs
// over the same format set produce the same digest.
func EntriesDigest(header string, entries []scanner.FormatEntry) string {
	h, _ := blake2b.New256(nil)
	_, _ = h.Write([]byte(header))
	_, _ = h.Write([]byte{'\n'})
	for _, e := range entries {
		_, _ = h.Write([]byte(e.FullName))
		_, _ = h.Write([]byte{'\t'})
		_, _ = h.Write([]byte(e.ShortName))
		_, _ = h.Write([]byte{'\n'})
	}
	return DigestPrefix + hex.EncodeToString(h.Sum(nil))
}
