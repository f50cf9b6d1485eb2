// Package config carries project-wide constants and the bridge config file
// schema, mirroring the teacher's internal/config package (source file
// extension helpers, test/LSP mode flags) re-pointed at this project.
package config

// Version is the current tnk version.
var Version = "0.1.0"

// SourceFileExtensions are the recognized source file extensions.
var SourceFileExtensions = []string{".tnk", ".py"}

// TrimSourceExt removes any recognized source extension from a filename.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode is kept from the teacher's config package, where it normalizes
// non-deterministic output for golden-file tests; nothing in this
// repository reads it.
var IsTestMode = false

// DefaultIteratorBatchSize is B from spec §4.5: elements fetched per
// iter_next_batch round trip absent an override.
const DefaultIteratorBatchSize = 1000

// ForbiddenNames can never be dispatched through the bridge (spec §1(d), §3).
var ForbiddenNames = []string{"eval", "exec", "globals", "locals"}

// UnsupportedBuiltins are always a TNK-UNSUPPORTED-SYNTAX diagnostic (spec §6).
var UnsupportedBuiltins = []string{
	"getattr", "setattr", "hasattr", "delattr", "memoryview", "bytearray",
	"eval", "exec", "globals", "locals",
}
