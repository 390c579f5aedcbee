// Package config holds the dictionary search-path policy and the
// loader's size-sanity ceilings: small package-level constants plus the
// SearchPaths/ResolveDictPath lookup functions.
package config

import (
	"os"
	"path/filepath"
)

// DictPathEnvVar is consulted first, before any fixed search path
// (supplemented from the C++ original's factory::create_ipa_dict,
// which checks an environment variable before its fixed fallback
// path).
const DictPathEnvVar = "KAGOME_DICT_PATH"

// DictFileName is the bundle file name searched for in every fixed
// directory candidate.
const DictFileName = "ipa.dict"

// MinDictSize and MaxDictSize bound the size of a file considered a
// plausible dictionary bundle (0, 500 MiB].
const (
	MinDictSize = 1
	MaxDictSize = 500 * 1024 * 1024
)

// Loader policy ceilings, equal in value to the unexported ceilings that
// dict's loader applies; nothing in this package applies them itself.
const (
	MaxMorphCount      = 10_000_000
	MaxConnectionCells = 100_000 * 100_000
)

// SearchPaths returns the ordered list of candidate dictionary paths:
// the directory containing the running executable first (the Go
// equivalent of the C++ "library directory" via dladdr, supplemented
// per SPEC_FULL.md item 2), then the fixed relative/absolute
// candidates from spec §6.2.
func SearchPaths() []string {
	paths := make([]string, 0, 8)
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), DictFileName))
	}
	paths = append(paths,
		"./"+DictFileName,
		filepath.Join(".", "data", "ipa", DictFileName),
		filepath.Join("..", "data", "ipa", DictFileName),
		filepath.Join("..", "..", "data", "ipa", DictFileName),
		filepath.Join("/usr/local/share/kagome", DictFileName),
		filepath.Join("/usr/share/kagome", DictFileName),
		filepath.Join("/opt/kagome", DictFileName),
	)
	return paths
}

// ResolveDictPath finds the first readable, plausibly-sized dictionary
// bundle: the KAGOME_DICT_PATH environment override is checked first,
// then SearchPaths() in order. Returns "", false if none qualify.
func ResolveDictPath() (string, bool) {
	if p := os.Getenv(DictPathEnvVar); p != "" {
		if ok := plausibleDictFile(p); ok {
			return p, true
		}
	}
	for _, p := range SearchPaths() {
		if plausibleDictFile(p) {
			return p, true
		}
	}
	return "", false
}

func plausibleDictFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	size := info.Size()
	return size >= MinDictSize && size <= MaxDictSize
}
