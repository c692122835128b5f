// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Source is one discovered HDL file. Testbench is a filename heuristic only;
// the user can re-classify the file afterwards.
type Source struct {
	Path      string
	Testbench bool
}

// hdlExtensions are the suffixes FindHDLSources recognizes.
var hdlExtensions = []string{".v", ".sv", ".vhd", ".vhdl"}

// FindHDLSources recursively searches root for HDL source files. Files whose
// base name starts with "tb_" or ends with "_tb" are flagged as testbenches.
func FindHDLSources(root string) ([]Source, error) {
	var sources []Source
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		for _, hdlExt := range hdlExtensions {
			if ext == hdlExt {
				sources = append(sources, Source{Path: path, Testbench: looksLikeTestbench(d.Name())})
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

func looksLikeTestbench(name string) bool {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.HasPrefix(base, "tb_") || strings.HasSuffix(base, "_tb")
}
