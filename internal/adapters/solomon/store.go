package solomon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"solomon-validator/internal/domain"
	"solomon-validator/internal/ports"
)

// instanceExts are tried in order when resolving an instance name to a file.
var instanceExts = []string{".txt", ""}

// DirStore resolves instance names against a directory of benchmark files,
// such as instances/solomon/C101.txt.
type DirStore struct {
	Dir string
}

func NewDirStore(dir string) *DirStore {
	return &DirStore{Dir: dir}
}

func (s *DirStore) LoadInstance(ctx context.Context, name string) (*domain.Instance, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("load instance %q: invalid name: %w", name, ports.ErrInstanceNotFound)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load instance %q: %w", name, err)
	}

	path, err := s.resolve(name)
	if err != nil {
		return nil, fmt.Errorf("load instance %q from %q: %w", name, s.Dir, err)
	}

	inst, err := ReadInstanceFile(path)
	if err != nil {
		return nil, fmt.Errorf("load instance %q: %w", name, err)
	}
	if !strings.EqualFold(inst.Name, name) {
		// The header name is free-form; the file name is authoritative, so
		// every spelling of the lookup key yields the same instance name.
		inst.Name = fileStem(path)
	}
	return inst, nil
}

// resolve finds the file for name. Names are matched case-insensitively,
// so "c101" and "C101" resolve to the same file.
func (s *DirStore) resolve(name string) (string, error) {
	for _, ext := range instanceExts {
		path := filepath.Join(s.Dir, name+ext)
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			return path, nil
		}
	}

	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ports.ErrInstanceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("list instances: %w", err)
	}

	for _, ext := range instanceExts {
		for _, e := range entries {
			if e.Type().IsRegular() && strings.EqualFold(e.Name(), name+ext) {
				return filepath.Join(s.Dir, e.Name()), nil
			}
		}
	}

	return "", ports.ErrInstanceNotFound
}

func fileStem(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".txt") {
		return base[:len(base)-len(ext)]
	}
	return base
}

// FileReader reads solver reports from the local filesystem.
type FileReader struct{}

func (FileReader) ReadSolution(ctx context.Context, path string) (domain.Solution, error) {
	if err := ctx.Err(); err != nil {
		return domain.Solution{}, err
	}
	return ReadSolutionFile(path)
}

// IsInputError reports whether err is a missing file or a parse failure,
// as opposed to an I/O or infrastructure problem.
func IsInputError(err error) bool {
	var pe *ParseError
	return errors.Is(err, ErrFileNotFound) || errors.As(err, &pe)
}
