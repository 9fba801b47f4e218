package solomon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"solomon-validator/internal/domain"
)

// ReadInstanceFile opens, parses and releases an instance file.
// When the header carries no name, the file's base name is used.
func ReadInstanceFile(path string) (*domain.Instance, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}
	defer f.Close()

	inst, err := ParseInstance(f)
	if err != nil {
		return nil, fmt.Errorf("read instance %q: %w", path, err)
	}
	if inst.Name == "" {
		inst.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return inst, nil
}

// ReadSolutionFile opens, parses and releases a solution report.
func ReadSolutionFile(path string) (domain.Solution, error) {
	f, err := openInput(path)
	if err != nil {
		return domain.Solution{}, fmt.Errorf("read solution: %w", err)
	}
	defer f.Close()

	sol, err := ParseSolution(f)
	if err != nil {
		return domain.Solution{}, fmt.Errorf("read solution %q: %w", path, err)
	}

	return sol, nil
}

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w: %w", path, ErrFileNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	return f, nil
}
