// Package themes stores CSS themes as flat files in a single directory.
package themes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
)

// Extension is appended to a theme name to form its file name.
const Extension = ".css"

// ErrInvalidName is returned for names that could escape the theme directory.
var ErrInvalidName = errors.New("invalid theme name")

// Store is a CRUD facade over a directory of <name>.css files. It holds no
// state besides the directory path; the filesystem is the source of truth.
type Store struct {
	root string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the directory holding the theme files.
func (s *Store) Root() string {
	return s.root
}

// Ensure creates the root directory if it does not exist yet.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create theme directory: %w", err)
	}
	return nil
}

// ValidateName rejects empty names, names containing path separators or NUL
// bytes, and the relative directory names "." and "..". Without separators a
// name is a single path component, so embedded dots such as "v1..2" are legal.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q is a relative directory name", ErrInvalidName, name)
	}
	return nil
}

// Path returns the file backing the named theme.
func (s *Store) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, name+Extension), nil
}

// List returns the names of all themes sorted case-insensitively. A missing
// root directory yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), Extension) || !s.isRegular(entry) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), Extension)
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	sortFold(names)
	return names, nil
}

// isRegular reports whether entry is a regular file, following symlinks.
func (s *Store) isRegular(entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(s.root, entry.Name()))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Read returns the raw content of the named theme.
func (s *Store) Read(name string) ([]byte, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Write creates or truncates the named theme and stores content verbatim.
func (s *Store) Write(name string, content []byte) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

// Delete removes the named theme. A directory named like a theme is not a
// theme and is left in place.
func (s *Store) Delete(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "remove", Path: path, Err: syscall.EISDIR}
	}
	return os.Remove(path)
}

func sortFold(names []string) {
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}
