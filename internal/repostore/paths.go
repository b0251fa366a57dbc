package repostore

import (
	"fmt"
	"path"
	"strings"
)

// CleanPath validates a notebook file path and returns its canonical form.
// Paths are relative, slash separated, stay inside the working tree and never
// touch git metadata.
func CleanPath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.Contains(p, `\`) || strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	if strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q must be relative", ErrInvalidPath, p)
	}

	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q escapes the notebook", ErrInvalidPath, p)
		}
	}

	clean := path.Clean(p)
	if clean == "." || strings.HasSuffix(p, "/") {
		return "", fmt.Errorf("%w: %q is not a file", ErrInvalidPath, p)
	}
	if clean == ".git" || strings.HasPrefix(clean, ".git/") {
		return "", fmt.Errorf("%w: %q is reserved", ErrInvalidPath, p)
	}
	return clean, nil
}
