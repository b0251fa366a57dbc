package service

import (
	"fmt"
	"regexp"
	"strings"

	"notebookhub/internal/repostore"
	"notebookhub/internal/treediff"
)

var branchNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func validateBranchName(field, name string) error {
	switch {
	case name == "":
		return &ValidationError{Field: field, Message: "is required"}
	case len(name) > 100:
		return &ValidationError{Field: field, Message: "must be at most 100 characters"}
	case !branchNamePattern.MatchString(name):
		return &ValidationError{Field: field, Message: "may contain only letters, digits, '.', '_' and '-'"}
	case strings.Contains(name, "..") || strings.HasSuffix(name, ".lock") || name == "HEAD":
		return &ValidationError{Field: field, Message: fmt.Sprintf("%q is not a valid branch name", name)}
	}
	return nil
}

func validatePath(field, p string) (string, error) {
	if p == "" {
		return "", &ValidationError{Field: field, Message: "is required"}
	}
	clean, err := repostore.CleanPath(p)
	if err != nil {
		msg := strings.TrimPrefix(err.Error(), repostore.ErrInvalidPath.Error()+": ")
		return "", &ValidationError{Field: field, Message: msg}
	}
	return clean, nil
}

// prepareFiles validates commit input before any storage call and returns the
// files to write together with their change summaries.
func prepareFiles(inputs []FileInput) ([]repostore.File, []FileChange, error) {
	if len(inputs) == 0 {
		return nil, nil, &ValidationError{Field: "files", Message: "must not be empty"}
	}

	files := make([]repostore.File, 0, len(inputs))
	changes := make([]FileChange, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		field := fmt.Sprintf("files[%d]", i)
		clean, err := validatePath(field+".path", in.Path)
		if err != nil {
			return nil, nil, err
		}
		if in.Content == nil {
			return nil, nil, &ValidationError{Field: field + ".content", Message: "is required"}
		}
		if seen[clean] {
			return nil, nil, &ValidationError{Field: field + ".path", Message: fmt.Sprintf("%q is listed more than once", clean)}
		}
		seen[clean] = true

		files = append(files, repostore.File{Path: clean, Content: []byte(*in.Content)})
		// Additions are the new content's line count; deletions are not computed.
		changes = append(changes, FileChange{Path: clean, Additions: treediff.CountLines(*in.Content)})
	}
	return files, changes, nil
}
