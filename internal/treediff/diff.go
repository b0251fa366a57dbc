package treediff

import "strings"

const diffHeader = "diff --git "

// SplitDiffByFile partitions unified diff text into per-file segments keyed by
// the post-image path. Each segment starts at its header line. Lines before
// the first header are dropped.
func SplitDiffByFile(diff string) map[string]string {
	segments := map[string]string{}
	if diff == "" {
		return segments
	}

	var current string
	var buf strings.Builder
	open := false
	flush := func() {
		if open {
			segments[current] = buf.String()
		}
		buf.Reset()
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		if strings.HasPrefix(line, diffHeader) {
			flush()
			current = headerPath(strings.TrimRight(line, "\r\n"))
			open = true
		}
		if open {
			buf.WriteString(line)
		}
	}
	flush()
	return segments
}

// headerPath extracts the b-side path from "diff --git a/<path> b/<path>".
func headerPath(line string) string {
	rest := strings.TrimPrefix(line, diffHeader)

	// When both sides name the same file the header is "a/X b/X" and can be
	// split in the middle even if X contains " b/".
	if strings.HasPrefix(rest, "a/") && len(rest)%2 == 1 {
		half := (len(rest) - 1) / 2
		if half >= 2 && rest[half] == ' ' && rest[half+1:half+3] == "b/" && rest[2:half] == rest[half+3:] {
			return rest[half+3:]
		}
	}

	if i := strings.LastIndex(rest, " b/"); i >= 0 {
		return rest[i+3:]
	}
	return rest
}

// CountLines counts newline-separated lines. A trailing newline starts a new
// (empty) line and the empty string counts as one line.
func CountLines(content string) int {
	return len(strings.Split(content, "\n"))
}
