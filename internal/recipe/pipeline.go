package recipe

import "strings"

// JoinURL appends segment to base with exactly one slash between them.
// Only the join point is normalised; the rest of both strings is kept verbatim.
func JoinURL(base, segment string) string {
	if segment == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(segment, "/")
}

// Pipeline joins stages with " | ", skipping empty ones
func Pipeline(stages ...string) string {
	kept := make([]string, 0, len(stages))
	for _, s := range stages {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, " | ")
}

// Lines joins non-empty lines with a line break
func Lines(lines ...string) string {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

func stages(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
