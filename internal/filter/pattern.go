package filter

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern is a compiled rsync-style glob pattern. Anchoring and
// directory-only scoping are this engine's own policy layer; the actual
// glob compilation is split two ways. Unanchored patterns (a single path
// segment, no "/" in the rule other than a trailing directory-only one)
// compile through gobwas/glob, whose
// matcher is a direct fit once there's no directory structure to reason
// about. Anchored patterns keep the regex compiler below, since rsync's
// "**/" means "zero or more directories" — gobwas's Super node requires a
// literal separator on each side and has no zero-directories case without
// pattern rewriting that risks silently changing which paths match.
type compiledPattern struct {
	g        glob.Glob       // set when !anchored
	re       *regexp.Regexp  // set when anchored
	original string
	anchored bool // pattern starts with /, or contains / other than a trailing one
	dirOnly  bool // pattern ends with /
}

// compilePattern converts a rsync-style glob pattern into a compiled matcher.
func compilePattern(pattern string) (*compiledPattern, error) {
	cp := &compiledPattern{original: pattern}

	// Trailing / means directory-only.
	if strings.HasSuffix(pattern, "/") {
		cp.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}

	// Leading / means anchored to root.
	if strings.HasPrefix(pattern, "/") {
		cp.anchored = true
		pattern = strings.TrimPrefix(pattern, "/")
	} else if strings.Contains(pattern, "/") {
		// Contains a / but doesn't start with / — still anchored per rsync rules.
		cp.anchored = true
	}

	if !cp.anchored {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		cp.g = g
		return cp, nil
	}

	reStr := "^" + globToRegex(pattern) + "$"
	re, err := regexp.Compile(reStr)
	if err != nil {
		return nil, err
	}
	cp.re = re
	return cp, nil
}

// match tests whether a relative path matches this pattern. Anchored
// patterns match the full relative path; unanchored patterns match against
// the basename only.
func (cp *compiledPattern) match(relPath string, isDir bool) bool {
	if cp.dirOnly && !isDir {
		return false
	}
	if cp.anchored {
		return cp.re.MatchString(relPath)
	}
	return cp.g.Match(filepath.Base(relPath))
}

// globToRegex converts an anchored glob pattern to a regex string, with
// rsync's "**/" (zero or more directories) handled as an optional group.
//
//nolint:gocyclo,revive // cognitive-complexity: character-by-character glob parser
func globToRegex(pattern string) string {
	var b strings.Builder
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				// ** matches anything including /
				if i+2 < len(pattern) && pattern[i+2] == '/' {
					b.WriteString("(.*/)?")
					i += 3
				} else {
					b.WriteString(".*")
					i += 2
				}
			} else {
				// * matches anything except /
				b.WriteString("[^/]*")
				i++
			}
		case '?':
			b.WriteString("[^/]")
			i++
		case '[':
			// Character class — pass through to regex.
			j := i + 1
			if j < len(pattern) && pattern[j] == '!' {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}
			for j < len(pattern) && pattern[j] != ']' {
				j++
			}
			if j < len(pattern) {
				cls := pattern[i+1 : j]
				// Convert ! to ^ for negation.
				if strings.HasPrefix(cls, "!") {
					cls = "^" + cls[1:]
				}
				b.WriteString("[" + cls + "]")
				i = j + 1
			} else {
				b.WriteString(regexp.QuoteMeta(string(c)))
				i++
			}
		case '.', '(', ')', '+', '{', '}', '^', '$', '|', '\\':
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}
