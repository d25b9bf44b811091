package diag

import (
	"regexp"
	"strings"

	"github.com/taradepan/reaper/internal/token"
)

// Suppressions records, for one file, which lines carry an inline `# noqa`
// directive and which rule codes (if any) it names. Per spec §4.7 this is
// parsed from the raw COMMENT token stream, deliberately kept separate from
// the AST the rest of the pipeline builds.
type Suppressions struct {
	all   map[int]bool            // line -> suppress every code
	codes map[int]map[string]bool // line -> suppress only these codes
}

var noqaPattern = regexp.MustCompile(`(?i)^#\s*noqa\b\s*(:\s*(?P<codes>[A-Za-z0-9_,\s]+))?`)

// BuildSuppressions scans a file's comment tokens for `# noqa` / `# noqa:
// CODE[, CODE...]` directives and indexes them by line.
func BuildSuppressions(buf *token.Buffer, toks []token.Token) *Suppressions {
	s := &Suppressions{all: map[int]bool{}, codes: map[int]map[string]bool{}}
	for _, t := range toks {
		if t.Kind != token.COMMENT {
			continue
		}
		text := t.Text(buf.Data)
		m := noqaPattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		line, _ := buf.Position(t.Span.Start)
		codesGroup := m[noqaPattern.SubexpIndex("codes")]
		if strings.TrimSpace(codesGroup) == "" {
			s.all[line] = true
			continue
		}
		set := s.codes[line]
		if set == nil {
			set = map[string]bool{}
			s.codes[line] = set
		}
		for _, c := range strings.Split(codesGroup, ",") {
			c = strings.ToUpper(strings.TrimSpace(c))
			if c != "" {
				set[c] = true
			}
		}
	}
	return s
}

// Suppresses reports whether a diagnostic at line for code should be
// discarded.
func (s *Suppressions) Suppresses(line int, code string) bool {
	if s == nil {
		return false
	}
	if s.all[line] {
		return true
	}
	return s.codes[line] != nil && s.codes[line][code]
}
