package diff

import (
	"strings"

	"lessonforge/internal/domain"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ─────────────────────────────────────────────────────────────
// Diff Service — line and word diffs for change display.
// Display aid only; never feeds the apply engine.
// ─────────────────────────────────────────────────────────────

// Result is a line-level diff with per-line changes and counts.
type Result struct {
	Changes   []domain.DiffChange `json:"changes"`
	Additions int                 `json:"additions"`
	Deletions int                 `json:"deletions"`
	Unchanged int                 `json:"unchanged"`
}

// Service computes diffs between two versions of a text.
type Service struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

func New() *Service {
	return &Service{dmp: diffmatchpatch.New()}
}

// GenerateDiff computes a line-based diff. Additions and Deletions
// count changed lines; Unchanged counts matched lines. Diffing against
// the empty string yields all-addition (or all-deletion) with no
// unchanged lines. No semantic cleanup is applied, so the line counts
// are minimal and swap-symmetric.
func (s *Service) GenerateDiff(oldText, newText string) Result {
	c1, c2, lineArr := s.dmp.DiffLinesToChars(oldText, newText)
	diffs := s.dmp.DiffMain(c1, c2, false)
	diffs = s.dmp.DiffCharsToLines(diffs, lineArr)

	var res Result
	for _, d := range diffs {
		ct := changeType(d.Type)
		for _, line := range splitLines(d.Text) {
			res.Changes = append(res.Changes, domain.DiffChange{Type: ct, Value: line})
			switch ct {
			case domain.ChangeAdd:
				res.Additions++
			case domain.ChangeRemove:
				res.Deletions++
			default:
				res.Unchanged++
			}
		}
	}
	return res
}

// GenerateWordDiff computes a word-granularity diff. Tokens keep their
// trailing whitespace, so concatenating the values of all non-removed
// changes reproduces newText (and old plus removed reproduces oldText).
func (s *Service) GenerateWordDiff(oldText, newText string) []domain.DiffChange {
	oldTokens := tokenizeWords(oldText)
	newTokens := tokenizeWords(newText)

	enc1, enc2, table := tokensToRunes(oldTokens, newTokens)
	diffs := s.dmp.DiffMain(enc1, enc2, false)

	var changes []domain.DiffChange
	for _, d := range diffs {
		var sb strings.Builder
		for _, r := range d.Text {
			sb.WriteString(table[r])
		}
		changes = append(changes, domain.DiffChange{Type: changeType(d.Type), Value: sb.String()})
	}
	return changes
}

// FormatForDisplay renders a unified-diff-like text view: added lines
// prefixed "+", removed lines "-", unchanged lines "  ".
func (s *Service) FormatForDisplay(res Result) string {
	var sb strings.Builder
	for _, c := range res.Changes {
		switch c.Type {
		case domain.ChangeAdd:
			sb.WriteString("+ ")
		case domain.ChangeRemove:
			sb.WriteString("- ")
		default:
			sb.WriteString("  ")
		}
		sb.WriteString(c.Value)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func changeType(op diffmatchpatch.Operation) domain.ChangeType {
	switch op {
	case diffmatchpatch.DiffInsert:
		return domain.ChangeAdd
	case diffmatchpatch.DiffDelete:
		return domain.ChangeRemove
	default:
		return domain.ChangeUnchanged
	}
}

// splitLines splits diff text into lines without their terminators.
// A trailing newline does not produce an empty final line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	return lines
}

// tokenizeWords splits text into word tokens, each carrying the
// whitespace run that follows it. Leading whitespace forms its own
// token. Concatenating all tokens reproduces the input exactly.
func tokenizeWords(text string) []string {
	var tokens []string
	start := 0
	inSpace := false
	for i, r := range text {
		isSpace := r == ' ' || r == '\t' || r == '\n' || r == '\r'
		if !isSpace && inSpace {
			tokens = append(tokens, text[start:i])
			start = i
		}
		inSpace = isSpace
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

// tokensToRunes maps each distinct token to a unique rune so the diff
// runs over compact strings, mirroring diffmatchpatch's own
// lines-to-chars encoding but at word granularity.
func tokensToRunes(a, b []string) (string, string, map[rune]string) {
	index := make(map[string]rune)
	table := make(map[rune]string)
	next := rune(1)
	encode := func(tokens []string) string {
		var sb strings.Builder
		for _, t := range tokens {
			r, ok := index[t]
			if !ok {
				if next == 0xD800 {
					next = 0xE000 // skip the surrogate range
				}
				r = next
				next++
				index[t] = r
				table[r] = t
			}
			sb.WriteRune(r)
		}
		return sb.String()
	}
	return encode(a), encode(b), table
}
