package filings

import (
	"regexp"
	"strings"

	"github.com/jaytaylor/html2text"
)

var reBlankLines = regexp.MustCompile(`\n{3,}`)

// maxNormalizePasses bounds the passes over entity-escaped markup,
// each pass may decode `&lt;b&gt;` into a tag the next pass converts.
const maxNormalizePasses = 4

// Normalize returns plain text:
// markup is converted to text with links and tables preserved,
// characters outside of printable ASCII, tab, CR and LF are replaced with space,
// runs of three or more newlines are collapsed to one blank line.
// The passes are repeated until the text stops changing.
func Normalize(raw string) string {
	text := normalizeOnce(raw)
	for i := 1; i < maxNormalizePasses; i++ {
		next := normalizeOnce(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func normalizeOnce(raw string) string {
	text := raw
	if strings.Contains(text, "<") && strings.Contains(text, ">") {
		plain, err := html2text.FromString(text, html2text.Options{PrettyTables: true})
		if err == nil {
			text = plain
		}
	}

	text = strings.Map(asciiOnly, text)
	text = reBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func asciiOnly(r rune) rune {
	if r == '\t' || r == '\n' || r == '\r' || (r >= 0x20 && r <= 0x7e) {
		return r
	}
	return ' '
}
