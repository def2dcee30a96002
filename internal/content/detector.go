// Package content classifies stored post bodies as HTML, Markdown or plain
// text and renders them accordingly.
package content

import (
	"fmt"
	"regexp"
	"strings"
)

type Type string

const (
	TypeHTML     Type = "html"
	TypeMarkdown Type = "markdown"
	TypePlain    Type = "plain"
)

type Detection struct {
	Type       Type     `json:"type"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

type pattern struct {
	name  string
	match func(string) bool
}

func re(expr string) func(string) bool {
	return regexp.MustCompile(expr).MatchString
}

// Order matters: reasons are reported in declaration order.
var htmlPatterns = []pattern{
	{"tags", hasPairedTag},
	{"selfClosingTags", re(`(?i)<([a-z][a-z0-9]*)\b[^>]*/>`)},
	{"doctype", re(`(?i)<!DOCTYPE html>`)},
	{"htmlComment", re(`<!--[\s\S]*?-->`)},
}

var markdownPatterns = []pattern{
	{"headers", re(`(?m)^#{1,6}\s+.+$`)},
	{"lists", re(`(?m)^[*+-]\s+.+$`)},
	{"orderedLists", re(`(?m)^\d+\.\s+.+$`)},
	{"blockquotes", re(`(?m)^>\s+.+$`)},
	{"codeBlocks", re("(?m)^```[\\s\\S]*?```$")},
	{"links", re(`\[.+?\]\(.+?\)`)},
	{"emphasis", re(`(\*\*|__).+?(\*\*|__)`)},
	{"italics", re(`(\*|_).+?(\*|_)`)},
	{"tables", re(`(?m)^\|.+\|$`)},
}

var openTag = regexp.MustCompile(`(?i)^<([a-z][a-z0-9]*)\b[^>]*>`)

// hasPairedTag reports whether some opening tag is followed, anywhere later,
// by a closing tag of the same name. RE2 has no back-references, so the
// pairing is checked by hand.
func hasPairedTag(s string) bool {
	lower := asciiLower(s)
	lastClose := map[string]int{}
	for i := strings.IndexByte(s, '<'); i >= 0; {
		if m := openTag.FindStringSubmatchIndex(s[i:]); m != nil {
			name := lower[i+m[2] : i+m[3]]
			end := i + m[1]
			last, seen := lastClose[name]
			if !seen {
				last = strings.LastIndex(lower, "</"+name+">")
				lastClose[name] = last
			}
			if last >= end {
				return true
			}
		}
		next := strings.IndexByte(s[i+1:], '<')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return false
}

// asciiLower keeps byte offsets stable, unlike strings.ToLower.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func score(s string, patterns []pattern) (int, []string) {
	n := 0
	reasons := []string{}
	for _, p := range patterns {
		if p.match(s) {
			n++
			reasons = append(reasons, fmt.Sprintf("contains %s", p.name))
		}
	}
	return n, reasons
}

// Detect classifies content. Each pattern counts at most once; HTML must
// score strictly higher than Markdown to win.
func Detect(content string) Detection {
	if content == "" {
		return Detection{Type: TypePlain, Confidence: 1, Reasons: []string{"empty/invalid"}}
	}

	trimmed := strings.TrimSpace(content)

	htmlScore, htmlReasons := score(trimmed, htmlPatterns)
	mdScore, mdReasons := score(trimmed, markdownPatterns)

	switch {
	case htmlScore > mdScore && htmlScore > 0:
		return Detection{
			Type:       TypeHTML,
			Confidence: float64(htmlScore) / float64(len(htmlPatterns)),
			Reasons:    htmlReasons,
		}
	case mdScore > 0:
		return Detection{
			Type:       TypeMarkdown,
			Confidence: float64(mdScore) / float64(len(markdownPatterns)),
			Reasons:    mdReasons,
		}
	default:
		return Detection{Type: TypePlain, Confidence: 1, Reasons: []string{"no patterns detected"}}
	}
}
