package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_Empty(t *testing.T) {
	got := Detect("")
	assert.Equal(t, TypePlain, got.Type)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, []string{"empty/invalid"}, got.Reasons)
}

func TestDetect_PlainText(t *testing.T) {
	got := Detect("just plain text with no markup")
	assert.Equal(t, TypePlain, got.Type)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, []string{"no patterns detected"}, got.Reasons)
}

func TestDetect_WhitespaceOnlyIsPlain(t *testing.T) {
	got := Detect("   \n\t ")
	assert.Equal(t, TypePlain, got.Type)
	assert.Equal(t, []string{"no patterns detected"}, got.Reasons)
}

func TestDetect_HTML(t *testing.T) {
	cases := []struct {
		name       string
		in         string
		confidence float64
		reasons    []string
	}{
		{"paired tags", "<div><p>Hello</p></div>", 0.25, []string{"contains tags"}},
		{"uppercase closing tag", "<DIV>Hello</div>", 0.25, []string{"contains tags"}},
		{"tags and comment", "<!-- note --><span>x</span>", 0.5, []string{"contains tags", "contains htmlComment"}},
		{
			"all four",
			"<!DOCTYPE html>\n<html><body><br/><!-- c --></body></html>",
			1,
			[]string{"contains tags", "contains selfClosingTags", "contains doctype", "contains htmlComment"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(tc.in)
			assert.Equal(t, TypeHTML, got.Type)
			assert.InDelta(t, tc.confidence, got.Confidence, 1e-9)
			assert.Equal(t, tc.reasons, got.Reasons)
		})
	}
}

func TestDetect_UnpairedTagIsNotPaired(t *testing.T) {
	assert.False(t, hasPairedTag("<div>never closed"))
	assert.False(t, hasPairedTag("</p> closing before <p> opening"))
	assert.True(t, hasPairedTag("<p>a</p>"))
	assert.True(t, hasPairedTag(`<a href="x"><b>bold</b>`))
	// "<ab>" must not pair with "</a>".
	assert.False(t, hasPairedTag("<ab>text</a>"))
}

func TestDetect_Markdown(t *testing.T) {
	got := Detect("# Title\n\nSome **bold** text")
	assert.Equal(t, TypeMarkdown, got.Type)
	assert.Contains(t, got.Reasons, "contains headers")
	assert.Contains(t, got.Reasons, "contains emphasis")
	assert.InDelta(t, float64(len(got.Reasons))/9, got.Confidence, 1e-9)
}

func TestDetect_MarkdownSinglePatterns(t *testing.T) {
	cases := map[string]string{
		"## Heading two":                  "contains headers",
		"- item one":                      "contains lists",
		"1. first":                        "contains orderedLists",
		"> quoted line":                   "contains blockquotes",
		"```\ncode\n```":                  "contains codeBlocks",
		"see [docs](https://example.com)": "contains links",
		"| a | b |":                       "contains tables",
	}
	for in, reason := range cases {
		got := Detect(in)
		assert.Equal(t, TypeMarkdown, got.Type, in)
		assert.Contains(t, got.Reasons, reason, in)
	}
}

func TestDetect_PresenceNotCount(t *testing.T) {
	one := Detect("# a")
	many := Detect("# a\n# b\n# c\n# d")
	assert.Equal(t, one.Confidence, many.Confidence)
	assert.InDelta(t, 1.0/9, many.Confidence, 1e-9)
}

func TestDetect_TieGoesToMarkdown(t *testing.T) {
	got := Detect("<b>hi</b>\n# Header")
	assert.Equal(t, TypeMarkdown, got.Type)
	assert.Equal(t, []string{"contains headers"}, got.Reasons)
	assert.InDelta(t, 1.0/9, got.Confidence, 1e-9)
}

func TestDetect_HTMLNeedsStrictlyMore(t *testing.T) {
	got := Detect("<!-- c --><p>x</p>\n# Header")
	assert.Equal(t, TypeHTML, got.Type)
	assert.InDelta(t, 0.5, got.Confidence, 1e-9)
}

func TestDetect_Deterministic(t *testing.T) {
	in := "<p>x</p>\n| a | b |\n- item"
	assert.Equal(t, Detect(in), Detect(in))
}
