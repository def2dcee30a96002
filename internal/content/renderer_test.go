package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Markdown(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("# Title\n\nSome **bold** text\n\n| a | b |\n|---|---|\n| 1 | 2 |", RenderOptions{})
	require.NoError(t, err)

	assert.Equal(t, TypeMarkdown, out.Detection.Type)
	assert.Contains(t, out.HTML, "<h1")
	assert.Contains(t, out.HTML, `class="text-3xl font-bold mt-8 mb-4"`)
	assert.Contains(t, out.HTML, "<strong>bold</strong>")
	assert.Contains(t, out.HTML, "<table")
	assert.NotContains(t, out.HTML, "content-debug")
}

func TestRender_HTMLVerbatim(t *testing.T) {
	r := NewRenderer()
	body := "<div><p>Hello</p></div>"
	out, err := r.Render(body, RenderOptions{})
	require.NoError(t, err)

	assert.Equal(t, TypeHTML, out.Detection.Type)
	assert.Contains(t, out.HTML, body)
}

func TestRender_PlainPreservesWhitespace(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("line one\n  line two & more", RenderOptions{})
	require.NoError(t, err)

	assert.Equal(t, TypePlain, out.Detection.Type)
	assert.Contains(t, out.HTML, "<pre class=\"whitespace-pre-wrap\">line one\n  line two &amp; more</pre>")
}

func TestRender_FeaturedImageAndDebug(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("plain body", RenderOptions{
		Image: &Image{URL: "https://cdn.example.com/a.png"},
		Debug: true,
	})
	require.NoError(t, err)

	assert.Contains(t, out.HTML, `<img src="https://cdn.example.com/a.png" alt="Featured image">`)
	assert.Contains(t, out.HTML, "content-debug")
	assert.Contains(t, out.HTML, "100% confidence")
	assert.Contains(t, out.HTML, "no patterns detected")
}
