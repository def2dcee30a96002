package content

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

type Image struct {
	URL string
	Alt string
}

type RenderOptions struct {
	Image *Image
	// Debug appends the detection summary to the output.
	Debug bool
}

type Rendered struct {
	Detection Detection
	HTML      string
}

type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(styleTransformer{}, 100)),
		),
	)
	return &Renderer{md: md}
}

// Render dispatches on the detected type. The html variant is emitted
// verbatim: stored posts are authored by admins and treated as trusted.
func (r *Renderer) Render(body string, opts RenderOptions) (Rendered, error) {
	det := Detect(body)

	var buf bytes.Buffer
	buf.WriteString(`<article class="post-content">`)

	if opts.Image != nil && strings.TrimSpace(opts.Image.URL) != "" {
		alt := opts.Image.Alt
		if strings.TrimSpace(alt) == "" {
			alt = "Featured image"
		}
		fmt.Fprintf(&buf, `<figure class="post-image"><img src="%s" alt="%s"></figure>`,
			html.EscapeString(opts.Image.URL), html.EscapeString(alt))
	}

	switch det.Type {
	case TypeMarkdown:
		buf.WriteString(`<div class="prose">`)
		if err := r.md.Convert([]byte(body), &buf); err != nil {
			return Rendered{}, fmt.Errorf("render markdown: %w", err)
		}
		buf.WriteString(`</div>`)
	case TypeHTML:
		buf.WriteString(`<div class="prose">`)
		buf.WriteString(body)
		buf.WriteString(`</div>`)
	default:
		buf.WriteString(`<pre class="whitespace-pre-wrap">`)
		buf.WriteString(html.EscapeString(body))
		buf.WriteString(`</pre>`)
	}

	if opts.Debug {
		writeDebug(&buf, det)
	}

	buf.WriteString(`</article>`)
	return Rendered{Detection: det, HTML: buf.String()}, nil
}

func writeDebug(buf *bytes.Buffer, det Detection) {
	fmt.Fprintf(buf, `<aside class="content-debug"><p>Detected: <strong>%s</strong> (%.0f%% confidence)</p><ul>`,
		det.Type, det.Confidence*100)
	for _, r := range det.Reasons {
		fmt.Fprintf(buf, `<li>%s</li>`, html.EscapeString(r))
	}
	buf.WriteString(`</ul></aside>`)
}

// styleTransformer tags block and inline nodes with presentation classes.
type styleTransformer struct{}

func (styleTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if cls := classFor(n); cls != "" {
			n.SetAttributeString("class", []byte(cls))
		}
		return ast.WalkContinue, nil
	})
}

func classFor(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Heading:
		switch v.Level {
		case 1:
			return "text-3xl font-bold mt-8 mb-4"
		case 2:
			return "text-2xl font-bold mt-6 mb-3"
		default:
			return "text-xl font-semibold mt-4 mb-2"
		}
	case *ast.Paragraph:
		return "my-4 leading-7"
	case *ast.List:
		if v.IsOrdered() {
			return "list-decimal pl-6 my-4"
		}
		return "list-disc pl-6 my-4"
	case *ast.ListItem:
		return "my-1"
	case *ast.Blockquote:
		return "border-l-4 pl-4 italic my-4"
	case *ast.Link:
		return "text-blue-600 hover:underline"
	case *ast.CodeSpan:
		return "px-1 rounded bg-gray-100 font-mono text-sm"
	case *east.Table:
		return "min-w-full border-collapse my-4"
	}
	return ""
}
