// ABOUTME: Renders a summary document to an HTML email body and a plain-text alternative
// ABOUTME: Summaries are markdown rendered with raw HTML stripped; the text body is derived from the HTML

package document

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"bookmarkcast-api/core/domain"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const dateLayout = "January 2, 2006"

const documentTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Header}}</title></head>
<body style="font-family: Helvetica, Arial, sans-serif; max-width: 640px; margin: 0 auto; color: #222;">
<h1>{{.Header}}</h1>
{{- range .Fragments}}
<div class="bookmark {{.Status}}" style="margin: 24px 0; padding-bottom: 16px; border-bottom: 1px solid #eee;">
<h2><a href="{{.URL}}">{{.Title}}</a></h2>
{{- if eq .Status "success"}}
<div class="summary">{{.Summary}}</div>
{{- else}}
<p class="error" style="color: #b00020;">We could not summarize this bookmark: {{.Error}}</p>
{{- end}}
{{- if .Date}}
<p class="date" style="color: #777; font-size: 12px;">Bookmarked on {{.Date}}</p>
{{- end}}
</div>
{{- end}}
{{- if not .Fragments}}
<p>None of your bookmarks could be processed this time.</p>
{{- end}}
</body>
</html>
`

type fragmentView struct {
	Status  domain.FragmentStatus
	Title   string
	URL     template.URL
	Summary template.HTML
	Error   string
	Date    string
}

type documentView struct {
	Header    string
	Fragments []fragmentView
}

// Renderer turns a SummaryDocument into email bodies
type Renderer struct {
	tmpl      *template.Template
	converter *md.Converter
}

// NewRenderer parses the document template
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("summary").Parse(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary template: %w", err)
	}
	return &Renderer{
		tmpl:      tmpl,
		converter: md.NewConverter("", true, nil),
	}, nil
}

// RenderHTML renders doc. Output depends only on doc, so equal documents
// produce byte-identical HTML.
func (r *Renderer) RenderHTML(doc *domain.SummaryDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("summary document is nil")
	}

	view := documentView{Header: doc.Header}
	for _, f := range doc.Fragments() {
		fv := fragmentView{
			Status: f.Status,
			Title:  f.Title,
			URL:    safeURL(f.URL),
			Error:  f.Error,
			Date:   formatDate(f.DateAdded),
		}
		if f.Status == domain.FragmentSuccess {
			fv.Summary = markdownToHTML(f.Summary)
		}
		view.Fragments = append(view.Fragments, fv)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render summary document: %w", err)
	}
	return buf.String(), nil
}

// RenderText converts rendered HTML into a markdown-flavoured plain-text body
func (r *Renderer) RenderText(htmlBody string) (string, error) {
	text, err := r.converter.ConvertString(htmlBody)
	if err != nil {
		return "", fmt.Errorf("failed to convert summary to text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// markdownToHTML renders model output as HTML. Raw HTML in the input is dropped.
func markdownToHTML(text string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.HrefTargetBlank,
	})
	out := markdown.ToHTML([]byte(strings.TrimSpace(text)), p, renderer)
	return template.HTML(strings.TrimSpace(string(out)))
}

// safeURL only lets http(s) links through as trusted URLs
func safeURL(raw string) template.URL {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return template.URL(raw)
	}
	return template.URL("#")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
