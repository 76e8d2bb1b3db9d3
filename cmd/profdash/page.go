package main

import (
	"html/template"
	"io"

	"github.com/cockroachdb/errors"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        * { box-sizing: border-box; }
        body {
            font-family: 'Monaco', 'Menlo', 'Ubuntu Mono', monospace;
            padding: 20px;
            margin: 0;
            background: #1e1e1e;
            color: #d4d4d4;
        }
        h1 { font-size: 18px; color: #fff; }
        h2 { font-size: 14px; color: #9cdcfe; margin: 0 0 8px 0; }
        section {
            background: #252526;
            border: 1px solid #3c3c3c;
            border-radius: 4px;
            padding: 12px;
            margin-bottom: 16px;
        }
        pre {
            margin: 0;
            white-space: pre-wrap;
            font-size: 12px;
            max-height: 400px;
            overflow: auto;
        }
        svg { display: block; color: #d4d4d4; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
{{- range .Panels}}
    <section id="{{.ID}}">
        <h2>{{.Title}}</h2>
        <pre>{{.Text}}</pre>
    </section>
{{- end}}
{{- range .Charts}}
    <section id="{{.ID}}">
        <h2>{{.Title}}</h2>
        {{.SVG}}
    </section>
{{- end}}
</body>
</html>
`))

type pageView struct {
	Title  string
	Panels []panelView
	Charts []chartView
}

type panelView struct {
	ID, Title, Text string
}

type chartView struct {
	ID, Title string
	SVG       template.HTML
}

// Render writes the page as an HTML document. Panel text is escaped by the
// template; chart markup is escaped when the SVG tree is serialized.
func (p *Page) Render(w io.Writer) error {
	view := pageView{Title: p.title}
	for _, pn := range p.panels {
		view.Panels = append(view.Panels, panelView{ID: pn.id, Title: pn.title, Text: pn.text})
	}
	for _, s := range p.surfaces {
		markup, err := s.root.Markup()
		if err != nil {
			return errors.Wrapf(err, "serialize surface %q", s.id)
		}
		view.Charts = append(view.Charts, chartView{ID: s.id, Title: s.title, SVG: template.HTML(markup)})
	}
	return pageTmpl.Execute(w, view)
}
