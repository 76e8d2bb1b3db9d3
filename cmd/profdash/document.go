package main

import (
	"github.com/cockroachdb/errors"
)

// ErrNoRegion is returned when a document has no panel or surface with the
// requested id.
var ErrNoRegion = errors.New("no such region")

// TextSink is a display region holding plain text.
type TextSink interface {
	SetText(text string)
}

// Surface is a drawing region holding an SVG element tree.
type Surface interface {
	ID() string
	SetAttr(name, value string)
	Attr(name string) string
	Clear()
	Append(children ...*Element)
	Children() []*Element
}

// Document gives renderers access to the regions of a page.
type Document interface {
	Panel(id string) (TextSink, error)
	Surface(id string) (Surface, error)
	Surfaces() []Surface
}

type panel struct {
	id    string
	title string
	text  string
}

func (p *panel) SetText(text string) { p.text = text }

// svgSurface is an in-memory <svg> root.
type svgSurface struct {
	id    string
	title string
	root  *Element
}

func newSVGSurface(id, title string) *svgSurface {
	return &svgSurface{id: id, title: title, root: el("svg")}
}

func (s *svgSurface) ID() string                  { return s.id }
func (s *svgSurface) SetAttr(name, value string)  { s.root.Set(name, value) }
func (s *svgSurface) Attr(name string) string     { return s.root.Attr(name) }
func (s *svgSurface) Clear()                      { s.root.Children = nil }
func (s *svgSurface) Append(children ...*Element) { s.root.Append(children...) }
func (s *svgSurface) Children() []*Element        { return s.root.Children }

// Page is an in-memory Document laid out from a Layout. It is built fresh
// for every render and discarded afterwards.
type Page struct {
	title    string
	panels   []*panel
	surfaces []*svgSurface
}

func NewPage(layout Layout) *Page {
	p := &Page{title: layout.Title}
	for _, ps := range layout.Panels {
		p.panels = append(p.panels, &panel{id: ps.ID, title: ps.Title})
	}
	for _, cs := range layout.Charts {
		p.surfaces = append(p.surfaces, newSVGSurface(cs.ID, cs.Title))
	}
	return p
}

func (p *Page) Panel(id string) (TextSink, error) {
	for _, pn := range p.panels {
		if pn.id == id {
			return pn, nil
		}
	}
	return nil, errors.Wrapf(ErrNoRegion, "panel %q", id)
}

func (p *Page) Surface(id string) (Surface, error) {
	for _, s := range p.surfaces {
		if s.id == id {
			return s, nil
		}
	}
	return nil, errors.Wrapf(ErrNoRegion, "surface %q", id)
}

func (p *Page) Surfaces() []Surface {
	out := make([]Surface, len(p.surfaces))
	for i, s := range p.surfaces {
		out[i] = s
	}
	return out
}
