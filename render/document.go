package render

import (
	"strings"

	"github.com/wippyai/swb/bytecode"
)

// Span is a styled text fragment.
type Span struct {
	Text  string
	Style Style
}

// Line is the spans between two line breaks.
type Line []Span

// Document is a Sink that collects lines of spans. The last line is open
// until the next Endl.
type Document struct {
	Lines []Line
}

func (d *Document) current() *Line {
	if len(d.Lines) == 0 {
		d.Lines = append(d.Lines, nil)
	}
	return &d.Lines[len(d.Lines)-1]
}

// Text implements Sink.
func (d *Document) Text(text []byte, style Style) error {
	l := d.current()
	*l = append(*l, Span{Text: string(text), Style: style})
	return nil
}

// Endl implements Sink.
func (d *Document) Endl() error {
	d.current()
	d.Lines = append(d.Lines, nil)
	return nil
}

// PlainText joins spans with single spaces and lines with newlines.
func (d *Document) PlainText() string {
	lines := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		parts := make([]string, len(l))
		for j, s := range l {
			parts[j] = s.Text
		}
		lines[i] = strings.Join(parts, " ")
	}
	return strings.Join(lines, "\n")
}

// Build runs p into a new Document.
func Build(p *bytecode.Program) (*Document, error) {
	d := &Document{}
	if err := Run(p, d, nil); err != nil {
		return nil, err
	}
	return d, nil
}
