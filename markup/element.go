// Package markup turns HTML into the flattened element stream consumed by
// the compiler.
//
// The stream is a flat sequence: nesting survives only as matching start
// and end tags. Parse tokenizes a document; Strip normalizes whitespace,
// collapses line breaks and drops script and style bodies.
package markup

import (
	"fmt"
	"strings"
)

// ElementKind selects the variant of an Element.
type ElementKind uint8

const (
	KindText ElementKind = iota
	KindTag
	KindEndTag
	KindLineBreak
	KindIgnore
)

// TagKind classifies a tag name. The compiler recognizes only TagBold,
// TagItalic and TagLineBreak; the rest exist so the strip pass can act on
// them.
type TagKind uint8

const (
	TagOther TagKind = iota
	TagBold
	TagItalic
	TagLineBreak
	TagHeading
	TagParagraph
	TagBlock
	TagScript
	TagStyle
)

var tagKindNames = [...]string{
	TagOther:     "other",
	TagBold:      "bold",
	TagItalic:    "italic",
	TagLineBreak: "linebreak",
	TagHeading:   "heading",
	TagParagraph: "paragraph",
	TagBlock:     "block",
	TagScript:    "script",
	TagStyle:     "style",
}

func (k TagKind) String() string {
	if int(k) < len(tagKindNames) {
		return tagKindNames[k]
	}
	return fmt.Sprintf("tag(%d)", uint8(k))
}

// breaksLine reports whether closing a tag of this kind ends a line.
func (k TagKind) breaksLine() bool {
	switch k {
	case TagHeading, TagParagraph, TagBlock:
		return true
	}
	return false
}

var tagsByName = map[string]TagKind{
	"b":          TagBold,
	"strong":     TagBold,
	"i":          TagItalic,
	"em":         TagItalic,
	"br":         TagLineBreak,
	"h1":         TagHeading,
	"h2":         TagHeading,
	"h3":         TagHeading,
	"h4":         TagHeading,
	"h5":         TagHeading,
	"h6":         TagHeading,
	"p":          TagParagraph,
	"div":        TagBlock,
	"li":         TagBlock,
	"tr":         TagBlock,
	"blockquote": TagBlock,
	"pre":        TagBlock,
	"script":     TagScript,
	"style":      TagStyle,
}

// LookupTag classifies an HTML tag name, case-insensitively.
func LookupTag(name string) TagKind {
	if k, ok := tagsByName[strings.ToLower(name)]; ok {
		return k
	}
	return TagOther
}

// Element is one entry of a flattened markup stream.
type Element struct {
	Text string // KindText only
	Kind ElementKind
	Tag  TagKind // KindTag and KindEndTag only
}

// Text returns a plain text run.
func Text(s string) Element { return Element{Kind: KindText, Text: s} }

// Tag returns a start tag.
func Tag(k TagKind) Element { return Element{Kind: KindTag, Tag: k} }

// EndTag returns an end tag.
func EndTag(k TagKind) Element { return Element{Kind: KindEndTag, Tag: k} }

// LineBreak returns an explicit line break.
func LineBreak() Element { return Element{Kind: KindLineBreak} }

// Ignore returns a marker with no rendering effect.
func Ignore() Element { return Element{Kind: KindIgnore} }

func (e Element) String() string {
	switch e.Kind {
	case KindText:
		return fmt.Sprintf("text(%q)", e.Text)
	case KindTag:
		return "<" + e.Tag.String() + ">"
	case KindEndTag:
		return "</" + e.Tag.String() + ">"
	case KindLineBreak:
		return "linebreak"
	case KindIgnore:
		return "ignore"
	}
	return fmt.Sprintf("element(%d)", uint8(e.Kind))
}
