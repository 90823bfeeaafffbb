package markup

import (
	"bytes"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/wippyai/swb/errors"
)

// Parse tokenizes an HTML document into a flat element stream. Malformed
// markup is tolerated the way the HTML tokenizer tolerates it; only read
// failures are reported.
func Parse(r io.Reader) ([]Element, error) {
	z := html.NewTokenizer(r)
	var out []Element

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, errors.ParseFailed("html", err)
			}
			Logger().Debug("parsed markup", zap.Int("elements", len(out)))
			return out, nil

		case html.TextToken:
			out = append(out, Text(string(z.Text())))

		case html.StartTagToken:
			name, _ := z.TagName()
			out = append(out, Tag(LookupTag(string(name))))

		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if k := LookupTag(string(name)); k == TagLineBreak {
				out = append(out, Tag(k))
			} else {
				out = append(out, Ignore())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			k := LookupTag(string(name))
			out = append(out, EndTag(k))
			if k.breaksLine() {
				out = append(out, LineBreak())
			}

		case html.CommentToken, html.DoctypeToken:
			out = append(out, Ignore())
		}
	}
}

// ParseBytes parses an in-memory document.
func ParseBytes(data []byte) ([]Element, error) {
	return Parse(bytes.NewReader(data))
}

// ParseFile parses the document at path.
func ParseFile(path string) ([]Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Load("open "+path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Load parses and strips the document at path.
func Load(path string) ([]Element, error) {
	elems, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Strip(elems), nil
}
