package markup

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Strip normalizes a parsed element stream:
//   - text is split on newlines, each line trimmed, blank lines dropped
//   - script and style bodies are dropped along with their tags
//   - runs of explicit line breaks collapse into one
//
// Tags, end tags and ignore markers pass through unchanged.
func Strip(in []Element) []Element {
	out := make([]Element, 0, len(in))
	dropped := 0

	for i := 0; i < len(in); i++ {
		e := in[i]
		switch e.Kind {
		case KindText:
			for _, line := range strings.Split(e.Text, "\n") {
				if isBlank(line) {
					continue
				}
				out = append(out, Text(strings.TrimSpace(line)))
			}

		case KindTag:
			if e.Tag == TagScript || e.Tag == TagStyle {
				j := i + 1
				for j < len(in) && !(in[j].Kind == KindEndTag && in[j].Tag == e.Tag) {
					j++
				}
				if j < len(in) {
					dropped += j - i + 1
				} else {
					dropped += j - i
				}
				i = j
				continue
			}
			out = append(out, e)

		case KindLineBreak:
			for i+1 < len(in) && in[i+1].Kind == KindLineBreak {
				i++
			}
			out = append(out, e)

		default:
			out = append(out, e)
		}
	}

	Logger().Debug("stripped markup",
		zap.Int("in", len(in)),
		zap.Int("out", len(out)),
		zap.Int("dropped", dropped))
	return out
}

func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
