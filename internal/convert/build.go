// Package convert turns flat annotated rich-text runs into a canonical,
// minimally-nested pandoc inline tree, and flattens such trees back
// into runs. Both directions are pure functions over their inputs.
package convert

import (
	"github.com/gerunddev/richbridge/internal/pandoc"
	"github.com/gerunddev/richbridge/internal/richtext"
)

// Config selects conversion behavior. It is passed by value into every
// call and never mutated mid-conversion.
type Config struct {
	// PreserveAttributes keeps source-specific metadata (semantic color,
	// block provenance) as portable attributes on Span wrappers. When
	// false that metadata is dropped entirely and never affects output
	// shape or text.
	PreserveAttributes bool
}

// segment is one run reduced to its wrapper path and innermost leaves.
type segment struct {
	path   []pathElem
	leaves pandoc.Inlines
}

// Build converts a sequence of runs into a sequence of inline nodes.
//
// Each run contributes its format path (the ordered wrapper kinds its
// annotation set implies) terminating in leaf tokens. Adjacent runs
// whose paths share a leading prefix are factored under one shared
// wrapper, so three consecutive bold runs yield a single Strong node
// rather than three siblings. Build is total: it has no error
// conditions under any input.
func Build(runs []richtext.Run, cfg Config) pandoc.Inlines {
	segments := make([]segment, 0, len(runs))
	for i, r := range runs {
		segments = append(segments, segmentFor(r, cfg, i))
	}
	out := assemble(segments, 0)
	if out == nil {
		out = pandoc.Inlines{}
	}
	return out
}

// segmentFor computes a run's format path and leaf content. seq is the
// run's position, used to keep underline brackets per-run.
func segmentFor(r richtext.Run, cfg Config, seq int) segment {
	if r.Type == richtext.RunEquation {
		return segment{
			path:   formatPath(r, cfg, seq),
			leaves: pandoc.Inlines{pandoc.Math{Type: pandoc.InlineMath, Text: r.Expression}},
		}
	}

	// Inline code short-circuits every other flag for its own span: the
	// run becomes a bare Code leaf, and only a link may wrap it.
	if r.Annotations.Code {
		var path []pathElem
		if r.Link != "" {
			path = []pathElem{linkElem(r.Link)}
		}
		return segment{
			path:   path,
			leaves: pandoc.Inlines{pandoc.Code{Text: r.Content}},
		}
	}

	return segment{
		path:   formatPath(r, cfg, seq),
		leaves: tokenize(r.Content),
	}
}

// tokenize splits run content into Str, Space and LineBreak leaves.
// Horizontal whitespace becomes one Space per character, newlines
// become hard breaks; everything else accumulates into words.
func tokenize(content string) pandoc.Inlines {
	var out pandoc.Inlines
	var word []rune
	flush := func() {
		if len(word) > 0 {
			out = append(out, pandoc.Str{Text: string(word)})
			word = word[:0]
		}
	}
	for _, c := range content {
		switch c {
		case ' ', '\t':
			flush()
			out = append(out, pandoc.Space{})
		case '\n':
			flush()
			out = append(out, pandoc.LineBreak{})
		default:
			word = append(word, c)
		}
	}
	flush()
	return out
}

// assemble folds segments into inline nodes, factoring out the longest
// common path prefix of adjacent segments at each depth.
func assemble(segments []segment, depth int) pandoc.Inlines {
	var out pandoc.Inlines
	i := 0
	for i < len(segments) {
		s := segments[i]
		if len(s.path) <= depth {
			out = append(out, s.leaves...)
			i++
			continue
		}
		elem := s.path[depth]
		j := i + 1
		for j < len(segments) {
			next := segments[j]
			if len(next.path) <= depth || next.path[depth].key != elem.key {
				break
			}
			j++
		}
		out = append(out, elem.wrap(assemble(segments[i:j], depth+1))...)
		i = j
	}
	return out
}
