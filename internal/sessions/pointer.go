package sessions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zjrosen/fold/internal/editor"
)

// EncodePointer serializes a cursor pointer's paragraph and span paths into
// a compact string for storage. The rune offset is stored separately on the
// session. Format: path steps joined by "/" (root index plain, "c<n>" for
// quote children, "e<entry>.<par>" for list entries, "i<n>-<n>" for
// checklist item chains), optionally followed by "|" and the span path
// indices comma-joined.
func EncodePointer(pointer editor.CursorPointer) string {
	steps := pointer.ParagraphPath.Steps()
	if len(steps) == 0 {
		return ""
	}

	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		switch step.Kind {
		case editor.StepRoot:
			parts = append(parts, strconv.Itoa(step.Index))
		case editor.StepChild:
			parts = append(parts, "c"+strconv.Itoa(step.Index))
		case editor.StepEntry:
			parts = append(parts, fmt.Sprintf("e%d.%d", step.EntryIndex, step.ParagraphIndex))
		case editor.StepChecklistItem:
			idx := make([]string, len(step.Indices))
			for i, n := range step.Indices {
				idx[i] = strconv.Itoa(n)
			}
			parts = append(parts, "i"+strings.Join(idx, "-"))
		}
	}

	encoded := strings.Join(parts, "/")
	if indices := pointer.SpanPath.Indices(); len(indices) > 0 {
		span := make([]string, len(indices))
		for i, n := range indices {
			span[i] = strconv.Itoa(n)
		}
		encoded += "|" + strings.Join(span, ",")
	}
	return encoded
}

// DecodePointer parses an encoded pointer path back into paragraph and span
// paths. Returns an error when the encoding is malformed; callers should
// fall back to the document start in that case.
func DecodePointer(encoded string) (editor.ParagraphPath, editor.SpanPath, error) {
	var parPath editor.ParagraphPath
	var spanPath editor.SpanPath
	if encoded == "" {
		return parPath, spanPath, fmt.Errorf("empty pointer path")
	}

	pathPart := encoded
	if bar := strings.IndexByte(encoded, '|'); bar >= 0 {
		pathPart = encoded[:bar]
		for _, field := range strings.Split(encoded[bar+1:], ",") {
			n, err := strconv.Atoi(field)
			if err != nil || n < 0 {
				return parPath, spanPath, fmt.Errorf("bad span index %q", field)
			}
			spanPath.Push(n)
		}
	}

	steps := make([]editor.PathStep, 0, 2)
	for i, part := range strings.Split(pathPart, "/") {
		if part == "" {
			return parPath, spanPath, fmt.Errorf("empty path step at %d", i)
		}
		switch part[0] {
		case 'c':
			n, err := strconv.Atoi(part[1:])
			if err != nil || n < 0 {
				return parPath, spanPath, fmt.Errorf("bad child step %q", part)
			}
			steps = append(steps, editor.ChildStep(n))
		case 'e':
			dot := strings.IndexByte(part, '.')
			if dot < 0 {
				return parPath, spanPath, fmt.Errorf("bad entry step %q", part)
			}
			entry, err1 := strconv.Atoi(part[1:dot])
			par, err2 := strconv.Atoi(part[dot+1:])
			if err1 != nil || err2 != nil || entry < 0 || par < 0 {
				return parPath, spanPath, fmt.Errorf("bad entry step %q", part)
			}
			steps = append(steps, editor.EntryStep(entry, par))
		case 'i':
			fields := strings.Split(part[1:], "-")
			indices := make([]int, len(fields))
			for j, field := range fields {
				n, err := strconv.Atoi(field)
				if err != nil || n < 0 {
					return parPath, spanPath, fmt.Errorf("bad item step %q", part)
				}
				indices[j] = n
			}
			steps = append(steps, editor.ChecklistItemStep(indices...))
		default:
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 {
				return parPath, spanPath, fmt.Errorf("bad root step %q", part)
			}
			if i != 0 {
				return parPath, spanPath, fmt.Errorf("root step %q not first", part)
			}
			steps = append(steps, editor.RootStep(n))
		}
	}
	if len(steps) == 0 || steps[0].Kind != editor.StepRoot {
		return parPath, spanPath, fmt.Errorf("pointer path %q missing root step", encoded)
	}

	return editor.PathFromSteps(steps...), spanPath, nil
}
