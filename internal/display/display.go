// Package display bridges the logical editor and the layout engine. It owns
// the render cache and the visual position map from the last render, and
// implements the cursor movements that only make sense visually: vertical
// moves through wrapped lines, page jumps, line start/end, and mouse
// hit-testing.
package display

import (
	"context"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/fold/internal/editor"
	"github.com/zjrosen/fold/internal/layout"
	"github.com/zjrosen/fold/internal/telemetry"
)

// Viewport is the screen rectangle the document is drawn into.
type Viewport struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display wraps an editor with visual-position state. Vertical movement
// works on the position map produced by the last Render call and falls back
// to logical segment movement when the map cannot answer.
type Display struct {
	editor *editor.Editor
	cache  *layout.Cache

	positions     []layout.PointerPosition
	lastCursor    layout.Position
	hasLastCursor bool

	preferredColumn    int
	hasPreferredColumn bool

	cursorFollowing bool
	lastViewHeight  int
	lastTotalLines  int
	lastArea        Viewport
	hasArea         bool
}

// New wraps an editor.
func New(e *editor.Editor) *Display {
	return &Display{
		editor:          e,
		cache:           layout.NewCache(0),
		cursorFollowing: true,
		lastViewHeight:  1,
	}
}

// Editor exposes the wrapped editor for logical operations.
func (d *Display) Editor() *editor.Editor {
	return d.editor
}

// Render lays out the document and refreshes the position map. Selection,
// when non-nil, must be ordered by document position.
func (d *Display) Render(wrapWidth, leftPadding int, selection *layout.Selection) *layout.Result {
	_, span := otel.Tracer("fold").Start(context.Background(), telemetry.SpanPrefixRender+"document")
	defer span.End()

	cursor := d.editor.CursorPointer()
	result := layout.RenderDocument(d.editor.Document(), layout.Options{
		WrapWidth:   wrapWidth,
		LeftPadding: leftPadding,
		RevealCodes: d.editor.RevealCodes(),
		Cursor:      &cursor,
		Selection:   selection,
		TrackAll:    true,
	}, d.cache)

	metrics := d.cache.Metrics()
	span.SetAttributes(
		attribute.Int(telemetry.AttrWrapWidth, wrapWidth),
		attribute.Int(telemetry.AttrLeftPadding, leftPadding),
		attribute.Int(telemetry.AttrParagraphCount, len(d.editor.Document().Paragraphs)),
		attribute.Int(telemetry.AttrTotalLines, result.TotalLines),
		attribute.Int(telemetry.AttrCacheHits, metrics.Hits),
		attribute.Int(telemetry.AttrCacheMisses, metrics.Misses),
		attribute.Bool(telemetry.AttrRevealCodes, d.editor.RevealCodes()),
	)

	d.positions = result.Positions
	d.lastTotalLines = result.TotalLines
	if result.Cursor != nil {
		d.lastCursor = *result.Cursor
		d.hasLastCursor = true
		if !d.hasPreferredColumn {
			d.preferredColumn = result.Cursor.Column
			d.hasPreferredColumn = true
		}
	}
	return result
}

// SetViewport records where the document is drawn; mouse hit-testing and
// page jumps are relative to it.
func (d *Display) SetViewport(area Viewport) {
	d.lastArea = area
	d.hasArea = true
	if area.Height > 0 {
		d.lastViewHeight = area.Height
	}
}

// CacheMetrics exposes render cache traffic for the status surface.
func (d *Display) CacheMetrics() layout.Metrics {
	return d.cache.Metrics()
}

// ClearRenderCache drops all cached paragraph layouts.
func (d *Display) ClearRenderCache() {
	d.cache.Clear()
}

// SetRevealCodes toggles reveal codes mode; every cached layout is stale
// afterwards since tag fragments change the geometry.
func (d *Display) SetRevealCodes(enabled bool) {
	d.editor.SetRevealCodes(enabled)
	d.cache.Clear()
}

// CursorFollowing reports whether the viewport should track the cursor.
func (d *Display) CursorFollowing() bool {
	return d.cursorFollowing
}

// SetCursorFollowing toggles viewport tracking, e.g. off while the user
// scrolls manually.
func (d *Display) SetCursorFollowing(following bool) {
	d.cursorFollowing = following
}

// PreferredColumn returns the sticky column used by vertical movement.
func (d *Display) PreferredColumn() (int, bool) {
	return d.preferredColumn, d.hasPreferredColumn
}

// SetPreferredColumn pins the sticky column.
func (d *Display) SetPreferredColumn(column int) {
	d.preferredColumn = column
	d.hasPreferredColumn = true
}

// ClearPreferredColumn unpins the sticky column; the next render re-derives
// it from the cursor.
func (d *Display) ClearPreferredColumn() {
	d.hasPreferredColumn = false
}

// LastCursorPosition returns the cursor's visual position from the last
// render.
func (d *Display) LastCursorPosition() (layout.Position, bool) {
	return d.lastCursor, d.hasLastCursor
}

// MoveCursorVertical moves the cursor delta visual lines, preferring the
// sticky column. Falls back to logical paragraph movement when no position
// map is available or the map has no better destination.
func (d *Display) MoveCursorVertical(delta int) bool {
	if delta == 0 {
		return false
	}
	if len(d.positions) == 0 {
		return d.moveLogical(delta)
	}

	cursor := d.editor.CursorPointer()
	current, ok := d.positionFor(cursor)
	if !ok {
		if !d.hasLastCursor {
			return d.moveLogical(delta)
		}
		current = d.lastCursor
	}

	desired := current.Column
	if d.hasPreferredColumn {
		desired = d.preferredColumn
	}

	maxLine := d.lastTotalLines - 1
	target := current.Line + delta
	if target < 0 {
		target = 0
	}
	if target > maxLine {
		target = maxLine
	}

	dest, found := d.closestPointerOnLine(target, desired)
	if !found {
		dest, found = d.searchNearestLine(target, desired, delta)
	}
	if !found {
		moved := d.moveLogical(delta)
		if moved {
			d.hasPreferredColumn = false
		}
		return moved
	}
	if dest.Pointer.Equal(cursor) {
		moved := d.moveLogical(delta)
		if moved {
			d.hasPreferredColumn = false
		}
		return moved
	}

	if !d.editor.MoveToPointer(dest.Pointer) {
		return d.moveLogical(delta)
	}
	d.preferredColumn = desired
	d.hasPreferredColumn = true
	d.lastCursor = dest.Position
	d.hasLastCursor = true
	return true
}

// PageJumpDistance is 90% of the viewport height, at least one line.
func (d *Display) PageJumpDistance() int {
	distance := int(math.Round(float64(d.lastViewHeight) * 0.9))
	if distance < 1 {
		distance = 1
	}
	return distance
}

// MovePage jumps nearly a viewport in the given direction (+1 down, -1 up).
func (d *Display) MovePage(direction int) bool {
	return d.MoveCursorVertical(d.PageJumpDistance() * direction)
}

// MoveToVisualLineStart puts the cursor on the first content position of its
// current visual line.
func (d *Display) MoveToVisualLineStart() bool {
	d.hasPreferredColumn = false
	entries := d.currentLineEntries()
	if len(entries) == 0 {
		d.editor.MoveToSegmentStart()
		return true
	}
	best := entries[0]
	for _, entry := range entries[1:] {
		if lessByContent(entry, best) {
			best = entry
		}
	}
	return d.focusEntry(best)
}

// MoveToVisualLineEnd puts the cursor past the last content position of its
// current visual line.
func (d *Display) MoveToVisualLineEnd() bool {
	d.hasPreferredColumn = false
	entries := d.currentLineEntries()
	if len(entries) == 0 {
		d.editor.MoveToSegmentEnd()
		return true
	}
	best := entries[0]
	for _, entry := range entries[1:] {
		if lessByContent(best, entry) {
			best = entry
		}
	}
	return d.focusEntry(best)
}

// VisualLineBoundaries returns the first and last tracked positions on a
// visual line.
func (d *Display) VisualLineBoundaries(line int) (layout.PointerPosition, layout.PointerPosition, bool) {
	var first, last layout.PointerPosition
	found := false
	for _, entry := range d.positions {
		if entry.Position.Line != line {
			continue
		}
		if !found {
			first, last = entry, entry
			found = true
			continue
		}
		if lessByContent(entry, first) {
			first = entry
		}
		if lessByContent(last, entry) {
			last = entry
		}
	}
	return first, last, found
}

// PointerFromMouse resolves a screen click to the nearest document pointer.
// Coordinates are absolute; scrollTop is the first document line visible in
// the viewport.
func (d *Display) PointerFromMouse(col, row, scrollTop int) (editor.CursorPointer, bool) {
	if !d.hasArea {
		return editor.CursorPointer{}, false
	}
	if row < d.lastArea.Y || row >= d.lastArea.Y+d.lastArea.Height {
		return editor.CursorPointer{}, false
	}
	if col < d.lastArea.X || col >= d.lastArea.X+d.lastArea.Width {
		return editor.CursorPointer{}, false
	}
	line := scrollTop + (row - d.lastArea.Y)
	relCol := col - d.lastArea.X
	entry, ok := d.closestPointerNearLine(line, relCol)
	if !ok {
		return editor.CursorPointer{}, false
	}
	return entry.Pointer, true
}

// FocusPosition records a new cursor visual and re-enables following, used
// after programmatic jumps.
func (d *Display) FocusPosition(position layout.Position) {
	d.lastCursor = position
	d.hasLastCursor = true
	d.preferredColumn = position.Column
	d.hasPreferredColumn = true
	d.cursorFollowing = true
}

// FocusPointer moves the cursor to a pointer and focuses its position when
// the map knows it.
func (d *Display) FocusPointer(pointer editor.CursorPointer) bool {
	if !d.editor.MoveToPointer(pointer) {
		return false
	}
	if position, ok := d.positionFor(pointer); ok {
		d.FocusPosition(position)
	} else {
		d.cursorFollowing = true
	}
	return true
}

func (d *Display) moveLogical(delta int) bool {
	if delta < 0 {
		return d.editor.MoveUp()
	}
	return d.editor.MoveDown()
}

func (d *Display) positionFor(pointer editor.CursorPointer) (layout.Position, bool) {
	for _, entry := range d.positions {
		if entry.Pointer.Equal(pointer) {
			return entry.Position, true
		}
	}
	return layout.Position{}, false
}

func (d *Display) currentLineEntries() []layout.PointerPosition {
	cursor := d.editor.CursorPointer()
	current, ok := d.positionFor(cursor)
	if !ok {
		if !d.hasLastCursor {
			return nil
		}
		current = d.lastCursor
	}
	var entries []layout.PointerPosition
	for _, entry := range d.positions {
		if entry.Position.Line == current.Line {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (d *Display) focusEntry(entry layout.PointerPosition) bool {
	if !d.editor.MoveToPointer(entry.Pointer) {
		return false
	}
	d.lastCursor = entry.Position
	d.hasLastCursor = true
	return true
}

func (d *Display) closestPointerOnLine(line, column int) (layout.PointerPosition, bool) {
	var best layout.PointerPosition
	bestDistance := -1
	for _, entry := range d.positions {
		if entry.Position.Line != line {
			continue
		}
		distance := abs(entry.Position.Column - column)
		if bestDistance < 0 || distance < bestDistance {
			best = entry
			bestDistance = distance
		}
	}
	return best, bestDistance >= 0
}

// searchNearestLine walks away from the target line in the movement
// direction until some line holds a position.
func (d *Display) searchNearestLine(target, column, delta int) (layout.PointerPosition, bool) {
	step := 1
	if delta < 0 {
		step = -1
	}
	for distance := 1; distance <= d.lastTotalLines; distance++ {
		line := target + distance*step
		if line < 0 || line >= d.lastTotalLines {
			break
		}
		if entry, ok := d.closestPointerOnLine(line, column); ok {
			return entry, true
		}
	}
	return layout.PointerPosition{}, false
}

// closestPointerNearLine prefers the exact line, then expands outward in
// both directions.
func (d *Display) closestPointerNearLine(line, column int) (layout.PointerPosition, bool) {
	if entry, ok := d.closestPointerOnLine(line, column); ok {
		return entry, true
	}
	for distance := 1; distance <= d.lastTotalLines; distance++ {
		if entry, ok := d.closestPointerOnLine(line-distance, column); ok {
			return entry, true
		}
		if entry, ok := d.closestPointerOnLine(line+distance, column); ok {
			return entry, true
		}
	}
	return layout.PointerPosition{}, false
}

// lessByContent orders positions on one line: content column first, then
// visual column, then pointer offset so reveal tags tie-break predictably.
func lessByContent(a, b layout.PointerPosition) bool {
	if a.Position.ContentColumn != b.Position.ContentColumn {
		return a.Position.ContentColumn < b.Position.ContentColumn
	}
	if a.Position.Column != b.Position.Column {
		return a.Position.Column < b.Position.Column
	}
	return a.Pointer.Offset < b.Pointer.Offset
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
