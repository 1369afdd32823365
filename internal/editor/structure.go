package editor

import (
	"github.com/zjrosen/fold/internal/document"
)

// ensureDocumentInitialized guarantees at least one editable paragraph.
func ensureDocumentInitialized(doc *document.Document) {
	if len(doc.Paragraphs) == 0 {
		doc.Paragraphs = append(doc.Paragraphs, document.NewTextParagraph(""))
	}
}

func paragraphIsEmpty(paragraph *document.Paragraph) bool {
	if paragraph.Type.IsPlain() {
		for _, span := range paragraph.Content {
			if !spanIsEmpty(span) {
				return false
			}
		}
	}
	if paragraph.Type == document.Quote {
		for i := range paragraph.Children {
			if !paragraphIsEmpty(&paragraph.Children[i]) {
				return false
			}
		}
	}
	if paragraph.Type.IsList() {
		for _, entry := range paragraph.Entries {
			for i := range entry {
				if !paragraphIsEmpty(&entry[i]) {
					return false
				}
			}
		}
	}
	if paragraph.Type == document.Checklist {
		for _, item := range paragraph.Items {
			if !checklistItemIsEmpty(item) {
				return false
			}
		}
	}
	return true
}

func emptyTextParagraph() document.Paragraph {
	return document.NewTextParagraph("")
}

func paragraphFromChecklistItem(item document.ChecklistItem) document.Paragraph {
	return document.NewParagraph(document.Text).WithContent(item.Content...)
}

func checklistItemContentToParagraph(content []document.Span, target document.ParagraphType) document.Paragraph {
	paragraph := document.NewParagraph(document.Text)
	paragraph.Content = content
	applyParagraphTypeInPlace(&paragraph, target)
	if paragraph.Type.IsPlain() && len(paragraph.Content) == 0 {
		paragraph.Content = append(paragraph.Content, document.NewTextSpan(""))
	}
	return paragraph
}

func flattenChecklistItemsToText(items []document.ChecklistItem) []document.Paragraph {
	var result []document.Paragraph
	for _, item := range items {
		paragraph := document.NewParagraph(document.Text)
		paragraph.Content = item.Content
		if len(paragraph.Content) == 0 {
			paragraph.Content = append(paragraph.Content, document.NewTextSpan(""))
		}
		result = append(result, paragraph)
		result = append(result, flattenChecklistItemsToText(item.Children)...)
	}
	return result
}

func ensureChecklistContent(content []document.Span) []document.Span {
	if len(content) == 0 {
		content = append(content, document.NewTextSpan(""))
	}
	return content
}

func paragraphsToChecklistItemsRecursive(paragraphs []document.Paragraph) []document.ChecklistItem {
	var items []document.ChecklistItem
	for _, paragraph := range paragraphs {
		items = append(items, paragraphToChecklistItemsRecursive(paragraph)...)
	}
	return items
}

func paragraphToChecklistItemsRecursive(paragraph document.Paragraph) []document.ChecklistItem {
	switch {
	case paragraph.Type.IsPlain():
		return []document.ChecklistItem{
			document.NewChecklistItem(false).WithContent(ensureChecklistContent(paragraph.Content)...),
		}
	case paragraph.Type == document.Checklist:
		return paragraph.Items
	case paragraph.Type.IsList():
		items := make([]document.ChecklistItem, 0, len(paragraph.Entries))
		for _, entry := range paragraph.Entries {
			items = append(items, entryToChecklistItem(entry))
		}
		return items
	default:
		return paragraphsToChecklistItemsRecursive(paragraph.Children)
	}
}

func entryToChecklistItem(entry []document.Paragraph) document.ChecklistItem {
	if len(entry) == 0 {
		return document.NewChecklistItem(false).WithContent(document.NewTextSpan(""))
	}
	produced := paragraphToChecklistItemsRecursive(entry[0])
	var head document.ChecklistItem
	if len(produced) == 0 {
		head = document.NewChecklistItem(false).WithContent(document.NewTextSpan(""))
	} else {
		head = produced[0]
		head.Children = append(head.Children, produced[1:]...)
	}
	for _, paragraph := range entry[1:] {
		head.Children = append(head.Children, paragraphToChecklistItemsRecursive(paragraph)...)
	}
	return head
}

// isSingleParagraphEntry reports whether the path addresses a list entry
// holding exactly one paragraph (checklist items always count).
func isSingleParagraphEntry(doc *document.Document, path ParagraphPath) bool {
	steps := path.Steps()
	if len(steps) == 0 {
		return false
	}
	last := steps[len(steps)-1]
	switch last.Kind {
	case StepEntry:
		parent := paragraphRef(doc, PathFromSteps(steps[:len(steps)-1]...))
		if parent == nil || !parent.Type.IsList() {
			return false
		}
		if last.EntryIndex >= len(parent.Entries) {
			return false
		}
		return len(parent.Entries[last.EntryIndex]) == 1
	case StepChecklistItem:
		return true
	default:
		return false
	}
}

type parentRelationKind int

const (
	relationChild parentRelationKind = iota
	relationEntry
)

type parentScope struct {
	parentPath     ParagraphPath
	relation       parentRelationKind
	childIndex     int
	entryIndex     int
	paragraphIndex int
}

// determineParentScope detects the single-child promotion case: the path
// addresses the only child of a quote, the only paragraph of a one-entry
// list, or the only item of a checklist.
func determineParentScope(doc *document.Document, path ParagraphPath) (parentScope, bool) {
	steps := path.Steps()
	if len(steps) <= 1 {
		return parentScope{}, false
	}

	last := steps[len(steps)-1]
	parentPath := PathFromSteps(steps[:len(steps)-1]...)
	parent := paragraphRef(doc, parentPath)
	if parent == nil {
		return parentScope{}, false
	}

	switch last.Kind {
	case StepChild:
		if parent.Type != document.Quote {
			return parentScope{}, false
		}
		if len(parent.Children) == 1 && last.Index < len(parent.Children) {
			return parentScope{parentPath: parentPath, relation: relationChild, childIndex: last.Index}, true
		}
	case StepEntry:
		if !parent.Type.IsList() || last.EntryIndex >= len(parent.Entries) {
			return parentScope{}, false
		}
		entry := parent.Entries[last.EntryIndex]
		if len(parent.Entries) == 1 && len(entry) == 1 && last.ParagraphIndex < len(entry) {
			return parentScope{
				parentPath:     parentPath,
				relation:       relationEntry,
				entryIndex:     last.EntryIndex,
				paragraphIndex: last.ParagraphIndex,
			}, true
		}
	case StepChecklistItem:
		if parent.Type != document.Checklist || len(last.Indices) == 0 {
			return parentScope{}, false
		}
		itemIndex := last.Indices[0]
		if len(parent.Items) == 1 && itemIndex < len(parent.Items) {
			return parentScope{
				parentPath: parentPath,
				relation:   relationEntry,
				entryIndex: itemIndex,
			}, true
		}
	}
	return parentScope{}, false
}

// promoteSingleChildIntoParent collapses a degenerate container by
// replacing it with its only child.
func promoteSingleChildIntoParent(doc *document.Document, scope parentScope) bool {
	parent := paragraphRef(doc, scope.parentPath)
	if parent == nil {
		return false
	}

	var child document.Paragraph
	switch scope.relation {
	case relationChild:
		if parent.Type != document.Quote || scope.childIndex >= len(parent.Children) {
			return false
		}
		child = parent.Children[scope.childIndex]
		parent.Children = append(parent.Children[:scope.childIndex], parent.Children[scope.childIndex+1:]...)
	case relationEntry:
		if parent.Type == document.Checklist {
			if scope.entryIndex >= len(parent.Items) {
				return false
			}
			item := parent.Items[scope.entryIndex]
			parent.Items = append(parent.Items[:scope.entryIndex], parent.Items[scope.entryIndex+1:]...)
			child = paragraphFromChecklistItem(item)
		} else {
			if !parent.Type.IsList() || scope.entryIndex >= len(parent.Entries) {
				return false
			}
			entry := parent.Entries[scope.entryIndex]
			parent.Entries = append(parent.Entries[:scope.entryIndex], parent.Entries[scope.entryIndex+1:]...)
			if scope.paragraphIndex >= len(entry) {
				return false
			}
			child = entry[scope.paragraphIndex]
			rest := append(entry[:scope.paragraphIndex:scope.paragraphIndex], entry[scope.paragraphIndex+1:]...)
			if len(rest) > 0 {
				parent.Entries = append(parent.Entries[:scope.entryIndex],
					append([][]document.Paragraph{rest}, parent.Entries[scope.entryIndex:]...)...)
			}
		}
	}

	*parent = child
	return true
}

// applyParagraphTypeInPlace rewrites a paragraph to the target type,
// carrying structure across: content becomes a quote child, entries become
// quote children, quote children become a list entry, and so on.
func applyParagraphTypeInPlace(paragraph *document.Paragraph, target document.ParagraphType) {
	if target == document.Quote {
		var children []document.Paragraph
		if len(paragraph.Content) > 0 {
			child := document.NewParagraph(document.Text)
			child.Content = paragraph.Content
			children = append(children, child)
		}
		switch {
		case paragraph.Type == document.Quote:
			children = append(children, paragraph.Children...)
		case paragraph.Type.IsList():
			for _, entry := range paragraph.Entries {
				children = append(children, entry...)
			}
		}
		if len(children) == 0 {
			children = append(children, emptyTextParagraph())
		}
		*paragraph = document.NewParagraph(document.Quote).WithChildren(children...)
		return
	}

	if target.IsPlain() {
		content := paragraph.Content
		*paragraph = document.NewParagraph(target)
		paragraph.Content = content
		if len(paragraph.Content) == 0 {
			paragraph.Content = append(paragraph.Content, document.NewTextSpan(""))
		}
		return
	}

	switch target {
	case document.OrderedList, document.UnorderedList:
		var entries [][]document.Paragraph
		switch {
		case paragraph.Type.IsList():
			entries = paragraph.Entries
		case paragraph.Type == document.Quote:
			if len(paragraph.Children) == 0 {
				entries = [][]document.Paragraph{{emptyTextParagraph()}}
			} else {
				entries = [][]document.Paragraph{paragraph.Children}
			}
		default:
			entries = [][]document.Paragraph{{emptyTextParagraph()}}
		}
		*paragraph = document.NewParagraph(target).WithEntries(entries...)
	case document.Checklist:
		var items []document.ChecklistItem
		switch {
		case paragraph.Type == document.Checklist:
			items = paragraph.Items
		case paragraph.Type == document.Quote:
			items = paragraphsToChecklistItemsRecursive(paragraph.Children)
		case paragraph.Type.IsList():
			for _, entry := range paragraph.Entries {
				items = append(items, entryToChecklistItem(entry))
			}
		default:
			items = []document.ChecklistItem{
				document.NewChecklistItem(false).WithContent(ensureChecklistContent(paragraph.Content)...),
			}
		}
		if len(items) == 0 {
			items = append(items, document.NewChecklistItem(false).WithContent(document.NewTextSpan("")))
		}
		*paragraph = document.NewParagraph(document.Checklist).WithItems(items...)
	default:
		*paragraph = document.NewParagraph(target)
	}
}

func isListType(kind document.ParagraphType) bool {
	return kind.IsList() || kind == document.Checklist
}

// breakListEntryForNonListTarget extracts one entry (or checklist item) out
// of its list, converting it to the target type and splitting the list
// around the extraction point when entries remain on both sides.
func breakListEntryForNonListTarget(doc *document.Document, entryPath ParagraphPath, target document.ParagraphType) (CursorPointer, bool) {
	steps := entryPath.Steps()
	if len(steps) == 0 {
		return CursorPointer{}, false
	}
	last := steps[len(steps)-1]
	prefix := steps[:len(steps)-1]

	var entryIndex, paragraphIndex int
	isChecklistItem := false
	switch last.Kind {
	case StepEntry:
		entryIndex, paragraphIndex = last.EntryIndex, last.ParagraphIndex
	case StepChecklistItem:
		if len(last.Indices) == 0 {
			return CursorPointer{}, false
		}
		entryIndex, isChecklistItem = last.Indices[0], true
	default:
		return CursorPointer{}, false
	}

	listPath := PathFromSteps(prefix...)
	list := paragraphRef(doc, listPath)
	if list == nil || !isListType(list.Type) {
		return CursorPointer{}, false
	}

	var (
		listType            document.ParagraphType
		entriesAfter        [][]document.Paragraph
		checklistItemsAfter []document.ChecklistItem
		extracted           []document.Paragraph
		targetOffset        int
		hasPrefixEntries    bool
	)

	if isChecklistItem {
		if list.Type != document.Checklist || entryIndex >= len(list.Items) {
			return CursorPointer{}, false
		}
		checklistItemsAfter = append(checklistItemsAfter, list.Items[entryIndex+1:]...)
		selected := list.Items[entryIndex]
		list.Items = list.Items[:entryIndex]
		hasPrefixEntries = len(list.Items) > 0
		content, children := selected.Content, selected.Children

		switch target {
		case document.Quote:
			quoteChildren := []document.Paragraph{checklistItemContentToParagraph(content, document.Text)}
			if len(children) > 0 {
				quoteChildren = append(quoteChildren, document.NewParagraph(document.Checklist).WithItems(children...))
			}
			extracted = append(extracted, document.NewParagraph(document.Quote).WithChildren(quoteChildren...))
		case document.OrderedList, document.UnorderedList:
			entry := []document.Paragraph{checklistItemContentToParagraph(content, document.Text)}
			if len(children) > 0 {
				entry = append(entry, document.NewParagraph(document.Checklist).WithItems(children...))
			}
			extracted = append(extracted, document.NewParagraph(target).WithEntries(entry))
		case document.Checklist:
			root := document.NewChecklistItem(false).WithContent(content...)
			root.Children = children
			extracted = append(extracted, document.NewParagraph(document.Checklist).WithItems(root))
		default:
			extracted = append(extracted, checklistItemContentToParagraph(content, target))
			extracted = append(extracted, flattenChecklistItemsToText(children)...)
		}
		listType = document.Checklist
	} else {
		if !list.Type.IsList() || entryIndex >= len(list.Entries) {
			return CursorPointer{}, false
		}
		if len(list.Entries[entryIndex]) > 1 {
			return CursorPointer{}, false
		}
		listType = list.Type
		entriesAfter = append(entriesAfter, list.Entries[entryIndex+1:]...)
		selected := list.Entries[entryIndex]
		list.Entries = list.Entries[:entryIndex]
		hasPrefixEntries = len(list.Entries) > 0
		if paragraphIndex >= len(selected) {
			return CursorPointer{}, false
		}
		for idx, paragraph := range selected {
			if idx == paragraphIndex {
				applyParagraphTypeInPlace(&paragraph, target)
			}
			if paragraph.Type.IsPlain() && len(paragraph.Content) == 0 {
				paragraph.Content = append(paragraph.Content, document.NewTextSpan(""))
			}
			extracted = append(extracted, paragraph)
		}
		if len(extracted) == 0 {
			return CursorPointer{}, false
		}
		targetOffset = min(paragraphIndex, len(extracted)-1)
	}

	tailParagraph := func() (document.Paragraph, bool) {
		if len(entriesAfter) == 0 && len(checklistItemsAfter) == 0 {
			return document.Paragraph{}, false
		}
		if listType == document.Checklist {
			return document.NewParagraph(document.Checklist).WithItems(checklistItemsAfter...), true
		}
		return document.NewParagraph(listType).WithEntries(entriesAfter...), true
	}

	extractCount := len(extracted)
	listSteps := listPath.Steps()
	listLast := listSteps[len(listSteps)-1]
	listPrefix := listSteps[:len(listSteps)-1]

	insertRun := func(paragraphs *[]document.Paragraph, at int, replace bool) {
		if replace {
			*paragraphs = append((*paragraphs)[:at], (*paragraphs)[at+1:]...)
		}
		inserted := make([]document.Paragraph, 0, len(*paragraphs)+extractCount+1)
		inserted = append(inserted, (*paragraphs)[:at]...)
		inserted = append(inserted, extracted...)
		if tail, ok := tailParagraph(); ok {
			inserted = append(inserted, tail)
		}
		inserted = append(inserted, (*paragraphs)[at:]...)
		*paragraphs = inserted
	}

	textPointer := func(path ParagraphPath) CursorPointer {
		return CursorPointer{
			ParagraphPath: path,
			SpanPath:      NewSpanPath(0),
			SegmentKind:   SegmentText,
		}
	}

	switch listLast.Kind {
	case StepRoot:
		if len(listPrefix) != 0 {
			return CursorPointer{}, false
		}
		idx := listLast.Index
		if hasPrefixEntries {
			insertRun(&doc.Paragraphs, idx+1, false)
			return textPointer(NewRootPath(idx + 1 + targetOffset)), true
		}
		insertRun(&doc.Paragraphs, idx, true)
		return textPointer(NewRootPath(idx + targetOffset)), true
	case StepChild:
		parent := paragraphRef(doc, PathFromSteps(listPrefix...))
		if parent == nil || parent.Type != document.Quote {
			return CursorPointer{}, false
		}
		childIdx := listLast.Index
		newSteps := append([]PathStep(nil), listPrefix...)
		if hasPrefixEntries {
			insertRun(&parent.Children, childIdx+1, false)
			newSteps = append(newSteps, ChildStep(childIdx+1+targetOffset))
		} else {
			insertRun(&parent.Children, childIdx, true)
			newSteps = append(newSteps, ChildStep(childIdx+targetOffset))
		}
		return textPointer(PathFromSteps(newSteps...)), true
	case StepEntry:
		parent := paragraphRef(doc, PathFromSteps(listPrefix...))
		if parent == nil || !parent.Type.IsList() || listLast.EntryIndex >= len(parent.Entries) {
			return CursorPointer{}, false
		}
		entry := &parent.Entries[listLast.EntryIndex]
		childIdx := listLast.ParagraphIndex
		newSteps := append([]PathStep(nil), listPrefix...)
		if hasPrefixEntries {
			insertRun(entry, childIdx+1, false)
			newSteps = append(newSteps, EntryStep(listLast.EntryIndex, childIdx+1+targetOffset))
		} else {
			if childIdx >= len(*entry) {
				return CursorPointer{}, false
			}
			insertRun(entry, childIdx, true)
			newSteps = append(newSteps, EntryStep(listLast.EntryIndex, childIdx+targetOffset))
		}
		return textPointer(PathFromSteps(newSteps...)), true
	default:
		return CursorPointer{}, false
	}
}

// entryContext locates the innermost list-entry step of a path: the list,
// the entry and paragraph indices, and the steps below the entry.
type entryContext struct {
	listPath       ParagraphPath
	entryIndex     int
	paragraphIndex int
	tailSteps      []PathStep
}

func extractEntryContext(path ParagraphPath) (entryContext, bool) {
	steps := path.Steps()
	for idx := len(steps) - 1; idx >= 0; idx-- {
		switch steps[idx].Kind {
		case StepEntry:
			return entryContext{
				listPath:       PathFromSteps(steps[:idx]...),
				entryIndex:     steps[idx].EntryIndex,
				paragraphIndex: steps[idx].ParagraphIndex,
				tailSteps:      append([]PathStep(nil), steps[idx+1:]...),
			}, true
		case StepChecklistItem:
			// Checklist items are not wrapped in entries; the first index
			// stands in for the entry index.
			entryIndex := 0
			if len(steps[idx].Indices) > 0 {
				entryIndex = steps[idx].Indices[0]
			}
			return entryContext{
				listPath:   PathFromSteps(steps[:idx]...),
				entryIndex: entryIndex,
				tailSteps:  append([]PathStep(nil), steps[idx+1:]...),
			}, true
		}
	}
	return entryContext{}, false
}

type checklistItemContext struct {
	checklistPath ParagraphPath
	indices       []int
	tailSteps     []PathStep
}

func extractChecklistItemContext(path ParagraphPath) (checklistItemContext, bool) {
	steps := path.Steps()
	for idx := len(steps) - 1; idx >= 0; idx-- {
		if steps[idx].Kind == StepChecklistItem {
			return checklistItemContext{
				checklistPath: PathFromSteps(steps[:idx]...),
				indices:       append([]int(nil), steps[idx].Indices...),
				tailSteps:     append([]PathStep(nil), steps[idx+1:]...),
			}, true
		}
	}
	return checklistItemContext{}, false
}

func checklistItemsContainer(doc *document.Document, checklistPath ParagraphPath, ancestorIndices []int) *[]document.ChecklistItem {
	paragraph := paragraphRef(doc, checklistPath)
	if paragraph == nil || paragraph.Type != document.Checklist {
		return nil
	}
	current := &paragraph.Items
	for _, idx := range ancestorIndices {
		if idx >= len(*current) {
			return nil
		}
		current = &(*current)[idx].Children
	}
	return current
}

func takeChecklistItemAt(doc *document.Document, ctx checklistItemContext) (document.ChecklistItem, bool) {
	if len(ctx.indices) == 0 {
		return document.ChecklistItem{}, false
	}
	container := checklistItemsContainer(doc, ctx.checklistPath, ctx.indices[:len(ctx.indices)-1])
	if container == nil {
		return document.ChecklistItem{}, false
	}
	targetIdx := ctx.indices[len(ctx.indices)-1]
	if targetIdx >= len(*container) {
		return document.ChecklistItem{}, false
	}
	item := (*container)[targetIdx]
	*container = append((*container)[:targetIdx], (*container)[targetIdx+1:]...)
	return item, true
}

func insertChecklistItemAfterParent(doc *document.Document, ctx checklistItemContext, item document.ChecklistItem) (ParagraphPath, bool) {
	if len(ctx.indices) <= 1 {
		return ParagraphPath{}, false
	}
	parentIndices := ctx.indices[:len(ctx.indices)-1]
	parentIdx := parentIndices[len(parentIndices)-1]
	containerIndices := parentIndices[:len(parentIndices)-1]

	container := checklistItemsContainer(doc, ctx.checklistPath, containerIndices)
	if container == nil {
		return ParagraphPath{}, false
	}
	insertPosition := parentIdx + 1
	if insertPosition > len(*container) {
		return ParagraphPath{}, false
	}
	*container = append((*container)[:insertPosition],
		append([]document.ChecklistItem{item}, (*container)[insertPosition:]...)...)

	newIndices := append(append([]int(nil), containerIndices...), insertPosition)
	steps := append([]PathStep(nil), ctx.checklistPath.Steps()...)
	steps = append(steps, ChecklistItemStep(newIndices...))
	steps = append(steps, ctx.tailSteps...)
	return PathFromSteps(steps...), true
}

// mergeAdjacentLists coalesces the list at listPath with same-typed
// neighbors. Returns the merged list's path and the entry index adjusted
// for entries absorbed from a preceding sibling.
func mergeAdjacentLists(doc *document.Document, listPath ParagraphPath, entryIndex int) (ParagraphPath, int, bool) {
	list := paragraphRef(doc, listPath)
	if list == nil {
		return ParagraphPath{}, 0, false
	}
	listType := list.Type

	steps := listPath.Steps()
	if len(steps) == 0 {
		return ParagraphPath{}, 0, false
	}
	last := steps[len(steps)-1]
	prefix := steps[:len(steps)-1]

	switch last.Kind {
	case StepRoot:
		if len(prefix) != 0 {
			return ParagraphPath{}, 0, false
		}
		newIdx, newEntryIdx, ok := mergeAdjacentListsInSlice(&doc.Paragraphs, last.Index, entryIndex, listType)
		if !ok {
			return ParagraphPath{}, 0, false
		}
		return NewRootPath(newIdx), newEntryIdx, true
	case StepChild:
		parent := paragraphRef(doc, PathFromSteps(prefix...))
		if parent == nil || parent.Type != document.Quote {
			return ParagraphPath{}, 0, false
		}
		newIdx, newEntryIdx, ok := mergeAdjacentListsInSlice(&parent.Children, last.Index, entryIndex, listType)
		if !ok {
			return ParagraphPath{}, 0, false
		}
		newSteps := append(append([]PathStep(nil), prefix...), ChildStep(newIdx))
		return PathFromSteps(newSteps...), newEntryIdx, true
	case StepEntry:
		parent := paragraphRef(doc, PathFromSteps(prefix...))
		if parent == nil || !parent.Type.IsList() || last.EntryIndex >= len(parent.Entries) {
			return ParagraphPath{}, 0, false
		}
		newIdx, newEntryIdx, ok := mergeAdjacentListsInSlice(&parent.Entries[last.EntryIndex], last.ParagraphIndex, entryIndex, listType)
		if !ok {
			return ParagraphPath{}, 0, false
		}
		newSteps := append(append([]PathStep(nil), prefix...), EntryStep(last.EntryIndex, newIdx))
		return PathFromSteps(newSteps...), newEntryIdx, true
	default:
		return ParagraphPath{}, 0, false
	}
}

func mergeAdjacentListsInSlice(paragraphs *[]document.Paragraph, index, entryIndex int, listType document.ParagraphType) (int, int, bool) {
	if index >= len(*paragraphs) {
		return 0, 0, false
	}

	listIndex := index
	targetEntryIndex := entryIndex
	sameFamily := func(t document.ParagraphType) bool {
		if listType == document.Checklist {
			return t == document.Checklist
		}
		return t.IsList()
	}

	if listIndex > 0 && (*paragraphs)[listIndex-1].Type == listType {
		current := (*paragraphs)[listIndex]
		if !sameFamily(current.Type) {
			return 0, 0, false
		}
		*paragraphs = append((*paragraphs)[:listIndex], (*paragraphs)[listIndex+1:]...)
		previous := &(*paragraphs)[listIndex-1]
		if listType == document.Checklist {
			targetEntryIndex += len(previous.Items)
			previous.Items = append(previous.Items, current.Items...)
		} else {
			targetEntryIndex += len(previous.Entries)
			previous.Entries = append(previous.Entries, current.Entries...)
		}
		listIndex--
	}

	if listIndex+1 < len(*paragraphs) && (*paragraphs)[listIndex+1].Type == listType {
		next := (*paragraphs)[listIndex+1]
		*paragraphs = append((*paragraphs)[:listIndex+1], (*paragraphs)[listIndex+2:]...)
		current := &(*paragraphs)[listIndex]
		if !sameFamily(current.Type) {
			return 0, 0, false
		}
		if listType == document.Checklist {
			current.Items = append(current.Items, next.Items...)
		} else {
			current.Entries = append(current.Entries, next.Entries...)
		}
	}

	return listIndex, targetEntryIndex, true
}

func findListAncestorPath(doc *document.Document, path ParagraphPath) (ParagraphPath, bool) {
	steps := append([]PathStep(nil), path.Steps()...)
	for len(steps) > 0 {
		candidate := PathFromSteps(steps...)
		if paragraph := paragraphRef(doc, candidate); paragraph != nil && isListType(paragraph.Type) {
			return candidate, true
		}
		steps = steps[:len(steps)-1]
	}
	return ParagraphPath{}, false
}

// updateExistingListType converts a list between entry-backed and
// item-backed representations.
func updateExistingListType(doc *document.Document, path ParagraphPath, target document.ParagraphType) bool {
	paragraph := paragraphRef(doc, path)
	if paragraph == nil {
		return false
	}

	switch target {
	case document.Checklist:
		var items []document.ChecklistItem
		for _, entry := range paragraph.Entries {
			items = append(items, entryToChecklistItem(entry))
		}
		if len(items) == 0 {
			items = append(items, document.NewChecklistItem(false).WithContent(document.NewTextSpan("")))
		}
		*paragraph = document.NewParagraph(document.Checklist).WithItems(items...)
	case document.OrderedList, document.UnorderedList:
		entries := paragraph.Entries
		if len(entries) == 0 && len(paragraph.Items) > 0 {
			for _, item := range paragraph.Items {
				entries = append(entries, []document.Paragraph{
					document.NewParagraph(document.Text).WithContent(document.CloneSpans(item.Content)...),
				})
			}
		}
		normalizeEntriesForStandardList(&entries)
		*paragraph = document.NewParagraph(target).WithEntries(entries...)
	}

	return true
}

// convertParagraphIntoList wraps a paragraph's content as the first entry
// (or item) of a new list and returns the pointer into it.
func convertParagraphIntoList(doc *document.Document, path ParagraphPath, target document.ParagraphType) (CursorPointer, bool) {
	paragraph := paragraphRef(doc, path)
	if paragraph == nil {
		return CursorPointer{}, false
	}

	content := paragraph.Content
	if len(content) == 0 {
		content = []document.Span{document.NewTextSpan("")}
	}

	switch target {
	case document.Checklist:
		item := document.NewChecklistItem(false).WithContent(content...)
		*paragraph = document.NewParagraph(document.Checklist).WithItems(item)

		steps := append([]PathStep(nil), path.Steps()...)
		steps = append(steps, ChecklistItemStep(0))
		return CursorPointer{
			ParagraphPath: PathFromSteps(steps...),
			SpanPath:      NewSpanPath(0),
			SegmentKind:   SegmentText,
		}, true
	case document.OrderedList, document.UnorderedList:
		head := document.NewParagraph(document.Text)
		head.Content = content

		entry := []document.Paragraph{head}
		if paragraph.Type == document.Quote {
			entry = append(entry, paragraph.Children...)
		}
		*paragraph = document.NewParagraph(target).WithEntries(entry)

		steps := append([]PathStep(nil), path.Steps()...)
		steps = append(steps, EntryStep(0, 0))
		return CursorPointer{
			ParagraphPath: PathFromSteps(steps...),
			SpanPath:      NewSpanPath(0),
			SegmentKind:   SegmentText,
		}, true
	default:
		return CursorPointer{}, false
	}
}

func updateParagraphType(doc *document.Document, path ParagraphPath, target document.ParagraphType) bool {
	paragraph := paragraphRef(doc, path)
	if paragraph == nil {
		return false
	}
	applyParagraphTypeInPlace(paragraph, target)
	return true
}

func normalizeEntriesForStandardList(entries *[][]document.Paragraph) {
	if len(*entries) == 0 {
		*entries = append(*entries, []document.Paragraph{emptyTextParagraph()})
		return
	}
	for i := range *entries {
		if len((*entries)[i]) == 0 {
			(*entries)[i] = append((*entries)[i], emptyTextParagraph())
			continue
		}
		if len((*entries)[i][0].Content) == 0 {
			(*entries)[i][0].Content = append((*entries)[i][0].Content, document.NewTextSpan(""))
		}
	}
}

// splitParagraphBreak cuts the paragraph at the pointer and inserts the
// trailing half after it. preferEntrySibling keeps the new paragraph inside
// the same list entry instead of starting a new entry.
func splitParagraphBreak(doc *document.Document, pointer CursorPointer, preferEntrySibling bool) (CursorPointer, bool) {
	steps := pointer.ParagraphPath.Steps()
	if len(steps) == 0 {
		return CursorPointer{}, false
	}
	last := steps[len(steps)-1]
	prefix := steps[:len(steps)-1]

	spanIndices := append([]int(nil), pointer.SpanPath.Indices()...)

	var rightSpans []document.Span
	if item := checklistItemRef(doc, pointer.ParagraphPath); item != nil {
		rightSpans = splitSpans(&item.Content, spanIndices, pointer.Offset)
		if len(item.Content) == 0 {
			item.Content = append(item.Content, document.NewTextSpan(""))
		}
	} else {
		paragraph := paragraphRef(doc, pointer.ParagraphPath)
		if paragraph == nil {
			return CursorPointer{}, false
		}
		rightSpans = splitSpans(&paragraph.Content, spanIndices, pointer.Offset)
		if len(paragraph.Content) == 0 {
			paragraph.Content = append(paragraph.Content, document.NewTextSpan(""))
		}
	}
	if len(rightSpans) == 0 {
		rightSpans = append(rightSpans, document.NewTextSpan(""))
	}

	textPointer := func(path ParagraphPath) CursorPointer {
		return CursorPointer{
			ParagraphPath: path,
			SpanPath:      NewSpanPath(0),
			SegmentKind:   SegmentText,
		}
	}

	switch last.Kind {
	case StepRoot:
		if len(prefix) != 0 {
			return CursorPointer{}, false
		}
		insertIdx := min(last.Index+1, len(doc.Paragraphs))
		newParagraph := document.NewParagraph(document.Text).WithContent(rightSpans...)
		doc.Paragraphs = append(doc.Paragraphs[:insertIdx],
			append([]document.Paragraph{newParagraph}, doc.Paragraphs[insertIdx:]...)...)
		return textPointer(NewRootPath(insertIdx)), true
	case StepChild:
		parent := paragraphRef(doc, PathFromSteps(prefix...))
		if parent == nil || parent.Type != document.Quote {
			return CursorPointer{}, false
		}
		insertIdx := min(last.Index+1, len(parent.Children))
		newParagraph := document.NewParagraph(document.Text).WithContent(rightSpans...)
		parent.Children = append(parent.Children[:insertIdx],
			append([]document.Paragraph{newParagraph}, parent.Children[insertIdx:]...)...)
		newSteps := append(append([]PathStep(nil), prefix...), ChildStep(insertIdx))
		return textPointer(PathFromSteps(newSteps...)), true
	case StepEntry:
		parent := paragraphRef(doc, PathFromSteps(prefix...))
		if parent == nil || !parent.Type.IsList() {
			return CursorPointer{}, false
		}

		if preferEntrySibling {
			if last.EntryIndex >= len(parent.Entries) {
				return CursorPointer{}, false
			}
			entry := &parent.Entries[last.EntryIndex]
			insertIdx := min(last.ParagraphIndex+1, len(*entry))
			newParagraph := document.NewParagraph(document.Text).WithContent(rightSpans...)
			*entry = append((*entry)[:insertIdx],
				append([]document.Paragraph{newParagraph}, (*entry)[insertIdx:]...)...)
			newSteps := append(append([]PathStep(nil), prefix...), EntryStep(last.EntryIndex, insertIdx))
			return textPointer(PathFromSteps(newSteps...)), true
		}

		if last.EntryIndex >= len(parent.Entries) {
			return CursorPointer{}, false
		}
		entry := &parent.Entries[last.EntryIndex]
		if last.ParagraphIndex >= len(*entry) {
			return CursorPointer{}, false
		}

		trailing := append([]document.Paragraph(nil), (*entry)[last.ParagraphIndex+1:]...)
		*entry = (*entry)[:last.ParagraphIndex+1]

		head := document.NewParagraph(document.Text).WithContent(rightSpans...)
		if paragraphIsEmpty(&(*entry)[last.ParagraphIndex]) && len(*entry) > 1 {
			*entry = append((*entry)[:last.ParagraphIndex], (*entry)[last.ParagraphIndex+1:]...)
		} else if len((*entry)[last.ParagraphIndex].Content) == 0 {
			(*entry)[last.ParagraphIndex].Content = append((*entry)[last.ParagraphIndex].Content, document.NewTextSpan(""))
		}

		assembled := append([]document.Paragraph{head}, trailing...)
		insertIdx := min(last.EntryIndex+1, len(parent.Entries))
		parent.Entries = append(parent.Entries[:insertIdx],
			append([][]document.Paragraph{assembled}, parent.Entries[insertIdx:]...)...)

		newSteps := append(append([]PathStep(nil), prefix...), EntryStep(insertIdx, 0))
		return textPointer(PathFromSteps(newSteps...)), true
	case StepChecklistItem:
		if len(last.Indices) == 0 {
			return CursorPointer{}, false
		}
		itemIndex := last.Indices[0]
		parent := paragraphRef(doc, PathFromSteps(prefix...))
		if parent == nil || parent.Type != document.Checklist || itemIndex >= len(parent.Items) {
			return CursorPointer{}, false
		}

		if len(parent.Items[itemIndex].Content) == 0 {
			parent.Items[itemIndex].Content = append(parent.Items[itemIndex].Content, document.NewTextSpan(""))
		}

		insertIdx := min(itemIndex+1, len(parent.Items))
		newItem := document.NewChecklistItem(parent.Items[itemIndex].Checked).WithContent(rightSpans...)
		parent.Items = append(parent.Items[:insertIdx],
			append([]document.ChecklistItem{newItem}, parent.Items[insertIdx:]...)...)

		newSteps := append(append([]PathStep(nil), prefix...), ChecklistItemStep(insertIdx))
		return textPointer(PathFromSteps(newSteps...)), true
	default:
		return CursorPointer{}, false
	}
}

func previousSiblingPath(path ParagraphPath) (ParagraphPath, bool) {
	steps := path.Steps()
	if len(steps) == 0 {
		return ParagraphPath{}, false
	}
	last := steps[len(steps)-1]
	prefix := steps[:len(steps)-1]

	switch last.Kind {
	case StepRoot:
		if len(prefix) == 0 && last.Index > 0 {
			return NewRootPath(last.Index - 1), true
		}
	case StepChild:
		if last.Index > 0 {
			newSteps := append(append([]PathStep(nil), prefix...), ChildStep(last.Index-1))
			return PathFromSteps(newSteps...), true
		}
	case StepEntry:
		if last.ParagraphIndex > 0 {
			newSteps := append(append([]PathStep(nil), prefix...), EntryStep(last.EntryIndex, last.ParagraphIndex-1))
			return PathFromSteps(newSteps...), true
		}
		if last.EntryIndex > 0 {
			newSteps := append(append([]PathStep(nil), prefix...), EntryStep(last.EntryIndex-1, 0))
			return PathFromSteps(newSteps...), true
		}
	case StepChecklistItem:
		if len(last.Indices) > 0 && last.Indices[len(last.Indices)-1] > 0 {
			newIndices := append([]int(nil), last.Indices...)
			newIndices[len(newIndices)-1]--
			newSteps := append(append([]PathStep(nil), prefix...), ChecklistItemStep(newIndices...))
			return PathFromSteps(newSteps...), true
		}
	}
	return ParagraphPath{}, false
}

type indentTargetKind int

const (
	indentIntoQuote indentTargetKind = iota
	indentIntoList
	indentIntoListEntry
	indentIntoChecklistItem
)

type indentTarget struct {
	path       ParagraphPath
	kind       indentTargetKind
	entryIndex int
}

// findIndentTarget inspects the previous sibling for a container the
// current paragraph can move into.
func findIndentTarget(doc *document.Document, path ParagraphPath) (indentTarget, bool) {
	prevPath, ok := previousSiblingPath(path)
	if !ok {
		return indentTarget{}, false
	}
	target, ok := determineIndentTarget(doc, prevPath)
	if !ok {
		return indentTarget{}, false
	}
	if target.kind == indentIntoListEntry {
		if ctx, ok := extractEntryContext(path); ok {
			if ctx.listPath.Equal(target.path) && ctx.entryIndex == target.entryIndex {
				return indentTarget{}, false
			}
		}
	}
	return target, true
}

// findContainerIndentTarget walks up the ancestry looking for a previous
// sibling that can host the current container.
func findContainerIndentTarget(doc *document.Document, path ParagraphPath) (indentTarget, bool) {
	current := path.Clone()
	for {
		if prevPath, ok := previousSiblingPath(current); ok {
			if target, ok := determineIndentTarget(doc, prevPath); ok {
				return target, true
			}
		}
		parent, ok := current.Parent()
		if !ok {
			return indentTarget{}, false
		}
		steps := current.Steps()
		if len(steps) > 0 && steps[len(steps)-1].Kind == StepEntry {
			return indentTarget{}, false
		}
		current = parent
	}
}

func determineIndentTarget(doc *document.Document, path ParagraphPath) (indentTarget, bool) {
	steps := path.Steps()
	if len(steps) > 0 && steps[len(steps)-1].Kind == StepChecklistItem {
		return indentTarget{path: path.Clone(), kind: indentIntoChecklistItem}, true
	}
	paragraph := paragraphRef(doc, path)
	if paragraph == nil {
		return indentTarget{}, false
	}
	if paragraph.Type == document.Checklist {
		if len(paragraph.Items) == 0 {
			return indentTarget{path: path.Clone(), kind: indentIntoList}, true
		}
		newSteps := append([]PathStep(nil), path.Steps()...)
		newSteps = append(newSteps, ChecklistItemStep(len(paragraph.Items)-1))
		return indentTarget{path: PathFromSteps(newSteps...), kind: indentIntoChecklistItem}, true
	}
	if paragraph.Type == document.Quote {
		return indentTarget{path: path.Clone(), kind: indentIntoQuote}, true
	}
	if isListType(paragraph.Type) {
		return indentTarget{path: path.Clone(), kind: indentIntoList}, true
	}
	if ctx, ok := extractEntryContext(path); ok {
		return indentTarget{path: ctx.listPath.Clone(), kind: indentIntoListEntry, entryIndex: ctx.entryIndex}, true
	}
	return indentTarget{}, false
}

func appendParagraphToQuote(doc *document.Document, path ParagraphPath, paragraph document.Paragraph) (ParagraphPath, bool) {
	quote := paragraphRef(doc, path)
	if quote == nil || quote.Type != document.Quote {
		return ParagraphPath{}, false
	}
	childIndex := len(quote.Children)
	quote.Children = append(quote.Children, paragraph)
	steps := append([]PathStep(nil), path.Steps()...)
	steps = append(steps, ChildStep(childIndex))
	return PathFromSteps(steps...), true
}

func appendParagraphToList(doc *document.Document, path ParagraphPath, paragraph document.Paragraph) (ParagraphPath, bool) {
	list := paragraphRef(doc, path)
	if list == nil || !list.Type.IsList() {
		return ParagraphPath{}, false
	}
	entry, paragraphIndex := convertParagraphToListEntry(paragraph)
	entryIndex := len(list.Entries)
	list.Entries = append(list.Entries, entry)
	steps := append([]PathStep(nil), path.Steps()...)
	steps = append(steps, EntryStep(entryIndex, paragraphIndex))
	return PathFromSteps(steps...), true
}

// listEntryAppendTarget returns the last entry's index when its final
// paragraph is a leaf, so an indent appends into the entry rather than
// starting a new one.
func listEntryAppendTarget(doc *document.Document, path ParagraphPath) (int, bool) {
	list := paragraphRef(doc, path)
	if list == nil || !list.Type.IsList() || len(list.Entries) == 0 {
		return 0, false
	}
	entryIndex := len(list.Entries) - 1
	entry := list.Entries[entryIndex]
	if len(entry) == 0 {
		return 0, false
	}
	if !entry[len(entry)-1].Type.IsPlain() {
		return 0, false
	}
	return entryIndex, true
}

func appendParagraphToEntry(doc *document.Document, listPath ParagraphPath, entryIndex int, paragraph document.Paragraph) (ParagraphPath, bool) {
	list := paragraphRef(doc, listPath)
	if list == nil || !list.Type.IsList() || entryIndex >= len(list.Entries) {
		return ParagraphPath{}, false
	}
	list.Entries[entryIndex] = append(list.Entries[entryIndex], paragraph)
	paragraphIndex := len(list.Entries[entryIndex]) - 1
	steps := append([]PathStep(nil), listPath.Steps()...)
	steps = append(steps, EntryStep(entryIndex, paragraphIndex))
	return PathFromSteps(steps...), true
}

func entryHasMultipleParagraphs(doc *document.Document, ctx entryContext) bool {
	list := paragraphRef(doc, ctx.listPath)
	if list == nil || !list.Type.IsList() || ctx.entryIndex >= len(list.Entries) {
		return false
	}
	return len(list.Entries[ctx.entryIndex]) > 1
}

func ensureNestedList(entry *[]document.Paragraph, listType document.ParagraphType) int {
	for idx := range *entry {
		if (*entry)[idx].Type == listType {
			return idx
		}
	}
	*entry = append(*entry, document.NewParagraph(listType))
	return len(*entry) - 1
}

// indentParagraphWithinEntry wraps a mid-entry paragraph in a nested list
// inserted at its old position.
func indentParagraphWithinEntry(doc *document.Document, pointer CursorPointer, ctx entryContext) (CursorPointer, bool) {
	list := paragraphRef(doc, ctx.listPath)
	if list == nil || !isListType(list.Type) {
		return CursorPointer{}, false
	}
	listType := list.Type
	if !list.Type.IsList() || ctx.entryIndex >= len(list.Entries) {
		return CursorPointer{}, false
	}
	entry := &list.Entries[ctx.entryIndex]
	if ctx.paragraphIndex >= len(*entry) || len(*entry) <= 1 {
		return CursorPointer{}, false
	}
	paragraph := (*entry)[ctx.paragraphIndex]
	*entry = append((*entry)[:ctx.paragraphIndex], (*entry)[ctx.paragraphIndex+1:]...)

	nestedEntry, nestedParagraphIndex := convertParagraphToListEntry(paragraph)
	nestedList := document.NewParagraph(listType).WithEntries(nestedEntry)

	*entry = append((*entry)[:ctx.paragraphIndex],
		append([]document.Paragraph{nestedList}, (*entry)[ctx.paragraphIndex:]...)...)

	steps := append([]PathStep(nil), ctx.listPath.Steps()...)
	steps = append(steps, EntryStep(ctx.entryIndex, ctx.paragraphIndex))
	steps = append(steps, EntryStep(0, nestedParagraphIndex))
	steps = append(steps, ctx.tailSteps...)

	return CursorPointer{
		ParagraphPath: PathFromSteps(steps...),
		SpanPath:      pointer.SpanPath.Clone(),
		Offset:        pointer.Offset,
		SegmentKind:   pointer.SegmentKind,
		Style:         pointer.Style,
	}, true
}

// indentListEntryIntoEntry moves an entry under an earlier entry of the
// same list, nesting it in (or appending it to) that entry.
func indentListEntryIntoEntry(doc *document.Document, pointer CursorPointer, ctx entryContext, targetEntryIndex int) (CursorPointer, bool) {
	if targetEntryIndex >= ctx.entryIndex {
		return CursorPointer{}, false
	}

	list := paragraphRef(doc, ctx.listPath)
	if list == nil || !isListType(list.Type) || !list.Type.IsList() {
		return CursorPointer{}, false
	}
	listType := list.Type
	if ctx.entryIndex >= len(list.Entries) {
		return CursorPointer{}, false
	}
	entry := list.Entries[ctx.entryIndex]
	list.Entries = append(list.Entries[:ctx.entryIndex], list.Entries[ctx.entryIndex+1:]...)
	if len(entry) == 0 {
		return CursorPointer{}, false
	}
	entryLen := len(entry)

	if targetEntryIndex >= len(list.Entries) {
		return CursorPointer{}, false
	}
	targetEntry := &list.Entries[targetEntryIndex]

	hasMatchingNestedList := false
	for i := range *targetEntry {
		if (*targetEntry)[i].Type == listType {
			hasMatchingNestedList = true
			break
		}
	}
	shouldUseNestedList := hasMatchingNestedList || len(*targetEntry) == 1

	var paragraphPath ParagraphPath
	if shouldUseNestedList {
		nestedIndex := ensureNestedList(targetEntry, listType)
		nestedList := &(*targetEntry)[nestedIndex]
		newEntryIndex := len(nestedList.Entries)
		nestedList.Entries = append(nestedList.Entries, entry)

		steps := append([]PathStep(nil), ctx.listPath.Steps()...)
		steps = append(steps, EntryStep(targetEntryIndex, nestedIndex))
		steps = append(steps, EntryStep(newEntryIndex, min(ctx.paragraphIndex, entryLen-1)))
		paragraphPath = PathFromSteps(steps...)
	} else {
		insertIndex := len(*targetEntry)
		relativeIndex := min(ctx.paragraphIndex, entryLen-1)
		newIndex := insertIndex + relativeIndex
		*targetEntry = append(*targetEntry, entry...)

		steps := append([]PathStep(nil), ctx.listPath.Steps()...)
		steps = append(steps, EntryStep(targetEntryIndex, newIndex))
		paragraphPath = PathFromSteps(steps...)
	}

	return CursorPointer{
		ParagraphPath: paragraphPath,
		SpanPath:      pointer.SpanPath.Clone(),
		Offset:        pointer.Offset,
		SegmentKind:   pointer.SegmentKind,
		Style:         pointer.Style,
	}, true
}

func paragraphToChecklistItem(paragraph document.Paragraph) document.ChecklistItem {
	content := paragraph.Content
	if len(content) == 0 {
		content = []document.Span{document.NewTextSpan("")}
	}
	return document.NewChecklistItem(false).WithContent(content...)
}

func appendParagraphAsChecklistChild(doc *document.Document, targetPath ParagraphPath, paragraph document.Paragraph) (ParagraphPath, bool) {
	return appendChecklistChild(doc, targetPath, paragraphToChecklistItem(paragraph))
}

func appendChecklistChild(doc *document.Document, targetPath ParagraphPath, item document.ChecklistItem) (ParagraphPath, bool) {
	parentItem := checklistItemRef(doc, targetPath)
	if parentItem == nil {
		return ParagraphPath{}, false
	}
	parentItem.Children = append(parentItem.Children, item)
	newChildIndex := len(parentItem.Children) - 1

	steps := append([]PathStep(nil), targetPath.Steps()...)
	last := steps[len(steps)-1]
	if last.Kind != StepChecklistItem {
		return ParagraphPath{}, false
	}
	indices := append(append([]int(nil), last.Indices...), newChildIndex)
	steps[len(steps)-1] = ChecklistItemStep(indices...)
	return PathFromSteps(steps...), true
}

func removeNestedListParagraph(doc *document.Document, parentCtx entryContext) {
	list := paragraphRef(doc, parentCtx.listPath)
	if list == nil || !list.Type.IsList() || parentCtx.entryIndex >= len(list.Entries) {
		return
	}
	entry := &list.Entries[parentCtx.entryIndex]
	if parentCtx.paragraphIndex < len(*entry) {
		*entry = append((*entry)[:parentCtx.paragraphIndex], (*entry)[parentCtx.paragraphIndex+1:]...)
	}
	if len(*entry) == 0 {
		*entry = append(*entry, emptyTextParagraph())
	}
}

func takeListEntry(doc *document.Document, ctx entryContext) ([]document.Paragraph, bool, bool) {
	list := paragraphRef(doc, ctx.listPath)
	if list == nil || !list.Type.IsList() || ctx.entryIndex >= len(list.Entries) {
		return nil, false, false
	}
	entry := list.Entries[ctx.entryIndex]
	list.Entries = append(list.Entries[:ctx.entryIndex], list.Entries[ctx.entryIndex+1:]...)
	return entry, len(list.Entries) == 0, true
}

// indentListEntryIntoForeignList moves a whole entry out of its list and
// nests it under a different list found as the previous sibling.
func indentListEntryIntoForeignList(doc *document.Document, pointer CursorPointer, sourceCtx entryContext, targetListPath ParagraphPath) (CursorPointer, bool) {
	sourceList := paragraphRef(doc, sourceCtx.listPath)
	if sourceList == nil || !sourceList.Type.IsList() {
		return CursorPointer{}, false
	}
	listType := sourceList.Type

	entry, listEmpty, ok := takeListEntry(doc, sourceCtx)
	if !ok {
		return CursorPointer{}, false
	}
	if listEmpty {
		removeParagraphByPath(doc, sourceCtx.listPath)
	}
	if len(entry) == 0 {
		return CursorPointer{}, false
	}

	nestedEntry := make([]document.Paragraph, len(entry))
	for i := range entry {
		nestedEntry[i] = entry[i].Clone()
	}
	nestedParagraph := document.NewParagraph(listType).WithEntries(nestedEntry)

	var basePath ParagraphPath
	if entryIndex, ok := listEntryAppendTarget(doc, targetListPath); ok {
		basePath, ok = appendParagraphToEntry(doc, targetListPath, entryIndex, nestedParagraph)
		if !ok {
			return CursorPointer{}, false
		}
	} else {
		basePath, ok = appendParagraphToList(doc, targetListPath, nestedParagraph)
		if !ok {
			return CursorPointer{}, false
		}
	}

	steps := append([]PathStep(nil), basePath.Steps()...)
	steps = append(steps, EntryStep(0, min(sourceCtx.paragraphIndex, len(entry)-1)))
	steps = append(steps, sourceCtx.tailSteps...)

	return CursorPointer{
		ParagraphPath: PathFromSteps(steps...),
		SpanPath:      pointer.SpanPath.Clone(),
		Offset:        pointer.Offset,
		SegmentKind:   pointer.SegmentKind,
		Style:         pointer.Style,
	}, true
}

// promoteListEntryToParent unindents an entry of a nested list into its
// grandparent list, after the hosting entry.
func promoteListEntryToParent(doc *document.Document, pointer CursorPointer, ctx entryContext, paragraphIndex int) (CursorPointer, bool) {
	parentCtx, ok := extractEntryContext(ctx.listPath)
	if !ok {
		return CursorPointer{}, false
	}

	entry, listBecameEmpty, ok := takeListEntry(doc, ctx)
	if !ok {
		return CursorPointer{}, false
	}
	if len(entry) == 0 {
		return CursorPointer{}, false
	}
	if listBecameEmpty {
		removeNestedListParagraph(doc, parentCtx)
	}

	list := paragraphRef(doc, parentCtx.listPath)
	if list == nil || !list.Type.IsList() {
		return CursorPointer{}, false
	}
	insertIndex := min(parentCtx.entryIndex+1, len(list.Entries))
	list.Entries = append(list.Entries[:insertIndex],
		append([][]document.Paragraph{entry}, list.Entries[insertIndex:]...)...)

	steps := append([]PathStep(nil), parentCtx.listPath.Steps()...)
	steps = append(steps, EntryStep(insertIndex, paragraphIndex))
	steps = append(steps, ctx.tailSteps...)

	return CursorPointer{
		ParagraphPath: PathFromSteps(steps...),
		SpanPath:      pointer.SpanPath.Clone(),
		Offset:        pointer.Offset,
		SegmentKind:   pointer.SegmentKind,
		Style:         pointer.Style,
	}, true
}

// indentChecklistItemIntoItem re-parents a checklist item as the last
// child of a target item in the same checklist.
func indentChecklistItemIntoItem(doc *document.Document, pointer CursorPointer, targetPath ParagraphPath) (CursorPointer, bool) {
	sourceCtx, ok := extractChecklistItemContext(pointer.ParagraphPath)
	if !ok {
		return CursorPointer{}, false
	}
	targetCtx, ok := extractChecklistItemContext(targetPath)
	if !ok {
		return CursorPointer{}, false
	}
	if !sourceCtx.checklistPath.Equal(targetCtx.checklistPath) {
		return CursorPointer{}, false
	}

	item, ok := takeChecklistItemAt(doc, sourceCtx)
	if !ok {
		return CursorPointer{}, false
	}
	newBasePath, ok := appendChecklistChild(doc, targetPath, item)
	if !ok {
		return CursorPointer{}, false
	}
	steps := append([]PathStep(nil), newBasePath.Steps()...)
	steps = append(steps, sourceCtx.tailSteps...)

	return CursorPointer{
		ParagraphPath: PathFromSteps(steps...),
		SpanPath:      pointer.SpanPath.Clone(),
		Offset:        pointer.Offset,
		SegmentKind:   pointer.SegmentKind,
		Style:         pointer.Style,
	}, true
}

// unindentChecklistItem promotes a nested item to a sibling of its parent.
func unindentChecklistItem(doc *document.Document, pointer CursorPointer) (CursorPointer, bool) {
	ctx, ok := extractChecklistItemContext(pointer.ParagraphPath)
	if !ok || len(ctx.indices) <= 1 {
		return CursorPointer{}, false
	}

	item, ok := takeChecklistItemAt(doc, ctx)
	if !ok {
		return CursorPointer{}, false
	}
	newPath, ok := insertChecklistItemAfterParent(doc, ctx, item)
	if !ok {
		return CursorPointer{}, false
	}

	return CursorPointer{
		ParagraphPath: newPath,
		SpanPath:      pointer.SpanPath.Clone(),
		Offset:        pointer.Offset,
		SegmentKind:   pointer.SegmentKind,
		Style:         pointer.Style,
	}, true
}

// convertParagraphToListEntry turns a paragraph into an entry, keeping any
// nested structure alongside the content head.
func convertParagraphToListEntry(paragraph document.Paragraph) ([]document.Paragraph, int) {
	content := paragraph.Content
	if len(content) == 0 {
		content = []document.Span{document.NewTextSpan("")}
	}

	head := document.NewParagraph(document.Text)
	head.Content = content
	entry := []document.Paragraph{head}

	switch {
	case paragraph.Type == document.Quote && len(paragraph.Children) > 0:
		entry = append(entry, document.NewParagraph(document.Quote).WithChildren(paragraph.Children...))
	case paragraph.Type.IsList() && len(paragraph.Entries) > 0:
		entry = append(entry, document.NewParagraph(paragraph.Type).WithEntries(paragraph.Entries...))
	}

	return entry, 0
}

// takeParagraphAt removes the paragraph a path addresses and returns it.
// Checklist items are not addressable here.
func takeParagraphAt(doc *document.Document, path ParagraphPath) (document.Paragraph, bool) {
	steps := path.Steps()
	if len(steps) == 0 {
		return document.Paragraph{}, false
	}
	last := steps[len(steps)-1]
	prefix := steps[:len(steps)-1]

	switch last.Kind {
	case StepRoot:
		if len(prefix) != 0 || last.Index >= len(doc.Paragraphs) {
			return document.Paragraph{}, false
		}
		removed := doc.Paragraphs[last.Index]
		doc.Paragraphs = append(doc.Paragraphs[:last.Index], doc.Paragraphs[last.Index+1:]...)
		return removed, true
	case StepChild:
		parent := paragraphRef(doc, PathFromSteps(prefix...))
		if parent == nil || parent.Type != document.Quote || last.Index >= len(parent.Children) {
			return document.Paragraph{}, false
		}
		removed := parent.Children[last.Index]
		parent.Children = append(parent.Children[:last.Index], parent.Children[last.Index+1:]...)
		return removed, true
	case StepEntry:
		parent := paragraphRef(doc, PathFromSteps(prefix...))
		if parent == nil || !parent.Type.IsList() || last.EntryIndex >= len(parent.Entries) {
			return document.Paragraph{}, false
		}
		entry := &parent.Entries[last.EntryIndex]
		if last.ParagraphIndex >= len(*entry) {
			return document.Paragraph{}, false
		}
		removed := (*entry)[last.ParagraphIndex]
		*entry = append((*entry)[:last.ParagraphIndex], (*entry)[last.ParagraphIndex+1:]...)
		if len(*entry) == 0 {
			parent.Entries = append(parent.Entries[:last.EntryIndex], parent.Entries[last.EntryIndex+1:]...)
		}
		if len(parent.Entries) == 0 {
			parent.Entries = append(parent.Entries, []document.Paragraph{emptyTextParagraph()})
		}
		return removed, true
	default:
		return document.Paragraph{}, false
	}
}

// insertParagraphAfterParent inserts a paragraph as the next sibling of
// the node a path addresses, returning the new paragraph's path.
func insertParagraphAfterParent(doc *document.Document, parentPath ParagraphPath, paragraph document.Paragraph) (ParagraphPath, bool) {
	steps := parentPath.Steps()
	if len(steps) == 0 {
		return ParagraphPath{}, false
	}
	last := steps[len(steps)-1]
	prefix := steps[:len(steps)-1]

	switch last.Kind {
	case StepRoot:
		if len(prefix) != 0 {
			return ParagraphPath{}, false
		}
		insertIdx := min(last.Index+1, len(doc.Paragraphs))
		doc.Paragraphs = append(doc.Paragraphs[:insertIdx],
			append([]document.Paragraph{paragraph}, doc.Paragraphs[insertIdx:]...)...)
		return NewRootPath(insertIdx), true
	case StepChild:
		host := paragraphRef(doc, PathFromSteps(prefix...))
		if host == nil || host.Type != document.Quote {
			return ParagraphPath{}, false
		}
		insertIdx := min(last.Index+1, len(host.Children))
		host.Children = append(host.Children[:insertIdx],
			append([]document.Paragraph{paragraph}, host.Children[insertIdx:]...)...)
		newSteps := append(append([]PathStep(nil), prefix...), ChildStep(insertIdx))
		return PathFromSteps(newSteps...), true
	case StepEntry:
		host := paragraphRef(doc, PathFromSteps(prefix...))
		if host == nil || !host.Type.IsList() || last.EntryIndex >= len(host.Entries) {
			return ParagraphPath{}, false
		}
		entry := &host.Entries[last.EntryIndex]
		insertIdx := min(last.ParagraphIndex+1, len(*entry))
		*entry = append((*entry)[:insertIdx],
			append([]document.Paragraph{paragraph}, (*entry)[insertIdx:]...)...)
		newSteps := append(append([]PathStep(nil), prefix...), EntryStep(last.EntryIndex, insertIdx))
		return PathFromSteps(newSteps...), true
	default:
		return ParagraphPath{}, false
	}
}

// removeParagraphByPath deletes the paragraph a path addresses. An entry
// emptied by the removal is dropped from its list.
func removeParagraphByPath(doc *document.Document, path ParagraphPath) bool {
	steps := path.Steps()
	if len(steps) == 0 {
		return false
	}
	last := steps[len(steps)-1]
	prefix := steps[:len(steps)-1]

	switch last.Kind {
	case StepRoot:
		if len(prefix) != 0 || last.Index >= len(doc.Paragraphs) {
			return false
		}
		doc.Paragraphs = append(doc.Paragraphs[:last.Index], doc.Paragraphs[last.Index+1:]...)
		return true
	case StepChild:
		parent := paragraphRef(doc, PathFromSteps(prefix...))
		if parent == nil || parent.Type != document.Quote || last.Index >= len(parent.Children) {
			return false
		}
		parent.Children = append(parent.Children[:last.Index], parent.Children[last.Index+1:]...)
		return true
	case StepEntry:
		parent := paragraphRef(doc, PathFromSteps(prefix...))
		if parent == nil || !parent.Type.IsList() || last.EntryIndex >= len(parent.Entries) {
			return false
		}
		entry := &parent.Entries[last.EntryIndex]
		if last.ParagraphIndex >= len(*entry) {
			return false
		}
		*entry = append((*entry)[:last.ParagraphIndex], (*entry)[last.ParagraphIndex+1:]...)
		if len(*entry) == 0 {
			parent.Entries = append(parent.Entries[:last.EntryIndex], parent.Entries[last.EntryIndex+1:]...)
		}
		return true
	default:
		return false
	}
}

// ensureListEntryHasParagraph populates an empty list entry with an empty
// text paragraph so typing has a target span. Returns true when the
// document changed.
func ensureListEntryHasParagraph(doc *document.Document, path ParagraphPath) bool {
	ctx, ok := extractEntryContext(path)
	if !ok || len(ctx.tailSteps) > 0 {
		return false
	}
	list := paragraphRef(doc, ctx.listPath)
	if list == nil || !list.Type.IsList() || ctx.entryIndex >= len(list.Entries) {
		return false
	}
	entry := &list.Entries[ctx.entryIndex]
	if len(*entry) == 0 {
		*entry = append(*entry, emptyTextParagraph())
		return true
	}
	if ctx.paragraphIndex < len(*entry) {
		target := &(*entry)[ctx.paragraphIndex]
		if target.Type.IsPlain() && len(target.Content) == 0 {
			target.Content = append(target.Content, document.NewTextSpan(""))
			return true
		}
	}
	return false
}

// ensureChecklistItemHasContent gives an empty checklist item an empty
// span so typing has a target. Returns true when the document changed.
func ensureChecklistItemHasContent(doc *document.Document, path ParagraphPath) bool {
	item := checklistItemRef(doc, path)
	if item == nil {
		return false
	}
	if len(item.Content) == 0 {
		item.Content = append(item.Content, document.NewTextSpan(""))
		return true
	}
	return false
}
