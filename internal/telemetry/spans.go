package telemetry

// Span attribute keys. These constants define the semantic conventions
// for span attributes across the editor.
const (
	// Render attributes
	AttrWrapWidth      = "render.wrap_width"
	AttrLeftPadding    = "render.left_padding"
	AttrParagraphCount = "render.paragraph_count"
	AttrTotalLines     = "render.total_lines"
	AttrCacheHits      = "render.cache_hits"
	AttrCacheMisses    = "render.cache_misses"
	AttrCacheEvictions = "render.cache_evictions"
	AttrRevealCodes    = "render.reveal_codes"

	// Editor attributes
	AttrParagraphType  = "editor.paragraph_type"
	AttrParagraphIndex = "editor.paragraph_index"
	AttrSegmentCount   = "editor.segment_count"

	// Session attributes
	AttrSessionID   = "session.id"
	AttrSessionFile = "session.file"

	// Document attributes
	AttrDocumentPath = "document.path"
	AttrTemplateName = "template.name"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixRender  = "render."
	SpanPrefixEditor  = "editor."
	SpanPrefixSession = "session."
	SpanPrefixRepo    = "repo."
)

// Event names for span events.
const (
	EventCacheInvalidated = "cache.invalidated"
	EventCacheCleared     = "cache.cleared"
	EventFileReloaded     = "file.reloaded"
	EventSessionRestored  = "session.restored"
)
