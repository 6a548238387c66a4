package models

// PendingAction is the transient per-chat slot that tells the text router
// what the next free-text message means. /websearch sets it; the router
// consumes it exactly once.
type PendingAction string

const (
	PendingNone        PendingAction = ""
	PendingSearchQuery PendingAction = "awaiting_search_query"
)
