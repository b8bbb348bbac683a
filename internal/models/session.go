package models

// SessionPhase is the pagination state machine position.
type SessionPhase string

const (
	PhaseIdle        SessionPhase = "idle"
	PhaseLoading     SessionPhase = "loading"
	PhaseReady       SessionPhase = "ready"
	PhaseLoadingMore SessionPhase = "loadingMore"
)

// SourceOffset is the per-source fetch bookkeeping. NextOffset only ever
// advances, by exactly the page size of the last successful fetch; HasMore
// flips false once a fetch returns fewer items than requested.
type SourceOffset struct {
	Marketplace Marketplace `json:"marketplace"`
	NextOffset  int         `json:"next_offset"`
	HasMore     bool        `json:"has_more"`
}

// SessionSnapshot is the consumer-facing view of one query session.
// Displayed is always sort(filter(accumulated)); Accumulated counts the
// append-only base set.
type SessionSnapshot struct {
	ID          string         `json:"id"`
	Phase       SessionPhase   `json:"phase"`
	Query       string         `json:"query"`
	PageSize    int            `json:"page_size"`
	Filters     FilterState    `json:"filters"`
	Sort        SortMode       `json:"sort"`
	Displayed   []Product      `json:"displayed"`
	Accumulated int            `json:"accumulated"`
	HasMore     bool           `json:"has_more"`
	LastError   string         `json:"last_error,omitempty"`
	Offsets     []SourceOffset `json:"offsets"`
}
