// Package queue defines the payloads exchanged over the message broker and
// the background consumer that appends title changes to logs/title.log.
package queue

// TitleChangedEvent is published whenever a championship's holder changes,
// whether by a manual crowning, a vacating, or a title-match result. It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type TitleChangedEvent struct {
	TitleID      int64  `json:"title_id"`
	TitleName    string `json:"title_name"`
	WrestlerID   *int64 `json:"wrestler_id,omitempty"` // nil when the title was vacated
	WrestlerName string `json:"wrestler_name,omitempty"`
	MatchID      *int64 `json:"match_id,omitempty"` // set when driven by a match result
	EventName    string `json:"event_name,omitempty"`
	ChangeMethod string `json:"change_method,omitempty"`
	ChangedAt    string `json:"changed_at"`
}
