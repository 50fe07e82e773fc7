// Package session owns the state of one interactive lookup session:
// the current query, the active target language, and the auto-pivot
// decision that may switch the target after a response arrives.
//
// All mutable state lives in the Session struct; timers are represented
// by the delays the decisions carry, scheduled by the caller (the UI
// event loop), and guarded by a generation counter: any event tagged
// with an older generation is discarded (last-writer-wins).
package session

import (
	"time"

	"github.com/kunpehx/parrot/copymode"
	"github.com/kunpehx/parrot/language"
	"github.com/kunpehx/parrot/reformat"
	"github.com/kunpehx/parrot/youdao"
)

// State is the controller state.
type State int

const (
	// Idle: no query yet, or input cleared.
	Idle State = iota
	// AwaitingResponse: a request is in flight for the current query.
	AwaitingResponse
	// HasResult: sections are committed and renderable.
	HasResult
	// PendingPivot: a target-language switch is scheduled; nothing is
	// rendered until the re-issued query resolves.
	PendingPivot
)

// Timer delays. Debounce collapses rapid keystrokes into one query;
// the pivot delay lets further input supersede an automatic target
// change before it commits.
const (
	DebounceDelay = 400 * time.Millisecond
	PivotDelay    = 900 * time.Millisecond
)

// DecisionKind classifies HandleResponse outcomes.
type DecisionKind int

const (
	// Stale: the response belongs to a superseded query; discard it.
	Stale DecisionKind = iota
	// Commit: sections were committed and should be rendered.
	Commit
	// Pivot: schedule a target switch after Delay, then re-query.
	Pivot
)

// Decision is the outcome of feeding a response to the session.
type Decision struct {
	Kind      DecisionKind
	NewTarget language.Entry
	Delay     time.Duration
}

// Session is the single explicit state object for one search session.
// It persists until process exit; clearing the input returns it to an
// Idle-equivalent state without forgetting a pinned target.
type Session struct {
	// Lang1 is the primary preferred ("home") language, Lang2 the
	// secondary. They are distinct (validated before the session runs).
	Lang1, Lang2 language.Entry

	Query      string
	Mode       copymode.Mode
	Target     language.Entry
	Detected   language.Entry
	UserPinned bool

	LastErrorCode string
	Sections      []reformat.Section
	State         State

	// Generation tags outgoing requests and scheduled timers; events
	// carrying an older generation are discarded on arrival.
	Generation int
}

// New starts a session translating into the primary preferred language.
func New(lang1, lang2 language.Entry) *Session {
	return &Session{
		Lang1:         lang1,
		Lang2:         lang2,
		Target:        lang1,
		LastErrorCode: youdao.CodeNoQuery,
		State:         Idle,
	}
}

// Loading reports whether the UI should show a spinner.
func (s *Session) Loading() bool {
	return s.State == AwaitingResponse || s.State == PendingPivot
}

// SetQuery ingests raw input: the copy-mode prefix is detected and
// stripped, and a new generation begins. Empty input resets to Idle.
// It returns the generation the caller must tag the outgoing request
// with, or -1 when no request should be issued.
func (s *Session) SetQuery(raw string) int {
	s.Generation++

	mode := copymode.Detect(raw)
	query := copymode.Strip(raw, mode)
	if query == "" {
		s.Query = ""
		s.Mode = copymode.Normal
		s.Sections = nil
		s.Detected = language.Entry{}
		s.LastErrorCode = youdao.CodeNoQuery
		s.State = Idle
		return -1
	}

	s.Query = query
	s.Mode = mode
	s.State = AwaitingResponse
	return s.Generation
}

// HandleResponse applies a translation response issued for generation
// gen. Responses for superseded generations are discarded. When the
// user has pinned a target, no auto-pivot logic runs.
func (s *Session) HandleResponse(gen int, resp *youdao.Response) Decision {
	if gen != s.Generation || s.State != AwaitingResponse {
		return Decision{Kind: Stale}
	}

	from, to := language.SplitPair(resp.L)

	// Error payloads may omit the language pair; an unparsable pair
	// never drives a pivot.
	if !s.UserPinned && from != "" && to != "" {
		// Detection collapsed onto the requested target: switch to the
		// other preferred language and retry, rendering nothing.
		if from == to {
			other := s.Lang1
			if from != s.Lang2.ID {
				other = s.Lang2
			}
			s.State = PendingPivot
			return Decision{Kind: Pivot, NewTarget: other, Delay: PivotDelay}
		}
		// Translating from an unexpected language: land on the home
		// language instead of an arbitrary pivot target.
		if from != s.Lang1.ID && s.Target.ID != s.Lang1.ID {
			s.State = PendingPivot
			return Decision{Kind: Pivot, NewTarget: s.Lang1, Delay: PivotDelay}
		}
	}

	s.Sections = reformat.Reformat(resp)
	s.Detected = language.Lookup(from)
	s.LastErrorCode = resp.ErrorCode
	s.State = HasResult
	return Decision{Kind: Commit}
}

// HandleFailure records a transport failure for generation gen. The
// error surfaces as the unknown-code sentinel; nothing is retried.
func (s *Session) HandleFailure(gen int) bool {
	if gen != s.Generation || s.State != AwaitingResponse {
		return false
	}
	s.Sections = nil
	s.LastErrorCode = youdao.CodeNoQuery
	s.State = HasResult
	return true
}

// CompletePivot commits a scheduled pivot when its timer fires. A pivot
// whose generation was superseded in the meantime is dropped. On
// success the target switches and a fresh generation is returned for
// the re-issued request.
func (s *Session) CompletePivot(gen int, target language.Entry) (int, bool) {
	if gen != s.Generation || s.State != PendingPivot {
		return -1, false
	}
	s.Target = target
	s.Generation++
	s.State = AwaitingResponse
	return s.Generation, true
}

// PinTarget records an explicit user language choice. Auto-pivot is
// disabled for the remainder of the session. When a query is active it
// is re-issued against the new target; the returned generation tags
// that request (-1 when there is nothing to re-query).
func (s *Session) PinTarget(target language.Entry) int {
	s.UserPinned = true
	s.Target = target
	s.Generation++
	if s.Query == "" {
		s.State = Idle
		return -1
	}
	s.State = AwaitingResponse
	return s.Generation
}
