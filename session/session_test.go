package session

import (
	"testing"

	"github.com/kunpehx/parrot/copymode"
	"github.com/kunpehx/parrot/language"
	"github.com/kunpehx/parrot/youdao"
)

var (
	en = language.Lookup("en")
	zh = language.Lookup("zh")
)

func newEnZh() *Session { return New(en, zh) }

func TestSetQuery(t *testing.T) {
	s := newEnZh()

	gen := s.SetQuery("hello")
	if gen != s.Generation || s.State != AwaitingResponse {
		t.Fatalf("gen=%d state=%v", gen, s.State)
	}
	if s.Query != "hello" || s.Mode != copymode.Normal {
		t.Fatalf("query=%q mode=%v", s.Query, s.Mode)
	}
}

func TestSetQuery_CopyModePrefix(t *testing.T) {
	s := newEnZh()

	s.SetQuery(">>URGENT")
	if s.Mode != copymode.Uppercase || s.Query != "URGENT" {
		t.Fatalf("mode=%v query=%q", s.Mode, s.Query)
	}
}

func TestSetQuery_EmptyResets(t *testing.T) {
	s := newEnZh()
	gen := s.SetQuery("hello")
	s.HandleResponse(gen, &youdao.Response{ErrorCode: "0", L: "en2zh", Translation: []string{"你好"}})

	if got := s.SetQuery("   "); got != -1 {
		t.Fatalf("empty query returned request generation %d", got)
	}
	if s.State != Idle || s.Sections != nil || s.LastErrorCode != youdao.CodeNoQuery {
		t.Fatalf("not reset: state=%v sections=%v code=%q", s.State, s.Sections, s.LastErrorCode)
	}
}

func TestHandleResponse_Commit(t *testing.T) {
	s := newEnZh()
	gen := s.SetQuery("hello")

	d := s.HandleResponse(gen, &youdao.Response{
		ErrorCode:   "0",
		L:           "en2zh",
		Translation: []string{"你好"},
		Basic:       &youdao.Basic{Explains: []string{"问候语"}},
	})
	if d.Kind != Commit {
		t.Fatalf("decision = %v, want Commit", d.Kind)
	}
	if s.State != HasResult || s.Loading() {
		t.Fatalf("state=%v loading=%v", s.State, s.Loading())
	}
	if s.Detected.ID != "en" || s.LastErrorCode != "0" {
		t.Fatalf("detected=%q code=%q", s.Detected.ID, s.LastErrorCode)
	}
	if len(s.Sections) == 0 {
		t.Fatal("sections not committed")
	}
}

func TestHandleResponse_DegeneratePairPivotsToOther(t *testing.T) {
	// Target zh, detection came back zh2zh: switch to en after the
	// pivot delay, rendering nothing in between.
	s := newEnZh()
	s.Target = zh
	gen := s.SetQuery("你好")

	d := s.HandleResponse(gen, &youdao.Response{ErrorCode: "0", L: "zh2zh", Translation: []string{"你好"}})
	if d.Kind != Pivot {
		t.Fatalf("decision = %v, want Pivot", d.Kind)
	}
	if d.NewTarget.ID != "en" || d.Delay != PivotDelay {
		t.Fatalf("pivot to %q after %v", d.NewTarget.ID, d.Delay)
	}
	if s.State != PendingPivot || len(s.Sections) != 0 {
		t.Fatalf("degenerate response must not render: state=%v sections=%d", s.State, len(s.Sections))
	}

	newGen, ok := s.CompletePivot(gen, d.NewTarget)
	if !ok || newGen <= gen {
		t.Fatalf("CompletePivot = (%d, %v)", newGen, ok)
	}
	if s.Target.ID != "en" || s.State != AwaitingResponse {
		t.Fatalf("target=%q state=%v", s.Target.ID, s.State)
	}
}

func TestHandleResponse_UnexpectedSourcePivotsHome(t *testing.T) {
	// Source fr, target zh, primary en: land on the home language.
	s := newEnZh()
	s.Target = zh
	gen := s.SetQuery("bonjour")

	d := s.HandleResponse(gen, &youdao.Response{ErrorCode: "0", L: "fr2zh", Translation: []string{"你好"}})
	if d.Kind != Pivot || d.NewTarget.ID != "en" {
		t.Fatalf("decision = %+v, want pivot to en", d)
	}
}

func TestHandleResponse_UnexpectedSourceButTargetAlreadyHome(t *testing.T) {
	s := newEnZh()
	gen := s.SetQuery("bonjour") // target en (primary)

	d := s.HandleResponse(gen, &youdao.Response{ErrorCode: "0", L: "fr2en", Translation: []string{"hello"}})
	if d.Kind != Commit {
		t.Fatalf("decision = %v, want Commit when target is already home", d.Kind)
	}
}

func TestHandleResponse_PinnedTargetNeverPivots(t *testing.T) {
	s := newEnZh()
	s.SetQuery("你好")
	gen := s.PinTarget(zh)

	d := s.HandleResponse(gen, &youdao.Response{ErrorCode: "0", L: "zh2zh", Translation: []string{"你好"}})
	if d.Kind != Commit {
		t.Fatalf("pinned session must commit directly, got %v", d.Kind)
	}
	if s.Target.ID != "zh" {
		t.Fatalf("target = %q", s.Target.ID)
	}
}

func TestHandleResponse_ErrorPayloadWithoutPairCommits(t *testing.T) {
	// API error payloads can omit the language pair; that must not be
	// mistaken for a degenerate from==to detection.
	s := newEnZh()
	gen := s.SetQuery("hello")

	d := s.HandleResponse(gen, &youdao.Response{ErrorCode: "401"})
	if d.Kind != Commit {
		t.Fatalf("decision = %v, want Commit", d.Kind)
	}
	if s.LastErrorCode != "401" {
		t.Fatalf("code = %q", s.LastErrorCode)
	}
}

func TestHandleResponse_StaleGenerationDiscarded(t *testing.T) {
	s := newEnZh()
	gen := s.SetQuery("first")
	s.SetQuery("second")

	d := s.HandleResponse(gen, &youdao.Response{ErrorCode: "0", L: "en2zh", Translation: []string{"第一"}})
	if d.Kind != Stale {
		t.Fatalf("decision = %v, want Stale", d.Kind)
	}
	if len(s.Sections) != 0 {
		t.Fatal("stale response must not overwrite state")
	}
}

func TestCompletePivot_SupersededByNewInput(t *testing.T) {
	s := newEnZh()
	s.Target = zh
	gen := s.SetQuery("你好")
	d := s.HandleResponse(gen, &youdao.Response{ErrorCode: "0", L: "zh2zh"})
	if d.Kind != Pivot {
		t.Fatalf("setup: %v", d.Kind)
	}

	s.SetQuery("fresh input")

	if _, ok := s.CompletePivot(gen, d.NewTarget); ok {
		t.Fatal("superseded pivot timer must be dropped")
	}
}

func TestHandleFailure(t *testing.T) {
	s := newEnZh()
	gen := s.SetQuery("hello")

	if !s.HandleFailure(gen) {
		t.Fatal("failure for current generation must apply")
	}
	if s.LastErrorCode != youdao.CodeNoQuery || s.State != HasResult {
		t.Fatalf("code=%q state=%v", s.LastErrorCode, s.State)
	}

	gen2 := s.SetQuery("retry")
	if s.HandleFailure(gen2 - 1) {
		t.Fatal("stale failure must be discarded")
	}
}

func TestPinTarget_WithoutQuery(t *testing.T) {
	s := newEnZh()
	if gen := s.PinTarget(zh); gen != -1 {
		t.Fatalf("no query active, got request generation %d", gen)
	}
	if !s.UserPinned || s.Target.ID != "zh" {
		t.Fatalf("pin not recorded: %+v", s)
	}
}
