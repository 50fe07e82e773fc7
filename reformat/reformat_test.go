package reformat

import (
	"testing"

	"github.com/kunpehx/parrot/youdao"
)

func kinds(sections []Section) []SectionKind {
	out := make([]SectionKind, len(sections))
	for i, s := range sections {
		out[i] = s.Kind
	}
	return out
}

func TestReformat_MandatorySections(t *testing.T) {
	resp := &youdao.Response{ErrorCode: "0", L: "en2zh"}

	sections := Reformat(resp)
	want := []SectionKind{Translate, Detail, WebTranslate}
	got := kinds(sections)
	if len(got) != len(want) {
		t.Fatalf("got kinds %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("section %d kind = %v, want %v", i, got[i], want[i])
		}
	}
	for _, s := range sections {
		if s.Items != nil && len(s.Items) != 0 {
			t.Fatalf("expected empty items, got %v", s.Items)
		}
	}
}

func TestReformat_SpecScenarioHello(t *testing.T) {
	resp := &youdao.Response{
		ErrorCode:   "0",
		L:           "en2zh",
		Translation: []string{"你好"},
		Basic:       &youdao.Basic{Explains: []string{"问候语"}},
	}

	sections := Reformat(resp)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3 (no phonetic)", len(sections))
	}

	tr := sections[0]
	if tr.Kind != Translate || tr.LanguageLabel != "English to Chinese" {
		t.Fatalf("translate section: %#v", tr)
	}
	if len(tr.Items) != 1 || tr.Items[0].Title != "你好" {
		t.Fatalf("translate items: %v", tr.Items)
	}

	detail := sections[1]
	if detail.Kind != Detail || len(detail.Items) != 1 || detail.Items[0].Title != "问候语" {
		t.Fatalf("detail section: %#v", detail)
	}

	web := sections[2]
	if web.Kind != WebTranslate || len(web.Items) != 0 {
		t.Fatalf("web section should be empty: %#v", web)
	}
}

func TestReformat_DedupFirstExplain(t *testing.T) {
	resp := &youdao.Response{
		ErrorCode:   "0",
		L:           "en2zh",
		Translation: []string{"a"},
		Basic:       &youdao.Basic{Explains: []string{"a", "b"}},
	}

	sections := Reformat(resp)
	var detail *Section
	for i := range sections {
		if sections[i].Kind == Detail {
			detail = &sections[i]
		}
	}
	if detail == nil {
		t.Fatal("no detail section")
	}
	if len(detail.Items) != 1 || detail.Items[0].Title != "b" {
		t.Fatalf("detail items = %v, want exactly [b]", detail.Items)
	}
	// The caller's response must not be mutated by the dedup.
	if len(resp.Basic.Explains) != 2 {
		t.Fatalf("response explains mutated: %v", resp.Basic.Explains)
	}
}

func TestReformat_DualPhonetic(t *testing.T) {
	resp := &youdao.Response{
		ErrorCode:   "0",
		L:           "en2zh",
		Translation: []string{"你好"},
		Basic: &youdao.Basic{
			Phonetic:   "həˈloʊ",
			USPhonetic: "həˈloʊ",
			UKPhonetic: "həˈləʊ",
		},
	}

	sections := Reformat(resp)
	want := []SectionKind{Translate, Phonetic, Phonetic, Detail, WebTranslate}
	got := kinds(sections)
	if len(got) != len(want) {
		t.Fatalf("got kinds %v, want %v", got, want)
	}

	uk, us := sections[1], sections[2]
	if uk.Hint == "" {
		t.Error("first phonetic section must carry a hint")
	}
	if us.Hint != "" {
		t.Errorf("second phonetic section must be an unhinted continuation, got %q", us.Hint)
	}
	if uk.Items[0].Title != "həˈləʊ" || uk.Items[0].AccessoryLabel != "UK" {
		t.Errorf("uk item: %#v", uk.Items[0])
	}
	if us.Items[0].Title != "həˈloʊ" || us.Items[0].AccessoryLabel != "US" {
		t.Errorf("us item: %#v", us.Items[0])
	}
}

func TestReformat_SinglePhonetic(t *testing.T) {
	resp := &youdao.Response{
		ErrorCode:   "0",
		L:           "zh2en",
		Translation: []string{"hello"},
		Basic:       &youdao.Basic{Phonetic: "nǐ hǎo"},
	}

	sections := Reformat(resp)
	var phonetics []Section
	for _, s := range sections {
		if s.Kind == Phonetic {
			phonetics = append(phonetics, s)
		}
	}
	if len(phonetics) != 1 {
		t.Fatalf("got %d phonetic sections, want 1", len(phonetics))
	}
	if phonetics[0].Items[0].AccessoryLabel != "Mandarin [Pinyin]" {
		t.Errorf("accessory = %q", phonetics[0].Items[0].AccessoryLabel)
	}
	// The generic phonetic also becomes the translate item subtitle.
	if sub := sections[0].Items[0].Subtitle; sub != "[nǐ hǎo]" {
		t.Errorf("translate subtitle = %q, want [nǐ hǎo]", sub)
	}
}

func TestReformat_WebJoinAndKeys(t *testing.T) {
	resp := &youdao.Response{
		ErrorCode:   "0",
		L:           "en2zh",
		Translation: []string{"你好", "喂"},
		Web: []youdao.WebEntry{
			{Key: "hello world", Value: []string{"世界你好", "哈啰世界"}},
			{Key: "hello there", Value: []string{"你好啊"}},
		},
	}

	sections := Reformat(resp)
	web := sections[len(sections)-1]
	if web.Kind != WebTranslate || len(web.Items) != 2 {
		t.Fatalf("web section: %#v", web)
	}
	if web.Items[0].Subtitle != "世界你好；哈啰世界" {
		t.Errorf("subtitle = %q", web.Items[0].Subtitle)
	}

	for _, s := range sections {
		seen := make(map[string]bool)
		for _, it := range s.Items {
			if seen[it.Key] {
				t.Errorf("duplicate key %q in section kind %v", it.Key, s.Kind)
			}
			seen[it.Key] = true
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 16); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
	if got := Truncate("a very long phrase indeed", 10); got != "a very lon.." {
		t.Errorf("Truncate long = %q", got)
	}
	if got := Truncate("中文也要按字符截断测试一下长度", 4); got != "中文也要.." {
		t.Errorf("Truncate runes = %q", got)
	}
}
