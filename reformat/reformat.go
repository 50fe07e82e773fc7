// Package reformat reshapes a raw translation response into the ordered
// display sections the list renderer consumes.
package reformat

import (
	"strconv"
	"strings"

	"github.com/kunpehx/parrot/i18n"
	"github.com/kunpehx/parrot/language"
	"github.com/kunpehx/parrot/youdao"
)

// SectionKind identifies the role of a display section.
type SectionKind int

const (
	Translate SectionKind = iota
	Phonetic
	Detail
	WebTranslate
)

// Item is one renderable row. Key is unique within its section so the
// renderer can track rows stably across refreshes.
type Item struct {
	Title          string
	Key            string
	Subtitle       string
	AccessoryLabel string
}

// Section groups items under a hint header. An empty Hint means the
// section continues the previous one visually (no header line). Items
// may be empty; the section is still emitted.
type Section struct {
	Kind          SectionKind
	Hint          string
	LanguageLabel string
	Items         []Item
}

// webValueSeparator joins web-translation renderings, matching the
// vendor's own result pages.
const webValueSeparator = "；"

// Reformat converts resp into display sections in fixed order:
// Translate, up to two Phonetic, Detail, Web Translation. Translate,
// Detail and Web Translation are always present, possibly with no
// items; Phonetic sections appear only when the response carries
// phonetics.
func Reformat(resp *youdao.Response) []Section {
	var sections []Section

	translate := Section{
		Kind:          Translate,
		Hint:          i18n.T("Translation"),
		LanguageLabel: language.PairLabel(resp.L),
	}
	for i, line := range resp.Translation {
		item := Item{
			Title: line,
			Key:   line + strconv.Itoa(i),
		}
		if resp.Basic != nil && resp.Basic.Phonetic != "" {
			item.Subtitle = "[" + resp.Basic.Phonetic + "]"
		}
		translate.Items = append(translate.Items, item)
	}
	sections = append(sections, translate)

	// The first dictionary explain often repeats the translation line;
	// drop it so the same text is not shown twice.
	var explains []string
	if resp.Basic != nil {
		explains = resp.Basic.Explains
		if len(explains) > 0 && len(resp.Translation) > 0 && explains[0] == resp.Translation[0] {
			explains = explains[1:]
		}
	}

	sections = append(sections, phoneticSections(resp)...)

	detail := Section{Kind: Detail, Hint: i18n.T("Detailed Definitions")}
	for i, text := range explains {
		detail.Items = append(detail.Items, Item{
			Title: text,
			Key:   text + strconv.Itoa(i),
		})
	}
	sections = append(sections, detail)

	web := Section{Kind: WebTranslate, Hint: i18n.T("Web Translation")}
	for i, entry := range resp.Web {
		web.Items = append(web.Items, Item{
			Title:    entry.Key,
			Key:      entry.Key + strconv.Itoa(i),
			Subtitle: strings.Join(entry.Value, webValueSeparator),
		})
	}
	sections = append(sections, web)

	return sections
}

// phoneticSections emits two sections when both UK and US phonetics are
// present (the second without a hint, as a visual continuation of the
// first), one for a lone generic phonetic, and none otherwise.
func phoneticSections(resp *youdao.Response) []Section {
	if resp.Basic == nil {
		return nil
	}

	if resp.Basic.UKPhonetic != "" && resp.Basic.USPhonetic != "" {
		uk := Section{Kind: Phonetic, Hint: i18n.T("Phonetic")}
		us := Section{Kind: Phonetic}
		for i, line := range resp.Translation {
			uk.Items = append(uk.Items, Item{
				Title:          resp.Basic.UKPhonetic,
				Key:            line + strconv.Itoa(i),
				AccessoryLabel: i18n.T("UK"),
			})
			us.Items = append(us.Items, Item{
				Title:          resp.Basic.USPhonetic,
				Key:            line + strconv.Itoa(i),
				AccessoryLabel: i18n.T("US"),
			})
		}
		return []Section{uk, us}
	}

	if resp.Basic.Phonetic != "" {
		s := Section{Kind: Phonetic, Hint: i18n.T("Phonetic")}
		for i, line := range resp.Translation {
			s.Items = append(s.Items, Item{
				Title:          resp.Basic.Phonetic,
				Key:            line + strconv.Itoa(i),
				AccessoryLabel: i18n.T("Mandarin [Pinyin]"),
			})
		}
		return []Section{s}
	}

	return nil
}

// Truncate shortens s for display, appending ".." past n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + ".."
}
