// Package language provides the static catalog of languages supported by
// the Youdao text-translation API, with lookup by vendor language id and
// helpers for the "src2dst" pair string the API reports.
package language

import "strings"

// Entry describes one supported language. The zero value is the empty
// sentinel returned for unknown ids.
type Entry struct {
	// ID is the Youdao language id (e.g. "en", "zh-CHS").
	ID string
	// Title is the human-readable English name.
	Title string
	// Voices lists the speech-synthesis voice ids for this language,
	// in preference order.
	Voices []string
}

// IsEmpty reports whether e is the empty sentinel.
func (e Entry) IsEmpty() bool {
	return e.ID == ""
}

// Catalog contains every language the tool can translate between.
// Order matters: it is the order languages are offered in the UI.
var Catalog = []Entry{
	{ID: "auto", Title: "Auto", Voices: []string{"Alex"}},
	{ID: "zh", Title: "Chinese", Voices: []string{"Ting-Ting"}},
	{ID: "zh-CHS", Title: "Chinese (Simplified)", Voices: []string{"Ting-Ting"}},
	{ID: "zh-CHT", Title: "Chinese (Traditional)", Voices: []string{"Ting-Ting"}},
	{ID: "en", Title: "English", Voices: []string{"Alex", "Samantha"}},
	{ID: "ja", Title: "Japanese", Voices: []string{"Kyoko"}},
	{ID: "ko", Title: "Korean", Voices: []string{"Yuna"}},
	{ID: "fr", Title: "French", Voices: []string{"Thomas"}},
	{ID: "es", Title: "Spanish", Voices: []string{"Monica"}},
	{ID: "pt", Title: "Portuguese", Voices: []string{"Joana"}},
	{ID: "it", Title: "Italian", Voices: []string{"Alice"}},
	{ID: "ru", Title: "Russian", Voices: []string{"Milena"}},
	{ID: "vi", Title: "Vietnamese", Voices: []string{"Linh"}},
	{ID: "de", Title: "German", Voices: []string{"Anna"}},
	{ID: "ar", Title: "Arabic", Voices: []string{"Maged"}},
	{ID: "id", Title: "Indonesian", Voices: []string{"Damayanti"}},
	{ID: "th", Title: "Thai", Voices: []string{"Kanya"}},
	{ID: "nl", Title: "Dutch", Voices: []string{"Xander"}},
}

// Lookup returns the catalog entry for id, or the empty sentinel if the
// id is unknown. It never fails.
func Lookup(id string) Entry {
	for _, e := range Catalog {
		if e.ID == id {
			return e
		}
	}
	return Entry{}
}

// SplitPair splits a Youdao language pair like "en2zh" into its source
// and target ids. The split happens at the first "2" so that the source
// half may itself contain one (ids like "zh-CHS" never start with a
// digit). A string without the separator yields the whole input as the
// source and an empty target.
func SplitPair(pair string) (from, to string) {
	from, to, _ = strings.Cut(pair, "2")
	return from, to
}

// PairLabel renders a pair like "en2zh" as "English to Chinese".
// Unknown ids contribute empty titles, mirroring the empty sentinel.
func PairLabel(pair string) string {
	from, to := SplitPair(pair)
	return Lookup(from).Title + " to " + Lookup(to).Title
}
