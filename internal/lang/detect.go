package lang

import (
	"strings"
	"unicode/utf8"

	wl "github.com/abadojack/whatlanggo"
)

type Result struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Keyed by ISO 639-3, the code whatlanggo reports.
var supported = map[string]Language{
	"eng": {Code: "en", Name: "English"},
	"hin": {Code: "hi", Name: "Hindi"},
	"tel": {Code: "te", Name: "Telugu"},
	"spa": {Code: "es", Name: "Spanish"},
	"fra": {Code: "fr", Name: "French"},
	"deu": {Code: "de", Name: "German"},
	"ita": {Code: "it", Name: "Italian"},
	"por": {Code: "pt", Name: "Portuguese"},
	"rus": {Code: "ru", Name: "Russian"},
	"jpn": {Code: "ja", Name: "Japanese"},
	"kor": {Code: "ko", Name: "Korean"},
	"cmn": {Code: "zh", Name: "Chinese"},
	"arb": {Code: "ar", Name: "Arabic"},
}

var order = []string{"eng", "hin", "tel", "spa", "fra", "deu", "ita", "por", "rus", "jpn", "kor", "cmn", "arb"}

var english = supported["eng"]

// Detect guesses the language of text. Anything outside the supported set
// is reported as English with low confidence.
func Detect(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Code: english.Code, Name: english.Name, Confidence: 0}
	}

	info := wl.Detect(text)
	l, ok := supported[info.Lang.Iso6393()]
	if !ok {
		return Result{Code: english.Code, Name: english.Name, Confidence: 0.1}
	}

	confidence := float64(utf8.RuneCountInString(text)) / 50
	if confidence > 0.9 {
		confidence = 0.9
	}
	return Result{Code: l.Code, Name: l.Name, Confidence: confidence}
}

// Supported lists the languages the assistant can answer in.
func Supported() []Language {
	out := make([]Language, 0, len(order))
	for _, k := range order {
		out = append(out, supported[k])
	}
	return out
}

// SupportedForVoice reports whether the front end can speak/listen in code.
func SupportedForVoice(code string) bool {
	for _, l := range supported {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Name returns the English name of a supported language code.
func Name(code string) string {
	for _, l := range supported {
		if l.Code == code {
			return l.Name
		}
	}
	return english.Name
}
