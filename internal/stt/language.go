package stt

import "strings"

// The OpenAI verbose_json response reports the detected language as a full
// English name ("english"), while self-hosted Whisper deployments report
// ISO 639-1 codes ("en"). Everything downstream works with codes.
var languageCodes = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"dutch":      "nl",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"chinese":    "zh",
	"japanese":   "ja",
	"korean":     "ko",
	"vietnamese": "vi",
	"turkish":    "tr",
	"polish":     "pl",
	"ukrainian":  "uk",
	"indonesian": "id",
}

// NormalizeLanguage converts a model-reported language to an ISO 639-1 code.
// Unknown values are passed through lowercased so they remain visible in
// results instead of being silently dropped.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "unknown"
	}
	if len(lang) == 2 {
		return lang
	}
	if code, ok := languageCodes[lang]; ok {
		return code
	}
	return lang
}
