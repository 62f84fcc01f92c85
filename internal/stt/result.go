package stt

// Result represents the result of a speech-to-text transcription
type Result struct {
	Transcript  string  // The transcribed text
	Language    string  // ISO 639-1 code of the detected language (e.g. "en"), may be empty
	Duration    float64 // Audio duration in seconds as reported by the model, may be 0
	Provider    string  // The provider used (e.g., "openai", "whisper-asr")
	RawResponse string  // Raw response from the provider (for debugging/logging)
}
