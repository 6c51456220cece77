package entities

// TranscriptUtterance is a single speaker turn, stored inline on the
// transcript as JSONB.
type TranscriptUtterance struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Chapter represents an auto-generated chapter in a transcript
type Chapter struct {
	Gist     string  `json:"gist"`
	Headline string  `json:"headline"`
	Summary  string  `json:"summary"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
}
