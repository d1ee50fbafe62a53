package models

// AnalysisResult represents the outcome of a full musical analysis of one
// track. Every field is populated on success; a failed analysis returns an
// error instead of a partial result.
type AnalysisResult struct {
	BPM           float64 `json:"bpm"`           // Detected tempo, rounded to the nearest integer
	BPMConfidence float64 `json:"bpmConfidence"` // Tempo confidence as a percentage (0-100)
	Key           string  `json:"key"`           // Key label, e.g. "C# Major" or "Am"
	KeyConfidence float64 `json:"keyConfidence"` // Key confidence as a percentage (0-100)
}

// WaveformPoint summarizes one contiguous segment of the mono signal.
type WaveformPoint struct {
	Min float32 `json:"min"` // Lowest sample value in the segment
	Max float32 `json:"max"` // Highest sample value in the segment
}

// TrackMetadata carries read-only tag information for display purposes.
type TrackMetadata struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Genre  string `json:"genre"`
	Year   int    `json:"year"`
	Format string `json:"format"` // Tag format, e.g. "ID3v2.4"
}
