package resumes

import (
	"encoding/json"
	"strings"

	"smarthire-backend/internal/llm"
)

// ParseJobRecommendations decodes a model response into job recommendations.
// The second return value reports whether the response parsed; when false the
// caller substitutes FallbackJobRecommendations.
func ParseJobRecommendations(raw string) ([]JobRecommendation, bool) {
	clean := llm.CleanJSON(raw)
	if !strings.HasPrefix(clean, "[") {
		return nil, false
	}
	var recs []JobRecommendation
	if err := json.Unmarshal([]byte(clean), &recs); err != nil {
		return nil, false
	}
	if len(recs) == 0 {
		return nil, false
	}
	for _, rec := range recs {
		if strings.TrimSpace(rec.Title) == "" {
			return nil, false
		}
	}
	return recs, true
}

// ParseAnalysis decodes a model response into an Analysis. The second return
// value reports whether the response parsed; when false the caller
// substitutes FallbackAnalysis.
func ParseAnalysis(raw string) (*Analysis, bool) {
	clean := llm.CleanJSON(raw)
	if !strings.HasPrefix(clean, "{") {
		return nil, false
	}
	var a Analysis
	if err := json.Unmarshal([]byte(clean), &a); err != nil {
		return nil, false
	}
	return &a, true
}

// FallbackJobRecommendations is the placeholder stored when the model call
// failed or its response could not be parsed. The raw response is kept in the
// description so the failure stays inspectable.
func FallbackJobRecommendations(rawResponse string) []JobRecommendation {
	description := "The AI response could not be parsed."
	if trimmed := strings.TrimSpace(rawResponse); trimmed != "" {
		description = trimmed
	}
	return []JobRecommendation{{
		Title:       "Parsing Error",
		Description: description,
	}}
}

// FallbackAnalysis is the all-"N/A", zero-score analysis stored when the model
// call failed or its response could not be parsed.
func FallbackAnalysis() *Analysis {
	return &Analysis{
		Contact: Contact{Email: "N/A", Phone: "N/A", LinkedIn: "N/A"},
		Skills:  []string{},
		Education: Education{
			Degree:         "N/A",
			Institution:    "N/A",
			GraduationYear: "N/A",
			GPA:            "N/A",
		},
		Experience:   []Experience{},
		QualityScore: QualityScore{},
		ImprovementTips: []ImprovementTip{{
			Section:    "General",
			Priority:   "high",
			Suggestion: "Automated analysis was unavailable for this upload. Please try again later.",
		}},
	}
}
