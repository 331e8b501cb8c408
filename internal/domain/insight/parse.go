package insight

import (
	"encoding/json"

	"github.com/healthmate/healthmate/internal/platform/genai"
)

// fallbackRomanUrdu is the Roman Urdu summary used when the model reply
// cannot be parsed as JSON.
const fallbackRomanUrdu = "AI analysis ko parse karne mein masla hua. Kripya dobara koshish karein."

const fallbackSummaryLimit = 500

// analysis is the JSON schema the model is asked to produce.
type analysis struct {
	Summary                Summary         `json:"summary"`
	AbnormalValues         []AbnormalValue `json:"abnormalValues"`
	DoctorQuestions        []string        `json:"doctorQuestions"`
	DietaryRecommendations Dietary         `json:"dietaryRecommendations"`
	HomeRemedies           []string        `json:"homeRemedies"`
}

// parseAnalysis strictly parses the model reply. A reply that is not
// valid JSON yields a degraded but well-formed analysis carrying the
// raw text instead of an error.
func parseAnalysis(text string) (analysis, bool) {
	cleaned := genai.StripCodeFences(text)

	var a analysis
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		return fallbackAnalysis(cleaned), false
	}
	normalize(&a)
	return a, true
}

func fallbackAnalysis(text string) analysis {
	return analysis{
		Summary: Summary{
			English:   truncate(text, fallbackSummaryLimit),
			RomanUrdu: fallbackRomanUrdu,
		},
		AbnormalValues:  []AbnormalValue{},
		DoctorQuestions: []string{"Please consult your doctor about this report"},
		DietaryRecommendations: Dietary{
			FoodsToAvoid:     []string{},
			RecommendedFoods: []string{},
		},
		HomeRemedies: []string{},
	}
}

// normalize replaces nil slices so persisted insights always carry
// empty lists rather than nulls.
func normalize(a *analysis) {
	if a.AbnormalValues == nil {
		a.AbnormalValues = []AbnormalValue{}
	}
	if a.DoctorQuestions == nil {
		a.DoctorQuestions = []string{}
	}
	if a.DietaryRecommendations.FoodsToAvoid == nil {
		a.DietaryRecommendations.FoodsToAvoid = []string{}
	}
	if a.DietaryRecommendations.RecommendedFoods == nil {
		a.DietaryRecommendations.RecommendedFoods = []string{}
	}
	if a.HomeRemedies == nil {
		a.HomeRemedies = []string{}
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
