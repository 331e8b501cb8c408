package insight

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultDisclaimer is attached to every insight.
const DefaultDisclaimer = "This AI analysis is for informational purposes only and should not be considered medical advice. Please consult with a qualified healthcare professional for proper diagnosis and treatment."

// Insight maps to the insights collection. One insight per document,
// enforced by a unique index on documentId.
type Insight struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocumentID             primitive.ObjectID `bson:"documentId" json:"documentId"`
	UserID                 primitive.ObjectID `bson:"userId" json:"userId"`
	Summary                Summary            `bson:"summary" json:"summary"`
	AbnormalValues         []AbnormalValue    `bson:"abnormalValues" json:"abnormalValues"`
	DoctorQuestions        []string           `bson:"doctorQuestions" json:"doctorQuestions"`
	DietaryRecommendations Dietary            `bson:"dietaryRecommendations" json:"dietaryRecommendations"`
	HomeRemedies           []string           `bson:"homeRemedies" json:"homeRemedies"`
	Disclaimer             string             `bson:"disclaimer" json:"disclaimer"`
	RawResponse            string             `bson:"rawResponse,omitempty" json:"rawResponse,omitempty"`
	AnalysisDate           time.Time          `bson:"analysisDate" json:"analysisDate"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Summary is bilingual: English plus Roman Urdu, Urdu written in the
// Latin alphabet.
type Summary struct {
	English   string `bson:"english" json:"english"`
	RomanUrdu string `bson:"romanUrdu" json:"romanUrdu"`
}

type AbnormalValue struct {
	Parameter   string `bson:"parameter" json:"parameter"`
	Value       string `bson:"value" json:"value"`
	NormalRange string `bson:"normalRange" json:"normalRange"`
	Severity    string `bson:"severity" json:"severity"` // low, high or critical
}

type Dietary struct {
	FoodsToAvoid     []string `bson:"foodsToAvoid" json:"foodsToAvoid"`
	RecommendedFoods []string `bson:"recommendedFoods" json:"recommendedFoods"`
}

// FilePreview accompanies an insight so clients can render the source
// document alongside the analysis.
type FilePreview struct {
	FileURL   string `json:"fileUrl"`
	Thumbnail string `json:"thumbnail"`
	FileName  string `json:"fileName"`
	FileType  string `json:"fileType"`
}
