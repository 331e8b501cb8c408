package insight

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmate/healthmate/internal/domain/document"
	"github.com/healthmate/healthmate/internal/platform/genai"
	"github.com/healthmate/healthmate/internal/platform/respond"
)

// analysisPrompt asks for a bilingual structured analysis. The model is
// told to return bare JSON; replies are still defensively parsed.
const analysisPrompt = `You are a medical AI assistant. Analyze this medical report and provide a comprehensive analysis in both English and Roman Urdu (Urdu written in English alphabet).

IMPORTANT: RETURN ONLY A SINGLE VALID JSON OBJECT in the exact schema described below. Do NOT include any surrounding explanation, markdown, code fences, or extra text. If you cannot produce JSON, return an empty JSON object {}.

Please provide your response in the following JSON format:

{
  "summary": {
    "english": "Detailed summary in English explaining what this report shows in simple, easy-to-understand language",
    "romanUrdu": "Report ki tafseel Roman Urdu mein (aasan alfaaz mein)"
  },
  "abnormalValues": [
    {
      "parameter": "Test name",
      "value": "Current value",
      "normalRange": "Normal range",
      "severity": "low/high/critical"
    }
  ],
  "doctorQuestions": [
    "Question 1 to ask your doctor",
    "Question 2 to ask your doctor",
    "Question 3 to ask your doctor"
  ],
  "dietaryRecommendations": {
    "foodsToAvoid": ["Food 1", "Food 2", "Food 3"],
    "recommendedFoods": ["Food 1", "Food 2", "Food 3"]
  },
  "homeRemedies": [
    "Home remedy 1",
    "Home remedy 2",
    "Home remedy 3"
  ]
}

Important:
- Identify ALL abnormal values with their severity
- Provide 3-5 practical questions to ask the doctor
- Give specific dietary advice based on the report
- Suggest safe home remedies (clearly mark they are not medical advice)
- Use simple, non-technical language
- Roman Urdu should be natural and conversational

Analyze the medical report now:`

// Analyzer is the slice of the generative AI client the service needs.
type Analyzer interface {
	GenerateContent(ctx context.Context, prompt, mimeType string, document []byte) ([]byte, error)
	FetchDocument(ctx context.Context, url string) ([]byte, error)
}

// DocumentStore is the slice of the document repository the service
// needs: lookups for ownership checks and the analyzed flag.
type DocumentStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*document.Document, error)
	SetAnalyzed(ctx context.Context, id primitive.ObjectID, analyzed bool) error
}

type Service struct {
	insights  Repository
	documents DocumentStore
	ai        Analyzer
	logger    zerolog.Logger
}

func NewService(insights Repository, documents DocumentStore, ai Analyzer, logger zerolog.Logger) *Service {
	return &Service{insights: insights, documents: documents, ai: ai, logger: logger}
}

// Analyze runs the document through the model and persists the result.
// It is idempotent: a document that already has an insight returns it
// untouched, with alreadyAnalyzed set.
func (s *Service) Analyze(ctx context.Context, userID, documentID primitive.ObjectID) (ins *Insight, alreadyAnalyzed bool, err error) {
	doc, err := s.getOwnedDocument(ctx, userID, documentID)
	if err != nil {
		return nil, false, err
	}

	if existing, err := s.insights.FindByDocumentID(ctx, documentID); err == nil {
		return existing, true, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	s.logger.Info().Str("document_id", documentID.Hex()).Str("file", doc.FileName).Msg("starting analysis")

	data, err := s.ai.FetchDocument(ctx, doc.FileURL)
	if err != nil {
		return nil, false, respond.Upstream("error analyzing file", err)
	}

	raw, err := s.ai.GenerateContent(ctx, analysisPrompt, doc.MimeType, data)
	if err != nil {
		return nil, false, respond.Upstream("error analyzing file", err)
	}

	text := genai.ExtractText(raw)
	result, parsed := parseAnalysis(text)
	if !parsed {
		s.logger.Warn().Str("document_id", documentID.Hex()).Msg("model reply was not valid JSON, storing fallback insight")
	}

	insight := &Insight{
		DocumentID:             documentID,
		UserID:                 userID,
		Summary:                result.Summary,
		AbnormalValues:         result.AbnormalValues,
		DoctorQuestions:        result.DoctorQuestions,
		DietaryRecommendations: result.DietaryRecommendations,
		HomeRemedies:           result.HomeRemedies,
		Disclaimer:             DefaultDisclaimer,
		RawResponse:            string(raw),
	}

	if err := s.insights.Create(ctx, insight); err != nil {
		// Lost a concurrent race for the same document: the winner's
		// insight is the canonical one.
		if errors.Is(err, ErrDuplicate) {
			winner, findErr := s.insights.FindByDocumentID(ctx, documentID)
			if findErr != nil {
				return nil, false, findErr
			}
			return winner, true, nil
		}
		return nil, false, err
	}

	if err := s.documents.SetAnalyzed(ctx, documentID, true); err != nil {
		return nil, false, err
	}
	return insight, false, nil
}

// Get returns the insight for a document together with a preview of the
// source file.
func (s *Service) Get(ctx context.Context, userID, documentID primitive.ObjectID) (*Insight, *FilePreview, error) {
	doc, err := s.getOwnedDocument(ctx, userID, documentID)
	if err != nil {
		return nil, nil, err
	}

	insight, err := s.insights.FindByDocumentID(ctx, documentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, respond.NotFound("no insights found. please analyze the file first")
		}
		return nil, nil, err
	}

	thumbnail := doc.Thumbnail
	if thumbnail == "" {
		thumbnail = doc.FileURL
	}
	preview := &FilePreview{
		FileURL:   doc.FileURL,
		Thumbnail: thumbnail,
		FileName:  doc.FileName,
		FileType:  doc.FileType,
	}
	return insight, preview, nil
}

// Delete removes a document's insight and clears its analyzed flag.
func (s *Service) Delete(ctx context.Context, userID, documentID primitive.ObjectID) error {
	if _, err := s.getOwnedDocument(ctx, userID, documentID); err != nil {
		return err
	}

	if err := s.insights.DeleteByDocumentID(ctx, documentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.NotFound("no insights found")
		}
		return err
	}
	return s.documents.SetAnalyzed(ctx, documentID, false)
}

func (s *Service) getOwnedDocument(ctx context.Context, userID, documentID primitive.ObjectID) (*document.Document, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return nil, respond.NotFound("file not found")
		}
		return nil, err
	}
	if doc.UserID != userID {
		return nil, respond.Forbidden("not authorized")
	}
	return doc, nil
}
