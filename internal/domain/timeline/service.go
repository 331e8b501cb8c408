package timeline

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmate/healthmate/internal/domain/document"
	"github.com/healthmate/healthmate/internal/domain/vitals"
	"github.com/healthmate/healthmate/internal/platform/respond"
)

const (
	KindDocument = "document"
	KindVital    = "vital"

	defaultLimit = 50
)

// Item is one entry of the merged feed. Payload carries the record
// itself, tagged with the registry it came from.
type Item struct {
	Kind    string      `json:"kind"`
	Date    time.Time   `json:"date"`
	Payload interface{} `json:"payload"`
}

// TypeStat is one bucket of the per-type document count.
type TypeStat struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalDocuments    int64      `json:"totalDocuments"`
	AnalyzedDocuments int64      `json:"analyzedDocuments"`
	VitalEntries      int64      `json:"vitalEntries"`
	DocumentsByType   []TypeStat `json:"documentsByType"`
}

type Service struct {
	documents document.Repository
	vitals    vitals.Repository
}

func NewService(documents document.Repository, vitals vitals.Repository) *Service {
	return &Service{documents: documents, vitals: vitals}
}

// Feed merges the user's documents and vitals into one list sorted
// descending by date. Both registries are queried independently with
// the same date range; on equal dates documents come before vitals.
// totalItems counts everything in range, before truncation to limit.
func (s *Service) Feed(ctx context.Context, userID primitive.ObjectID, startDate, endDate string, limit int64) ([]Item, int64, error) {
	var start, end *time.Time
	if startDate != "" {
		t, err := parseDate(startDate)
		if err != nil {
			return nil, 0, respond.Validation("please provide a valid start date")
		}
		start = &t
	}
	if endDate != "" {
		t, err := parseDate(endDate)
		if err != nil {
			return nil, 0, respond.Validation("please provide a valid end date")
		}
		end = &t
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	docs, totalDocs, err := s.documents.List(ctx, userID, document.ListOptions{
		StartDate: start,
		EndDate:   end,
		SortBy:    "-reportDate",
		Limit:     limit,
	})
	if err != nil {
		return nil, 0, err
	}

	entries, totalVitals, err := s.vitals.List(ctx, userID, vitals.ListOptions{
		StartDate: start,
		EndDate:   end,
		SortBy:    "-date",
		Limit:     limit,
	})
	if err != nil {
		return nil, 0, err
	}

	items := make([]Item, 0, len(docs)+len(entries))
	for _, d := range docs {
		items = append(items, Item{Kind: KindDocument, Date: d.ReportDate, Payload: d})
	}
	for _, e := range entries {
		items = append(items, Item{Kind: KindVital, Date: e.Date, Payload: e})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	if int64(len(items)) > limit {
		items = items[:limit]
	}
	return items, totalDocs + totalVitals, nil
}

// Overview runs the four independent aggregates behind the stats view.
func (s *Service) Overview(ctx context.Context, userID primitive.ObjectID) (*Stats, error) {
	totalDocs, analyzed, err := s.documents.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	vitalEntries, err := s.vitals.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.documents.CountsByType(ctx, userID)
	if err != nil {
		return nil, err
	}

	byType := make([]TypeStat, 0, len(counts))
	for _, c := range counts {
		byType = append(byType, TypeStat{Type: c.FileType, Count: c.Count})
	}

	return &Stats{
		TotalDocuments:    totalDocs,
		AnalyzedDocuments: analyzed,
		VitalEntries:      vitalEntries,
		DocumentsByType:   byType,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
