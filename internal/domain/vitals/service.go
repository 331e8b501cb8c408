package vitals

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmate/healthmate/internal/platform/respond"
)

type Service struct {
	vitals Repository
}

func NewService(vitals Repository) *Service {
	return &Service{vitals: vitals}
}

type AddInput struct {
	Date          string         `json:"date"`
	BloodPressure *BloodPressure `json:"bloodPressure"`
	BloodSugar    *BloodSugar    `json:"bloodSugar"`
	Weight        *Measurement   `json:"weight"`
	Temperature   *Measurement   `json:"temperature"`
	HeartRate     *Measurement   `json:"heartRate"`
	Notes         string         `json:"notes"`
}

// Add records a vitals entry after range-checking every measurement.
func (s *Service) Add(ctx context.Context, userID primitive.ObjectID, in AddInput) (*Entry, error) {
	if in.Date == "" {
		return nil, respond.Validation("date is required")
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, respond.Validation("please provide a valid date")
	}

	entry := &Entry{
		UserID:        userID,
		Date:          date,
		BloodPressure: in.BloodPressure,
		BloodSugar:    in.BloodSugar,
		Weight:        in.Weight,
		Temperature:   in.Temperature,
		HeartRate:     in.HeartRate,
		Notes:         in.Notes,
	}

	if !entry.HasMeasurement() {
		return nil, respond.Validation("please provide at least one vital measurement")
	}
	if problems := entry.Validate(); len(problems) > 0 {
		return nil, respond.Validation("validation failed", problems...)
	}
	entry.ApplyDefaults()

	if err := s.vitals.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns a page of the user's vitals, optionally bounded by date.
func (s *Service) List(ctx context.Context, userID primitive.ObjectID, startDate, endDate string, opts ListOptions) ([]*Entry, int64, error) {
	if startDate != "" {
		t, err := parseDate(startDate)
		if err != nil {
			return nil, 0, respond.Validation("please provide a valid start date")
		}
		opts.StartDate = &t
	}
	if endDate != "" {
		t, err := parseDate(endDate)
		if err != nil {
			return nil, 0, respond.Validation("please provide a valid end date")
		}
		opts.EndDate = &t
	}
	return s.vitals.List(ctx, userID, opts)
}

// Get returns one entry, enforcing ownership.
func (s *Service) Get(ctx context.Context, userID, id primitive.ObjectID) (*Entry, error) {
	return s.getOwned(ctx, userID, id)
}

type UpdateInput struct {
	Date          string         `json:"date"`
	BloodPressure *BloodPressure `json:"bloodPressure"`
	BloodSugar    *BloodSugar    `json:"bloodSugar"`
	Weight        *Measurement   `json:"weight"`
	Temperature   *Measurement   `json:"temperature"`
	HeartRate     *Measurement   `json:"heartRate"`
	// Notes is a pointer so an explicit empty string clears the field
	// while an absent one leaves it untouched.
	Notes *string `json:"notes"`
}

// Update applies provided fields to an existing entry. Measurements are
// replaced wholesale when present.
func (s *Service) Update(ctx context.Context, userID, id primitive.ObjectID, in UpdateInput) (*Entry, error) {
	entry, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Date != "" {
		date, err := parseDate(in.Date)
		if err != nil {
			return nil, respond.Validation("please provide a valid date")
		}
		entry.Date = date
	}
	if in.BloodPressure != nil {
		entry.BloodPressure = in.BloodPressure
	}
	if in.BloodSugar != nil {
		entry.BloodSugar = in.BloodSugar
	}
	if in.Weight != nil {
		entry.Weight = in.Weight
	}
	if in.Temperature != nil {
		entry.Temperature = in.Temperature
	}
	if in.HeartRate != nil {
		entry.HeartRate = in.HeartRate
	}
	if in.Notes != nil {
		entry.Notes = *in.Notes
	}

	if problems := entry.Validate(); len(problems) > 0 {
		return nil, respond.Validation("validation failed", problems...)
	}
	entry.ApplyDefaults()

	if err := s.vitals.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes one entry, enforcing ownership.
func (s *Service) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.vitals.Delete(ctx, id)
}

func (s *Service) getOwned(ctx context.Context, userID, id primitive.ObjectID) (*Entry, error) {
	entry, err := s.vitals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, respond.NotFound("vitals not found")
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, respond.Forbidden("not authorized")
	}
	return entry, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
