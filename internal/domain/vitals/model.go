package vitals

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry maps to the vitals collection. Each measurement group is
// optional; an entry needs at least one.
type Entry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Date          time.Time          `bson:"date" json:"date"`
	BloodPressure *BloodPressure     `bson:"bloodPressure,omitempty" json:"bloodPressure,omitempty"`
	BloodSugar    *BloodSugar        `bson:"bloodSugar,omitempty" json:"bloodSugar,omitempty"`
	Weight        *Measurement       `bson:"weight,omitempty" json:"weight,omitempty"`
	Temperature   *Measurement       `bson:"temperature,omitempty" json:"temperature,omitempty"`
	HeartRate     *Measurement       `bson:"heartRate,omitempty" json:"heartRate,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type BloodPressure struct {
	Systolic  float64 `bson:"systolic" json:"systolic"`
	Diastolic float64 `bson:"diastolic" json:"diastolic"`
	Unit      string  `bson:"unit" json:"unit"`
}

type BloodSugar struct {
	Value float64 `bson:"value" json:"value"`
	Type  string  `bson:"type" json:"type"`
	Unit  string  `bson:"unit" json:"unit"`
}

type Measurement struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit" json:"unit"`
}

var validSugarTypes = map[string]bool{
	"fasting":      true,
	"random":       true,
	"postprandial": true,
}

const maxNotesLength = 500

// HasMeasurement reports whether at least one vital group is present.
func (e *Entry) HasMeasurement() bool {
	return e.BloodPressure != nil || e.BloodSugar != nil || e.Weight != nil ||
		e.Temperature != nil || e.HeartRate != nil
}

// ApplyDefaults fills in standard units on measurements that omit them.
func (e *Entry) ApplyDefaults() {
	if e.BloodPressure != nil && e.BloodPressure.Unit == "" {
		e.BloodPressure.Unit = "mmHg"
	}
	if e.BloodSugar != nil && e.BloodSugar.Unit == "" {
		e.BloodSugar.Unit = "mg/dL"
	}
	if e.Weight != nil && e.Weight.Unit == "" {
		e.Weight.Unit = "kg"
	}
	if e.Temperature != nil && e.Temperature.Unit == "" {
		e.Temperature.Unit = "F"
	}
	if e.HeartRate != nil && e.HeartRate.Unit == "" {
		e.HeartRate.Unit = "bpm"
	}
}

// Validate checks every present measurement against its physiological
// range and returns one message per violation.
func (e *Entry) Validate() []string {
	var problems []string

	if bp := e.BloodPressure; bp != nil {
		problems = appendRange(problems, "blood pressure systolic", bp.Systolic, 70, 250)
		problems = appendRange(problems, "blood pressure diastolic", bp.Diastolic, 40, 150)
	}
	if bs := e.BloodSugar; bs != nil {
		problems = appendRange(problems, "blood sugar", bs.Value, 20, 600)
		if bs.Type != "" && !validSugarTypes[bs.Type] {
			problems = append(problems, "blood sugar type must be fasting, random or postprandial")
		}
	}
	if w := e.Weight; w != nil {
		problems = appendRange(problems, "weight", w.Value, 20, 300)
	}
	if tp := e.Temperature; tp != nil {
		problems = appendRange(problems, "temperature", tp.Value, 95, 110)
	}
	if hr := e.HeartRate; hr != nil {
		problems = appendRange(problems, "heart rate", hr.Value, 40, 200)
	}
	if len(e.Notes) > maxNotesLength {
		problems = append(problems, fmt.Sprintf("notes must be at most %d characters", maxNotesLength))
	}

	return problems
}

func appendRange(problems []string, name string, value, min, max float64) []string {
	if value < min || value > max {
		problems = append(problems, fmt.Sprintf("%s must be between %g and %g", name, min, max))
	}
	return problems
}
