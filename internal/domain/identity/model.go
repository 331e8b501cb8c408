package identity

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User maps to the users collection. The password hash never leaves the
// API surface.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName         string             `bson:"fullName" json:"fullName"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	DateOfBirth      time.Time          `bson:"dateOfBirth" json:"dateOfBirth"`
	Gender           string             `bson:"gender" json:"gender"`
	PhoneNumber      string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	EmergencyContact *EmergencyContact  `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type EmergencyContact struct {
	Name         string `bson:"name" json:"name"`
	PhoneNumber  string `bson:"phoneNumber" json:"phoneNumber"`
	Relationship string `bson:"relationship,omitempty" json:"relationship,omitempty"`
}

// Summary is the trimmed user representation returned from register and
// login.
type Summary struct {
	ID          primitive.ObjectID `json:"id"`
	FullName    string             `json:"fullName"`
	Email       string             `json:"email"`
	DateOfBirth time.Time          `json:"dateOfBirth"`
	Gender      string             `json:"gender"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether the address has a plausible mailbox shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail lowercases and trims an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Age returns full years elapsed between dob and now.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// ParseDateOfBirth accepts a calendar date or a full timestamp.
func ParseDateOfBirth(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
