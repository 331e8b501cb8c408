package identity

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthmate/healthmate/internal/platform/auth"
	"github.com/healthmate/healthmate/internal/platform/respond"
)

const minimumAge = 13

type Service struct {
	users  Repository
	tokens *auth.TokenIssuer
	now    func() time.Time
}

func NewService(users Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens, now: time.Now}
}

type RegisterInput struct {
	FullName         string            `json:"fullName"`
	Email            string            `json:"email"`
	Password         string            `json:"password"`
	DateOfBirth      string            `json:"dateOfBirth"`
	Gender           string            `json:"gender"`
	PhoneNumber      string            `json:"phoneNumber"`
	EmergencyContact *EmergencyContact `json:"emergencyContact"`
}

type AuthResult struct {
	Token string  `json:"token"`
	User  Summary `json:"user"`
}

// Register creates a user account and returns a signed access token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.FullName == "" || in.Email == "" || in.Password == "" || in.DateOfBirth == "" || in.Gender == "" {
		return nil, respond.Validation("please provide all required fields")
	}

	email := NormalizeEmail(in.Email)
	if !ValidEmail(email) {
		return nil, respond.Validation("please provide a valid email")
	}
	if len(in.Password) < 8 {
		return nil, respond.Validation("password must be at least 8 characters")
	}

	dob, err := ParseDateOfBirth(in.DateOfBirth)
	if err != nil {
		return nil, respond.Validation("please provide a valid date of birth")
	}
	if Age(dob, s.now()) < minimumAge {
		return nil, respond.Validation("you must be at least 13 years old")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, respond.Conflict("email already registered")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		FullName:         in.FullName,
		Email:            email,
		Password:         string(hash),
		DateOfBirth:      dob,
		Gender:           in.Gender,
		PhoneNumber:      in.PhoneNumber,
		EmergencyContact: in.EmergencyContact,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index can still catch a concurrent registration
		// after the lookup above passed.
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, respond.Conflict("email already registered")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Summary()}, nil
}

// Login verifies credentials. The failure message is identical for an
// unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, respond.Validation("please provide email and password")
	}
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return nil, respond.Validation("please provide a valid email")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, respond.Auth("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, respond.Auth("invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Summary()}, nil
}

// Me returns the full profile of the authenticated user.
func (s *Service) Me(ctx context.Context, userID primitive.ObjectID) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, respond.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	FullName         string            `json:"fullName"`
	PhoneNumber      string            `json:"phoneNumber"`
	EmergencyContact *EmergencyContact `json:"emergencyContact"`
}

// UpdateProfile applies the provided fields, leaving absent ones
// untouched. Email, password and date of birth are not editable here.
func (s *Service) UpdateProfile(ctx context.Context, userID primitive.ObjectID, in UpdateProfileInput) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, respond.NotFound("user not found")
		}
		return nil, err
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.EmergencyContact != nil {
		user.EmergencyContact = in.EmergencyContact
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
