package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/msomdec/ocean-watch/internal/domain"
)

const (
	MsgNameRequired  = "Name is required."
	MsgEmailRequired = "Email is required."
	MsgEmailInvalid  = "Enter a valid email address."
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// signupRules carries the field constraints. Field order decides the order
// of reported messages.
type signupRules struct {
	Name  string `validate:"required"`
	Email string `validate:"required,contains=@,min=5"`
}

// ValidationError lists every problem found in a signup submission.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid signup: " + strings.Join(e.Messages, " ")
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}

// NormalizeSignup trims every field and lowercases the email.
func NormalizeSignup(in domain.SignupInput) domain.Member {
	return domain.Member{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		City:     strings.TrimSpace(in.City),
		Country:  strings.TrimSpace(in.Country),
		Interest: strings.TrimSpace(in.Interest),
	}
}

// ValidateSignup normalizes the raw form input and checks it. It returns
// either the member ready for storage or all error messages, never both.
func ValidateSignup(in domain.SignupInput) (*domain.Member, []string) {
	member := NormalizeSignup(in)

	err := validate.Struct(signupRules{Name: member.Name, Email: member.Email})
	if err == nil {
		return &member, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable on a programming error in signupRules.
		panic(err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, messageFor(fe))
	}
	return nil, messages
}

func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return MsgNameRequired
	case "Email":
		if fe.Tag() == "required" {
			return MsgEmailRequired
		}
		return MsgEmailInvalid
	}
	return fe.Error()
}
