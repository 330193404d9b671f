package user

import (
	"regexp"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/validation"
)

// RegisterInput is a normalized registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is a normalized login request.
type LoginInput struct {
	Email    string
	Password string
}

const bodyNotObject = "Request body must be a JSON object"

var (
	namePattern = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ .,'\-]+$`)
	nameLetter  = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ]`)
)

func nameRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "Name is required",
		Invalid:  "Name must be a string",
	}).Trim().
		Min(2, "Name must be at least 2 characters").
		Max(80, "Name must be at most 80 characters").
		Match(namePattern, "Name can only contain letters, spaces, dots, commas, apostrophes and hyphens").
		Refine(nameLetter.MatchString, "Name must contain at least one letter").
		CollapseSpaces()
}

func emailRule() *validation.StringRule {
	return validation.String(validation.Messages{
		Required: "Email is required",
		Invalid:  "Email must be a string",
	}).Trim().
		Max(254, "Email must be at most 254 characters").
		Email("Please provide a valid email address").
		Lowercase()
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isSymbol(r rune) bool {
	return !isLower(r) && !isUpper(r) && !isDigit(r)
}

var passwordMessages = validation.Messages{
	Required: "Password is required",
	Invalid:  "Password must be a string",
}

// bcrypt hashes at most this many bytes and rejects longer input.
const maxPasswordBytes = 72

// strongPasswordRule applies at registration. Every missing character class
// is its own issue.
func strongPasswordRule() *validation.StringRule {
	return validation.String(passwordMessages).
		Min(8, "Password must be at least 8 characters").
		Max(64, "Password must be at most 64 characters").
		MaxBytes(maxPasswordBytes, "Password is too long, use fewer accented or special characters").
		Refine(validation.HasNoSpace, "Password must not contain spaces").
		Refine(validation.ContainsAny(isLower), "Password must contain at least one lowercase letter").
		Refine(validation.ContainsAny(isUpper), "Password must contain at least one uppercase letter").
		Refine(validation.ContainsAny(isDigit), "Password must contain at least one digit").
		Refine(validation.ContainsAny(isSymbol), "Password must contain at least one special character")
}

// loginPasswordRule only bounds the size: stored passwords may predate the
// current strength rules.
func loginPasswordRule() *validation.StringRule {
	return validation.String(passwordMessages).
		Min(1, "Password is required").
		Max(128, "Password is too long")
}

// ParseRegister validates a decoded registration body.
func ParseRegister(raw any) (RegisterInput, validation.Issues) {
	o := validation.Root(raw, bodyNotObject)
	in := RegisterInput{
		Name:     o.String("name", nameRule()),
		Email:    o.String("email", emailRule()),
		Password: o.String("password", strongPasswordRule()),
	}
	return in, o.Issues()
}

// ParseLogin validates a decoded login body.
func ParseLogin(raw any) (LoginInput, validation.Issues) {
	o := validation.Root(raw, bodyNotObject)
	in := LoginInput{
		Email:    o.String("email", emailRule()),
		Password: o.String("password", loginPasswordRule()),
	}
	return in, o.Issues()
}
