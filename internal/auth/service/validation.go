package service

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/renewtech/inventory-auth/pkg/authsdk"
)

// Field length bounds for user accounts.
const (
	usernameMinLen  = 2
	usernameMaxLen  = 50
	nameMinLen      = 2
	nameMaxLen      = 30
	roleMinLen      = 2
	roleMaxLen      = 50
	emailMaxLen     = 254
	passwordMinLen  = 10
	passwordSymbols = "!@#$%^&*"
)

// fieldErrors accumulates per-field validation failures so a request is
// reported whole instead of one field at a time.
type fieldErrors map[string]string

func (fe fieldErrors) add(field, msg string) { fe[field] = msg }

func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return authsdk.NewValidationError(fe)
}

func validateUsername(fe fieldErrors, username string) {
	if n := len(username); n < usernameMinLen || n > usernameMaxLen {
		fe.add("username", fmt.Sprintf("must be between %d and %d characters", usernameMinLen, usernameMaxLen))
	}
}

func validateName(fe fieldErrors, field, value string) {
	if n := len(value); n < nameMinLen || n > nameMaxLen {
		fe.add(field, fmt.Sprintf("must be between %d and %d characters", nameMinLen, nameMaxLen))
	}
}

func validateRole(fe fieldErrors, role string) {
	if n := len(role); n < roleMinLen || n > roleMaxLen {
		fe.add("role", fmt.Sprintf("must be between %d and %d characters", roleMinLen, roleMaxLen))
	}
}

func validateEmail(fe fieldErrors, email string) {
	if len(email) == 0 || len(email) > emailMaxLen {
		fe.add("email", "must be a valid email address")
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		fe.add("email", "must be a valid email address")
	}
}

// validatePassword enforces the password policy: at least 10 characters
// with a digit, an uppercase letter, and a symbol from !@#$%^&*.
func validatePassword(fe fieldErrors, password string) {
	var problems []string

	if len(password) < passwordMinLen {
		problems = append(problems, fmt.Sprintf("at least %d characters", passwordMinLen))
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		problems = append(problems, "a digit")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		problems = append(problems, "an uppercase letter")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		problems = append(problems, "a symbol ("+passwordSymbols+")")
	}

	if len(problems) > 0 {
		fe.add("password", "must contain "+strings.Join(problems, ", "))
	}
}
