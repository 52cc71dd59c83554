// Package validate holds the input rules enforced before any identity
// mutation: email shape and minimum password length.
package validate

import (
	"regexp"

	"socuser/internal/domain"
)

// MinPasswordLength is the shortest password accepted.
const MinPasswordLength = 6

// emailPattern accepts letters, digits and ._%+- in the local part, a
// letters/digits/dot/hyphen domain, and an alphabetic TLD of length >= 2.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Email checks that the address matches the accepted email shape.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return domain.ErrValidation(domain.FieldEmail, "invalid email address %q", email)
	}
	return nil
}

// Password checks the minimum length rule. No complexity rules apply.
func Password(password string) error {
	if len(password) < MinPasswordLength {
		return domain.ErrValidation(domain.FieldPassword,
			"password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
