package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"socuser/internal/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid password", err: domain.ErrValidation(domain.FieldPassword, "too short"), want: 2},
		{name: "invalid email", err: domain.ErrValidation(domain.FieldEmail, "malformed"), want: 3},
		{name: "wrapped validation", err: fmt.Errorf("add user: %w", domain.ErrValidation(domain.FieldPassword, "too short")), want: 2},
		{name: "not found", err: domain.ErrNotFound("User not found"), want: 1},
		{name: "conflict", err: domain.ErrConflict("User already exists"), want: 1},
		{name: "service error", err: domain.ErrService(500, "identity service error"), want: 1},
		{name: "environment error", err: domain.ErrEnvironment("credential database missing"), want: 1},
		{name: "generic error", err: errors.New("anything else"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
