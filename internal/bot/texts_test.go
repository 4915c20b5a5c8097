package bot

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/example/remindbot/internal/ai"
	"github.com/example/remindbot/pkg/models"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"weekly", "Weekly"},
		{"", ""},
		{"éach monday", "Éach monday"},
		{"ежедневно", "Ежедневно"},
		{"7 days", "7 days"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := capitalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestRecurringText_MultibytePattern(t *testing.T) {
	got := recurringText(models.PersonalityCheerful, ai.Intent{Task: "stretch", Recurrence: "ежедневно"})
	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, "Ежедневно reminders")
}
