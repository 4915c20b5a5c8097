package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		task string
		want Category
	}{
		{"call mom about doctor appointment", Family},
		{"Team MEETING with design", Meeting},
		{"take vitamin", Health},
		{"gym session", Workout},
		{"send the weekly report", Work},
		{"buy milk", Shopping},
		{"water plants", General},
		{"something entirely different", General},
		{"", General},
	}
	for _, tt := range tests {
		t.Run(tt.task, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.task).Category)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	first := Classify("dentist then gym")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify("dentist then gym"))
	}
	assert.Equal(t, Health, first.Category)
}

func TestClassify_DefaultLabelIsComplete(t *testing.T) {
	l := Classify("xyz")
	assert.NotEmpty(t, l.Emoji)
	assert.NotEmpty(t, l.Encouragement)
	assert.NotEmpty(t, l.Delivery)
}
