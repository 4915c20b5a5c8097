package ai

import (
	"fmt"
	"strings"
	"time"
)

// Confidence tiers reported by the timezone query.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Timezone is an inferred fixed UTC offset.
type Timezone struct {
	Offset       float64 `json:"offset"`
	Label        string  `json:"label"`
	Confidence   string  `json:"confidence"`
	Confirmation string  `json:"confirmation"`
}

// Confident reports whether the inference is above the lowest tier.
func (t Timezone) Confident() bool {
	return t.Confidence == ConfidenceMedium || t.Confidence == ConfidenceHigh
}

// TimezoneRequest is the user's answer and the current instant, which lets the
// model reason from a stated local time.
type TimezoneRequest struct {
	Text string
	Now  time.Time
}

var timezoneQuery = Query[TimezoneRequest, Timezone]{
	Name: "timezone",
	Build: func(r TimezoneRequest) Prompt {
		return Prompt{
			System: "You infer a person's timezone from what they write: a city, country, timezone name, " +
				"or their current local time. The current UTC time is " + r.Now.Format(time.RFC3339) + ".\n\n" +
				`Answer with a single JSON object: {"offset": <hours from UTC, may be fractional>, ` +
				`"label": "<city or timezone name>", "confidence": "low" | "medium" | "high", ` +
				`"confirmation": "<one short sentence confirming the timezone>"}. ` +
				`Use "low" when the text does not identify a place or time.`,
			User: r.Text,
		}
	},
	Check: func(t *Timezone) error {
		t.Confidence = strings.ToLower(strings.TrimSpace(t.Confidence))
		switch t.Confidence {
		case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		default:
			return fmt.Errorf("unknown confidence %q", t.Confidence)
		}
		if t.Offset < -12 || t.Offset > 14 {
			return fmt.Errorf("offset %v out of range", t.Offset)
		}
		t.Label = strings.TrimSpace(t.Label)
		return nil
	},
}
