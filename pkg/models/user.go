package models

import "time"

// Stage is a user's position in the onboarding sequence.
type Stage string

const (
	StageWelcome     Stage = "welcome"
	StageName        Stage = "name"
	StagePersonality Stage = "personality"
	StageTimezone    Stage = "timezone"
	StageComplete    Stage = "complete"
)

var stageOrder = []Stage{StageWelcome, StageName, StagePersonality, StageTimezone, StageComplete}

// Rank returns the position of the stage in the onboarding order, or -1 for unknown values.
func (s Stage) Rank() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the stage that directly follows s. StageComplete is terminal.
func (s Stage) Next() Stage {
	r := s.Rank()
	if r < 0 || r == len(stageOrder)-1 {
		return s
	}
	return stageOrder[r+1]
}

// Personality selects the tone of every reply sent to a user.
type Personality string

const (
	PersonalityCalm     Personality = "calm"
	PersonalityDirect   Personality = "direct"
	PersonalityCheerful Personality = "cheerful"
)

// Valid reports whether p is one of the known personalities.
func (p Personality) Valid() bool {
	switch p {
	case PersonalityCalm, PersonalityDirect, PersonalityCheerful:
		return true
	}
	return false
}

// User represents a person talking to the assistant over the messaging channel
type User struct {
	ID             string       `json:"id" db:"id" bson:"_id"`                                  // Opaque sender identifier from the transport
	DisplayName    string       `json:"display_name" db:"display_name" bson:"display_name"`     // As reported by the transport
	PreferredName  *string      `json:"preferred_name" db:"preferred_name" bson:"preferred_name"`
	Personality    *Personality `json:"personality" db:"personality" bson:"personality"`
	TimezoneLabel  *string      `json:"timezone_label" db:"timezone_label" bson:"timezone_label"`
	TimezoneOffset *float64     `json:"timezone_offset" db:"timezone_offset" bson:"timezone_offset"` // Hours from UTC, may be fractional
	Stage          Stage        `json:"stage" db:"stage" bson:"stage"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at" bson:"updated_at"`
}

// Name returns the preferred name if captured, otherwise the display name.
func (u *User) Name() string {
	if u.PreferredName != nil && *u.PreferredName != "" {
		return *u.PreferredName
	}
	return u.DisplayName
}

// Tone returns the selected personality, defaulting to calm.
func (u *User) Tone() Personality {
	if u.Personality != nil && u.Personality.Valid() {
		return *u.Personality
	}
	return PersonalityCalm
}

// Offset returns the stored timezone offset in hours, or 0 when it is not set.
func (u *User) Offset() float64 {
	if u.TimezoneOffset == nil {
		return 0
	}
	return *u.TimezoneOffset
}

// Onboarded reports whether the user finished the setup sequence.
func (u *User) Onboarded() bool {
	return u.Stage == StageComplete
}
