package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_Order(t *testing.T) {
	assert.Equal(t, StageName, StageWelcome.Next())
	assert.Equal(t, StagePersonality, StageName.Next())
	assert.Equal(t, StageTimezone, StagePersonality.Next())
	assert.Equal(t, StageComplete, StageTimezone.Next())
	assert.Equal(t, StageComplete, StageComplete.Next())
	assert.Equal(t, Stage("bogus"), Stage("bogus").Next())

	assert.Less(t, StageWelcome.Rank(), StageComplete.Rank())
	assert.Equal(t, -1, Stage("").Rank())
}

func TestUser_Defaults(t *testing.T) {
	u := &User{DisplayName: "Samantha"}
	assert.Equal(t, "Samantha", u.Name())
	assert.Equal(t, PersonalityCalm, u.Tone())
	assert.Zero(t, u.Offset())
	assert.False(t, u.Onboarded())

	name := "Sam"
	p := PersonalityCheerful
	off := -4.5
	u = &User{DisplayName: "Samantha", PreferredName: &name, Personality: &p, TimezoneOffset: &off, Stage: StageComplete}
	assert.Equal(t, "Sam", u.Name())
	assert.Equal(t, PersonalityCheerful, u.Tone())
	assert.Equal(t, -4.5, u.Offset())
	assert.True(t, u.Onboarded())

	bad := Personality("grumpy")
	u.Personality = &bad
	assert.Equal(t, PersonalityCalm, u.Tone())
}
