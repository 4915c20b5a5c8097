// Package onboarding walks a new user through name, personality and timezone capture.
//
// Each inbound message drives exactly one step for the user's current stage. Steps
// mutate the user in place and return the reply; persisting the user is the caller's job.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/remindbot/internal/ai"
	"github.com/example/remindbot/internal/timeresolver"
	"github.com/example/remindbot/pkg/models"
)

// ErrComplete is returned when Step is called for a user that already finished onboarding.
var ErrComplete = errors.New("onboarding already complete")

// NameExtractor reads a preferred name out of a reply. It must always return a usable name.
type NameExtractor interface {
	ExtractName(ctx context.Context, text string) ai.Name
}

// TimezoneInferrer guesses a UTC offset from free text.
type TimezoneInferrer interface {
	InferTimezone(ctx context.Context, text string) (ai.Timezone, error)
}

type step func(m *Machine, ctx context.Context, u *models.User, text string) string

var steps = map[models.Stage]step{
	models.StageWelcome:     (*Machine).welcome,
	models.StageName:        (*Machine).name,
	models.StagePersonality: (*Machine).personality,
	models.StageTimezone:    (*Machine).timezone,
}

// Machine is the onboarding state machine.
type Machine struct {
	names NameExtractor
	zones TimezoneInferrer
}

// New returns a Machine backed by the given oracles.
func New(names NameExtractor, zones TimezoneInferrer) *Machine {
	return &Machine{names: names, zones: zones}
}

// Step consumes one message for u's current stage and returns the reply to send.
// The stage either stays put or moves one position forward.
func (m *Machine) Step(ctx context.Context, u *models.User, text string) (string, error) {
	if u.Stage == "" {
		u.Stage = models.StageWelcome
	}
	fn, ok := steps[u.Stage]
	if !ok {
		if u.Stage == models.StageComplete {
			return "", ErrComplete
		}
		return "", fmt.Errorf("unknown onboarding stage %q", u.Stage)
	}

	before := u.Stage
	reply := fn(m, ctx, u, strings.TrimSpace(text))
	if moved := u.Stage.Rank() - before.Rank(); moved < 0 || moved > 1 {
		return "", fmt.Errorf("illegal stage transition %s -> %s", before, u.Stage)
	}
	return reply, nil
}

func (m *Machine) welcome(_ context.Context, u *models.User, _ string) string {
	u.Stage = u.Stage.Next()
	return welcomeText(u.DisplayName)
}

func (m *Machine) name(ctx context.Context, u *models.User, text string) string {
	n := m.names.ExtractName(ctx, text)
	name := n.Name
	if name == "" {
		name = text
	}
	u.PreferredName = &name
	u.Stage = u.Stage.Next()

	ack := n.Acknowledgment
	if ack == "" {
		ack = fmt.Sprintf("Nice to meet you, %s! 😊", name)
	}
	return ack + "\n\n" + personalityMenu
}

func (m *Machine) personality(_ context.Context, u *models.User, text string) string {
	p := ParsePersonality(text)
	u.Personality = &p
	u.Stage = u.Stage.Next()
	return personalityChosen[p] + "\n\n" + timezoneQuestion
}

func (m *Machine) timezone(ctx context.Context, u *models.User, text string) string {
	tz, err := m.zones.InferTimezone(ctx, text)
	if err != nil || !tz.Confident() {
		return timezoneRetry
	}

	offset := tz.Offset
	label := tz.Label
	if label == "" {
		label = timeresolver.ZoneName(offset)
	}
	u.TimezoneOffset = &offset
	u.TimezoneLabel = &label
	u.Stage = u.Stage.Next()

	confirmation := tz.Confirmation
	if confirmation == "" {
		confirmation = fmt.Sprintf("Got it, %s (%s).", label, timeresolver.ZoneName(offset))
	}
	return confirmation + "\n\n" + CompletionText(u.Tone(), u.Name())
}

var personalityKeywords = []struct {
	selector    string
	personality models.Personality
	keywords    []string
}{
	{"1", models.PersonalityCalm, []string{"calm", "gentle", "soft", "relax"}},
	{"2", models.PersonalityDirect, []string{"direct", "short", "brief", "straight"}},
	{"3", models.PersonalityCheerful, []string{"cheerful", "happy", "fun", "upbeat", "energetic"}},
}

// ParsePersonality maps a menu reply to a personality. Unmatched input selects calm.
func ParsePersonality(text string) models.Personality {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, pk := range personalityKeywords {
		if t == pk.selector {
			return pk.personality
		}
	}
	for _, pk := range personalityKeywords {
		for _, kw := range pk.keywords {
			if strings.Contains(t, kw) {
				return pk.personality
			}
		}
	}
	return models.PersonalityCalm
}
