package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/remindbot/pkg/models"
)

// Intent is the structured reading of a user message.
type Intent struct {
	IsTask                bool   `json:"is_task"`
	Task                  string `json:"task"`
	HasTime               bool   `json:"has_time"`
	TimePhrase            string `json:"time_phrase"`
	IsRecurring           bool   `json:"is_recurring"`
	Recurrence            string `json:"recurrence"`
	SuggestedTime         string `json:"suggested_time"`
	NeedsTimeConfirmation bool   `json:"needs_time_confirmation"`
	Motivation            string `json:"motivation"`
	ClarifyingQuestion    string `json:"clarifying_question"`
}

// IntentRequest is a message plus the personality that should flavor the answer.
type IntentRequest struct {
	Text        string
	Personality models.Personality
}

var styles = map[models.Personality]string{
	models.PersonalityCalm:     "Speak in a gentle, soothing and patient tone. Keep sentences soft and reassuring.",
	models.PersonalityDirect:   "Be brief and to the point. No filler, no small talk, just the essentials.",
	models.PersonalityCheerful: "Be upbeat, warm and enthusiastic. Light encouragement and the odd exclamation mark are welcome.",
}

// Style returns the tone directive for a personality, calm for unknown values.
func Style(p models.Personality) string {
	if s, ok := styles[p]; ok {
		return s
	}
	return styles[models.PersonalityCalm]
}

var askWhatToRemember = map[models.Personality]string{
	models.PersonalityCalm:     "I'm here whenever you need me. What would you like me to remember for you?",
	models.PersonalityDirect:   "What should I remind you about, and when?",
	models.PersonalityCheerful: "I'm all ears! What would you like me to remind you about? 😊",
}

const intentExamples = `Short commands are common. Examples:
- "mom check at 3pm" -> {"is_task": true, "task": "check on mom", "has_time": true, "time_phrase": "3pm"}
- "vitamin morning" -> {"is_task": true, "task": "take vitamin", "has_time": false, "suggested_time": "8am", "needs_time_confirmation": true}
- "water plants weekly" -> {"is_task": true, "task": "water plants", "is_recurring": true, "recurrence": "weekly"}
- "how are you?" -> {"is_task": false, "motivation": "<a short friendly reply>"}`

const intentSchema = `Answer with a single JSON object with these keys:
is_task (bool), task (string), has_time (bool), time_phrase (string), is_recurring (bool),
recurrence (string), suggested_time (string), needs_time_confirmation (bool),
motivation (string, one short line in the requested tone), clarifying_question (string, optional).`

var intentQuery = Query[IntentRequest, Intent]{
	Name: "intent",
	Build: func(r IntentRequest) Prompt {
		return Prompt{
			System: strings.Join([]string{
				"You read messages sent to a personal reminder assistant and decide whether they ask for a reminder.",
				"Tone: " + Style(r.Personality),
				intentExamples,
				intentSchema,
			}, "\n\n"),
			User: r.Text,
		}
	},
	Check: func(i *Intent) error {
		i.Task = strings.TrimSpace(i.Task)
		if i.IsTask && i.Task == "" {
			return errors.New("task flagged without task text")
		}
		return nil
	},
	Fallback: func(r IntentRequest) Intent {
		return Intent{Motivation: fallbackPrompt(r.Personality)}
	},
}

func fallbackPrompt(p models.Personality) string {
	if s, ok := askWhatToRemember[p]; ok {
		return s
	}
	return askWhatToRemember[models.PersonalityCalm]
}

// String is used in logs.
func (i Intent) String() string {
	return fmt.Sprintf("task=%t recurring=%t has_time=%t confirm=%t %q @ %q",
		i.IsTask, i.IsRecurring, i.HasTime, i.NeedsTimeConfirmation, i.Task, i.TimePhrase)
}
