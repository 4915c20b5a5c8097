// Package classify labels a task with a cosmetic category used for emoji and phrasing.
package classify

import "strings"

// Category names a task context.
type Category string

const (
	Family   Category = "family"
	Meeting  Category = "meeting"
	Health   Category = "health"
	Workout  Category = "workout"
	Work     Category = "work"
	Shopping Category = "shopping"
	General  Category = "general"
)

// Label is the presentation attached to a category.
type Label struct {
	Category      Category
	Emoji         string
	Encouragement string // used in confirmations
	Delivery      string // used when the reminder fires
}

type entry struct {
	label    Label
	keywords []string
}

// table order is match priority
var table = []entry{
	{
		label: Label{Family, "👨‍👩‍👧", "Family time is the best time.", "Time to connect with your loved ones"},
		keywords: []string{"mom", "mother", "dad", "father", "family", "sister", "brother", "grandma", "grandpa",
			"kids", "daughter", "wife", "husband", "parents"},
	},
	{
		label:    Label{Meeting, "📅", "You'll be right on time.", "Your meeting is coming up"},
		keywords: []string{"meeting", "meet ", "zoom", "standup", "sync", "interview", "conference", "presentation"},
	},
	{
		label: Label{Health, "💊", "Taking care of yourself matters.", "Time to take care of your health"},
		keywords: []string{"doctor", "dentist", "medicine", "medication", "pill", "vitamin", "pharmacy",
			"appointment", "therapy", "checkup"},
	},
	{
		label:    Label{Workout, "💪", "Your body will thank you.", "Time to get moving"},
		keywords: []string{"gym", "workout", "run", "exercise", "yoga", "training", "walk", "swim", "stretch"},
	},
	{
		label:    Label{Work, "💼", "You've got this.", "Time to get it done"},
		keywords: []string{"work", "email", "report", "deadline", "project", "client", "boss", "submit", "invoice"},
	},
	{
		label:    Label{Shopping, "🛒", "Your list is in good hands.", "Time to pick things up"},
		keywords: []string{"buy", "shop", "grocer", "store", "milk", "bread", "market", "order"},
	},
}

var general = Label{General, "⏰", "I'll make sure you don't forget.", "Here's your reminder"}

// Classify returns the label of the first category whose keywords occur in task.
// Tasks matching nothing get the general label.
func Classify(task string) Label {
	lower := strings.ToLower(task)
	for _, e := range table {
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				return e.label
			}
		}
	}
	return general
}
