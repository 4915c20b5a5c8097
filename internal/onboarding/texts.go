package onboarding

import (
	"fmt"

	"github.com/example/remindbot/pkg/models"
)

const personalityMenu = `How would you like me to talk to you?

1. Calm 🧘 gentle and soothing
2. Direct 🎯 short and to the point
3. Cheerful 🎉 upbeat and encouraging

Reply with 1, 2 or 3.`

const timezoneQuestion = "Last step: which city or timezone are you in? (for example: London, New York, UTC+3)"

const timezoneRetry = "I couldn't quite place that. Could you tell me your city, country, or your current local time? " +
	"(for example: Berlin, or \"it's 3pm here\")"

var personalityChosen = map[models.Personality]string{
	models.PersonalityCalm:     "Lovely. I'll keep things calm and gentle. 🧘",
	models.PersonalityDirect:   "Got it. Short and direct. 🎯",
	models.PersonalityCheerful: "Yay! Let's keep it fun! 🎉",
}

// UsageExamples lists sample messages for new users.
const UsageExamples = `Try something like:
• call mom at 6pm
• take vitamin tomorrow
• team meeting on friday at 10am
• my reminders`

func welcomeText(displayName string) string {
	greeting := "👋 Hi!"
	if displayName != "" {
		greeting = fmt.Sprintf("👋 Hi %s!", displayName)
	}
	return greeting + " I'm your personal reminder assistant. What would you like me to call you?"
}

// CompletionText is sent when onboarding finishes and when a user asks for help.
func CompletionText(p models.Personality, name string) string {
	var intro string
	switch p {
	case models.PersonalityDirect:
		intro = fmt.Sprintf("All set, %s. Tell me what and when.", name)
	case models.PersonalityCheerful:
		intro = fmt.Sprintf("You're all set, %s! 🎉 I can't wait to help you stay on track!", name)
	default:
		intro = fmt.Sprintf("You're all set, %s. Just tell me what to remember, whenever you're ready.", name)
	}
	return intro + "\n\n" + UsageExamples
}
