package bot

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/remindbot/internal/ai"
	"github.com/example/remindbot/internal/classify"
	"github.com/example/remindbot/internal/onboarding"
	"github.com/example/remindbot/pkg/models"
)

const apologyText = "😔 Sorry, something went wrong on my side. Please try again in a moment."

func byTone(p models.Personality, calm, direct, cheerful string) string {
	switch p {
	case models.PersonalityDirect:
		return direct
	case models.PersonalityCheerful:
		return cheerful
	default:
		return calm
	}
}

func confirmText(p models.Personality, l classify.Label, task, display string) string {
	head := byTone(p,
		"All right, I'll gently remind you",
		"Done. Reminder set",
		"Woohoo! Reminder set")
	return fmt.Sprintf("%s %s:\n\n%s %s\n⏰ %s\n\n%s", l.Emoji, head, l.Emoji, task, display, l.Encouragement)
}

func pastTimeText(p models.Personality, task string) string {
	return byTone(p,
		fmt.Sprintf("That time has already passed. Would you like me to remind you to %s a bit later? For example: \"%s in 1 hour\".", task, task),
		fmt.Sprintf("That time is in the past. Try: \"%s tomorrow at 9am\".", task),
		fmt.Sprintf("Oops, that moment already flew by! ⏳ How about \"%s in 1 hour\"?", task))
}

func unresolvedText(p models.Personality, task string) string {
	return byTone(p,
		fmt.Sprintf("I couldn't quite work out when. Could you say it like \"%s at 6pm\" or \"%s tomorrow\"?", task, task),
		fmt.Sprintf("Unclear time. Example: \"%s at 6pm\".", task),
		fmt.Sprintf("Hmm, I didn't catch the time! 🤔 Try \"%s at 6pm\" or \"%s tomorrow\".", task, task))
}

func clarifyText(p models.Personality, intent ai.Intent) string {
	question := intent.ClarifyingQuestion
	if question == "" {
		question = byTone(p,
			fmt.Sprintf("When would you like me to remind you to %s?", intent.Task),
			fmt.Sprintf("When should I remind you to %s?", intent.Task),
			fmt.Sprintf("Ooh, when should I remind you to %s? 😊", intent.Task))
	}
	if intent.SuggestedTime != "" {
		question += fmt.Sprintf("\n\nHow about %s? Just reply with something like \"%s at %s\".",
			intent.SuggestedTime, intent.Task, intent.SuggestedTime)
	}
	return question
}

func recurringText(p models.Personality, intent ai.Intent) string {
	pattern := intent.Recurrence
	if pattern == "" {
		pattern = "repeating"
	}
	return byTone(p,
		fmt.Sprintf("I can't set up %s reminders just yet. I can remind you once though: try \"%s tomorrow at 9am\".", pattern, intent.Task),
		fmt.Sprintf("No %s reminders yet. One-time only: \"%s tomorrow at 9am\".", pattern, intent.Task),
		fmt.Sprintf("%s reminders are coming soon! 🌱 For now I can do one: \"%s tomorrow at 9am\"?", capitalize(pattern), intent.Task))
}

func chatText(p models.Personality, intent ai.Intent) string {
	if intent.Motivation != "" {
		return intent.Motivation
	}
	return byTone(p,
		"I'm here to help you remember things. Tell me what and when, like \"call mom at 6pm\".",
		"Tell me what and when. Example: \"call mom at 6pm\".",
		"I'm your reminder buddy! 🎉 Tell me what and when, like \"call mom at 6pm\"!")
}

func emptyListText(p models.Personality) string {
	return byTone(p,
		"You have no upcoming reminders. Whenever you're ready, try \"take vitamin tomorrow\".",
		"No upcoming reminders. Add one: \"take vitamin tomorrow\".",
		"Your list is empty! ✨ Let's add one: \"take vitamin tomorrow\"!")
}

func listText(list []models.Reminder) string {
	var sb strings.Builder
	sb.WriteString("📋 Your upcoming reminders:\n")
	for i, r := range list {
		fmt.Fprintf(&sb, "\n%d. %s %s\n   ⏰ %s", i+1, classify.Classify(r.Task).Emoji, r.Task, r.LocalDisplay)
	}
	return sb.String()
}

func helpText(p models.Personality, name string) string {
	intro := byTone(p,
		fmt.Sprintf("Here's how I can help, %s. Tell me what to remember and when.", name),
		fmt.Sprintf("%s: send a task with a time.", name),
		fmt.Sprintf("Happy to help, %s! 🙌 Just tell me what and when!", name))
	return intro + "\n\n" + onboarding.UsageExamples
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
