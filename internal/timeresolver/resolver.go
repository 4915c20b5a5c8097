// Package timeresolver turns a free-form message into an absolute UTC instant in
// the user's fixed timezone offset, and extracts the task text around it.
package timeresolver

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/example/remindbot/internal/classify"
)

// DefaultHour is the local hour used when a message only says "tomorrow".
const DefaultHour = 9

// DisplayLayout renders a local time for users.
const DisplayLayout = "Mon, Jan 2 at 3:04 PM"

// placeholderTask replaces a task that is empty after stripping.
const placeholderTask = "Reminder"

// mergeDistance lets date and clock fragments anywhere in a chat message
// combine into one time, as in "tomorrow call mom at 6pm".
const mergeDistance = 64

var (
	tomorrowWord = regexp.MustCompile(`(?i)\btomorrow\b`)
	// boundary words that start the time clause of a message
	timeClause = regexp.MustCompile(`(?i)\s(at|on|in|tomorrow|today|next|tonight)(\s|$)`)
	// a time phrase opening the message, before the task
	leadingClause = regexp.MustCompile(`(?i)^(?:(?:tomorrow|today|tonight)(?:\s+(?:morning|afternoon|evening))?|at\s+\S+)[\s,]+`)
)

var commandPrefixes = []string{"remind me to", "reminder to", "remind", "remember to"}

// Resolved is a successfully resolved reminder time.
type Resolved struct {
	UTC     time.Time
	Local   time.Time // same instant in the user's fixed offset
	Display string
	Task    string
	Label   classify.Label
}

// Resolver parses natural-language times relative to a clock.
type Resolver struct {
	parser *when.Parser
	clock  *when.Parser // clock-time rules only
	now    func() time.Time
}

// New returns a Resolver using English and language-neutral rules and the wall clock.
func New() *Resolver {
	w := when.New(&rules.Options{Distance: mergeDistance, MatchByOrder: true})
	w.Add(en.All...)
	w.Add(common.All...)

	clock := when.New(nil)
	clock.Add(en.CasualTime(rules.Override), en.Hour(rules.Override), en.HourMinute(rules.Override))
	return &Resolver{parser: w, clock: clock, now: time.Now}
}

// WithClock replaces the resolver's notion of now.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve finds a time in text, interpreting it in a zone offsetHours from UTC.
// It returns nil when no time can be determined.
func (r *Resolver) Resolve(text string, offsetHours float64) *Resolved {
	zone := Zone(offsetHours)
	localNow := r.now().In(zone)

	local, ok := r.parse(text, localNow)
	if !ok && tomorrowWord.MatchString(text) {
		local = time.Date(localNow.Year(), localNow.Month(), localNow.Day()+1, DefaultHour, 0, 0, 0, zone)
		ok = true
	}
	if !ok {
		return nil
	}

	task := ExtractTask(text)
	return &Resolved{
		UTC:     local.UTC(),
		Local:   local,
		Display: local.Format(DisplayLayout),
		Task:    task,
		Label:   classify.Classify(task),
	}
}

// parse runs the generic parser. When the message says "tomorrow" but names no
// clock time anywhere, the match does not count and the default hour applies.
func (r *Resolver) parse(text string, base time.Time) (time.Time, bool) {
	res, err := r.parser.Parse(text, base)
	if err != nil || res == nil {
		return time.Time{}, false
	}
	if tomorrowWord.MatchString(text) && !r.hasClock(text, base) {
		return time.Time{}, false
	}
	return res.Time, true
}

func (r *Resolver) hasClock(text string, base time.Time) bool {
	res, err := r.clock.Parse(text, base)
	return err == nil && res != nil
}

// ExtractTask cuts the time clause and any leading command phrase from a message.
func ExtractTask(text string) string {
	task := strings.TrimSpace(text)
	for loc := leadingClause.FindStringIndex(task); loc != nil; loc = leadingClause.FindStringIndex(task) {
		task = task[loc[1]:]
	}
	if loc := timeClause.FindStringIndex(task); loc != nil {
		task = task[:loc[0]]
	}
	task = strings.TrimSpace(task)

	lower := strings.ToLower(task)
	for _, p := range commandPrefixes {
		if strings.HasPrefix(lower, p) {
			task = strings.TrimSpace(task[len(p):])
			break
		}
	}
	if task == "" {
		return placeholderTask
	}
	return task
}

// Zone returns a fixed zone for an offset in hours. Offsets are stored once at
// onboarding and never adjusted for daylight saving.
func Zone(offsetHours float64) *time.Location {
	seconds := int(math.Round(offsetHours * 3600))
	return time.FixedZone(ZoneName(offsetHours), seconds)
}

// ZoneName formats an offset as UTC+3, UTC-4:30 and so on.
func ZoneName(offsetHours float64) string {
	minutes := int(math.Round(offsetHours * 60))
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("UTC%s%d", sign, minutes/60)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, minutes/60, minutes%60)
}
