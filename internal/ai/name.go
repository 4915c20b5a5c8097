package ai

import (
	"errors"
	"strings"
)

// Name is a preferred name pulled out of a reply such as "call me Sam".
type Name struct {
	Name           string `json:"name"`
	Confidence     string `json:"confidence"`
	Acknowledgment string `json:"acknowledgment"`
}

var nameQuery = Query[string, Name]{
	Name: "name",
	Build: func(text string) Prompt {
		return Prompt{
			System: "Someone was asked what they would like to be called. Extract the name they gave.\n\n" +
				`Answer with a single JSON object: {"name": "<the name only>", ` +
				`"confidence": "low" | "medium" | "high", ` +
				`"acknowledgment": "<a short warm greeting that uses the name>"}.`,
			User: text,
		}
	},
	Check: func(n *Name) error {
		n.Name = strings.TrimSpace(n.Name)
		if n.Name == "" {
			return errors.New("empty name")
		}
		return nil
	},
	Fallback: func(text string) Name {
		return Name{Name: strings.TrimSpace(text), Confidence: ConfidenceLow}
	},
}
