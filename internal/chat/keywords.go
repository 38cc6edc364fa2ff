package chat

import "strings"

var (
	jobKeywords      = []string{"job", "position", "vacancy", "role", "opportunity", "career", "hiring"}
	locationKeywords = []string{"location", "city", "remote", "onsite", "hybrid", "in", "at"}
	skillKeywords    = []string{"skill", "technology", "language", "framework", "experience", "expertise"}
)

// Keywords holds coarse topic flags for one message.
type Keywords struct {
	IsJobQuery  bool
	HasLocation bool
	HasSkills   bool
}

// ExtractKeywords flags a message by plain substring containment against the
// fixed vocabularies, so "hiring" also fires inside "rehiring".
func ExtractKeywords(message string) Keywords {
	lower := strings.ToLower(message)
	return Keywords{
		IsJobQuery:  containsAny(lower, jobKeywords...),
		HasLocation: containsAny(lower, locationKeywords...),
		HasSkills:   containsAny(lower, skillKeywords...),
	}
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
