package chat

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// SlotParser pulls structured values out of free text. Every method reports
// absence through its second return value.
type SlotParser interface {
	Location(message string) (string, bool)
	Salary(message string) (Salary, bool)
	Skill(message string) (string, bool)
}

// Salary is an amount in the smallest currency unit plus the unit it was written in.
type Salary struct {
	Amount int64
	Unit   string
}

var (
	locationPattern = regexp.MustCompile(`(?i)\b(in|at|near)\s+([A-Za-z\s]+)`)
	salaryPattern   = regexp.MustCompile(`(?i)(\d+)\s*(lakh|lac|k|thousand)`)

	salaryMultipliers = map[string]int64{
		"lakh":     100_000,
		"lac":      100_000,
		"k":        1_000,
		"thousand": 1_000,
	}

	knownSkills = []string{"javascript", "python", "react", "node", "java", "developer", "designer", "manager"}
)

// PatternSlots is the literal-pattern SlotParser.
type PatternSlots struct{}

var _ SlotParser = PatternSlots{}

func (PatternSlots) Location(message string) (string, bool) {
	m := locationPattern.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	loc := strings.TrimSpace(m[2])
	return loc, loc != ""
}

func (PatternSlots) Salary(message string) (Salary, bool) {
	m := salaryPattern.FindStringSubmatch(message)
	if m == nil {
		return Salary{}, false
	}
	amount, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Salary{}, false
	}
	unit := strings.ToLower(m[2])
	mul := salaryMultipliers[unit]
	if amount > 0 && amount > math.MaxInt64/mul {
		return Salary{}, false
	}
	return Salary{Amount: amount * mul, Unit: unit}, true
}

func (PatternSlots) Skill(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, s := range knownSkills {
		if strings.Contains(lower, s) {
			return s, true
		}
	}
	return "", false
}
