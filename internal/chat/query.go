package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/suPer8Hu/job-assistant/internal/catalog"
)

// JobCatalog executes catalog searches. Implementations return at most
// catalog.MaxResults jobs, newest first.
type JobCatalog interface {
	Search(ctx context.Context, f catalog.Filter) ([]catalog.Job, error)
}

var (
	searchNoise = regexp.MustCompile(`(?i)\b(jobs?|job|find|search|show|me|for|in|at|near)\b`)
	spaceRun    = regexp.MustCompile(`\s+`)

	fallbackStopWords = map[string]struct{}{
		"show": {}, "me": {}, "find": {}, "search": {}, "for": {},
		"the": {}, "with": {}, "and": {}, "or": {},
	}
)

// Plan is what the query builder decided for one turn and, once executed,
// what the catalog returned.
type Plan struct {
	Intent Intent

	// Searched is false when the intent needs no catalog access or a required
	// slot was missing.
	Searched bool
	Filter   catalog.Filter
	Jobs     []catalog.Job

	// CatalogErr is set when the search failed; Jobs is empty in that case.
	CatalogErr error

	Terms     string
	Location  string
	MinSalary int64
	Skill     string
}

type JobQueryBuilder struct {
	catalog        JobCatalog
	slots          SlotParser
	fallbackSearch bool
}

func NewJobQueryBuilder(c JobCatalog, slots SlotParser, fallbackSearch bool) *JobQueryBuilder {
	if slots == nil {
		slots = PatternSlots{}
	}
	return &JobQueryBuilder{catalog: c, slots: slots, fallbackSearch: fallbackSearch}
}

// Build fills in the slots and the catalog filter for an intent without
// touching the catalog.
func (b *JobQueryBuilder) Build(intent Intent, t Turn) Plan {
	p := Plan{Intent: intent}

	switch intent {
	case IntentJobSearch:
		p.Terms = searchTerms(t.Message)
		p.Filter = catalog.Filter{Text: p.Terms}
		p.Searched = true

	case IntentLocationQuery:
		if loc, ok := b.slots.Location(t.Message); ok {
			p.Location = loc
			p.Filter = catalog.Filter{Location: loc}
			p.Searched = true
		}

	case IntentSalaryQuery:
		if s, ok := b.slots.Salary(t.Message); ok {
			floor := s.Amount
			p.MinSalary = floor
			p.Filter = catalog.Filter{MinSalary: &floor}
			p.Searched = true
		}

	case IntentSkillsQuery:
		if skill, ok := b.slots.Skill(t.Message); ok {
			p.Skill = skill
			p.Filter = catalog.Filter{Text: skill}
			p.Searched = true
		}

	case IntentFallback:
		if !b.fallbackSearch {
			break
		}
		if words := contentWords(t.Message); len(words) > 0 {
			p.Terms = strings.Join(words, " ")
			p.Filter = catalog.Filter{Text: p.Terms}
			p.Searched = true
		}
	}
	return p
}

// Execute runs the planned search. Catalog failures degrade to zero results.
func (b *JobQueryBuilder) Execute(ctx context.Context, p Plan) Plan {
	if !p.Searched || b.catalog == nil {
		return p
	}
	jobs, err := b.catalog.Search(ctx, p.Filter)
	if err != nil {
		p.CatalogErr = fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		p.Jobs = nil
		return p
	}
	if len(jobs) > catalog.MaxResults {
		jobs = jobs[:catalog.MaxResults]
	}
	p.Jobs = jobs
	return p
}

// searchTerms drops the filler words of a search request, leaving what the
// user is actually looking for.
func searchTerms(message string) string {
	s := searchNoise.ReplaceAllString(message, "")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

func contentWords(message string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(message)) {
		if utf8.RuneCountInString(w) <= 3 {
			continue
		}
		if _, stop := fallbackStopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}
