package chat

import "strings"

type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentJobSearch     Intent = "job_search"
	IntentLocationQuery Intent = "location_query"
	IntentSalaryQuery   Intent = "salary_query"
	IntentApplyHelp     Intent = "apply_help"
	IntentProfileHelp   Intent = "profile_help"
	IntentSkillsQuery   Intent = "skills_query"
	IntentHelp          Intent = "help"
	IntentThanks        Intent = "thanks"
	IntentGoodbye       Intent = "goodbye"
	IntentFallback      Intent = "fallback"
)

// Turn is everything a rule may look at for one inbound message.
type Turn struct {
	Message string
	Lower   string
	Flags   Keywords
	Context Context
}

// NewTurn normalizes the message once so rules don't have to.
func NewTurn(message string, ctx Context) Turn {
	return Turn{
		Message: message,
		Lower:   strings.ToLower(strings.TrimSpace(message)),
		Flags:   ExtractKeywords(message),
		Context: ctx,
	}
}

func (t Turn) mentions(terms ...string) bool {
	return containsAny(t.Lower, terms...)
}

// Rule is one row of the intent table.
type Rule struct {
	Intent Intent
	Match  func(t Turn) bool
}

// DefaultRules is evaluated top to bottom and the first match wins. The
// categories overlap ("hello, show me jobs" is a greeting), so row order is
// part of the contract.
var DefaultRules = []Rule{
	{IntentGreeting, func(t Turn) bool { return t.mentions("hello", "hi", "hey") }},
	{IntentJobSearch, func(t Turn) bool { return t.Flags.IsJobQuery || t.mentions("show", "find", "search") }},
	{IntentLocationQuery, func(t Turn) bool { return t.Flags.HasLocation || t.mentions("remote", "onsite") }},
	{IntentSalaryQuery, func(t Turn) bool { return t.mentions("salary", "pay", "compensation") }},
	{IntentApplyHelp, func(t Turn) bool { return t.mentions("apply", "application", "submit") }},
	{IntentProfileHelp, func(t Turn) bool { return t.mentions("profile", "resume", "cv") }},
	{IntentSkillsQuery, func(t Turn) bool { return t.mentions("skill", "requirement", "qualification") }},
	{IntentHelp, func(t Turn) bool { return t.mentions("help", "support") }},
	{IntentThanks, func(t Turn) bool { return t.mentions("thank") }},
	{IntentGoodbye, func(t Turn) bool { return t.mentions("bye", "goodbye") }},
}

type IntentResolver struct {
	rules []Rule
}

func NewIntentResolver(rules []Rule) *IntentResolver {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &IntentResolver{rules: rules}
}

// Resolve scans the table and returns IntentFallback when no row matches.
func (r *IntentResolver) Resolve(t Turn) Intent {
	for _, rule := range r.rules {
		if rule.Match(t) {
			return rule.Intent
		}
	}
	return IntentFallback
}
