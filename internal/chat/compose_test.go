package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/suPer8Hu/job-assistant/internal/catalog"
)

func testJobs(n int) []catalog.Job {
	out := make([]catalog.Job, 0, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		out = append(out, catalog.Job{
			ID:              uint64(i + 1),
			Title:           "Engineer",
			Description:     "Ship things.",
			Location:        "Pune",
			Salary:          1250000,
			ExperienceLevel: 1,
			JobType:         "full-time",
			Company:         &catalog.Company{Name: "Acme", Logo: "https://cdn.example/acme.png"},
			CreatedAt:       base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestCompose_Greeting(t *testing.T) {
	var c ResponseComposer

	first := c.Compose(Plan{Intent: IntentGreeting}, NewTurn("hi", nil))
	if first.Text != greetingFirstTime {
		t.Fatalf("unexpected first greeting: %q", first.Text)
	}
	if diff := cmp.Diff(greetingSuggestions, first.Suggestions); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}

	again := c.Compose(Plan{Intent: IntentGreeting}, NewTurn("hi", Context{"hasSearchedJobs": true}))
	if again.Text != greetingReturning {
		t.Fatalf("unexpected returning greeting: %q", again.Text)
	}
}

func TestCompose_JobSearchFound(t *testing.T) {
	var c ResponseComposer
	p := Plan{Intent: IntentJobSearch, Searched: true, Terms: "engineer", Jobs: testJobs(1)}

	got := c.Compose(p, NewTurn("find engineer jobs", nil))

	want := "I found 1 job matching \"engineer\":\n\n" +
		"1. **Engineer** at Acme\n" +
		"   Location: Pune\n" +
		"   Salary: ₹1,250,000\n" +
		"   Experience: 1 year\n\n" +
		"Would you like more details about any of these positions?"
	if diff := cmp.Diff(want, got.Text); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}

	wantJobs := []JobSummary{{
		ID:              1,
		Title:           "Engineer",
		Company:         "Acme",
		CompanyLogo:     "https://cdn.example/acme.png",
		Location:        "Pune",
		Salary:          1250000,
		ExperienceLevel: 1,
		JobType:         "full-time",
		Description:     "Ship things.",
	}}
	if diff := cmp.Diff(wantJobs, got.Jobs); diff != "" {
		t.Fatalf("jobs mismatch (-want +got):\n%s", diff)
	}
	if got.Suggestions == nil || len(got.Suggestions) != 0 {
		t.Fatalf("expected empty non-nil suggestions, got %v", got.Suggestions)
	}
}

func TestCompose_JobSearchRecent(t *testing.T) {
	var c ResponseComposer

	got := c.Compose(Plan{Intent: IntentJobSearch, Searched: true, Jobs: testJobs(2)}, NewTurn("show me jobs", nil))
	if !strings.HasPrefix(got.Text, "Here are 2 recent job openings:") {
		t.Fatalf("unexpected text: %q", got.Text)
	}

	one := c.Compose(Plan{Intent: IntentJobSearch, Searched: true, Jobs: testJobs(1)}, NewTurn("show me jobs", nil))
	if !strings.HasPrefix(one.Text, "Here is 1 recent job opening:") {
		t.Fatalf("unexpected text: %q", one.Text)
	}

	none := c.Compose(Plan{Intent: IntentJobSearch, Searched: true}, NewTurn("show me jobs", nil))
	if none.Text != noJobsText {
		t.Fatalf("unexpected text: %q", none.Text)
	}
}

func TestCompose_JobSearchNotFound(t *testing.T) {
	var c ResponseComposer
	got := c.Compose(Plan{Intent: IntentJobSearch, Searched: true, Terms: "golang"}, NewTurn("find golang jobs", nil))

	if !strings.HasPrefix(got.Text, `I couldn't find any jobs matching "golang".`) {
		t.Fatalf("unexpected text: %q", got.Text)
	}
	if diff := cmp.Diff(notFoundSuggestions, got.Suggestions); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}
	if got.Jobs == nil || len(got.Jobs) != 0 {
		t.Fatalf("expected empty non-nil jobs, got %v", got.Jobs)
	}
}

func TestCompose_MissingSlotsAskForClarification(t *testing.T) {
	var c ResponseComposer
	cases := map[Intent]string{
		IntentLocationQuery: locationHint,
		IntentSalaryQuery:   salaryHint,
		IntentSkillsQuery:   skillsGuide,
	}
	for intent, want := range cases {
		if got := c.Compose(Plan{Intent: intent}, NewTurn("x", nil)); got.Text != want {
			t.Fatalf("%s: unexpected text %q", intent, got.Text)
		}
	}
}

func TestCompose_Salary(t *testing.T) {
	var c ResponseComposer

	got := c.Compose(Plan{Intent: IntentSalaryQuery, Searched: true, MinSalary: 500000, Jobs: testJobs(1)}, NewTurn("5 lakh salary", nil))
	want := "Found 1 job with salary ≥ ₹500,000:\n\n1. **Engineer** - ₹1,250,000\n"
	if diff := cmp.Diff(want, got.Text); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}

	none := c.Compose(Plan{Intent: IntentSalaryQuery, Searched: true, MinSalary: 5000000}, NewTurn("50 lakh salary", nil))
	if !strings.Contains(none.Text, "≥ ₹5,000,000") {
		t.Fatalf("unexpected text: %q", none.Text)
	}
}

func TestCompose_FallbackCapsAtThree(t *testing.T) {
	var c ResponseComposer

	got := c.Compose(Plan{Intent: IntentFallback, Searched: true, Terms: "engineer", Jobs: testJobs(5)}, NewTurn("engineer", nil))
	if len(got.Jobs) != fallbackJobLimit {
		t.Fatalf("expected %d jobs, got %d", fallbackJobLimit, len(got.Jobs))
	}
	if !strings.HasPrefix(got.Text, "I found 5 jobs that might interest you:") {
		t.Fatalf("unexpected text: %q", got.Text)
	}

	plain := c.Compose(Plan{Intent: IntentFallback}, NewTurn("xyz", nil))
	if plain.Text != fallbackPlain {
		t.Fatalf("unexpected text: %q", plain.Text)
	}
	if diff := cmp.Diff(plainFallbackChips, plain.Suggestions); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}

	unsure := c.Compose(Plan{Intent: IntentFallback, Searched: true, Terms: "quantum"}, NewTurn("quantum", nil))
	if unsure.Text != fallbackUnsure {
		t.Fatalf("unexpected text: %q", unsure.Text)
	}
}

func TestCompose_SuggestionsAreCopies(t *testing.T) {
	var c ResponseComposer
	got := c.Compose(Plan{Intent: IntentHelp}, NewTurn("help", nil))
	got.Suggestions[0] = "mutated"
	if helpSuggestions[0] == "mutated" {
		t.Fatalf("compose returned the shared suggestion slice")
	}
}

func TestSummarize_TruncatesDescription(t *testing.T) {
	j := testJobs(1)[0]
	j.Description = strings.Repeat("é", 200)
	j.Company = nil

	s := summarize(j)
	if s.Company != "Company" || s.CompanyLogo != "" {
		t.Fatalf("unexpected company fallback: %+v", s)
	}
	if want := strings.Repeat("é", descriptionLimit) + "..."; s.Description != want {
		t.Fatalf("unexpected description length %d", len([]rune(s.Description)))
	}

	j.Description = strings.Repeat("a", descriptionLimit)
	if got := summarize(j).Description; strings.HasSuffix(got, "...") {
		t.Fatalf("description at the limit must not be cut")
	}
}
