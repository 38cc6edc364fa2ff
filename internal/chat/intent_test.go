package chat

import "testing"

func TestExtractKeywords(t *testing.T) {
	cases := []struct {
		msg  string
		want Keywords
	}{
		{"Quick question", Keywords{}},
		{"We are rehiring", Keywords{IsJobQuery: true, HasLocation: true}},
		{"remote work", Keywords{HasLocation: true}},
		{"Which FRAMEWORK?", Keywords{HasSkills: true}},
		{"python jobs in Pune", Keywords{IsJobQuery: true, HasLocation: true}},
	}
	for _, tc := range cases {
		if got := ExtractKeywords(tc.msg); got != tc.want {
			t.Fatalf("ExtractKeywords(%q) = %+v, want %+v", tc.msg, got, tc.want)
		}
	}
}

func TestResolve_TableOrder(t *testing.T) {
	r := NewIntentResolver(nil)
	cases := []struct {
		msg  string
		want Intent
	}{
		{"hello", IntentGreeting},
		{"find developer jobs", IntentJobSearch},
		{"remote", IntentLocationQuery},
		{"salary 5 lakh", IntentSalaryQuery},
		{"How do I apply?", IntentApplyHelp},
		{"edit my resume", IntentProfileHelp},
		{"skill requirements", IntentSkillsQuery},
		{"help", IntentHelp},
		{"thanks", IntentThanks},
		{"bye", IntentGoodbye},
		{"xyz", IntentFallback},
	}
	for _, tc := range cases {
		if got := r.Resolve(NewTurn(tc.msg, nil)); got != tc.want {
			t.Fatalf("Resolve(%q) = %s, want %s", tc.msg, got, tc.want)
		}
	}
}

func TestResolve_GreetingWins(t *testing.T) {
	r := NewIntentResolver(nil)
	for _, msg := range []string{
		"hello, show me jobs",
		"Hi! find jobs in Pune",
		"HEY what salary do you pay",
		"can you help me, hello?",
	} {
		if got := r.Resolve(NewTurn(msg, nil)); got != IntentGreeting {
			t.Fatalf("Resolve(%q) = %s, want greeting", msg, got)
		}
	}
}

func TestResolve_CustomRules(t *testing.T) {
	r := NewIntentResolver([]Rule{
		{IntentThanks, func(t Turn) bool { return t.Lower == "ty" }},
	})
	if got := r.Resolve(NewTurn("TY", nil)); got != IntentThanks {
		t.Fatalf("expected thanks, got %s", got)
	}
	if got := r.Resolve(NewTurn("hello", nil)); got != IntentFallback {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestHexIDGenerator(t *testing.T) {
	var g HexIDGenerator
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := g.NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if len(id) != 32 {
			t.Fatalf("expected 32 chars, got %q", id)
		}
		for _, r := range id {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
				t.Fatalf("id %q is not lowercase hex", id)
			}
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestContextMerge(t *testing.T) {
	stored := Context{"hasSearchedJobs": true, "lastQuery": "old", "theme": "dark"}
	next := Context{"hasSearchedJobs": false, "lastQuery": "new"}

	got := stored.Merge(next)
	if !got.HasSearchedJobs() {
		t.Fatalf("hasSearchedJobs went back to false")
	}
	if got.LastQuery() != "new" || got["theme"] != "dark" {
		t.Fatalf("unexpected merge result: %v", got)
	}
	if stored["lastQuery"] != "old" {
		t.Fatalf("merge mutated the receiver")
	}
}

func TestContext_WeakTypes(t *testing.T) {
	c := Context{"hasSearchedJobs": "true", "lastQuery": 42}
	if !c.HasSearchedJobs() {
		t.Fatalf("expected string \"true\" to decode as true")
	}
	if c.LastQuery() != "42" {
		t.Fatalf("unexpected lastQuery %q", c.LastQuery())
	}
}
