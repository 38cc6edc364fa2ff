package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/suPer8Hu/job-assistant/internal/catalog"
)

type stubCatalog struct {
	got  []catalog.Filter
	jobs []catalog.Job
}

func (s *stubCatalog) Search(ctx context.Context, f catalog.Filter) ([]catalog.Job, error) {
	_ = ctx
	s.got = append(s.got, f)
	return s.jobs, nil
}

func TestSearchTerms(t *testing.T) {
	cases := map[string]string{
		"Show me jobs in Pune":        "Pune",
		"find   python    developer":  "python developer",
		"search for jobs near Mumbai": "Mumbai",
		"show me jobs":                "",
		"Jobfair organisers":          "Jobfair organisers",
	}
	for in, want := range cases {
		if got := searchTerms(in); got != want {
			t.Fatalf("searchTerms(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuild_Slots(t *testing.T) {
	b := NewJobQueryBuilder(nil, nil, true)

	p := b.Build(IntentSalaryQuery, NewTurn("salary 5 lakh", nil))
	if !p.Searched || p.MinSalary != 500000 || p.Filter.MinSalary == nil || *p.Filter.MinSalary != 500000 {
		t.Fatalf("unexpected salary plan: %+v", p)
	}

	p = b.Build(IntentSalaryQuery, NewTurn("what is the salary", nil))
	if p.Searched {
		t.Fatalf("salary without an amount must not search")
	}

	p = b.Build(IntentLocationQuery, NewTurn("remote roles at Bengaluru", nil))
	if !p.Searched || p.Filter.Location != "Bengaluru" {
		t.Fatalf("unexpected location plan: %+v", p)
	}

	p = b.Build(IntentSkillsQuery, NewTurn("react skills", nil))
	if !p.Searched || p.Filter.Text != "react" {
		t.Fatalf("unexpected skill plan: %+v", p)
	}

	p = b.Build(IntentHelp, NewTurn("help", nil))
	if p.Searched {
		t.Fatalf("help must not search")
	}
}

func TestBuild_FallbackSearch(t *testing.T) {
	on := NewJobQueryBuilder(nil, nil, true)
	p := on.Build(IntentFallback, NewTurn("the kubernetes operator", nil))
	if !p.Searched || p.Terms != "kubernetes operator" {
		t.Fatalf("unexpected fallback plan: %+v", p)
	}

	p = on.Build(IntentFallback, NewTurn("the one for me", nil))
	if p.Searched {
		t.Fatalf("short and stop words only must not search: %+v", p)
	}

	off := NewJobQueryBuilder(nil, nil, false)
	if p := off.Build(IntentFallback, NewTurn("the kubernetes operator", nil)); p.Searched {
		t.Fatalf("fallback search disabled but plan searched")
	}
}

func TestExecute_CapsAndWrapsErrors(t *testing.T) {
	s := &stubCatalog{jobs: testJobs(8)}
	b := NewJobQueryBuilder(s, nil, true)

	p := b.Execute(context.Background(), b.Build(IntentJobSearch, NewTurn("show me jobs", nil)))
	if len(p.Jobs) != catalog.MaxResults {
		t.Fatalf("expected %d jobs, got %d", catalog.MaxResults, len(p.Jobs))
	}
	if diff := cmp.Diff([]catalog.Filter{{}}, s.got); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}

	fb := NewJobQueryBuilder(failingCatalog{}, nil, true)
	p = fb.Execute(context.Background(), fb.Build(IntentJobSearch, NewTurn("find react jobs", nil)))
	if !errors.Is(p.CatalogErr, ErrCatalogUnavailable) || len(p.Jobs) != 0 {
		t.Fatalf("unexpected plan after failure: %+v", p)
	}
}
