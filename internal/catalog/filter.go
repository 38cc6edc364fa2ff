package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MaxResults caps every search.
const MaxResults = 5

// Filter describes one catalog search. Text is matched case-insensitively as a
// substring of title, description or location; an empty Text matches every job.
// Nil bounds are not applied.
type Filter struct {
	Text          string `json:"text,omitempty"`
	Location      string `json:"location,omitempty"`
	MinSalary     *int64 `json:"min_salary,omitempty"`
	MaxSalary     *int64 `json:"max_salary,omitempty"`
	MaxExperience *int   `json:"max_experience,omitempty"`
}

func (f Filter) normalized() Filter {
	f.Text = strings.ToLower(strings.TrimSpace(f.Text))
	f.Location = strings.ToLower(strings.TrimSpace(f.Location))
	return f
}

func (f Filter) cacheKey() string {
	b, _ := json.Marshal(f.normalized())
	return "catalog:search:" + strconv.FormatUint(xxhash.Sum64(b), 16)
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern escapes LIKE wildcards with '!' which, unlike backslash, needs no
// quoting in either MySQL or SQLite.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
