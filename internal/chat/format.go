package chat

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jinzhu/inflection"
	"github.com/suPer8Hu/job-assistant/internal/catalog"
	"github.com/suPer8Hu/job-assistant/internal/logger"
)

const descriptionLimit = 150

func rupees(amount int64) string {
	return "₹" + humanize.Comma(amount)
}

// countOf renders "1 job", "3 jobs".
func countOf(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return strconv.Itoa(n) + " " + noun
}

func summarize(j catalog.Job) JobSummary {
	return JobSummary{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.CompanyName(),
		CompanyLogo:     j.CompanyLogo(),
		Location:        j.Location,
		Salary:          j.Salary,
		ExperienceLevel: j.ExperienceLevel,
		JobType:         j.JobType,
		Description:     logger.Truncate(j.Description, descriptionLimit),
	}
}

func summarizeAll(jobs []catalog.Job, limit int) []JobSummary {
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	out := make([]JobSummary, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, summarize(j))
	}
	return out
}
