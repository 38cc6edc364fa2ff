package catalog

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type seedJob struct {
	title       string
	description string
	location    string
	jobType     string
	salary      int64
	experience  int
	company     int
}

var seedCompanies = []Company{
	{Name: "Acme Systems", Location: "Pune", Logo: "https://logo.example.com/acme.png"},
	{Name: "Northwind Labs", Location: "Bengaluru"},
	{Name: "Blue Harbor", Location: "Mumbai"},
}

var seedJobs = []seedJob{
	{"Backend Engineer", "Build Go and Node services for the hiring platform.", "Pune", "Full-time", 800000, 2, 0},
	{"Frontend Developer", "React and JavaScript work on the candidate dashboard.", "Bengaluru", "Full-time", 650000, 1, 1},
	{"QA Analyst", "Manual and automated testing of web releases.", "Mumbai", "Full-time", 450000, 1, 2},
	{"Data Engineer", "Python pipelines feeding the job recommendations store.", "Remote", "Contract", 1200000, 4, 1},
	{"Product Designer", "Own the designer toolkit and the application flow UX.", "Pune", "Full-time", 900000, 3, 0},
	{"Engineering Manager", "Lead a team of eight engineers across two squads.", "Mumbai", "Full-time", 2500000, 8, 2},
}

// Seed inserts demo companies and jobs when the catalog is empty. It reports
// how many jobs were inserted.
func Seed(ctx context.Context, gdb *gorm.DB) (int, error) {
	var n int64
	if err := gdb.WithContext(ctx).Model(&Job{}).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		companies := make([]Company, len(seedCompanies))
		copy(companies, seedCompanies)
		if err := tx.Create(&companies).Error; err != nil {
			return err
		}

		// stagger creation times so recency ordering is visible
		base := time.Now().Add(-time.Duration(len(seedJobs)) * time.Hour)
		for i, s := range seedJobs {
			companyID := companies[s.company].ID
			j := Job{
				Title:           s.title,
				Description:     s.description,
				Location:        s.location,
				Salary:          s.salary,
				ExperienceLevel: s.experience,
				JobType:         s.jobType,
				CompanyID:       &companyID,
				CreatedAt:       base.Add(time.Duration(i) * time.Hour),
			}
			if err := tx.Create(&j).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(seedJobs), nil
}
