package catalog

import "time"

type Company struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	Logo      string    `gorm:"type:varchar(512)" json:"logo"`
	Location  string    `gorm:"type:varchar(128)" json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Company) TableName() string { return "companies" }

// Job is a catalog posting. Salary is stored in the smallest currency unit and
// ExperienceLevel in whole years.
type Job struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string    `gorm:"type:varchar(200);not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Location        string    `gorm:"type:varchar(128);index" json:"location"`
	Salary          int64     `gorm:"index;not null" json:"salary"`
	ExperienceLevel int       `gorm:"index;not null" json:"experience_level"`
	JobType         string    `gorm:"type:varchar(32)" json:"job_type"`
	CompanyID       *uint64   `gorm:"index" json:"company_id,omitempty"`
	Company         *Company  `json:"company,omitempty"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }

// CompanyName falls back to a placeholder for postings without a company.
func (j Job) CompanyName() string {
	if j.Company == nil || j.Company.Name == "" {
		return "Company"
	}
	return j.Company.Name
}

func (j Job) CompanyLogo() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.Logo
}
