package models

import (
	"encoding/json"
	"time"
)

type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeFreelance  JobType = "FREELANCE"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeTemporary  JobType = "TEMPORARY"
)

type ExperienceLevel string

const (
	ExperienceEntry      ExperienceLevel = "ENTRY_LEVEL"
	ExperienceMid        ExperienceLevel = "MID_LEVEL"
	ExperienceSenior     ExperienceLevel = "SENIOR_LEVEL"
	ExperienceExecutive  ExperienceLevel = "EXECUTIVE"
	ExperienceInternship ExperienceLevel = "INTERNSHIP"
)

type SalaryType string

const (
	SalaryHourly       SalaryType = "HOURLY"
	SalaryDaily        SalaryType = "DAILY"
	SalaryWeekly       SalaryType = "WEEKLY"
	SalaryMonthly      SalaryType = "MONTHLY"
	SalaryYearly       SalaryType = "YEARLY"
	SalaryProjectBased SalaryType = "PROJECT_BASED"
)

type CompanySize string

const (
	CompanyStartup    CompanySize = "STARTUP"
	CompanySmall      CompanySize = "SMALL"
	CompanyMedium     CompanySize = "MEDIUM"
	CompanyLarge      CompanySize = "LARGE"
	CompanyEnterprise CompanySize = "ENTERPRISE"
)

type Company struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	Website        string      `json:"website,omitempty"`
	Industry       string      `json:"industry,omitempty"`
	Location       string      `json:"location,omitempty"`
	LogoURL        string      `json:"logoUrl,omitempty"`
	Size           CompanySize `json:"size,omitempty"`
	IsVerified     bool        `json:"isVerified"`
	ActiveJobCount int         `json:"activeJobCount"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type JobCategory struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	IconURL        string    `json:"iconUrl,omitempty"`
	IsActive       bool      `json:"isActive"`
	JobCount       int       `json:"jobCount"`
	ActiveJobCount int       `json:"activeJobCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type SkillCategory string

const (
	SkillTechnical     SkillCategory = "TECHNICAL"
	SkillSoft          SkillCategory = "SOFT_SKILLS"
	SkillLanguage      SkillCategory = "LANGUAGE"
	SkillCertification SkillCategory = "CERTIFICATION"
	SkillTool          SkillCategory = "TOOL"
	SkillFramework     SkillCategory = "FRAMEWORK"
)

type Skill struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    SkillCategory `json:"category"`
	IsActive    bool          `json:"isActive"`
	JobCount    int           `json:"jobCount"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type Job struct {
	ID                  int64           `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Requirements        string          `json:"requirements,omitempty"`
	Company             Company         `json:"company"`
	Category            *JobCategory    `json:"category,omitempty"`
	JobType             JobType         `json:"jobType"`
	ExperienceLevel     ExperienceLevel `json:"experienceLevel"`
	Location            string          `json:"location,omitempty"`
	SalaryMin           float64         `json:"salaryMin,omitempty"`
	SalaryMax           float64         `json:"salaryMax,omitempty"`
	SalaryType          SalaryType      `json:"salaryType,omitempty"`
	IsRemote            bool            `json:"isRemote"`
	IsActive            bool            `json:"isActive"`
	ApplicationDeadline *time.Time      `json:"applicationDeadline,omitempty"`
	PostedBy            User            `json:"postedBy"`
	RequiredSkills      []Skill         `json:"requiredSkills"`
	ApplicationCount    int             `json:"applicationCount"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

func (j Job) MarshalBinary() ([]byte, error) {
	return json.Marshal(j)
}

func (j *Job) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, j)
}

// JobSearchFilters carries the optional search criteria. Only non-zero
// fields are serialized into the request; pointers distinguish "unset"
// from a meaningful zero value (IsRemote=false, MinSalary=0).
type JobSearchFilters struct {
	Query           string
	Location        string
	JobType         JobType
	ExperienceLevel ExperienceLevel
	MinSalary       *float64
	MaxSalary       *float64
	IsRemote        *bool
	CategoryID      *int64
	SkillIDs        []int64
	CompanyName     string
}

type JobCreateRequest struct {
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Requirements        string          `json:"requirements,omitempty"`
	CompanyID           int64           `json:"companyId"`
	CategoryID          *int64          `json:"categoryId,omitempty"`
	JobType             JobType         `json:"jobType"`
	ExperienceLevel     ExperienceLevel `json:"experienceLevel"`
	Location            string          `json:"location,omitempty"`
	SalaryMin           *float64        `json:"salaryMin,omitempty"`
	SalaryMax           *float64        `json:"salaryMax,omitempty"`
	SalaryType          SalaryType      `json:"salaryType,omitempty"`
	IsRemote            bool            `json:"isRemote"`
	ApplicationDeadline *time.Time      `json:"applicationDeadline,omitempty"`
	RequiredSkillIDs    []int64         `json:"requiredSkillIds,omitempty"`
}
