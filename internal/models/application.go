package models

import (
	"encoding/json"
	"time"
)

type ApplicationStatus string

const (
	StatusPending            ApplicationStatus = "PENDING"
	StatusReviewing          ApplicationStatus = "REVIEWING"
	StatusShortlisted        ApplicationStatus = "SHORTLISTED"
	StatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusRejected           ApplicationStatus = "REJECTED"
	StatusAccepted           ApplicationStatus = "ACCEPTED"
	StatusWithdrawn          ApplicationStatus = "WITHDRAWN"
)

type JobApplication struct {
	ID                int64             `json:"id"`
	Job               Job               `json:"job"`
	Applicant         User              `json:"applicant"`
	CoverLetter       string            `json:"coverLetter,omitempty"`
	ResumeURL         string            `json:"resumeUrl,omitempty"`
	Status            ApplicationStatus `json:"status"`
	Notes             string            `json:"notes,omitempty"`
	AppliedAt         time.Time         `json:"appliedAt"`
	ReviewedAt        *time.Time        `json:"reviewedAt,omitempty"`
	ReviewedBy        *User             `json:"reviewedBy,omitempty"`
	PortfolioURL      string            `json:"portfolioUrl,omitempty"`
	LinkedInProfile   string            `json:"linkedInProfile,omitempty"`
	GithubProfile     string            `json:"githubProfile,omitempty"`
	AdditionalNotes   string            `json:"additionalNotes,omitempty"`
	ExpectedSalary    string            `json:"expectedSalary,omitempty"`
	AvailabilityDate  string            `json:"availabilityDate,omitempty"`
	InterviewDate     string            `json:"interviewDate,omitempty"`
	InterviewTime     string            `json:"interviewTime,omitempty"`
	InterviewLocation string            `json:"interviewLocation,omitempty"`
	InterviewType     string            `json:"interviewType,omitempty"`
	InterviewNotes    string            `json:"interviewNotes,omitempty"`
}

func (a JobApplication) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}

func (a *JobApplication) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, a)
}

type ApplicationRequest struct {
	JobID            int64  `json:"jobId"`
	CoverLetter      string `json:"coverLetter,omitempty"`
	PortfolioURL     string `json:"portfolioUrl,omitempty"`
	LinkedInProfile  string `json:"linkedInProfile,omitempty"`
	GithubProfile    string `json:"githubProfile,omitempty"`
	AdditionalNotes  string `json:"additionalNotes,omitempty"`
	ExpectedSalary   string `json:"expectedSalary,omitempty"`
	AvailabilityDate string `json:"availabilityDate,omitempty"`
}

type StatusUpdateRequest struct {
	Status            ApplicationStatus `json:"status"`
	Notes             string            `json:"notes,omitempty"`
	InterviewDate     string            `json:"interviewDate,omitempty"`
	InterviewTime     string            `json:"interviewTime,omitempty"`
	InterviewLocation string            `json:"interviewLocation,omitempty"`
	InterviewType     string            `json:"interviewType,omitempty"`
	InterviewNotes    string            `json:"interviewNotes,omitempty"`
}
