package jobs

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/jobboard/internal/risk"
)

var (
	ErrJobNotFound       = errors.New("job not found")
	ErrRecruiterNotFound = errors.New("recruiter not found")
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidInput      = errors.New("invalid input")

	ErrNotAcceptingApplications = errors.New("job is not accepting applications")
	ErrDuplicateApplication     = errors.New("duplicate application")
)

// Status is the lifecycle state of a job posting.
type Status string

const (
	StatusPending  Status = "pending"
	StatusReview   Status = "review"
	StatusBlocked  Status = "blocked"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusBanned   Status = "banned"
)

var allStatuses = []Status{StatusPending, StatusReview, StatusBlocked, StatusApproved, StatusRejected, StatusBanned}

// ParseStatus validates a job status name.
func ParseStatus(s string) (Status, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown job status %q", ErrInvalidInput, s)
}

// Job is a stored job posting together with its latest scan verdict.
type Job struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	SalaryMin       string    `json:"salaryMin"`
	SalaryMax       string    `json:"salaryMax"`
	JobType         string    `json:"jobType"`
	ApplicationLink string    `json:"applicationLink"`
	Company         string    `json:"company"`
	Recruiter       string    `json:"recruiter,omitempty"`
	Risk            risk.Tier `json:"risk"`
	Flags           []string  `json:"flags"`
	Status          Status    `json:"status"`
	SubmittedAt     time.Time `json:"submittedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	NoticePath      string    `json:"noticePath,omitempty"`
	Applicants      int64     `json:"applicants"`
}

// JobInput is what a recruiter submits.
type JobInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	SalaryMin       string `json:"salaryMin"`
	SalaryMax       string `json:"salaryMax"`
	JobType         string `json:"jobType"`
	ApplicationLink string `json:"applicationLink"`
	Company         string `json:"company"`
	// Recruiter identifies the posting account, usually its email.
	Recruiter string `json:"recruiter"`
}

// Filter narrows job listings. Zero values match everything.
type Filter struct {
	Status    Status
	Company   string
	Recruiter string
	Limit     int
}

// Stats is the admin dashboard summary.
type Stats struct {
	Jobs                 map[Status]int64 `json:"jobs"`
	AwaitingApproval     int64            `json:"jobsAwaitingApproval"`
	FlaggedJobs          int64            `json:"flaggedJobs"`
	PendingVerifications int64            `json:"pendingVerifications"`
	Reports              int64            `json:"reports"`
	OpenReports          int64            `json:"openReports"`
	Applications         int64            `json:"applications"`
}

type ApplicationStatus string

const ApplicationPending ApplicationStatus = "pending"

// Application is a student's application to an approved job.
type Application struct {
	ID        int64             `json:"id"`
	JobID     int64             `json:"jobId"`
	Applicant string            `json:"applicant"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	ResumeURL string            `json:"resumeUrl"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
}

type RecruiterStatus string

const (
	RecruiterPending  RecruiterStatus = "pending"
	RecruiterApproved RecruiterStatus = "approved"
	RecruiterRejected RecruiterStatus = "rejected"
)

type Recruiter struct {
	ID      int64           `json:"id"`
	Company string          `json:"company"`
	Email   string          `json:"email"`
	Website string          `json:"website"`
	Status  RecruiterStatus `json:"status"`
}

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
)

// ParseReportStatus validates a report status name.
func ParseReportStatus(s string) (ReportStatus, error) {
	switch st := ReportStatus(s); st {
	case ReportPending, ReportReviewed, ReportResolved:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown report status %q", ErrInvalidInput, s)
	}
}

// Report is a user complaint about a listing.
type Report struct {
	ID       int64        `json:"id"`
	Job      string       `json:"job"`
	Reason   string       `json:"reason"`
	Reporter string       `json:"reporter"`
	Date     string       `json:"date"`
	Status   ReportStatus `json:"status"`
}
