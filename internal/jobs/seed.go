package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/jobboard/internal/risk"
)

type seedJob struct {
	input     JobInput
	status    Status
	submitted string
}

var seedJobs = []seedJob{
	{
		input: JobInput{
			Title: "Frontend Developer Intern", Description: "Build UI components with React.",
			Location: "Remote", SalaryMin: "15000", SalaryMax: "25000", JobType: "internship",
			ApplicationLink: "https://example.com/apply", Company: "TechCorp",
			Recruiter: "hr@techcorp.com",
		},
		status: StatusApproved, submitted: "2026-02-01",
	},
	{
		input: JobInput{
			Title: "Backend Engineer", Description: "Design scalable APIs with Node.js.",
			Location: "Bangalore", SalaryMin: "40000", SalaryMax: "70000", JobType: "full-time",
			ApplicationLink: "https://example.com/apply2", Company: "DataWorks",
			Recruiter: "hire@dataworks.io",
		},
		status: StatusPending, submitted: "2026-02-05",
	},
	{
		input: JobInput{
			Title: "Marketing Associate", Description: "Pay a registration fee to earn guaranteed job placement with unlimited income potential.",
			Location: "Delhi", SalaryMin: "20000", SalaryMax: "30000", JobType: "full-time",
			ApplicationLink: "https://example.com/apply3", Company: "GrowthInc",
			Recruiter: "jobs@growthinc.in",
		},
		submitted: "2026-02-07",
	},
	{
		input: JobInput{
			Title: "Data Entry Specialist", Description: "Earn $5000 per day working from home. No experience needed, guaranteed job offer with advance payment required.",
			Location: "Work From Home", SalaryMin: "100000", SalaryMax: "500000", JobType: "full-time",
			ApplicationLink: "https://scam.example.com", Company: "QuickCash Ltd",
			Recruiter: "apply@quickcash.biz",
		},
		submitted: "2026-02-08",
	},
}

var seedRecruiters = []Recruiter{
	{Company: "TechCorp", Email: "hr@techcorp.com", Website: "techcorp.com", Status: RecruiterApproved},
	{Company: "DataWorks", Email: "hire@dataworks.io", Website: "dataworks.io", Status: RecruiterPending},
	{Company: "GrowthInc", Email: "jobs@growthinc.in", Website: "growthinc.in", Status: RecruiterPending},
	{Company: "QuickCash Ltd", Email: "apply@quickcash.biz", Website: "quickcash.biz", Status: RecruiterPending},
}

var seedReports = []Report{
	{Job: "Social Media Manager", Reason: "Requests personal bank details", Reporter: "user42@gmail.com", Date: "2026-02-06", Status: ReportPending},
	{Job: "Customer Support Agent", Reason: "Fake company details", Reporter: "student99@mail.com", Date: "2026-02-07", Status: ReportPending},
}

// Seed fills empty tables with demo data. Seeded jobs carry the current
// verdict; jobs without a fixed status get the status the workflow policy
// assigns, and blocked ones raise an admin notice like any submission.
// Tables that already hold rows are left alone.
func (s *Service) Seed(ctx context.Context) error {
	empty, err := s.store.isEmpty(ctx, "jobs")
	if err != nil {
		return err
	}
	if empty {
		for _, sj := range seedJobs {
			submitted, err := time.Parse("2006-01-02", sj.submitted)
			if err != nil {
				return err
			}
			res := s.scanner.Scan(sj.input.Description)
			dec := Decide(res.Tier)
			if sj.status != "" {
				dec = Decision{Status: sj.status}
			}
			job := newJob(sj.input, res, dec.Status, submitted)
			if job.ID, err = s.store.InsertJob(ctx, job); err != nil {
				return fmt.Errorf("seeding jobs: %w", err)
			}
			if dec.Notify {
				s.notify(ctx, job)
			}
		}
	}

	if empty, err = s.store.isEmpty(ctx, "recruiters"); err != nil {
		return err
	} else if empty {
		for _, r := range seedRecruiters {
			if _, err := s.store.InsertRecruiter(ctx, r); err != nil {
				return fmt.Errorf("seeding recruiters: %w", err)
			}
		}
	}

	if empty, err = s.store.isEmpty(ctx, "reports"); err != nil {
		return err
	} else if empty {
		for _, r := range seedReports {
			if _, err := s.store.InsertReport(ctx, r); err != nil {
				return fmt.Errorf("seeding reports: %w", err)
			}
		}
	}
	return nil
}

func newJob(in JobInput, res risk.Result, status Status, at time.Time) Job {
	return Job{
		Title:           in.Title,
		Description:     in.Description,
		Location:        in.Location,
		SalaryMin:       in.SalaryMin,
		SalaryMax:       in.SalaryMax,
		JobType:         in.JobType,
		ApplicationLink: in.ApplicationLink,
		Company:         in.Company,
		Recruiter:       in.Recruiter,
		Risk:            res.Tier,
		Flags:           res.Flags,
		Status:          status,
		SubmittedAt:     at,
		UpdatedAt:       at,
	}
}
