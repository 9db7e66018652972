package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/your-org/jobboard/internal/risk"
)

// Service is the job submission workflow. It scans descriptions, derives
// the initial status from the verdict and records both together.
type Service struct {
	store    *Store
	scanner  *risk.Scanner
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires a Service. notifier may be nil, in which case blocked
// jobs are only logged.
func NewService(store *Store, scanner *risk.Scanner, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		scanner:  scanner,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Scan runs the scanner and returns the verdict with the decision the
// workflow would take, without storing anything.
func (s *Service) Scan(description string) (risk.Result, Decision) {
	res := s.scanner.Scan(description)
	return res, Decide(res.Tier)
}

func (s *Service) record(res risk.Result, trigger string) {
	scansTotal.WithLabelValues(string(res.Tier), trigger).Inc()
	for _, label := range res.Flags {
		indicatorHitsTotal.WithLabelValues(label).Inc()
	}
}

func validateInput(in JobInput) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.Company) == "" {
		missing = append(missing, "company")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// Submit scans and stores a new job posting.
func (s *Service) Submit(ctx context.Context, in JobInput) (Job, Decision, error) {
	if err := validateInput(in); err != nil {
		return Job{}, Decision{}, err
	}

	res := s.scanner.Scan(in.Description)
	dec := Decide(res.Tier)
	job := newJob(in, res, dec.Status, s.now())

	id, err := s.store.InsertJob(ctx, job)
	if err != nil {
		return Job{}, Decision{}, err
	}
	job.ID = id
	s.record(res, "submit")
	s.logger.Info("job submitted", "id", id, "company", job.Company, "risk", res.Tier, "status", job.Status, "flags", len(res.Flags))

	if dec.Notify {
		job = s.notify(ctx, job)
	}
	return job, dec, nil
}

// EditDescription replaces a job's description. The new verdict and the
// status it implies are written in the same transaction as the text. A
// notice raised for an earlier block is withdrawn, since the text it
// describes is gone.
func (s *Service) EditDescription(ctx context.Context, id int64, description string) (Job, Decision, error) {
	if strings.TrimSpace(description) == "" {
		return Job{}, Decision{}, fmt.Errorf("%w: missing description", ErrInvalidInput)
	}

	res := s.scanner.Scan(description)
	dec := Decide(res.Tier)

	var staleNotice string
	job, err := s.store.UpdateJob(ctx, id, func(j *Job) error {
		if j.Status == StatusBanned {
			return fmt.Errorf("%w: job %d is banned", ErrInvalidTransition, id)
		}
		if j.Status == StatusBlocked {
			staleNotice = j.NoticePath
		}
		j.Description = description
		j.Risk = res.Tier
		j.Flags = res.Flags
		j.Status = dec.Status
		j.NoticePath = ""
		j.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return Job{}, Decision{}, err
	}
	s.record(res, "edit")
	s.logger.Info("job description edited", "id", id, "risk", res.Tier, "status", job.Status, "flags", len(res.Flags))

	if staleNotice != "" && s.notifier != nil {
		if err := s.notifier.Withdraw(ctx, staleNotice); err != nil {
			s.logger.Error("withdrawing admin notice failed", "id", id, "notice", staleNotice, "error", err)
		}
	}
	if dec.Notify {
		job = s.notify(ctx, job)
	}
	return job, dec, nil
}

// notify writes the admin notice for a blocked job and stores its
// reference. Failures are logged; the job stays blocked either way.
func (s *Service) notify(ctx context.Context, job Job) Job {
	if s.notifier == nil {
		s.logger.Warn("job auto-blocked", "id", job.ID, "flags", job.Flags)
		return job
	}
	ref, err := s.notifier.Notify(ctx, job)
	if err != nil {
		s.logger.Error("writing admin notice failed", "id", job.ID, "error", err)
		return job
	}
	updated, err := s.store.UpdateJob(ctx, job.ID, func(j *Job) error {
		j.NoticePath = ref
		return nil
	})
	if err != nil {
		s.logger.Error("recording admin notice failed", "id", job.ID, "notice", ref, "error", err)
		job.NoticePath = ref
		return job
	}
	s.logger.Warn("job auto-blocked, admin notified", "id", job.ID, "notice", ref)
	return updated
}

// Rescan re-evaluates the stored description and persists the verdict.
// Status is left as it is.
func (s *Service) Rescan(ctx context.Context, id int64) (Job, error) {
	job, err := s.store.UpdateJob(ctx, id, func(j *Job) error {
		res := s.scanner.Scan(j.Description)
		j.Risk = res.Tier
		j.Flags = res.Flags
		return nil
	})
	if err != nil {
		return Job{}, err
	}
	s.record(risk.Result{Tier: job.Risk, Flags: job.Flags}, "rescan")
	return job, nil
}

// BatchSummary reports the outcome of RescanBatch.
type BatchSummary struct {
	Processed int               `json:"processed"`
	Changed   int               `json:"changed"`
	Failed    int               `json:"failed"`
	Tiers     map[risk.Tier]int `json:"tiers"`
	DryRun    bool              `json:"dryRun"`
}

// RescanBatch re-scans up to limit jobs in status and stores verdicts that
// differ from the recorded ones. With dryRun nothing is written.
func (s *Service) RescanBatch(ctx context.Context, status Status, limit int, dryRun bool) (BatchSummary, error) {
	jobs, err := s.store.ListJobs(ctx, Filter{Status: status, Limit: limit})
	if err != nil {
		return BatchSummary{}, err
	}

	sum := BatchSummary{Tiers: make(map[risk.Tier]int), DryRun: dryRun}
	for _, job := range jobs {
		sum.Processed++
		res := s.scanner.Scan(job.Description)
		sum.Tiers[res.Tier]++
		if res.Tier == job.Risk && slices.Equal(res.Flags, job.Flags) {
			continue
		}
		sum.Changed++
		if dryRun {
			continue
		}
		if _, err := s.Rescan(ctx, job.ID); err != nil {
			s.logger.Error("rescan failed", "id", job.ID, "error", err)
			sum.Failed++
		}
	}
	s.logger.Info("batch rescan finished", "status", status, "processed", sum.Processed, "changed", sum.Changed, "dry_run", dryRun)
	return sum, nil
}

// Review applies an admin action to a job.
func (s *Service) Review(ctx context.Context, id int64, action Action) (Job, error) {
	var from Status
	job, err := s.store.UpdateJob(ctx, id, func(j *Job) error {
		to, err := Transition(j.Status, action)
		if err != nil {
			return err
		}
		from = j.Status
		j.Status = to
		j.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return Job{}, err
	}
	reviewsTotal.WithLabelValues(string(action)).Inc()
	s.logger.Info("job reviewed", "id", id, "action", action, "from", from, "to", job.Status)

	if from == StatusBlocked && job.NoticePath != "" && s.notifier != nil {
		if err := s.notifier.Resolve(ctx, job.NoticePath, action); err != nil {
			s.logger.Error("updating admin notice failed", "id", id, "notice", job.NoticePath, "error", err)
		}
	}
	return job, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Job, error) {
	return s.store.GetJob(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Job, error) {
	return s.store.ListJobs(ctx, f)
}

// Public lists the jobs visible to students: approved ones only.
func (s *Service) Public(ctx context.Context, limit int) ([]Job, error) {
	return s.store.ListJobs(ctx, Filter{Status: StatusApproved, Limit: limit})
}

// Stats returns the admin dashboard summary: jobs per status, high-risk
// jobs, recruiters awaiting verification, reports and applications.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Counts(ctx)
}

// Apply records an application to an approved job. Each applicant may
// apply to a job once.
func (s *Service) Apply(ctx context.Context, a Application) (Application, error) {
	a.Applicant = strings.TrimSpace(a.Applicant)
	if a.JobID < 1 || a.Applicant == "" {
		return Application{}, fmt.Errorf("%w: job id and applicant are required", ErrInvalidInput)
	}
	a.Status = ApplicationPending
	a.AppliedAt = s.now()

	id, err := s.store.InsertApplication(ctx, a)
	if err != nil {
		return Application{}, err
	}
	a.ID = id
	applicationsTotal.Inc()
	s.logger.Info("application received", "id", id, "job", a.JobID, "applicant", a.Applicant)
	return a, nil
}

// Applications lists the applications for a job.
func (s *Service) Applications(ctx context.Context, jobID int64) ([]Application, error) {
	if _, err := s.store.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	return s.store.ListApplications(ctx, jobID)
}

func (s *Service) Recruiters(ctx context.Context, pendingOnly bool) ([]Recruiter, error) {
	if pendingOnly {
		return s.store.ListRecruiters(ctx, RecruiterPending)
	}
	return s.store.ListRecruiters(ctx, "")
}

// ReviewRecruiter approves or rejects a recruiter account.
func (s *Service) ReviewRecruiter(ctx context.Context, id int64, action Action) error {
	var status RecruiterStatus
	switch action {
	case ActionApprove:
		status = RecruiterApproved
	case ActionReject:
		status = RecruiterRejected
	default:
		return fmt.Errorf("%w: recruiters can only be approved or rejected", ErrInvalidInput)
	}
	if err := s.store.SetRecruiterStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info("recruiter reviewed", "id", id, "status", status)
	return nil
}

// FileReport records a complaint about a listing.
func (s *Service) FileReport(ctx context.Context, job, reason, reporter string) (Report, error) {
	r := Report{
		Job:      strings.TrimSpace(job),
		Reason:   strings.TrimSpace(reason),
		Reporter: strings.TrimSpace(reporter),
		Date:     s.now().Format("2006-01-02"),
		Status:   ReportPending,
	}
	if r.Job == "" || r.Reason == "" || r.Reporter == "" {
		return Report{}, fmt.Errorf("%w: job, reason and reporter are required", ErrInvalidInput)
	}
	id, err := s.store.InsertReport(ctx, r)
	if err != nil {
		return Report{}, err
	}
	r.ID = id
	s.logger.Info("report filed", "id", id, "job", r.Job)
	return r, nil
}

func (s *Service) Reports(ctx context.Context, status ReportStatus) ([]Report, error) {
	return s.store.ListReports(ctx, status)
}

func (s *Service) SetReportStatus(ctx context.Context, id int64, status ReportStatus) error {
	if err := s.store.SetReportStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info("report updated", "id", id, "status", status)
	return nil
}
