package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/your-org/jobboard/internal/risk"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL,
	location         TEXT NOT NULL DEFAULT '',
	salary_min       TEXT NOT NULL DEFAULT '',
	salary_max       TEXT NOT NULL DEFAULT '',
	job_type         TEXT NOT NULL DEFAULT '',
	application_link TEXT NOT NULL DEFAULT '',
	company          TEXT NOT NULL,
	recruiter        TEXT NOT NULL DEFAULT '',
	risk             TEXT NOT NULL,
	flags            TEXT NOT NULL DEFAULT '[]',
	status           TEXT NOT NULL,
	notice_path      TEXT NOT NULL DEFAULT '',
	submitted_at     TEXT NOT NULL,
	updated_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS jobs_status_idx ON jobs(status);
CREATE INDEX IF NOT EXISTS jobs_company_idx ON jobs(company);

CREATE TABLE IF NOT EXISTS applications (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id     INTEGER NOT NULL REFERENCES jobs(id),
	applicant  TEXT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	resume_url TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	applied_at TEXT NOT NULL,
	UNIQUE (job_id, applicant)
);

CREATE TABLE IF NOT EXISTS recruiters (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	company TEXT NOT NULL,
	email   TEXT NOT NULL,
	website TEXT NOT NULL DEFAULT '',
	status  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reports (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	job      TEXT NOT NULL,
	reason   TEXT NOT NULL,
	reporter TEXT NOT NULL,
	date     TEXT NOT NULL,
	status   TEXT NOT NULL
);
`

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const jobColumns = `id, title, description, location, salary_min, salary_max, job_type,
	application_link, company, recruiter, risk, flags, status, notice_path, submitted_at, updated_at,
	(SELECT COUNT(1) FROM applications a WHERE a.job_id = jobs.id)`

// Store persists jobs, recruiters and reports in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the SQLite database at dbPath and
// applies the schema.
func OpenStore(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// A single connection serialises writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	// Databases created before jobs carried a recruiter lack the column.
	if err := addColumnIfMissing(ctx, db, "jobs", "recruiter", `TEXT NOT NULL DEFAULT ''`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func addColumnIfMissing(ctx context.Context, db *sql.DB, table, column, decl string) error {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	if err != nil || n > 0 {
		return err
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, decl))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var (
		job                    Job
		tier, flags, status    string
		submittedAt, updatedAt string
	)
	err := row.Scan(&job.ID, &job.Title, &job.Description, &job.Location, &job.SalaryMin, &job.SalaryMax,
		&job.JobType, &job.ApplicationLink, &job.Company, &job.Recruiter, &tier, &flags, &status, &job.NoticePath,
		&submittedAt, &updatedAt, &job.Applicants)
	if err != nil {
		return Job{}, err
	}
	if job.Risk, err = risk.ParseTier(tier); err != nil {
		return Job{}, fmt.Errorf("job %d: %w", job.ID, err)
	}
	if err := json.Unmarshal([]byte(flags), &job.Flags); err != nil {
		return Job{}, fmt.Errorf("job %d: decoding flags: %w", job.ID, err)
	}
	if job.Flags == nil {
		job.Flags = []string{}
	}
	job.Status = Status(status)
	if job.SubmittedAt, err = time.Parse(timeLayout, submittedAt); err != nil {
		return Job{}, fmt.Errorf("job %d: submitted_at: %w", job.ID, err)
	}
	if job.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return Job{}, fmt.Errorf("job %d: updated_at: %w", job.ID, err)
	}
	return job, nil
}

func encodeFlags(flags []string) (string, error) {
	if flags == nil {
		flags = []string{}
	}
	b, err := json.Marshal(flags)
	return string(b), err
}

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

// InsertJob stores job and returns its new id. The verdict fields are
// written in the same statement as the posting itself.
func (s *Store) InsertJob(ctx context.Context, job Job) (int64, error) {
	flags, err := encodeFlags(job.Flags)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (title, description, location, salary_min, salary_max, job_type,
			application_link, company, recruiter, risk, flags, status, notice_path, submitted_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.Title, job.Description, job.Location, job.SalaryMin, job.SalaryMax, job.JobType,
		job.ApplicationLink, job.Company, job.Recruiter, string(job.Risk), flags, string(job.Status), job.NoticePath,
		formatTime(job.SubmittedAt), formatTime(job.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("inserting job: %w", err)
	}
	return res.LastInsertId()
}

// GetJob loads a single job.
func (s *Store) GetJob(ctx context.Context, id int64) (Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, fmt.Errorf("%w: %d", ErrJobNotFound, id)
	}
	return job, err
}

// ListJobs returns jobs matching f, newest first.
func (s *Store) ListJobs(ctx context.Context, f Filter) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1 = 1`
	var args []any
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.Company != "" {
		query += ` AND company = ?`
		args = append(args, f.Company)
	}
	if f.Recruiter != "" {
		query += ` AND recruiter = ?`
		args = append(args, f.Recruiter)
	}
	query += ` ORDER BY submitted_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// UpdateJob loads job id, applies fn and writes the result back inside one
// transaction. If fn returns an error nothing is written.
func (s *Store) UpdateJob(ctx context.Context, id int64, fn func(*Job) error) (Job, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Job{}, err
	}
	defer tx.Rollback()

	job, err := scanJob(tx.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, fmt.Errorf("%w: %d", ErrJobNotFound, id)
	}
	if err != nil {
		return Job{}, err
	}

	if err := fn(&job); err != nil {
		return Job{}, err
	}

	flags, err := encodeFlags(job.Flags)
	if err != nil {
		return Job{}, err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE jobs SET title = ?, description = ?, location = ?, salary_min = ?, salary_max = ?,
			job_type = ?, application_link = ?, company = ?, recruiter = ?, risk = ?, flags = ?, status = ?,
			notice_path = ?, updated_at = ?
		WHERE id = ?
	`, job.Title, job.Description, job.Location, job.SalaryMin, job.SalaryMax, job.JobType,
		job.ApplicationLink, job.Company, job.Recruiter, string(job.Risk), flags, string(job.Status), job.NoticePath,
		formatTime(job.UpdatedAt), id)
	if err != nil {
		return Job{}, fmt.Errorf("updating job %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Counts gathers the admin dashboard figures in one transaction.
func (s *Store) Counts(ctx context.Context) (Stats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, err
	}
	defer tx.Rollback()

	st := Stats{Jobs: make(map[Status]int64)}
	rows, err := tx.QueryContext(ctx, `SELECT status, COUNT(1) FROM jobs GROUP BY status`)
	if err != nil {
		return Stats{}, err
	}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return Stats{}, err
		}
		st.Jobs[Status(status)] = n
	}
	if err := rows.Close(); err != nil {
		return Stats{}, err
	}
	st.AwaitingApproval = st.Jobs[StatusPending]

	err = tx.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(1) FROM jobs WHERE risk = ?),
			(SELECT COUNT(1) FROM recruiters WHERE status = ?),
			(SELECT COUNT(1) FROM reports),
			(SELECT COUNT(1) FROM reports WHERE status = ?),
			(SELECT COUNT(1) FROM applications)
	`, string(risk.TierHigh), string(RecruiterPending), string(ReportPending)).Scan(
		&st.FlaggedJobs, &st.PendingVerifications, &st.Reports, &st.OpenReports, &st.Applications)
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

// InsertApplication records an application for an approved job. The job
// status check and the insert share a transaction.
func (s *Store) InsertApplication(ctx context.Context, a Application) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM jobs WHERE id = ?`, a.JobID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %d", ErrJobNotFound, a.JobID)
	}
	if err != nil {
		return 0, err
	}
	if Status(status) != StatusApproved {
		return 0, fmt.Errorf("%w: job %d is %s", ErrNotAcceptingApplications, a.JobID, status)
	}

	var dup int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM applications WHERE job_id = ? AND applicant = ?`,
		a.JobID, a.Applicant).Scan(&dup)
	if err != nil {
		return 0, err
	}
	if dup > 0 {
		return 0, fmt.Errorf("%w: %s already applied to job %d", ErrDuplicateApplication, a.Applicant, a.JobID)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO applications (job_id, applicant, name, email, resume_url, status, applied_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.JobID, a.Applicant, a.Name, a.Email, a.ResumeURL, string(a.Status), formatTime(a.AppliedAt))
	if err != nil {
		return 0, fmt.Errorf("inserting application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// ListApplications returns the applications for job id, oldest first.
func (s *Store) ListApplications(ctx context.Context, jobID int64) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, applicant, name, email, resume_url, status, applied_at
		FROM applications WHERE job_id = ? ORDER BY id
	`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		var a Application
		var status, appliedAt string
		if err := rows.Scan(&a.ID, &a.JobID, &a.Applicant, &a.Name, &a.Email, &a.ResumeURL, &status, &appliedAt); err != nil {
			return nil, err
		}
		a.Status = ApplicationStatus(status)
		if a.AppliedAt, err = time.Parse(timeLayout, appliedAt); err != nil {
			return nil, fmt.Errorf("application %d: applied_at: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) InsertRecruiter(ctx context.Context, r Recruiter) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO recruiters (company, email, website, status) VALUES (?, ?, ?, ?)`,
		r.Company, r.Email, r.Website, string(r.Status))
	if err != nil {
		return 0, fmt.Errorf("inserting recruiter: %w", err)
	}
	return res.LastInsertId()
}

// ListRecruiters returns recruiters, optionally only those in status.
func (s *Store) ListRecruiters(ctx context.Context, status RecruiterStatus) ([]Recruiter, error) {
	query := `SELECT id, company, email, website, status FROM recruiters`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Recruiter{}
	for rows.Next() {
		var r Recruiter
		var st string
		if err := rows.Scan(&r.ID, &r.Company, &r.Email, &r.Website, &st); err != nil {
			return nil, err
		}
		r.Status = RecruiterStatus(st)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) SetRecruiterStatus(ctx context.Context, id int64, status RecruiterStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE recruiters SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrRecruiterNotFound, id)
	}
	return nil
}

func (s *Store) InsertReport(ctx context.Context, r Report) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO reports (job, reason, reporter, date, status) VALUES (?, ?, ?, ?, ?)`,
		r.Job, r.Reason, r.Reporter, r.Date, string(r.Status))
	if err != nil {
		return 0, fmt.Errorf("inserting report: %w", err)
	}
	return res.LastInsertId()
}

// ListReports returns reports, optionally only those in status.
func (s *Store) ListReports(ctx context.Context, status ReportStatus) ([]Report, error) {
	query := `SELECT id, job, reason, reporter, date, status FROM reports`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Report{}
	for rows.Next() {
		var r Report
		var st string
		if err := rows.Scan(&r.ID, &r.Job, &r.Reason, &r.Reporter, &r.Date, &st); err != nil {
			return nil, err
		}
		r.Status = ReportStatus(st)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) SetReportStatus(ctx context.Context, id int64, status ReportStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE reports SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrReportNotFound, id)
	}
	return nil
}

func (s *Store) isEmpty(ctx context.Context, table string) (bool, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM `+table).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
