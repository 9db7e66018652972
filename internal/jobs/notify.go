package jobs

import (
	"context"

	"github.com/your-org/jobboard/internal/notice"
)

// Notifier tells admins about auto-blocked jobs and records how they were
// settled.
type Notifier interface {
	// Notify announces a blocked job and returns a reference to the notice.
	Notify(ctx context.Context, job Job) (string, error)
	// Resolve marks the notice ref as settled by action.
	Resolve(ctx context.Context, ref string, action Action) error
	// Withdraw retires the notice ref after the job left the blocked state
	// without an admin decision.
	Withdraw(ctx context.Context, ref string) error
}

// NoticeNotifier writes markdown notices through a notice.Writer.
type NoticeNotifier struct {
	Writer *notice.Writer
}

func (n NoticeNotifier) Notify(_ context.Context, job Job) (string, error) {
	return n.Writer.Write(notice.Notice{
		JobID:       job.ID,
		Company:     job.Company,
		Title:       job.Title,
		Risk:        string(job.Risk),
		Flags:       job.Flags,
		Description: job.Description,
	})
}

func (n NoticeNotifier) Resolve(_ context.Context, ref string, action Action) error {
	status := notice.StatusConfirmed
	if action == ActionOverride {
		status = notice.StatusOverridden
	}
	_, err := n.Writer.UpdateStatus(ref, status, false)
	return err
}

func (n NoticeNotifier) Withdraw(_ context.Context, ref string) error {
	_, err := n.Writer.UpdateStatus(ref, notice.StatusWithdrawn, false)
	return err
}
