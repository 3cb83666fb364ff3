package content

import (
	"context"
	"log"
)

// SubmitFailedMessage is the only error text callers ever see.
const SubmitFailedMessage = "Failed to submit form"

// Writer is the write side of the content store.
type Writer interface {
	InsertSubmission(ctx context.Context, s Submission) error
}

// Notifier is told about submissions that were stored.
type Notifier interface {
	Notify(ctx context.Context, s Submission) error
}

// SubmitResult reports the outcome of one submission.
type SubmitResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Submitter appends contact-form submissions to the store.
type Submitter struct {
	store    Writer
	logger   *log.Logger
	notifier Notifier
}

// NewSubmitter returns a Submitter. notifier may be nil.
func NewSubmitter(store Writer, logger *log.Logger, notifier Notifier) *Submitter {
	if logger == nil {
		logger = log.Default()
	}
	return &Submitter{store: store, logger: logger, notifier: notifier}
}

// Submit writes s once. Fields are not validated here.
func (s *Submitter) Submit(ctx context.Context, sub Submission) (res SubmitResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("Error submitting contact form: %v", r)
			res = SubmitResult{Error: SubmitFailedMessage}
		}
	}()

	if err := s.store.InsertSubmission(ctx, sub); err != nil {
		s.logger.Printf("Error submitting contact form: %v", err)
		return SubmitResult{Error: SubmitFailedMessage}
	}

	if s.notifier != nil {
		go s.notify(context.WithoutCancel(ctx), sub)
	}
	return SubmitResult{Success: true}
}

func (s *Submitter) notify(ctx context.Context, sub Submission) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("Error sending contact notification: %v", r)
		}
	}()
	if err := s.notifier.Notify(ctx, sub); err != nil {
		s.logger.Printf("Error sending contact notification for %s: %v", sub.Email, err)
		return
	}
	s.logger.Printf("Contact notification sent for %s (%s)", sub.Name, sub.Email)
}
