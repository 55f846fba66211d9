package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mailtpl "github.com/surershelf/task-manager-api/pkg/mailer/templates"
)

// ErrBadJob marks payloads that can never be delivered; they must not be requeued.
var ErrBadJob = errors.New("bad email job")

// Process decodes one queued job, renders it and hands it to s.
// Errors wrapping ErrBadJob are permanent; any other error is worth a retry.
func Process(ctx context.Context, s Sender, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	job.Normalize()
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if !mailtpl.Known(job.Template) {
			return fmt.Errorf("%w: unknown template %q", ErrBadJob, job.Template)
		}
		var err error
		subject, text, html, err = mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadJob, err)
		}
	}
	if subject == "" || (text == "" && html == "") {
		return fmt.Errorf("%w: empty message", ErrBadJob)
	}
	return s.Send(ctx, job.To, subject, text, html)
}
