// Package contact holds the contact form's field state and the simulated
// submission. Nothing is sent anywhere: a submission waits a fixed delay and
// always succeeds.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"
)

// DefaultDelay is how long a submission pretends to be on the network.
const DefaultDelay = 1500 * time.Millisecond

var (
	// ErrBusy is returned when a submission is already in flight for the form.
	ErrBusy = errors.New("submission in progress")
	// ErrUnknownField is returned by Set for names that are not form fields.
	ErrUnknownField = errors.New("unknown form field")
)

// Data is what the visitor typed. Field names match the form inputs.
type Data struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Subject string `form:"subject" json:"subject" binding:"required"`
	Message string `form:"message" json:"message" binding:"required"`
}

// Missing returns the names of fields the browser's required/type=email
// attributes would have rejected.
func (d Data) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", d.Name},
		{"email", d.Email},
		{"subject", d.Subject},
		{"message", d.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if strings.TrimSpace(d.Email) != "" {
		if _, err := mail.ParseAddress(d.Email); err != nil {
			missing = append(missing, "email")
		}
	}
	return missing
}

// Notice is the toast shown after a submission.
type Notice struct {
	Title       string
	Description string
}

// SentNotice is the only outcome a submission has.
var SentNotice = Notice{
	Title:       "Message sent successfully!",
	Description: "Thank you for reaching out. I'll get back to you soon.",
}

// Form is one page view's contact form.
type Form struct {
	mu         sync.Mutex
	data       Data
	submitting bool
}

func (f *Form) Data() Data {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// Set updates a single field by its input name. Fields are frozen while a
// submission is in flight.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return ErrBusy
	}
	switch field {
	case "name":
		f.data.Name = value
	case "email":
		f.data.Email = value
	case "subject":
		f.data.Subject = value
	case "message":
		f.data.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Submitting reports whether the submit control should render disabled.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// begin takes the form's fields from d and marks it busy in one step, so a
// concurrent submit can neither start nor overwrite the data in flight.
func (f *Form) begin(d Data) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return ErrBusy
	}
	f.data = d
	f.submitting = true
	return nil
}

func (f *Form) end(sent bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if sent {
		f.data = Data{}
	}
}

// Submitter runs simulated submissions.
type Submitter struct {
	Delay time.Duration
	// After is the timer source; nil uses time.After.
	After func(time.Duration) <-chan time.Time
}

func NewSubmitter(delay time.Duration) *Submitter {
	return &Submitter{Delay: delay}
}

// Submit fills f with d, marks it busy, waits the delay and clears f. The only
// error besides ErrBusy is ctx's, when the caller went away mid-delay; the form
// then keeps d.
func (s *Submitter) Submit(ctx context.Context, f *Form, d Data) (Notice, error) {
	if err := f.begin(d); err != nil {
		return Notice{}, err
	}

	after := s.After
	if after == nil {
		after = time.After
	}
	select {
	case <-after(s.Delay):
		f.end(true)
		return SentNotice, nil
	case <-ctx.Done():
		f.end(false)
		return Notice{}, ctx.Err()
	}
}
