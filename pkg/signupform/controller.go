// Package signupform holds the signup form state machine: field values,
// per-field errors, validation and phone normalization before submission,
// and the timed reset of the thank-you state.
//
// A Controller is owned by one view. The view must call Close when it goes
// away so a pending reset never fires against a discarded form.
package signupform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/primalspirits/signup-page/pkg/models"
)

// DefaultResetDelay is how long the thank-you state stays visible
const DefaultResetDelay = 5 * time.Second

// DuplicatePhoneMarker is the provider wording for a phone number that
// already belongs to another contact.
const DuplicatePhoneMarker = "already associated"

// MessageSubmitFailed is shown when a submission fails for a reason the form
// cannot attribute to a field.
const MessageSubmitFailed = "Signup failed"

var (
	ErrInvalidFields    = errors.New("form has invalid fields")
	ErrDuplicatePhone   = errors.New("phone number already registered")
	ErrSubmitFailed     = errors.New("signup failed")
	ErrAlreadySubmitted = errors.New("form already submitted")
	ErrSubmitInProgress = errors.New("form submission in progress")
	ErrClosed           = errors.New("form closed")
)

// Submitter delivers a normalized signup to the submission endpoint
type Submitter interface {
	Submit(ctx context.Context, req models.SignupRequest) error
}

// SubmitError is a non-2xx answer from the submission endpoint
type SubmitError struct {
	Status  int
	Message string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("signup endpoint returned %d: %s", e.Status, e.Message)
}

// FormState is a snapshot of the form
type FormState struct {
	Fields    Fields
	Errors    ErrorMap
	Submitted bool
	// Failure is set when the last submission failed without a field error
	Failure string
}

// Option configures a Controller
type Option func(*Controller)

// WithResetDelay overrides how long the thank-you state is shown
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.resetDelay = d
	}
}

// WithOnReset registers a callback run after the form resets itself
func WithOnReset(fn func(FormState)) Option {
	return func(c *Controller) {
		c.onReset = fn
	}
}

// Controller drives one signup form
type Controller struct {
	submitter  Submitter
	resetDelay time.Duration
	onReset    func(FormState)

	mu         sync.Mutex
	state      FormState
	resetTimer *time.Timer
	submitting bool
	closed     bool
}

// NewController creates a form bound to submitter
func NewController(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		submitter:  submitter,
		resetDelay: DefaultResetDelay,
		state:      FormState{Errors: ErrorMap{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetField updates one input value. Errors on other fields are untouched.
func (c *Controller) SetField(field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case FieldFullName:
		c.state.Fields.FullName = value
	case FieldEmail:
		c.state.Fields.Email = value
	case FieldPhone:
		c.state.Fields.Phone = value
	}
}

// SetFields replaces all input values
func (c *Controller) SetFields(f Fields) {
	c.mu.Lock()
	c.state.Fields = f
	c.mu.Unlock()
}

// State returns a copy of the current form state
func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() FormState {
	s := c.state
	s.Errors = maps.Clone(c.state.Errors)
	if s.Errors == nil {
		s.Errors = ErrorMap{}
	}
	return s
}

// Submit validates the form, normalizes the phone number and sends the
// signup. Nothing is sent when validation or normalization fails. Entered
// values survive every failure.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state.Submitted {
		c.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}

	fields := c.state.Fields
	errs := Validate(fields)
	c.state.Errors = errs
	c.state.Failure = ""
	if len(errs) > 0 {
		c.mu.Unlock()
		return ErrInvalidFields
	}

	phone, err := NormalizePhone(fields.Phone)
	if err != nil {
		c.state.Errors[FieldPhone] = MessagePhoneCountry
		c.mu.Unlock()
		return err
	}
	c.submitting = true
	c.mu.Unlock()

	err = c.submitter.Submit(ctx, models.SignupRequest{
		FullName: fields.FullName,
		Email:    fields.Email,
		Phone:    phone,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if c.closed {
		return ErrClosed
	}

	if err != nil {
		var serr *SubmitError
		if errors.As(err, &serr) && strings.Contains(serr.Message, DuplicatePhoneMarker) {
			c.state.Errors[FieldPhone] = MessagePhoneDuplicate
			return fmt.Errorf("%w: %s", ErrDuplicatePhone, serr.Message)
		}
		c.state.Failure = MessageSubmitFailed
		if serr != nil && serr.Message != "" {
			c.state.Failure = serr.Message
		}
		slog.Warn("signup submission failed", "error", err)
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	c.state.Submitted = true
	c.scheduleReset()
	return nil
}

// scheduleReset must be called with mu held
func (c *Controller) scheduleReset() {
	if c.resetTimer != nil {
		c.resetTimer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(c.resetDelay, func() {
		c.mu.Lock()
		if c.closed || c.resetTimer != timer {
			c.mu.Unlock()
			return
		}
		c.resetTimer = nil
		c.state = FormState{Errors: ErrorMap{}}
		state := c.snapshot()
		onReset := c.onReset
		c.mu.Unlock()

		if onReset != nil {
			onReset(state)
		}
	})
	c.resetTimer = timer
}

// ResetPending reports whether a thank-you reset is scheduled
func (c *Controller) ResetPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetTimer != nil
}

// Close tears the form down and cancels any pending reset
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}
