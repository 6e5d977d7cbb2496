package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"hiremind-backend/internal/generate"
	"hiremind-backend/internal/shared/telemetry"
)

const (
	MsgResumeGenerated      = "Resume generated successfully!"
	MsgCoverLetterGenerated = "Cover letter generated successfully!"
	MsgUnreachable          = "Unable to connect to the server. Please check your connection and try again."
	MsgAPIKey               = "API configuration error. Please contact support."
	MsgGenerateFallback     = "Failed to generate content. Please try again."
	MsgInvalidResponse      = "Invalid response format from server"
)

// State is the controller's request lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
)

func (s State) String() string {
	if s == StateLoading {
		return "loading"
	}
	return "idle"
}

// Generator is the part of Client the controller uses.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (generate.Result, error)
}

// View is what the output pane shows.
type View struct {
	Content string
	Type    generate.Type
	State   State
}

// Controller drives one form: it submits, tracks the in-flight request, and
// mirrors successful results into the slot store.
type Controller struct {
	API    Generator
	Slots  SlotStore
	Notify Notifier
	Now    func() time.Time

	mu   sync.Mutex
	view View
}

// NewController constructs a Controller. slots and notify may be nil.
func NewController(api Generator, slots SlotStore, notify Notifier) *Controller {
	return &Controller{API: api, Slots: slots, Notify: notify, Now: time.Now}
}

// View returns a snapshot of the current output state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Load rehydrates the view from the slot when it was saved today.
func (c *Controller) Load(ctx context.Context) (bool, error) {
	if c.Slots == nil {
		return false, nil
	}
	saved, ok, err := c.Slots.Load(ctx)
	if err != nil || !ok {
		return false, err
	}
	if !saved.SameDay(c.now()) {
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view.State == StateLoading {
		return false, nil
	}
	c.view.Content = saved.Content
	c.view.Type = saved.Type
	return true, nil
}

// Submit sends form as a request of type t. It fails fast with ErrNotReady
// or ErrBusy; any other error has already been reported through Notify.
func (c *Controller) Submit(ctx context.Context, form Form, t generate.Type) (generate.Result, error) {
	if !form.Ready() {
		return generate.Result{}, ErrNotReady
	}

	c.mu.Lock()
	if c.view.State == StateLoading {
		c.mu.Unlock()
		return generate.Result{}, ErrBusy
	}
	c.view = View{Type: t, State: StateLoading}
	c.mu.Unlock()

	result, err := c.API.Generate(ctx, form.Request(t))

	c.mu.Lock()
	c.view.State = StateIdle
	if err == nil {
		c.view.Content = result.Content
	}
	c.mu.Unlock()

	if err != nil {
		telemetry.Warn("client.generate_failed", map[string]any{"type": string(t), "error": err})
		c.notifyError(ErrorMessage(err))
		return generate.Result{}, err
	}

	c.notifySuccess(successMessage(t))
	if c.Slots != nil {
		form.Type = t
		saved := Saved{Content: result.Content, Type: t, FormData: form, Timestamp: c.now()}
		if err := c.Slots.Save(ctx, saved); err != nil {
			telemetry.Warn("client.slot_save_failed", map[string]any{"error": err})
		}
	}
	return result, nil
}

// ErrorMessage turns a failed submission into the text shown to the user.
func ErrorMessage(err error) string {
	var netErr *NetworkError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &netErr):
		return MsgUnreachable
	case errors.Is(err, ErrInvalidResponse):
		return MsgInvalidResponse
	}
	msg := err.Error()
	if strings.Contains(msg, "API key") {
		return MsgAPIKey
	}
	if msg == "" {
		return MsgGenerateFallback
	}
	return msg
}

func successMessage(t generate.Type) string {
	if t == generate.TypeResume {
		return MsgResumeGenerated
	}
	return MsgCoverLetterGenerated
}

func (c *Controller) notifySuccess(msg string) {
	if c.Notify != nil {
		c.Notify.Success(msg)
	}
}

func (c *Controller) notifyError(msg string) {
	if c.Notify != nil {
		c.Notify.Error(msg)
	}
}

func (c *Controller) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
