package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/primalspirits/signup-page/pkg/clients/sanity"
	"github.com/primalspirits/signup-page/pkg/middleware"
	"github.com/primalspirits/signup-page/pkg/models"
	"github.com/primalspirits/signup-page/pkg/page"
	"github.com/primalspirits/signup-page/pkg/services"
	"github.com/primalspirits/signup-page/pkg/signupform"
)

// maxSignupBody caps the JSON body of a signup request
const maxSignupBody = 16 << 10

// maxSlides caps the gallery size accepted by the slideshow stream
const maxSlides = 100

// Slideshow stream defaults
const (
	DefaultMaxStreams     = 200
	DefaultContentRefresh = 5 * time.Minute
)

// MessageTooManyStreams is returned when every slideshow stream slot is taken
const MessageTooManyStreams = "Too many open slideshow streams"

// Handlers contains all HTTP handlers for the site
type Handlers struct {
	signupService services.SignupService
	renderer      *page.Renderer
	resetDelay     time.Duration
	slideInterval  time.Duration
	contentRefresh time.Duration
	maxStreams     int

	// streams holds one token per open slideshow stream
	streams chan struct{}
}

// Option configures Handlers
type Option func(*Handlers)

// WithResetDelay sets how long the thank-you state is shown
func WithResetDelay(d time.Duration) Option {
	return func(h *Handlers) { h.resetDelay = d }
}

// WithSlideInterval sets the slideshow period
func WithSlideInterval(d time.Duration) Option {
	return func(h *Handlers) { h.slideInterval = d }
}

// WithMaxStreams caps concurrent slideshow streams
func WithMaxStreams(n int) Option {
	return func(h *Handlers) { h.maxStreams = n }
}

// WithContentRefresh sets how often an open slideshow stream re-reads the
// gallery size
func WithContentRefresh(d time.Duration) Option {
	return func(h *Handlers) { h.contentRefresh = d }
}

// NewHandlers creates a new Handlers instance
func NewHandlers(signupService services.SignupService, renderer *page.Renderer, opts ...Option) *Handlers {
	h := &Handlers{
		signupService: signupService,
		renderer:      renderer,
		resetDelay:     signupform.DefaultResetDelay,
		slideInterval:  page.SlideInterval,
		contentRefresh: DefaultContentRefresh,
		maxStreams:     DefaultMaxStreams,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.maxStreams <= 0 {
		h.maxStreams = DefaultMaxStreams
	}
	if h.contentRefresh <= 0 {
		h.contentRefresh = DefaultContentRefresh
	}
	h.streams = make(chan struct{}, h.maxStreams)
	return h
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleSignup registers a contact from the JSON body
func (h *Handlers) HandleSignup(c *gin.Context) {
	var req models.SignupRequest
	logger := slog.With("request_id", middleware.GetRequestID(c))

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSignupBody))
	if err != nil {
		logger.Warn("error reading request body", "error", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Error reading request"})
		return
	}

	if err := json.Unmarshal(body, &req); err != nil {
		logger.Warn("error parsing JSON", "error", err, "bytes", len(body))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: services.MessageMissingFields})
		return
	}

	resp, err := h.signupService.Register(c.Request.Context(), req)
	if err != nil {
		status, message := services.ErrorStatus(err)
		if errors.Is(err, services.ErrConfiguration) {
			logger.Error("signup endpoint misconfigured", "error", err)
		}
		c.JSON(status, models.ErrorResponse{Error: message})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// HandlePage renders the landing page
func (h *Handlers) HandlePage(c *gin.Context) {
	view := h.renderer.Load(c.Request.Context())
	c.HTML(http.StatusOK, page.TemplateName, page.NewData(view, signupform.FormState{}, h.resetDelay))
}

// HandlePageForm handles the landing page form posted without JavaScript
func (h *Handlers) HandlePageForm(c *gin.Context) {
	ctx := c.Request.Context()
	view := h.renderer.Load(ctx)

	form := signupform.NewController(
		signupform.ServiceSubmitter{Service: h.signupService},
		signupform.WithResetDelay(h.resetDelay),
	)
	defer form.Close()

	form.SetFields(signupform.Fields{
		FullName: c.PostForm("fullName"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
	})

	status := http.StatusOK
	if err := form.Submit(ctx); err != nil {
		status = formErrorStatus(err)
	}
	c.HTML(status, page.TemplateName, page.NewData(view, form.State(), h.resetDelay))
}

func formErrorStatus(err error) int {
	var serr *signupform.SubmitError
	switch {
	case errors.Is(err, signupform.ErrInvalidFields),
		errors.Is(err, signupform.ErrInvalidPhone),
		errors.Is(err, signupform.ErrDuplicatePhone):
		return http.StatusUnprocessableEntity
	case errors.As(err, &serr):
		return serr.Status
	default:
		return http.StatusInternalServerError
	}
}

// HandlePageContent returns the page view as JSON
func (h *Handlers) HandlePageContent(c *gin.Context) {
	view := h.renderer.Load(c.Request.Context())
	if view.Loading {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Page content is unavailable"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleSchema returns the content schema for the editing studio
func (h *Handlers) HandleSchema(c *gin.Context) {
	c.JSON(http.StatusOK, sanity.Schema())
}

// HandleSlideshow streams the background index as server-sent events until
// the client goes away. Without n the gallery size comes from the content
// provider and is re-read every content refresh; a changed size restarts the
// slide timer.
func (h *Handlers) HandleSlideshow(c *gin.Context) {
	ctx := c.Request.Context()

	var length int
	var refresh <-chan time.Time
	raw, fixed := c.GetQuery("n")
	if fixed {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxSlides {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "n must be between 0 and 100"})
			return
		}
		length = n
	}

	select {
	case h.streams <- struct{}{}:
		defer func() { <-h.streams }()
	default:
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: MessageTooManyStreams})
		return
	}

	if !fixed {
		length = len(h.renderer.Load(ctx).Gallery)
		ticker := time.NewTicker(h.contentRefresh)
		defer ticker.Stop()
		refresh = ticker.C
	}

	slideshow := page.NewSlideshow(length, h.slideInterval)
	ticks := make(chan int)
	go slideshow.Run(ctx, func(idx int) {
		select {
		case ticks <- idx:
		case <-ctx.Done():
		}
	})

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent("slide", strconv.Itoa(slideshow.Index()))
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case <-refresh:
			if view := h.renderer.Load(ctx); !view.Loading {
				slideshow.SetLength(len(view.Gallery))
			}
		case idx := <-ticks:
			c.SSEvent("slide", strconv.Itoa(idx))
			c.Writer.Flush()
		}
	}
}

// HandleStylesheet serves the embedded stylesheet
func (h *Handlers) HandleStylesheet(c *gin.Context) {
	c.FileFromFS(page.StylesheetPath, http.FS(page.Assets()))
}
