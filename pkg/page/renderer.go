package page

import (
	"context"
	"log/slog"

	"github.com/primalspirits/signup-page/pkg/clients/sanity"
	"github.com/primalspirits/signup-page/pkg/models"
	"github.com/primalspirits/signup-page/pkg/observability"
)

// Copy used when the content document leaves a field empty
const (
	DefaultHeading    = "Get Exclusive Primal Gin Offers"
	DefaultSubheading = "Sign up to receive the latest news, launches, and special deals from Primal Gin."
	DefaultButtonText = "Give me a good offer"
)

// View is everything the page template needs for one render
type View struct {
	Loading    bool                  `json:"loading"`
	Heading    string                `json:"heading"`
	Subheading string                `json:"subheading"`
	ButtonText string                `json:"buttonText"`
	Gallery    []models.GalleryImage `json:"gallery"`
	// Interval is the slideshow period in milliseconds
	Interval int64 `json:"interval"`
}

// Renderer builds page views from the content provider
type Renderer struct {
	content sanity.Client
	metrics *observability.Metrics
}

// NewRenderer creates a renderer reading from content
func NewRenderer(content sanity.Client, metrics *observability.Metrics) *Renderer {
	return &Renderer{content: content, metrics: metrics}
}

// Load fetches the page content once and applies fallback copy. When the
// fetch fails the view stays in its loading state.
func (r *Renderer) Load(ctx context.Context) View {
	content, err := r.content.FetchSignupPage(ctx)
	if err != nil {
		r.count("error")
		slog.ErrorContext(ctx, "error loading email signup page data", "error", err)
		return View{Loading: true, Gallery: []models.GalleryImage{}, Interval: SlideInterval.Milliseconds()}
	}
	r.count("ok")
	return NewView(content)
}

// NewView applies fallback copy to content
func NewView(content *models.PageContent) View {
	view := View{
		Heading:    content.Heading,
		Subheading: content.Subheading,
		ButtonText: content.ButtonText,
		Gallery:    content.Gallery,
		Interval:   SlideInterval.Milliseconds(),
	}
	if view.Heading == "" {
		view.Heading = DefaultHeading
	}
	if view.Subheading == "" {
		view.Subheading = DefaultSubheading
	}
	if view.ButtonText == "" {
		view.ButtonText = DefaultButtonText
	}
	if view.Gallery == nil {
		view.Gallery = []models.GalleryImage{}
	}
	return view
}

func (r *Renderer) count(result string) {
	if r.metrics != nil {
		r.metrics.ContentFetchesTotal.WithLabelValues(result).Inc()
	}
}
