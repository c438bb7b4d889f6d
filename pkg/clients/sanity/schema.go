package sanity

import (
	"errors"
	"strings"

	"github.com/primalspirits/signup-page/pkg/models"
)

// SchemaField describes one editable field of a document type
type SchemaField struct {
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Required    bool           `json:"required,omitempty"`
	Min         int            `json:"min,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Of          []SchemaField  `json:"of,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
}

// SchemaType describes a document type for the editing studio
type SchemaType struct {
	Name        string        `json:"name"`
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Fields      []SchemaField `json:"fields"`
}

// Schema returns the signup page document type definition
func Schema() SchemaType {
	return SchemaType{
		Name:        DocumentType,
		Title:       "Email Signup Page",
		Type:        "document",
		Description: "There can only be one Email Signup Page document.",
		Fields: []SchemaField{
			{
				Name:        "heading",
				Title:       "Page Heading",
				Type:        "string",
				Required:    true,
				Placeholder: "Get Exclusive Primal Gin Offers",
			},
			{
				Name:        "subheading",
				Title:       "Page Subheading",
				Type:        "string",
				Placeholder: "Sign up to receive the latest news, launches, and special deals from Primal Gin.",
			},
			{
				Name:        "buttonText",
				Title:       "Button Text",
				Type:        "string",
				Placeholder: "Give me a good offer",
			},
			{
				Name:  "gallery",
				Title: "Background Gallery",
				Type:  "array",
				Min:   1,
				Of: []SchemaField{
					{Type: "image", Options: map[string]any{"hotspot": true}},
				},
			},
		},
	}
}

var (
	ErrHeadingRequired = errors.New("heading is required")
	ErrGalleryEmpty    = errors.New("gallery needs at least one image")
	ErrImageURLMissing = errors.New("gallery image has no url")
)

// ValidateContent applies the publishing rules of Schema to content
func ValidateContent(content *models.PageContent) error {
	var errs []error
	if strings.TrimSpace(content.Heading) == "" {
		errs = append(errs, ErrHeadingRequired)
	}
	if len(content.Gallery) == 0 {
		errs = append(errs, ErrGalleryEmpty)
	}
	for _, img := range content.Gallery {
		if img.URL == "" {
			errs = append(errs, ErrImageURLMissing)
			break
		}
	}
	return errors.Join(errs...)
}
