package page

import (
	"embed"
	"html/template"
	"math"
	"time"

	"github.com/primalspirits/signup-page/pkg/signupform"
)

//go:embed templates
var assets embed.FS

// TemplateName is the name of the page template
const TemplateName = "page.html"

// StylesheetPath is the embedded stylesheet path inside Assets
const StylesheetPath = "templates/site.css"

// Data is handed to the page template
type Data struct {
	View         View
	Form         signupform.FormState
	SlideIndex   int
	ResetSeconds int
	Year         int
}

// NewData builds template data for view and form state
func NewData(view View, form signupform.FormState, resetDelay time.Duration) Data {
	if form.Errors == nil {
		form.Errors = signupform.ErrorMap{}
	}
	return Data{
		View:         view,
		Form:         form,
		ResetSeconds: int(math.Ceil(resetDelay.Seconds())),
		Year:         time.Now().Year(),
	}
}

var funcs = template.FuncMap{
	"errorFor": func(errs signupform.ErrorMap, field string) string {
		return errs[signupform.Field(field)]
	},
}

// Templates parses the embedded page template
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(assets, "templates/*.html"))
}

// Assets exposes the embedded static files
func Assets() embed.FS {
	return assets
}
