package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/primalspirits/signup-page/pkg/page"
)

// SetupRoutes registers every route on router. signupGuard runs in front of
// the signup endpoints (rate limiting in production).
func SetupRoutes(router *gin.Engine, h *Handlers, metricsHandler http.Handler, signupGuard ...gin.HandlerFunc) {
	router.SetHTMLTemplate(page.Templates())

	router.GET("/", h.HandlePage)
	router.POST("/", append(signupGuard, h.HandlePageForm)...)
	router.GET("/static/site.css", h.HandleStylesheet)
	router.GET("/health", h.HealthCheck)

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := router.Group("/api")
	{
		api.POST("/signup", append(signupGuard, h.HandleSignup)...)
		// route name used by the first version of the site
		api.POST("/BrevoSignup", append(signupGuard, h.HandleSignup)...)
		api.GET("/page", h.HandlePageContent)
		api.GET("/schema", h.HandleSchema)
		api.GET("/slideshow", h.HandleSlideshow)
	}
}
