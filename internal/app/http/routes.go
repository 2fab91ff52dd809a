package routes

import (
	"net/http"

	adminapi "emb-site/internal/api/admin"
	authapi "emb-site/internal/api/auth"
	contactapi "emb-site/internal/api/contact"
	donationsapi "emb-site/internal/api/donations"
	editorapi "emb-site/internal/api/editor"
	galleryapi "emb-site/internal/api/gallery"
	siteapi "emb-site/internal/api/site"
	stripewebhooks "emb-site/internal/api/stripewebhook"
	"emb-site/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the router mounts.
type Deps struct {
	Site      *siteapi.Handler
	Contact   *contactapi.Handler
	Donations *donationsapi.Handler
	Auth      *authapi.Handler
	Admin     *adminapi.Handler
	Editor    *editorapi.Handler
	Gallery   *galleryapi.Handler
	Webhook   *stripewebhooks.Handler

	Guard  middleware.Authorizer
	Flash  middleware.Flasher
	Clean  func(string) string
	AppURL string
	Log    *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.POST("/webhook", d.Webhook.Handle)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Dashboard entry points. Past the gate the visitor is sent on to the
	// site app, which renders the page.
	pages := r.Group("/")
	pages.Use(middleware.PageGate(d.AppURL, d.Flash))
	forward := func(c *gin.Context) {
		c.Redirect(http.StatusFound, d.AppURL+c.Request.URL.Path)
	}
	pages.GET("/login", forward)
	pages.GET("/dashboard", forward)
	pages.GET("/dashboard/*path", forward)

	r.GET("/pages/:slug", d.Site.GetPage)
	r.GET("/settings/general", d.Site.GetGeneral)
	r.GET("/gallery", d.Site.ListGallery)
	r.GET("/classes", d.Site.ListClasses)
	r.GET("/classes/:slug", d.Site.GetClass)
	r.GET("/news", d.Site.ListNews)
	r.GET("/news/:slug", d.Site.GetNews)

	r.GET("/donations/return", d.Donations.Return)
	r.GET("/donations/cancel", d.Donations.Cancel)
	r.GET("/donations/:id/status", d.Donations.Status)

	// Visitor forms
	public := r.Group("/")
	public.Use(middleware.SanitizeJSON(d.Clean))
	public.POST("/donations", d.Donations.Create)
	public.POST("/contact", d.Contact.Submit)

	auth := r.Group("/auth")
	auth.POST("/session", d.Auth.Session)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/logout", d.Auth.Logout)
	auth.GET("/hint", d.Auth.Hint)
	auth.GET("/google", d.Auth.GoogleStart)
	auth.GET("/google/callback", d.Auth.GoogleCallback)

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin(d.Guard, d.Log))
	admin.GET("/me", d.Auth.Me)
	admin.GET("/dashboard", d.Admin.Dashboard)

	admin.GET("/pages", d.Admin.ListPages)
	admin.GET("/pages/:slug", d.Admin.GetPage)
	admin.PUT("/pages/:slug", d.Admin.PublishPage)

	admin.PUT("/classes", d.Admin.UpsertClass)
	admin.DELETE("/classes/:id", d.Admin.DeleteClass)
	admin.PUT("/news", d.Admin.UpsertNews)
	admin.DELETE("/news/:id", d.Admin.DeleteNews)

	admin.GET("/settings/general", d.Admin.GetGeneral)
	admin.PUT("/settings/general", d.Admin.SaveGeneral)
	admin.GET("/settings/admins", d.Admin.GetAdmins)
	admin.PUT("/settings/admins", d.Admin.SaveAdmins)
	admin.GET("/lists/:name", d.Admin.GetList)
	admin.PUT("/lists/:name", d.Admin.ReplaceList)

	admin.GET("/donations", d.Donations.List)
	admin.GET("/donations/export.csv", d.Donations.Export)
	admin.GET("/donations/verify", d.Donations.Verify)

	admin.POST("/gallery", d.Gallery.Add)
	admin.PUT("/gallery/order", d.Gallery.Reorder)
	admin.PATCH("/gallery/:id", d.Gallery.Caption)
	admin.DELETE("/gallery/:id", d.Gallery.Delete)

	ed := admin.Group("/editor/:slug")
	ed.GET("", d.Editor.Open)
	ed.PATCH("/meta", d.Editor.Meta)
	ed.POST("/sections", d.Editor.Add)
	ed.PATCH("/sections/:id", d.Editor.Change)
	ed.DELETE("/sections/:id", d.Editor.Delete)
	ed.PATCH("/sections/:id/position", d.Editor.Move)
	ed.POST("/publish", d.Editor.Publish)
	ed.POST("/leave", d.Editor.Leave)
}
