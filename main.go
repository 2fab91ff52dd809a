package main

import (
	"crypto/sha256"
	"time"

	"emb-site/config"
	"emb-site/database"
	adminapi "emb-site/internal/api/admin"
	authapi "emb-site/internal/api/auth"
	contactapi "emb-site/internal/api/contact"
	donationsapi "emb-site/internal/api/donations"
	editorapi "emb-site/internal/api/editor"
	galleryapi "emb-site/internal/api/gallery"
	siteapi "emb-site/internal/api/site"
	stripewebhooks "emb-site/internal/api/stripewebhook"
	routes "emb-site/internal/app/http"
	"emb-site/internal/app/http/middleware"
	"emb-site/internal/domain/access"
	"emb-site/internal/domain/catalog"
	"emb-site/internal/domain/content"
	"emb-site/internal/domain/donations"
	"emb-site/internal/domain/gallery"
	"emb-site/internal/domain/settings"
	"emb-site/internal/editor"
	"emb-site/internal/infra/google"
	"emb-site/internal/infra/links"
	"emb-site/internal/infra/mailer"
	"emb-site/internal/infra/pgstore"
	"emb-site/internal/infra/rendercache"
	"emb-site/internal/infra/sanitize"
	"emb-site/internal/infra/stripe"
	"emb-site/internal/infra/websession"
	"emb-site/internal/logger"
	"emb-site/internal/notify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const renderTTL = 10 * time.Minute

func main() {
	config.LoadEnv()
	logger.Init(config.LOG_MODE, config.LOG_LEVEL, config.LOG_DIR)
	defer logger.Log.Sync()
	log := logger.Log

	if config.LOG_MODE != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB(config.DB_URL)
	db := database.DB

	cache := rendercache.New(renderTTL)

	settingsSvc := settings.NewService(pgstore.NewSettings(db))
	contentSvc := content.NewService(pgstore.NewPages(db), pgstore.NewSections(db), cache,
		content.Cleaners{Text: sanitize.Plain, HTML: sanitize.Rich}, log)
	catalogSvc := catalog.NewService(pgstore.NewClasses(db), pgstore.NewNews(db), cache, log)
	gallerySvc := gallery.NewService(pgstore.NewGallery(db), log)

	// Access
	guard := access.NewGuard(config.JWT_SECRET, settingsSvc)
	var (
		idp   access.IDTokenVerifier
		oauth authapi.OAuth
	)
	if config.GOOGLE_CLIENT_ID != "" {
		v := google.New(google.Config{
			ClientID:     config.GOOGLE_CLIENT_ID,
			ClientSecret: config.GOOGLE_CLIENT_SECRET,
			RedirectURL:  config.GOOGLE_REDIRECT_URL,
		})
		idp, oauth = v, v
	} else {
		log.Info("google sign-in disabled")
	}
	signin := access.NewSignIn(guard, settingsSvc, idp, pgstore.NewAccounts(db))
	flow := websession.New(deriveKey("flow"), config.COOKIE_SECURE)

	// Donations
	signer, err := links.New(deriveKey("links"))
	if err != nil {
		log.Fatal("link signer", zap.Error(err))
	}
	mail := mailer.New(mailer.Config{
		Host: config.SMTP_HOST,
		Port: config.SMTP_PORT,
		User: config.SMTP_USER,
		Pass: config.SMTP_PASSWORD,
		From: config.SMTP_FROM,
	}, log)
	notifier := notify.New(mail, settingsSvc, log)
	proc := stripe.New(stripe.Config{
		SecretKey: config.STRIPE_SECRET_KEY,
		Currency:  config.DONATION_CURRENCY,
		AppURL:    config.APP_URL,
		APIURL:    config.API_URL,
	})
	donationSvc := donations.NewService(pgstore.NewDonations(db), proc, notifier, signer, log)

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Site:      siteapi.NewHandler(contentSvc, catalogSvc, settingsSvc, gallerySvc, cache, log),
		Contact:   contactapi.NewHandler(notifier, log),
		Donations: donationsapi.NewHandler(donationSvc, config.APP_URL, log),
		Auth:      authapi.NewHandler(signin, oauth, flow, config.APP_URL, config.COOKIE_SECURE, log),
		Admin:     adminapi.NewHandler(contentSvc, catalogSvc, settingsSvc, donationSvc, log),
		Editor:    editorapi.NewHandler(editor.NewRegistry(contentSvc), contentSvc, log),
		Gallery:   galleryapi.NewHandler(gallerySvc, log),
		Webhook:   stripewebhooks.NewHandler(config.STRIPE_WEBHOOK_SECRET, proc, donationSvc, log),

		Guard:  guard,
		Flash:  flow,
		Clean:  sanitize.Plain,
		AppURL: config.APP_URL,
		Log:    log,
	})

	log.Info("listening", zap.String("port", config.PORT))
	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// deriveKey gives each cookie codec its own key from SESSION_SECRET.
func deriveKey(purpose string) []byte {
	sum := sha256.Sum256([]byte(purpose + ":" + config.SESSION_SECRET))
	return sum[:]
}
