package main

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/adarshmisra/portfolio/internal/config"
	"github.com/adarshmisra/portfolio/internal/content"
	"github.com/adarshmisra/portfolio/internal/linkedin"
	"github.com/adarshmisra/portfolio/internal/store"
	"github.com/gin-gonic/gin"
)

type server struct {
	cfg       config.Config
	portfolio *content.Portfolio
	store     *store.Store
	images    *linkedin.Service
	mailer    Mailer
	now       func() time.Time

	adminToken  string
	hashingSalt string

	// in-flight visitor writes
	tracking sync.WaitGroup
}

func newServer(cfg config.Config, portfolio *content.Portfolio, db *store.Store, images *linkedin.Service, mailer Mailer) *server {
	s := &server{
		cfg:       cfg,
		portfolio: portfolio,
		store:     db,
		images:    images,
		mailer:    mailer,
		now:       time.Now,
	}
	s.initAdminToken()
	return s
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	gin.SetMode(cfg.Server.Mode)

	portfolio, err := content.Load()
	if err != nil {
		log.Fatal("Failed to load portfolio content: ", err)
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	images := linkedin.NewService(linkedin.Options{
		ProfileURL:     cfg.LinkedIn.ProfileURL,
		ManualImageURL: cfg.LinkedIn.ImageURL,
		CacheTTL:       cfg.LinkedIn.CacheTTL,
	}, linkedin.NewHTTPFetcher(cfg.LinkedIn.UserAgent, cfg.LinkedIn.FetchTimeout))

	s := newServer(cfg, portfolio, db, images, newSMTPMailer(cfg.SMTP))

	go images.Warm(context.Background())
	go s.cleanupOldVisitorData(context.Background())

	r, err := s.routes()
	if err != nil {
		log.Fatal("Failed to set up routes: ", err)
	}

	log.Printf("Portfolio listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}

func (s *server) routes() (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.Use(s.visitorTrackingMiddleware())

	r.StaticFS("/static", staticFS())

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", s.pageData())
	})

	// HTMX section fragments
	r.GET("/experience-content", s.fragment("experience-content.html"))
	r.GET("/education-content", s.fragment("education-content.html"))
	r.GET("/skills-content", s.fragment("skills-content.html"))
	r.GET("/coding-content", s.fragment("coding-content.html"))

	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.POST("/contact", s.handleContact)

	api := r.Group("/api")
	api.GET("/linkedin-image", s.handleProfileImage)
	api.GET("/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"portfolio": s.portfolio,
			"contact":   s.portfolio.ContactItems(),
			"aggregate": s.portfolio.Aggregate(),
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.setupAdminRoutes(r)
	return r, nil
}

func (s *server) fragment(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, s.pageData())
	}
}

// pageData is shared by the full page and the section fragments.
func (s *server) pageData() gin.H {
	p := s.portfolio
	return gin.H{
		"profile":        p.Profile,
		"about":          p.About,
		"nav":            p.Nav,
		"experience":     p.Experience,
		"education":      p.Education,
		"skills":         p.Skills,
		"codingProfiles": p.CodingProfiles,
		"aggregate":      p.Aggregate(),
		"practice":       p.Practice,
		"leetcode":       p.LeetCode,
		"stack":          p.Stack,
		"architecture":   p.Architecture,
		"contactItems":   p.ContactItems(),
		"year":           s.now().Year(),
	}
}
