package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/media-tracker/internal/config"
	"github.com/iliyamo/media-tracker/internal/database"
	"github.com/iliyamo/media-tracker/internal/handler"
	"github.com/iliyamo/media-tracker/internal/mailer"
	"github.com/iliyamo/media-tracker/internal/repository"
	"github.com/iliyamo/media-tracker/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real environment variables win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("database: %v", err)
	}

	smtp, err := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FrontendURL)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}

	users := repository.NewUserRepo(db)
	media := repository.NewMediaRepo(db)

	e := echo.New()
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	authHandler := handler.NewAuthHandler(cfg, users, smtp)
	mediaHandler := handler.NewMediaHandler(media)
	router.RegisterRoutes(e, authHandler, mediaHandler, cfg.JWTSecret, users)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
