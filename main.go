package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/classtally/backend/internal/models"
	"github.com/classtally/backend/internal/quota"
	"github.com/classtally/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Fail early when the contribution policy is misconfigured instead of
	// erroring on every reporting request
	_, err := quota.PolicyFromEnv()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		// Create the data directory for the default database location
		dataDir := filepath.Join(".", "data")
		err := os.MkdirAll(dataDir, os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		dsn = filepath.Join(dataDir, "gorm.db")
	}

	// Connect to the database and migrate all models
	err = models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Msg("environment variable API_URL must be a valid URL")
	}

	r, teardown, err := router.Config(baseURL)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
