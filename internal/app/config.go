package app

import (
	"strings"

	"github.com/soundgrid/sequencer-backend/internal/platform/envutil"
)

type Config struct {
	Port           string
	StaticDir      string
	SampleDir      string
	AllowedOrigins []string
}

func LoadConfig() Config {
	staticDir := envutil.String("STATIC_DIR", "static")
	origins := envutil.String("ALLOWED_ORIGINS", "http://localhost:3000")
	return Config{
		Port:           envutil.String("PORT", "4000"),
		StaticDir:      staticDir,
		SampleDir:      staticDir + "/samples",
		AllowedOrigins: strings.Split(origins, ","),
	}
}
