// Package config loads the application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvProduction is the APP_ENV value that switches cookies to the strict
// cross-site policy.
const EnvProduction = "production"

type App struct {
	Env         string        `envconfig:"APP_ENV" default:"development"`
	HTTPAddr    string        `envconfig:"HTTP_ADDR" default:":5000"`
	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
	FrontendURL string        `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`
	BodyLimit   int64         `envconfig:"BODY_LIMIT" default:"10240"`
	NodeID      int64         `envconfig:"SNOWFLAKE_NODE" default:"1"`
}

// Production reports whether the service runs with production cookie rules.
func (a App) Production() bool {
	return a.Env == EnvProduction
}

// Load reads App from the environment.
func Load() (App, error) {
	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, fmt.Errorf("app config: %w", err)
	}
	if c.JWTSecret == "" {
		return App{}, errors.New("app config: JWT_SECRET must not be empty")
	}
	return c, nil
}
