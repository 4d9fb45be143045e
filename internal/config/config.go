package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	// BaseURL is the public origin of the site, used to build the Stripe
	// checkout success/cancel redirect URLs.
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"fundchamps.db"`

	AdminJWTSecret string `env:"ADMIN_JWT_SECRET"`

	Stripe   Stripe   `envPrefix:"STRIPE_"`
	Campaign Campaign `envPrefix:"CAMPAIGN_"`
}

type Stripe struct {
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	Currency      string `env:"CURRENCY" envDefault:"usd"`
}

type Campaign struct {
	// FallbackGoalCents is displayed when no campaign_goals row is active yet.
	FallbackGoalCents int64 `env:"FALLBACK_GOAL_CENTS" envDefault:"1000000"`
	LeaderboardSize   int   `env:"LEADERBOARD_SIZE" envDefault:"10"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
