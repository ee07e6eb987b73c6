package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	AdminUsernames []string `mapstructure:"ADMIN_USERNAMES"`
	AdminPassword  string   `mapstructure:"ADMIN_PASSWORD"`

	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
	SiteURL        string   `mapstructure:"SITE_URL"`

	WeddingDeadline    string `mapstructure:"WEDDING_DEADLINE"`
	BabyShowerDeadline string `mapstructure:"BABY_SHOWER_DEADLINE"`

	ResendAPIKey    string `mapstructure:"RESEND_API_KEY"`
	ResendFromEmail string `mapstructure:"RESEND_FROM_EMAIL"`

	TwilioAccountSID  string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `mapstructure:"TWILIO_PHONE_NUMBER"`
	SMSEnabled        bool   `mapstructure:"SMS_ENABLED"`

	DiscordBotToken        string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordAlertsChannelID string `mapstructure:"DISCORD_ALERTS_CHANNEL_ID"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "rsvp.db")
	viper.SetDefault("ADMIN_USERNAMES", []string{"manny", "celesti"})
	viper.SetDefault("ALLOWED_ORIGINS", []string{"https://mannyandcelesti.com", "https://www.mannyandcelesti.com"})
	viper.SetDefault("SITE_URL", "https://mannyandcelesti.com")
	viper.SetDefault("WEDDING_DEADLINE", "2026-03-15T23:59:59Z")
	viper.SetDefault("BABY_SHOWER_DEADLINE", "2026-05-25T23:59:59Z")
	viper.SetDefault("RESEND_FROM_EMAIL", "Manny & Celesti <rsvp@mannyandcelesti.com>")
	viper.SetDefault("SMS_ENABLED", false)

	viper.BindEnv("ADMIN_USERNAMES")
	viper.BindEnv("ADMIN_PASSWORD")
	viper.BindEnv("ALLOWED_ORIGINS")
	viper.BindEnv("SITE_URL")
	viper.BindEnv("WEDDING_DEADLINE")
	viper.BindEnv("BABY_SHOWER_DEADLINE")
	viper.BindEnv("RESEND_API_KEY")
	viper.BindEnv("RESEND_FROM_EMAIL")
	viper.BindEnv("TWILIO_ACCOUNT_SID")
	viper.BindEnv("TWILIO_AUTH_TOKEN")
	viper.BindEnv("TWILIO_PHONE_NUMBER")
	viper.BindEnv("SMS_ENABLED")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_ALERTS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}

// Deadline parses one of the configured RFC 3339 deadline strings.
func (c *Config) Deadline(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Fatalf("Invalid deadline %q: %v", value, err)
	}
	return t
}
