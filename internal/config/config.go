package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without a zoneinfo database

	"github.com/diegoclair/attendance-bot/internal/domain"
	"github.com/diegoclair/attendance-bot/internal/domain/window"
	"github.com/diegoclair/attendance-bot/internal/logging"
	"github.com/hashicorp/logutils"
)

type Config struct {
	SlackBotToken      string
	SlackSigningSecret string
	DatabasePath       string
	Port               string
	RosterFile         string
	BroadcastChannel   string

	Location        *time.Location
	BucketPolicy    window.Policy
	ReminderLead    time.Duration
	RejectMalformed bool
	ClearOnDisable  bool
	LogLevel        logutils.LogLevel
}

// Load reads the configuration from the environment.
// Every invalid key is collected so a single start attempt reports all of them.
func Load() (*Config, error) {
	cfg := &Config{
		SlackBotToken:      getEnv("SLACK_BOT_TOKEN", ""),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		DatabasePath:       getEnv("DATABASE_PATH", "./attendance.db"),
		Port:               getEnv("PORT", "3000"),
		RosterFile:         getEnv("ROSTER_FILE", "./roster.yaml"),
		BroadcastChannel:   getEnv("BROADCAST_CHANNEL", ""),
	}

	var invalid []string
	var err error

	cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", domain.DefaultTimeZone))
	if err != nil {
		invalid = append(invalid, "TIMEZONE")
	}

	cfg.BucketPolicy, err = window.ParsePolicy(getEnv("BUCKET_POLICY", string(window.Prospective)))
	if err != nil {
		invalid = append(invalid, "BUCKET_POLICY")
	}

	cfg.ReminderLead, err = time.ParseDuration(getEnv("REMINDER_LEAD", domain.DefaultReminderLead.String()))
	if err != nil || cfg.ReminderLead <= 0 || cfg.ReminderLead >= 24*time.Hour {
		invalid = append(invalid, "REMINDER_LEAD")
	}

	cfg.RejectMalformed, err = strconv.ParseBool(getEnv("REJECT_MALFORMED_REPORTS", "true"))
	if err != nil {
		invalid = append(invalid, "REJECT_MALFORMED_REPORTS")
	}

	cfg.ClearOnDisable, err = strconv.ParseBool(getEnv("CLEAR_LEDGER_ON_DISABLE", "false"))
	if err != nil {
		invalid = append(invalid, "CLEAR_LEDGER_ON_DISABLE")
	}

	cfg.LogLevel, err = logging.ParseLevel(getEnv("LOG_LEVEL", string(logging.LevelInfo)))
	if err != nil {
		invalid = append(invalid, "LOG_LEVEL")
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
