package notifier

import (
	"strconv"
	"strings"
	"time"
)

// Config holds configuration for the Telegram notifier.
type Config struct {
	// Token is the bot token. Empty disables the notifier.
	Token string `mapstructure:"token" default:""`
	// ApiURL is the Bot API base, overridable for self-hosted gateways.
	ApiURL string `mapstructure:"api_url" default:"https://api.telegram.org"`
	// AdminIDs is a comma separated list of chat ids to notify.
	AdminIDs string `mapstructure:"admin_ids" default:""`
	// PollSeconds is the pending alert poll interval.
	PollSeconds int `mapstructure:"poll_seconds" default:"5"`
}

// Enabled reports whether the notifier has a token and at least one admin.
func (c Config) Enabled() bool {
	return c.Token != "" && len(c.AdminList()) > 0
}

// AdminList parses AdminIDs. Whitespace is trimmed and entries that are not
// integers are skipped.
func (c Config) AdminList() []int64 {
	parts := strings.Split(c.AdminIDs, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// PollInterval returns the poll interval as a duration.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}
