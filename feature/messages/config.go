package messages

import "time"

// Config holds the duplicate detection settings.
type Config struct {
	// DuplicateWindowSeconds is how long a message hash counts as "seen".
	// Two identical messages in the same chat inside this window flag the
	// second one as a duplicate.
	DuplicateWindowSeconds int `mapstructure:"duplicate_window_seconds" default:"3600"`
	// MaxMessageLength caps the text stored on raised alerts.
	MaxMessageLength int `mapstructure:"max_message_length" default:"4096"`
}

// Window returns the duplicate window as a duration.
func (c Config) Window() time.Duration {
	if c.DuplicateWindowSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(c.DuplicateWindowSeconds) * time.Second
}
