package pkg

import "github.com/google/uuid"

// GenerateRoundID returns a new identifier used to correlate the log lines of one round.
func GenerateRoundID() string {
	return uuid.NewString()
}
