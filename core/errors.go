package core

import "errors"

var (
	// ErrMissingToken is returned when no bot token is configured
	ErrMissingToken = errors.New("DISCORD_TOKEN not found in environment variables")

	// ErrPlaceholderToken is returned when the bot token was left at its placeholder value
	ErrPlaceholderToken = errors.New("DISCORD_TOKEN is set to the placeholder value")

	// ErrDeliveryFailed marks a reply document that could not be posted to its target channel
	ErrDeliveryFailed = errors.New("failed to deliver vouch")
)

// IsConfigError reports whether err was caused by a missing or placeholder bot token
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingToken) || errors.Is(err, ErrPlaceholderToken)
}
