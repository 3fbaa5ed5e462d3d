package clients

// DiscordPostMessageResponse represents the response from posting a message to Discord
type DiscordPostMessageResponse struct {
	ChannelID string
	MessageID string
}

// DiscordRegisteredCommand is a command as acknowledged by the command catalog
type DiscordRegisteredCommand struct {
	ID   string
	Name string
}
