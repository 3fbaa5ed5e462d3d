package models

// DiscordInteractionRef identifies an interaction for follow-up calls.
// The token is valid for 15 minutes after the interaction was created.
type DiscordInteractionRef struct {
	ID    string
	AppID string
	Token string
}

// DiscordUser is the subset of a Discord user the bot renders
type DiscordUser struct {
	ID        string
	Tag       string
	Mention   string
	AvatarURL string
}

// DiscordChannel is the subset of a Discord channel the bot renders
type DiscordChannel struct {
	ID      string
	Name    string
	Mention string
}

// VouchInteraction is a single /vouch invocation with its resolved options
type VouchInteraction struct {
	Interaction DiscordInteractionRef
	GuildID     string
	Seller      DiscordUser
	Product     string
	Client      DiscordUser
	Channel     DiscordChannel
}
