package models

// CommandOptionKind is the value type a slash command option accepts
type CommandOptionKind string

const (
	CommandOptionKindString  CommandOptionKind = "string"
	CommandOptionKindUser    CommandOptionKind = "user"
	CommandOptionKindChannel CommandOptionKind = "channel"
)

// CommandOption is a single typed parameter of a slash command
type CommandOption struct {
	Name        string
	Description string
	Kind        CommandOptionKind
	Required    bool
}

// CommandDeclaration describes a slash command as it is submitted to the global command catalog
type CommandDeclaration struct {
	Name        string
	Description string
	Options     []CommandOption
}

const (
	VouchCommandName = "vouch"

	VouchOptionProduct = "product"
	VouchOptionClient  = "client"
	VouchOptionChannel = "channel"
)
