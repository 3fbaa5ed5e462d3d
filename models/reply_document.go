package models

import "time"

// ReplyField is a single named field of a reply document
type ReplyField struct {
	Name   string
	Value  string
	Inline bool
}

// ReplyDocument is the structured message posted to a channel
type ReplyDocument struct {
	Title         string
	Color         int
	Fields        []ReplyField
	ThumbnailURL  string
	FooterText    string
	FooterIconURL string
	Timestamp     time.Time
}
