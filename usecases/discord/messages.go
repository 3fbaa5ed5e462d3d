package discord

import (
	"fmt"
	"time"

	"github.com/irafid364-byte/Botie/models"
)

const (
	vouchTitle  = "📋 Client Feedback & Selling Proof"
	vouchColor  = 0xC0C0C0
	vouchRating = "⭐⭐⭐⭐⭐ (5/5)"

	deliveryFailedReply = "❌ Failed to post vouch. Make sure I have permission to send messages in that channel!"
)

// BuildVouchDocument renders the embed posted for a vouch
func BuildVouchDocument(event models.VouchInteraction, now time.Time) models.ReplyDocument {
	return models.ReplyDocument{
		Title: vouchTitle,
		Color: vouchColor,
		Fields: []models.ReplyField{
			{Name: "📦 Product/Service", Value: fmt.Sprintf("**%s**", event.Product)},
			{Name: "👤 Client", Value: event.Client.Mention, Inline: true},
			{Name: "🛒 Seller", Value: event.Seller.Mention, Inline: true},
			{Name: "Client Rating", Value: vouchRating},
		},
		ThumbnailURL:  event.Client.AvatarURL,
		FooterText:    fmt.Sprintf("Verified Transaction • %s", event.Seller.Tag),
		FooterIconURL: event.Seller.AvatarURL,
		Timestamp:     now,
	}
}

func deliveredReply(channel models.DiscordChannel) string {
	return fmt.Sprintf("✅ Vouch posted in %s!", channel.Mention)
}
