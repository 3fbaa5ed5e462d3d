package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/irafid364-byte/Botie/appctx"
	"github.com/irafid364-byte/Botie/clients"
	discordclient "github.com/irafid364-byte/Botie/clients/discord"
	"github.com/irafid364-byte/Botie/core"
	"github.com/irafid364-byte/Botie/models"
)

// DiscordUseCase handles /vouch invocations
type DiscordUseCase struct {
	discordClient clients.DiscordClient
	now           func() time.Time
}

// NewDiscordUseCase creates a new instance of DiscordUseCase
func NewDiscordUseCase(discordClient clients.DiscordClient, now func() time.Time) *DiscordUseCase {
	if now == nil {
		now = time.Now
	}
	return &DiscordUseCase{
		discordClient: discordClient,
		now:           now,
	}
}

// ProcessVouchInteraction acknowledges the invocation, posts the vouch embed to the
// requested channel and then edits the acknowledgment with the outcome.
// A delivery failure is reported to the invoker and is not returned as an error.
func (d *DiscordUseCase) ProcessVouchInteraction(ctx context.Context, event models.VouchInteraction) error {
	invocationID, _ := appctx.GetInvocationID(ctx)
	log.Printf("📋 [%s] Starting to process /vouch from %s in guild %s", invocationID, event.Seller.Tag, event.GuildID)

	if err := d.discordClient.DeferEphemeralReply(ctx, event.Interaction); err != nil {
		log.Printf("❌ [%s] Failed to acknowledge interaction: %v", invocationID, err)
		return err
	}

	doc := BuildVouchDocument(event, d.now())

	reply := deliveredReply(event.Channel)
	_, sendErr := d.discordClient.SendReplyDocument(ctx, event.Channel.ID, doc)
	if sendErr != nil {
		sendErr = errors.Join(core.ErrDeliveryFailed, sendErr)
		if discordclient.IsPermissionError(sendErr) {
			log.Printf("❌ [%s] Error sending vouch: missing permission in channel %s: %v", invocationID, event.Channel.ID, sendErr)
		} else {
			log.Printf("❌ [%s] Error sending vouch: %v", invocationID, sendErr)
		}
		reply = deliveryFailedReply
	}

	if err := d.discordClient.EditReply(ctx, event.Interaction, reply); err != nil {
		log.Printf("❌ [%s] Failed to edit interaction response: %v", invocationID, err)
		return fmt.Errorf("failed to report vouch outcome: %w", err)
	}

	if sendErr != nil {
		return nil
	}

	log.Printf("✅ [%s] Vouch created by %s for client: %s, product: %s in channel: %s",
		invocationID, event.Seller.Tag, event.Client.Tag, event.Product, event.Channel.Name)
	return nil
}
