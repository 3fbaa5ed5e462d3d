package handlers

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/gammazero/workerpool"

	"github.com/irafid364-byte/Botie/appctx"
	"github.com/irafid364-byte/Botie/core"
	"github.com/irafid364-byte/Botie/models"
	"github.com/irafid364-byte/Botie/usecases"
)

// TaskAlerter reports failures of background work
type TaskAlerter interface {
	WrapTask(taskName string, task func() error) func()
	AlertOnError(err error, context string)
}

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	appCtx           *appctx.AppContext
	discordUseCase   usecases.DiscordUseCaseInterface
	commandRegistrar usecases.CommandRegistrar
	alerts           TaskAlerter
	workerPool       *workerpool.WorkerPool
	activity         string
	registerOnce     sync.Once

	stopMu  sync.RWMutex
	stopped bool
}

func NewDiscordEventsHandler(
	session *discordgo.Session,
	appCtx *appctx.AppContext,
	discordUseCase usecases.DiscordUseCaseInterface,
	commandRegistrar usecases.CommandRegistrar,
	alerts TaskAlerter,
	maxConcurrentInteractions int,
	activity string,
) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		appCtx:           appCtx,
		discordUseCase:   discordUseCase,
		commandRegistrar: commandRegistrar,
		alerts:           alerts,
		workerPool:       workerpool.New(maxConcurrentInteractions),
		activity:         activity,
	}

	session.AddHandler(handler.handleReady)
	session.AddHandler(handler.handleInteractionCreate)
	session.AddHandler(handler.handleDisconnect)

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return handler
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.discordSDKClient.Open(); err != nil {
		return fmt.Errorf("failed to login: %w", err)
	}

	log.Printf("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot closes the Discord connection, then waits for in-flight interactions.
// Interactions that arrive after StopBot starts are dropped.
func (h *DiscordEventsHandler) StopBot() {
	if err := h.discordSDKClient.Close(); err != nil {
		log.Printf("⚠️ Failed to close Discord session cleanly: %v", err)
	}

	h.stopMu.Lock()
	h.stopped = true
	h.stopMu.Unlock()

	h.workerPool.StopWait()
}

func (h *DiscordEventsHandler) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	if r.User == nil {
		log.Printf("⚠️ Ready event without user, ignoring")
		return
	}

	h.appCtx.SetBotIdentity(r.User.ID, r.User.String())
	log.Printf("✅ Bot is online and ready!")
	log.Printf("📝 Logged in as %s", r.User.String())

	if err := s.UpdateWatchStatus(0, h.activity); err != nil {
		log.Printf("⚠️ Failed to set status: %v", err)
	} else {
		log.Printf("👀 Status set to: Watching %s", h.activity)
	}

	appID := r.User.ID
	if r.Application != nil && r.Application.ID != "" {
		appID = r.Application.ID
	}

	// Ready fires again after every full reconnect; the catalog only needs one submission
	h.registerOnce.Do(func() {
		if err := h.commandRegistrar.Register(context.Background(), appID); err != nil {
			h.alerts.AlertOnError(err, "Command registration")
		}
	})
}

func (h *DiscordEventsHandler) handleDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	log.Printf("⚠️ Discord gateway disconnected")
}

// handleInteractionCreate runs on a discordgo event goroutine; the actual work is
// handed to the worker pool so each invocation is an independent task
func (h *DiscordEventsHandler) handleInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Interaction == nil {
		return
	}

	event, matched, err := mapToVouchInteraction(i.Interaction)
	if err != nil {
		log.Printf("⚠️ Ignoring Discord interaction %s: %v", i.ID, err)
		return
	}
	if !matched {
		return
	}

	h.dispatch(event)
}

func (h *DiscordEventsHandler) dispatch(event models.VouchInteraction) {
	h.stopMu.RLock()
	defer h.stopMu.RUnlock()
	if h.stopped || h.workerPool.Stopped() {
		log.Printf("⚠️ /vouch from %s arrived during shutdown, dropping", event.Seller.Tag)
		return
	}

	invocationID := core.NewID("vch")
	ctx := appctx.SetInvocationID(context.Background(), invocationID)

	log.Printf("📨 [%s] /vouch received from %s, queuing", invocationID, event.Seller.Tag)
	h.workerPool.Submit(h.alerts.WrapTask("vouch "+invocationID, func() error {
		return h.discordUseCase.ProcessVouchInteraction(ctx, event)
	}))
}

// mapToVouchInteraction maps a Discord SDK interaction to our domain model.
// matched is false for every interaction other than the /vouch chat command.
func mapToVouchInteraction(i *discordgo.Interaction) (event models.VouchInteraction, matched bool, err error) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return models.VouchInteraction{}, false, nil
	}
	data := i.ApplicationCommandData()
	if data.Name != models.VouchCommandName {
		return models.VouchInteraction{}, false, nil
	}

	seller := i.User
	if i.Member != nil && i.Member.User != nil {
		seller = i.Member.User
	}
	if seller == nil {
		return models.VouchInteraction{}, true, fmt.Errorf("interaction has no invoking user")
	}

	event = models.VouchInteraction{
		Interaction: models.DiscordInteractionRef{
			ID:    i.ID,
			AppID: i.AppID,
			Token: i.Token,
		},
		GuildID: i.GuildID,
		Seller:  toDiscordUser(seller),
	}

	for _, option := range data.Options {
		switch {
		case option.Name == models.VouchOptionProduct && option.Type == discordgo.ApplicationCommandOptionString:
			event.Product = option.StringValue()
		case option.Name == models.VouchOptionClient && option.Type == discordgo.ApplicationCommandOptionUser:
			userID, _ := option.Value.(string)
			event.Client = toDiscordUser(resolveUser(data.Resolved, userID))
		case option.Name == models.VouchOptionChannel && option.Type == discordgo.ApplicationCommandOptionChannel:
			channelID, _ := option.Value.(string)
			event.Channel = toDiscordChannel(resolveChannel(data.Resolved, channelID))
		}
	}

	return event, true, nil
}

func resolveUser(resolved *discordgo.ApplicationCommandInteractionDataResolved, userID string) *discordgo.User {
	if resolved != nil {
		if user, ok := resolved.Users[userID]; ok && user != nil {
			return user
		}
	}
	return &discordgo.User{ID: userID}
}

func resolveChannel(resolved *discordgo.ApplicationCommandInteractionDataResolved, channelID string) *discordgo.Channel {
	if resolved != nil {
		if channel, ok := resolved.Channels[channelID]; ok && channel != nil {
			return channel
		}
	}
	return &discordgo.Channel{ID: channelID}
}

func toDiscordUser(user *discordgo.User) models.DiscordUser {
	return models.DiscordUser{
		ID:        user.ID,
		Tag:       user.String(),
		Mention:   user.Mention(),
		AvatarURL: user.AvatarURL("256"),
	}
}

func toDiscordChannel(channel *discordgo.Channel) models.DiscordChannel {
	return models.DiscordChannel{
		ID:      channel.ID,
		Name:    channel.Name,
		Mention: channel.Mention(),
	}
}
