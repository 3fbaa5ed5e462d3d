package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/rs/cors"

	"github.com/irafid364-byte/Botie/appctx"
	discordclient "github.com/irafid364-byte/Botie/clients/discord"
	"github.com/irafid364-byte/Botie/config"
	"github.com/irafid364-byte/Botie/core"
	"github.com/irafid364-byte/Botie/handlers"
	"github.com/irafid364-byte/Botie/middleware"
	"github.com/irafid364-byte/Botie/services/commands"
	discordusecase "github.com/irafid364-byte/Botie/usecases/discord"
)

// sessionFactory opens no connection; discordgo only dials on Session.Open
type sessionFactory func(token string) (*discordgo.Session, error)

type Options struct {
	EnvFile string `long:"env-file" description:"Path to a .env file to load before reading the environment"`
	Port    int    `long:"port" description:"Port for the status server (overrides PORT)"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts, discordgo.New); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		if core.IsConfigError(err) {
			log.Printf("Please set your Discord bot token in the DISCORD_TOKEN environment variable.")
		}
		os.Exit(1)
	}
}

func run(opts Options, newSession sessionFactory) error {
	startedAt := time.Now()

	cfg, err := config.LoadConfig(opts.EnvFile)
	if err != nil {
		return err
	}
	if opts.Port != 0 {
		cfg.Port = opts.Port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	appCtx := appctx.NewAppContext(startedAt)

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackAlertConfig.WebhookURL,
		Environment: cfg.Environment,
		AppName:     "botie",
		LogsURL:     cfg.SlackAlertConfig.LogsURL,
	}, nil)
	defer alertMiddleware.Wait()

	// The session is shared by the gateway handlers and the REST client
	session, err := newSession("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	discordClient := discordclient.NewDiscordClient(session)
	commandsService := commands.NewCommandsService(discordClient)
	discordUseCase := discordusecase.NewDiscordUseCase(discordClient, time.Now)
	eventsHandler := handlers.NewDiscordEventsHandler(
		session,
		appCtx,
		discordUseCase,
		commandsService,
		alertMiddleware,
		cfg.MaxConcurrentInteractions,
		cfg.BotActivity,
	)
	statusHandler := handlers.NewStatusHandler(appCtx, time.Now)

	router := mux.NewRouter()
	statusHandler.SetupEndpoints(router)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server running on port %d", cfg.Port)
		log.Printf("🌐 Health check available at: http://%s/health", cfg.ListenAddr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if err := eventsHandler.StartBot(); err != nil {
		log.Printf("❌ Failed to login: %v", err)
		log.Printf("Please check your DISCORD_TOKEN is valid.")
		_ = shutdownServer(server, cfg.ShutdownTimeout)
		eventsHandler.StopBot()
		return err
	}

	return handleGracefulShutdown(server, eventsHandler, cfg.ShutdownTimeout, serverErr)
}

func handleGracefulShutdown(
	server *http.Server,
	eventsHandler *handlers.DiscordEventsHandler,
	timeout time.Duration,
	serverErr <-chan error,
) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		log.Printf("🛑 Shutdown signal received, cleaning up...")
	case err := <-serverErr:
		log.Printf("❌ Server error: %v", err)
		runErr = fmt.Errorf("status server failed: %w", err)
	}

	if err := shutdownServer(server, timeout); err != nil && runErr == nil {
		runErr = err
	}
	eventsHandler.StopBot()

	if runErr == nil {
		log.Printf("✅ Bot stopped gracefully")
	}
	return runErr
}

func shutdownServer(server *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}
	return nil
}
