package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/m3rciful/shopbot/core/bootstrap"
	"github.com/m3rciful/shopbot/core/catalog"
	coreconfig "github.com/m3rciful/shopbot/core/config"
	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/netutil"
	"github.com/m3rciful/shopbot/core/shopstore"
	"github.com/m3rciful/shopbot/core/whatsapp/commands"
	"github.com/m3rciful/shopbot/core/whatsapp/gateway"
	"github.com/m3rciful/shopbot/core/whatsapp/sender"
	"github.com/m3rciful/shopbot/core/whatsapp/server"
	"github.com/m3rciful/shopbot/core/whatsapp/state"
)

// Options describe how to load configuration, bootstrap the app and serve it.
type Options struct {
	ConfigEnvVar      string
	DefaultConfigPath string

	LoadConfig func(path string) (*coreconfig.Config, error)
	Bootstrap  func(ctx context.Context, cfg *coreconfig.Config) (*bootstrap.Result, error)

	ShutdownLogger func() error
	Serve          func(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration) error
}

// App is the wired webhook pipeline.
type App struct {
	Handler  http.Handler
	Gateway  *gateway.Handler
	Sessions *state.MemoryStore
}

// Build wires sender, catalog client, session store, router and gateway.
func Build(cfg *coreconfig.Config, shop shopstore.ShopConfig) *App {
	var out sender.Sender
	if cfg.WhatsApp.MockMode {
		out = sender.NewMock()
	} else {
		out = sender.NewGreenAPI(cfg.WhatsApp.APIURL, cfg.WhatsApp.InstanceID, cfg.WhatsApp.Token,
			netutil.NewHTTPClient(netutil.ClientOptions{Component: "wa.sender"}))
	}

	shopClient := catalog.NewHTTPClient(shop.ShopURL, shop.AuthToken,
		catalog.WithHTTPClient(netutil.NewHTTPClient(netutil.ClientOptions{Component: "catalog"})))

	sessions := state.NewMemoryStore(time.Duration(cfg.Session.TimeoutMS) * time.Millisecond)
	router := commands.NewRouter(sessions, shopClient)
	gw := gateway.NewHandler(router, out, shop.PhoneNumber,
		gateway.WithCourtesyReply(cfg.CourtesyReplyEnabled()))

	return &App{
		Handler:  server.NewRouter(gw),
		Gateway:  gw,
		Sessions: sessions,
	}
}

// Run loads configuration, bootstraps infrastructure and serves webhooks
// until SIGINT or SIGTERM.
func Run(opts Options) error {
	loadConfig := opts.LoadConfig
	if loadConfig == nil {
		loadConfig = coreconfig.Load
	}
	boot := opts.Bootstrap
	if boot == nil {
		boot = func(ctx context.Context, cfg *coreconfig.Config) (*bootstrap.Result, error) {
			return bootstrap.Run(ctx, bootstrap.Options{Config: cfg})
		}
	}

	env := opts.ConfigEnvVar
	if env == "" {
		env = "CONFIG_PATH"
	}
	cfgPath := os.Getenv(env)
	if cfgPath == "" {
		cfgPath = opts.DefaultConfigPath
	}
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startedAt := time.Now()
	infra, err := boot(ctx, cfg)
	if err != nil {
		return fmt.Errorf("cmd: bootstrap failed: %w", err)
	}
	defer func() { _ = infra.Close() }()

	shutdownLogger := opts.ShutdownLogger
	if shutdownLogger == nil {
		shutdownLogger = logger.Shutdown
	}
	defer func() {
		if err := shutdownLogger(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	app := Build(cfg, infra.Shop)

	go state.Janitor(ctx, app.Sessions, time.Duration(cfg.Session.CleanupIntervalSeconds)*time.Second)

	addr := net.JoinHostPort(cfg.Server.Listen, strconv.Itoa(cfg.Server.Port))
	logger.Info(ctx, "app", "ready",
		slog.String("listen", addr),
		slog.String("chat_id", logger.MaskChatID(app.Gateway.RegisteredChatID())),
		slog.Bool("mock", cfg.WhatsApp.MockMode),
		slog.Bool("db", infra.DB != nil),
		slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
	)

	serve := opts.Serve
	if serve == nil {
		serve = server.Run
	}
	err = serve(ctx, addr, app.Handler, time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	logger.Info(context.Background(), "app", "shutdown",
		slog.String("status", logger.Status(err)),
	)
	return err
}
