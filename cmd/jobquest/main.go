package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/pakkurthi/jobquest-client/internal/app"
	"github.com/pakkurthi/jobquest-client/internal/authz"
	"github.com/pakkurthi/jobquest-client/internal/credstore"
	"github.com/pakkurthi/jobquest-client/internal/domain"
	"github.com/pakkurthi/jobquest-client/internal/lifecycle"
	"github.com/pakkurthi/jobquest-client/internal/platform/config"
	"github.com/pakkurthi/jobquest-client/internal/platform/logging"
	"github.com/pakkurthi/jobquest-client/internal/rest"
	"github.com/pakkurthi/jobquest-client/internal/session"
)

// credentialTTL bounds how long stored credentials outlive the last use when
// they are kept in Redis. The file store has no expiry; the backend rejects
// stale tokens either way.
const credentialTTL = 30 * 24 * time.Hour

var svc *app.Service

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupCredentials(cfg *config.Config) domain.CredentialStore {
	if cfg.RedisURL != "" {
		store, err := credstore.NewRedisStore(cfg.RedisURL, credentialTTL)
		if err != nil {
			slog.Error("Failed to connect to Redis credential store", "error", err)
			os.Exit(1)
		}
		return store
	}
	return credstore.NewFileStore(cfg.CredentialFile)
}

func setupService(cfg *config.Config) *app.Service {
	var store *session.Store

	burst := int(cfg.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	client := rest.NewClient(cfg.APIBaseURL,
		rest.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		rest.WithRateLimit(cfg.RequestsPerSecond, burst),
		rest.WithTokenSource(func() string {
			if store == nil {
				return ""
			}
			return store.Token()
		}),
		rest.WithAuthInvalidHook(func() {
			if store != nil {
				store.Invalidate()
			}
		}),
	)

	authAPI := rest.NewAuthAPI(client)
	jobsAPI := rest.NewJobsAPI(client)
	appsAPI := rest.NewApplicationsAPI(client)

	store = session.NewStore(authAPI, setupCredentials(cfg))
	engine := lifecycle.NewEngine(appsAPI, clockwork.NewRealClock())

	return app.NewService(store, engine, jobsAPI, appsAPI)
}

// requireCapability gates a command on the session guard. Commands never
// render protected output while resolution is pending or denied.
func requireCapability(required authz.Capability) error {
	decision := svc.Authorize(required)
	switch decision.Kind {
	case authz.Allow:
		return nil
	case authz.Pending:
		return errSessionResolving
	default:
		return errNotSignedIn(required)
	}
}

var rootCmd = &cobra.Command{
	Use:           "jobquest",
	Short:         "JobQuest job marketplace client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := setupConfig()
		logging.Init(cfg.LogLevel, cfg.LogFormat)
		svc = setupService(cfg)

		// Resolve stored credentials up front. A network failure here leaves
		// the session unresolved; commands that need it will surface that.
		if _, err := svc.Resolve(cmd.Context()); err != nil {
			slog.Debug("Session resolution failed", "error", err)
		}
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(jobsCmd, applyCmd, applicationsCmd, triageCmd, versionCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
