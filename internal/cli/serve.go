package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lyphol/funnytime/internal/api"
	"github.com/spf13/cobra"
)

const defaultTokenTTL = 30 * 24 * time.Hour

var serveCmd = GroupCommand{
	Use:   "serve",
	Short: "Serve the attendance API over HTTP",
	StrFlags: []StringFlag{
		{Name: "listen", Shorthand: "l", Usage: "address to listen on (default from config)"},
	},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		listen, _ := cmd.Flags().GetString("listen")
		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cmd, a, listen, time.Now)
	}),
	Subcommands: []*cobra.Command{
		serveTokenCmd,
	},
}.Build()

var serveTokenCmd = LeafCommand{
	Use:   "token",
	Short: "Issue a bearer token for the API",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "subject", Default: "funnytime", Usage: "token subject"},
		{Name: "ttl", Default: defaultTokenTTL.String(), Usage: "token lifetime (e.g. 24h)"},
	},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetString("ttl")
		return runServeToken(cmd, a, subject, ttl, time.Now)
	}),
}.Build()

// newServer builds the API server from the app's configuration.
func newServer(cmd *cobra.Command, a *app, nowFn func() time.Time) (*api.Server, error) {
	level, err := a.cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return api.New(api.Options{
		Store:          a.store,
		Location:       a.loc,
		Clock:          nowFn,
		HistoryLimit:   a.cfg.HistoryLimit,
		Secret:         a.cfg.APISecret,
		AllowedOrigins: a.cfg.CORSOrigins,
		Logger:         api.NewLogger(cmd.ErrOrStderr(), level),
	}), nil
}

func runServe(ctx context.Context, cmd *cobra.Command, a *app, listen string, nowFn func() time.Time) error {
	if listen == "" {
		listen = a.cfg.Listen
	}
	srv, err := newServer(cmd, a, nowFn)
	if err != nil {
		return err
	}
	if a.cfg.APISecret == "" {
		a.logger.Warn("api_secret is not set, the API accepts unauthenticated requests")
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "serving on http://%s\n", Primary(listen))
	return srv.ListenAndServe(ctx, listen)
}

func runServeToken(cmd *cobra.Command, a *app, subject, ttlExpr string, nowFn func() time.Time) error {
	if a.cfg.APISecret == "" {
		return fmt.Errorf("no api_secret configured; run 'funnytime config set api_secret VALUE' first")
	}
	ttl, err := time.ParseDuration(ttlExpr)
	if err != nil {
		return fmt.Errorf("invalid --ttl: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("--ttl must be positive, got %s", ttl)
	}

	token, expiresAt, err := api.IssueToken(a.cfg.APISecret, subject, ttl, nowFn())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, token)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), Silent(fmt.Sprintf("expires %s", expiresAt.In(a.loc).Format(time.RFC3339))))
	return nil
}
