package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/dadfw/dad/internal/agent"
	"github.com/dadfw/dad/internal/config"
	"github.com/dadfw/dad/internal/fabric"
	"github.com/dadfw/dad/internal/store"
)

// loadConfig loads the tool config and reports validation issues as
// warnings rather than failing: a partial config is still usable for local
// commands.
func loadConfig() config.Config {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		log.Warn().Err(err).Str("path", paths.Config).Msg("config load failed, using defaults")
		cfg = config.Defaults()
	}
	for _, issue := range config.Validate(&cfg) {
		log.Warn().Str("field", issue.Path).Msg(issue.Message)
	}
	return cfg
}

// localManager builds a manager for commands that never touch the Fabric
// API (init, compile, list, status, history).
func localManager() (*agent.Manager, config.Config) {
	cfg := loadConfig()
	m := agent.NewManager(projectDir, &cfg, agent.ManagerOptions{Log: log})
	return m, cfg
}

// remoteManager builds a manager with a live Fabric client for upload and
// run. A FABRIC_TOKEN environment variable bypasses service principal
// authentication; otherwise the configured credentials are used.
func remoteManager(cmd *cobra.Command, assumeYes bool) (*agent.Manager, func(), error) {
	cfg := loadConfig()

	tokens, err := tokenSource(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	client := fabric.NewClient(fabric.DefaultBaseURL, tokens, log)

	opts := agent.ManagerOptions{
		API: client,
		Log: log,
	}
	if assumeYes {
		opts.Confirm = func(string) bool { return true }
	} else {
		opts.Confirm = promptYesNo
	}

	cleanup := func() {}
	if cfg.HistoryEnabled() {
		if err := paths.EnsureDirs(); err != nil {
			return nil, nil, err
		}
		db, err := store.Open(paths.HistoryDB(), log)
		if err != nil {
			log.Warn().Err(err).Msg("run history unavailable")
		} else {
			opts.History = store.NewHistoryStore(db)
			cleanup = func() { db.Close() }
		}
	}

	return agent.NewManager(projectDir, &cfg, opts), cleanup, nil
}

func tokenSource(cmd *cobra.Command, cfg config.Config) (oauth2.TokenSource, error) {
	if token := os.Getenv("FABRIC_TOKEN"); token != "" {
		return fabric.StaticTokenSource(token), nil
	}
	if cfg.Auth.ClientID == "" || cfg.Auth.ClientSecret == "" || cfg.Auth.TenantID == "" {
		return nil, fmt.Errorf("no Fabric credentials: set auth.tenantId, auth.clientId, and auth.clientSecret in %s, or export FABRIC_TOKEN", paths.Config)
	}
	return fabric.NewTokenSource(cmd.Context(), cfg.Auth)
}

// promptYesNo asks on stdin and treats anything but y/yes as a no.
func promptYesNo(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
