package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimforge/internal/model"
)

const defaultTimeout = 2 * time.Minute

// contextWithTimeout derives the command context bounded by the --timeout flag
func contextWithTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	d, _ := cmd.Flags().GetDuration("timeout")
	if d <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), d)
}

// addHTTPFlags registers the fetch options shared by generate, extract and batch
func addHTTPFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Duration("fetch-timeout", 0, "per-request HTTP timeout (default from config: 30s)")
	f.String("ua", "", "HTTP User-Agent")
	f.Int64("max-bytes", 0, "max response bytes to read")
	f.Bool("insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	f.Bool("no-robots", false, "ignore robots.txt")
	f.String("http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	f.String("https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	f.String("no-proxy", "", "comma-separated hosts to reach directly (overrides NO_PROXY env var)")
}

// applyHTTPFlags copies explicitly set fetch flags over the loaded config
func applyHTTPFlags(cmd *cobra.Command, cfg *model.Config) {
	f := cmd.Flags()
	if f.Changed("fetch-timeout") {
		cfg.HTTP.Timeout, _ = f.GetDuration("fetch-timeout")
	}
	if f.Changed("ua") {
		cfg.HTTP.UserAgent, _ = f.GetString("ua")
	}
	if f.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes, _ = f.GetInt64("max-bytes")
	}
	if f.Changed("insecure") {
		cfg.HTTP.InsecureTLS, _ = f.GetBool("insecure")
	}
	if noRobots, _ := f.GetBool("no-robots"); noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if f.Changed("http-proxy") {
		cfg.HTTP.HTTPProxy, _ = f.GetString("http-proxy")
	}
	if f.Changed("https-proxy") {
		cfg.HTTP.HTTPSProxy, _ = f.GetString("https-proxy")
	}
	if f.Changed("no-proxy") {
		cfg.HTTP.NoProxy, _ = f.GetString("no-proxy")
	}
}
