package main

import (
	"context"
	"ctwatch/internal/config"
	"ctwatch/internal/monitor"
	"ctwatch/pkg/certlog"
	"ctwatch/pkg/certlog/crtsh"
	"ctwatch/pkg/domain"
	"ctwatch/pkg/logger"
	"ctwatch/pkg/storage"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkResult is the outcome of a one-shot lookup.
type checkResult struct {
	Domain string
	New    []string
	Known  []string
	Saved  bool
}

// runCheck fetches the candidates of name and splits them into new and known
// hostnames. With save, the new ones are recorded through the diff engine.
func runCheck(
	ctx context.Context,
	client certlog.Client,
	strg storage.SubdomainStorage,
	raw string,
	save bool) (*checkResult, error) {
	name, err := domain.ParseMonitoredDomain(raw)
	if err != nil {
		return nil, err
	}

	candidates, err := client.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not fetch %s: %w", name, err)
	}

	known, err := strg.KnownSubdomains(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not load known subdomains: %w", err)
	}
	seen := make(map[string]struct{}, len(known))
	for _, h := range known {
		seen[h] = struct{}{}
	}

	res := &checkResult{Domain: name}
	for _, h := range domain.NormalizeHostnames(candidates) {
		if _, ok := seen[h]; ok {
			res.Known = append(res.Known, h)
		} else {
			res.New = append(res.New, h)
		}
	}

	if save && len(res.New) > 0 {
		if _, err = monitor.NewDiffer(strg).Apply(ctx, name, candidates); err != nil {
			return res, err
		}
		res.Saved = true
	}

	return res, nil
}

// printCheck writes res to w, new hostnames first.
func printCheck(w io.Writer, res *checkResult) {
	newColor := color.New(color.FgGreen, color.Bold)
	knownColor := color.New(color.FgHiBlack)

	for _, h := range res.New {
		_, _ = newColor.Fprintf(w, "+ %s\n", h)
	}
	for _, h := range res.Known {
		_, _ = knownColor.Fprintf(w, "  %s\n", h)
	}

	summary := fmt.Sprintf("%s: %d new, %d known", res.Domain, len(res.New), len(res.Known))
	if res.Saved {
		summary += ", saved"
	}
	_, _ = color.New(color.FgCyan).Fprintln(w, summary)
}

func checkCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <domain>",
		Short: "Queries crt.sh once and compares the result with the known subdomains",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := logger.WithFields(context.Background(), zap.String("domain", args[0]))
			save, _ := cmd.Flags().GetBool("save")

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			client := crtsh.New(crtsh.Options{
				BaseURL:     cfg.CertLog.BaseURL,
				UserAgent:   cfg.CertLog.UserAgent,
				Timeout:     cfg.CertLog.Timeout,
				MaxAttempts: cfg.CertLog.MaxAttempts,
			})

			res, err := runCheck(ctx, client, strg, args[0], save)
			if err != nil {
				logger.Fatal(ctx, "check failed", zap.Error(err)) //nolint: gocritic
			}

			printCheck(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().Bool("save", false, "Record new subdomains as known")

	return cmd
}
