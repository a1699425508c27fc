package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"dappscope/internal/domain/entity"
)

type checkOutput struct {
	Wallet        string              `json:"wallet"`
	Checksum      string              `json:"checksum"`
	ExploredCount int                 `json:"exploredCount"`
	TotalDapps    int                 `json:"totalDapps"`
	ExploredDapps []string            `json:"exploredDapps"`
	Matched       map[string][]string `json:"matchedContracts"`
}

func newCheckCmd(cfgPath *string) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check <wallet>",
		Short: "Check one wallet against the registry and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			a, err := newApp(*cfgPath, "stderr")
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			result, err := a.service.Explore(ctx, args[0])
			if err != nil {
				return err
			}
			return writeCheckOutput(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall deadline for the check")

	return cmd
}

// writeCheckOutput prints the result; matched contracts map checksummed address to the
// names of every dApp listing it, in registry order.
func writeCheckOutput(w io.Writer, result entity.MatchResult) error {
	out := checkOutput{
		Wallet:        result.Wallet.String(),
		Checksum:      result.Wallet.Checksum(),
		ExploredCount: result.ExploredCount(),
		TotalDapps:    result.TotalDapps,
		ExploredDapps: result.ExploredDapps,
		Matched:       make(map[string][]string),
	}
	for _, st := range result.PerDapp {
		for _, a := range st.MatchedContracts {
			key := a.Checksum()
			out.Matched[key] = append(out.Matched[key], st.Name)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
