package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wavemill/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of required external tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Default(cfg))

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					if status.Optional {
						state = "missing (optional)"
					}
				}
				rows = append(rows, []string{status.Name, status.Command, state, status.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Tool", "Command", "Status", "Purpose"}, rows))

			if missing, ok := deps.MissingRequired(statuses); ok {
				return fmt.Errorf("required tool %s is unavailable: %s", missing.Name, missing.Detail)
			}
			return nil
		},
	}
}
