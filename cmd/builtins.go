package cmd

import (
	"fmt"
	"sort"

	"github.com/josephlewis42/modoki/commands"
	"github.com/josephlewis42/modoki/core/shell"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var builtins []string

		for _, builtin := range commands.ListBuiltinCommands(nil) {
			builtins = append(builtins, builtin.Name)
		}

		for _, name := range shell.BuiltinNames {
			builtins = append(builtins, "shell:"+name)
		}

		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
