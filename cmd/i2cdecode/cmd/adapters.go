package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/lmi/i2cdecode"
	"github.com/lmi/i2cdecode/adapter"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(adaptersCmd)
}

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "list adapters and serial ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		head := color.New(color.FgHiBlue, color.Bold).SprintFunc()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, head("Adapters"))
		for _, a := range i2cdecode.ListAdapters() {
			fmt.Fprintf(out, "  %-12s %s\n", a.Name, a.Description)
		}

		fmt.Fprintln(out, head("Ports"))
		ports, err := adapter.ListPorts()
		if err != nil {
			if errors.Is(err, adapter.ErrNoPorts) {
				fmt.Fprintln(out, "  none")
				return nil
			}
			return err
		}
		for _, p := range ports {
			fmt.Fprintf(out, "  %s\n", p)
		}
		return nil
	},
}
