package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/lmi/i2cdecode"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(devicesCmd)
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "print device addresses and annotation classes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		head := color.New(color.FgHiBlue, color.Bold).SprintFunc()
		off := color.New(color.FgHiBlack).SprintFunc()

		addrs := cfg.Addresses()
		fmt.Fprintln(cmd.OutOrStdout(), head("Devices"))
		for _, dev := range i2cdecode.Devices {
			addr, ok := addrs.AddressOf(dev)
			line := fmt.Sprintf("  %-10s", dev.String())
			if ok {
				line += fmt.Sprintf(" 0x%02X", addr)
			} else {
				line += " ----"
			}
			if !cfg.Shown(dev) {
				line = off(line + " (hidden)")
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}

		fmt.Fprintln(cmd.OutOrStdout(), head("Classes"))
		for _, c := range i2cdecode.Classes() {
			info := c.Info()
			fmt.Fprintf(cmd.OutOrStdout(), "  %2d %-16s %-7s %s\n", int(c), info.ID, info.Row, info.Description)
		}
		return nil
	},
}
