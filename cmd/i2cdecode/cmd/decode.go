package cmd

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/lmi/i2cdecode"
	"github.com/lmi/i2cdecode/pkg/bar"
	"github.com/lmi/i2cdecode/pkg/config"
	"github.com/lmi/i2cdecode/pkg/decoder"
	"github.com/lmi/i2cdecode/pkg/render"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const (
	flagWidth    = "width"
	flagColor    = "color"
	flagTiming   = "timing"
	flagProgress = "progress"
	flagRows     = "rows"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [capture]",
	Short: "decode sigrok I2C annotations",
	Long: `Reads "i2c-1: ..." annotation lines as printed by sigrok-cli -P i2c
and prints one line per decoded field. The capture defaults to --port,
"-" reads stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.Adapter.Port = args[0]
		}
		if err := applyOutputFlags(cmd, cfg); err != nil {
			return err
		}
		rowFlag, err := cmd.Flags().GetStringSlice(flagRows)
		if err != nil {
			return err
		}
		rows, err := parseRows(strings.Join(rowFlag, ","))
		if err != nil {
			return err
		}

		var pb *progressbar.ProgressBar
		var onProgress func(int)
		if showProgress, _ := cmd.Flags().GetBool(flagProgress); showProgress {
			if fi, err := os.Stat(cfg.Adapter.Port); err == nil && fi.Mode().IsRegular() {
				pb = bar.New(fi.Size(), "decoding")
				onProgress = bar.Tracker(pb)
			}
		}

		a, err := newAdapter(cmd, cfg, onProgress)
		if err != nil {
			return err
		}
		d := decoder.New(decoderOptions(cfg)...)
		out := render.NewText(
			cmd.OutOrStdout(),
			render.WithWidth(cfg.Output.Width),
			render.WithColor(cfg.ColorEnabled()),
			render.WithRows(rows...),
			render.WithNotices(cmd.ErrOrStderr()),
		)

		start := time.Now()
		err = decoder.Pipeline(cmd.Context(), a, d, out)
		if pb != nil {
			pb.Finish()
		}
		if debug, _ := cmd.Flags().GetBool(flagDebug); debug {
			log.Println("took", time.Since(start).String(), d.Stats())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	addOutputFlags(decodeCmd)
	f := decodeCmd.Flags()
	f.Bool(flagProgress, false, "show a progress bar when reading a file")
	f.StringSlice(flagRows, nil, "only print these rows (chips,pic,bms,usb-pd,hall,debug)")
}

// addOutputFlags registers one show switch per device plus the layout flags.
func addOutputFlags(c *cobra.Command) {
	f := c.Flags()
	for _, dev := range i2cdecode.Devices {
		f.Bool(dev.Key(), true, dev.Description())
	}
	f.IntP(flagWidth, "w", config.DefaultWidth, "label width, picks the longest label that fits")
	f.Bool(flagColor, true, "colorize output")
	f.BoolP(flagTiming, "t", false, "annotate every data byte with its sample span")
}

func applyOutputFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	for _, dev := range i2cdecode.Devices {
		if !f.Changed(dev.Key()) {
			continue
		}
		show, err := f.GetBool(dev.Key())
		if err != nil {
			return err
		}
		cfg.SetShown(dev, show)
	}
	var err error
	if f.Changed(flagWidth) {
		if cfg.Output.Width, err = f.GetInt(flagWidth); err != nil {
			return err
		}
	}
	if f.Changed(flagColor) {
		on, err := f.GetBool(flagColor)
		if err != nil {
			return err
		}
		cfg.Output.Color = &on
	}
	if f.Changed(flagTiming) {
		if cfg.Output.Timing, err = f.GetBool(flagTiming); err != nil {
			return err
		}
	}
	return nil
}
