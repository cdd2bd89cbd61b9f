package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/lmi/i2cdecode"
	"github.com/lmi/i2cdecode/adapter"
	"github.com/lmi/i2cdecode/pkg/config"
	"github.com/lmi/i2cdecode/pkg/decoder"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "i2cdecode",
	Short:        "LMI Reflex I2C bus decoder",
	Long:         `Decodes the PIC, BMS, Hall sensor and USB-PD traffic of an LMI Reflex board from sigrok I2C annotations`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

const (
	flagPort     = "port"
	flagBaudrate = "baudrate"
	flagDebug    = "debug"
	flagAdapter  = "adapter"
	flagConfig   = "config"
)

func init() {
	log.SetFlags(log.Lshortfile | log.LstdFlags)

	pf := rootCmd.PersistentFlags()
	pf.StringP(flagPort, "p", "*", "com-port or capture file, * = select / stdin")
	pf.IntP(flagBaudrate, "b", config.DefaultBaudrate, "baudrate")
	pf.BoolP(flagDebug, "d", false, "debug mode")
	pf.StringP(flagAdapter, "a", config.DefaultAdapter, "what adapter to use")
	pf.StringP(flagConfig, "c", "", "yaml settings file")
}

// loadConfig reads --config and lets explicitly set flags win over it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	pf := cmd.Flags()
	path, err := pf.GetString(flagConfig)
	if err != nil {
		return nil, err
	}
	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if pf.Changed(flagAdapter) || cfg.Adapter.Name == "" {
		if cfg.Adapter.Name, err = pf.GetString(flagAdapter); err != nil {
			return nil, err
		}
	}
	if pf.Changed(flagPort) || cfg.Adapter.Port == "" {
		if cfg.Adapter.Port, err = pf.GetString(flagPort); err != nil {
			return nil, err
		}
	}
	if pf.Changed(flagBaudrate) {
		if cfg.Adapter.Baudrate, err = pf.GetInt(flagBaudrate); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func decoderOptions(cfg *config.Config) []decoder.Option {
	opts := []decoder.Option{
		decoder.WithAddresses(cfg.Addresses()),
		decoder.WithTiming(cfg.Output.Timing),
	}
	for _, dev := range i2cdecode.Devices {
		opts = append(opts, decoder.WithEnabled(dev, cfg.Shown(dev)))
	}
	return opts
}

func adapterInfo(name string) (i2cdecode.AdapterInfo, error) {
	for _, a := range i2cdecode.ListAdapters() {
		if a.Name == name {
			return a, nil
		}
	}
	return i2cdecode.AdapterInfo{}, fmt.Errorf("%w %q", i2cdecode.ErrUnknownAdapter, name)
}

// resolvePort turns "*" into a real source: a prompt for serial
// adapters and stdin for capture readers.
func resolvePort(info i2cdecode.AdapterInfo, port string) (string, error) {
	if port != "*" {
		return port, nil
	}
	if !info.RequiresSerialPort {
		return "-", nil
	}
	return selectPort()
}

func selectPort() (string, error) {
	ports, err := adapter.ListPorts()
	if err != nil {
		return "", err
	}
	items := make([]string, len(ports))
	for i, p := range ports {
		items[i] = p.String()
	}
	prompt := promptui.Select{
		Label:    "Select port",
		HideHelp: true,
		Items:    items,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return ports[idx].Name, nil
}

func newAdapter(cmd *cobra.Command, cfg *config.Config, onProgress func(int)) (i2cdecode.Adapter, error) {
	debug, err := cmd.Flags().GetBool(flagDebug)
	if err != nil {
		return nil, err
	}
	info, err := adapterInfo(cfg.Adapter.Name)
	if err != nil {
		return nil, err
	}
	port, err := resolvePort(info, cfg.Adapter.Port)
	if err != nil {
		return nil, err
	}
	return i2cdecode.NewAdapter(info.Name, &i2cdecode.AdapterConfig{
		Debug:        debug,
		Port:         port,
		PortBaudrate: cfg.Adapter.Baudrate,
		OnMessage: func(msg string) {
			log.Println(msg)
		},
		OnProgress: onProgress,
	})
}
