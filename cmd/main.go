package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "netdev",
		Short: "Manage Linux bridges over rtnetlink.",
		Long: "netdev creates bridges, attaches ports to them, assigns addresses and brings\n" +
			"interfaces up. It can also dump the link table and the bridges' forwarding database.",
		PersistentPreRunE: setup,
		SilenceUsage:      true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Get the built version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("built commit: %s\n", builtCommit)
		},
	}

	confPath     string
	logLevelFlag string
	logTimeFlag  bool
	jsonFlag     bool
	builtCommit  = "dev"

	conf *Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&confPath, "conf", "", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "one of trace, debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&logTimeFlag, "log-time", false, "include timestamps in log lines")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print dumps as JSON")

	// Disable completion please!
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add the different sub-commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(fdbCmd)
	rootCmd.AddCommand(bridgeCmd)
	rootCmd.AddCommand(addrCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(serveCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	logLevel, ok := logLevelMap[logLevelFlag]
	if !ok {
		return fmt.Errorf("unknown log level %q", logLevelFlag)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   logLevel < slog.LevelInfo,
		Level:       logLevel,
		ReplaceAttr: logReplacements,
	}))
	slog.SetDefault(logger)

	if confPath == "" {
		c, err := defaultConf()
		if err != nil {
			return err
		}
		conf = c
		return nil
	}

	c, err := ReadConf(confPath)
	if err != nil {
		return err
	}
	conf = c
	slog.Debug("loaded configuration", "path", confPath)

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
