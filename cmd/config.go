package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcoplo/osu-api-go/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write the configuration file and stored secrets",
	// The file may not exist yet, so only logging is set up.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logLevel
		if level == "" {
			level = "info"
		}
		logger = setupLogger(config.LoggingConfig{Level: level, Format: "console", Color: true})
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a key to the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.IsSecretKey(args[0]) {
			logger.Warn().Str("key", args[0]).Msg("Storing a secret in plain text, consider 'config set-secret'")
		}
		if err := config.Set(configPath(), args[0], args[1]); err != nil {
			return err
		}
		logger.Info().Str("key", args[0]).Str("file", configPath()).Msg("Config updated")
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := config.Get(cfgFile, args[0])
		if err != nil {
			return err
		}
		if config.IsSecretKey(args[0]) && value != "" {
			value = "(set)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetSecretCmd = &cobra.Command{
	Use:   "set-secret <key> [value]",
	Short: "Store a secret in the OS keyring",
	Long: `Store v1.api_key or v2.client_secret in the OS keyring. Without a value
argument the secret is read from the first line of standard input.

When no keyring is available the secret is written to the config file.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := ""
		if len(args) == 2 {
			value = args[1]
		} else {
			var err error
			if value, err = readSecret(cmd.InOrStdin()); err != nil {
				return err
			}
		}
		if value == "" {
			return fmt.Errorf("empty secret")
		}

		source, err := config.SetSecret(configPath(), args[0], value)
		if err != nil {
			return err
		}
		logger.Info().Str("key", args[0]).Str("stored_in", string(source)).Msg("Secret saved")
		return nil
	},
}

var configDeleteSecretCmd = &cobra.Command{
	Use:   "delete-secret <key>",
	Short: "Remove a secret from the OS keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.DeleteSecret(args[0]); err != nil {
			return err
		}
		logger.Info().Str("key", args[0]).Msg("Secret removed")
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the configuration keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, key := range config.Keys() {
			marker := ""
			if config.IsSecretKey(key) {
				marker = "\t(secret)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", key, marker)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd, configSetSecretCmd, configDeleteSecretCmd, configKeysCmd)
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}
