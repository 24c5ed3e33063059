package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dropcord/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg     *config.Config
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dropcord",
	Short: "dropcord - upload files to a Discord channel through a webhook",
	Long: `dropcord uploads files to a Discord channel through an incoming webhook
and prints the public attachment URL of every file.

Each file is hashed, its real type is detected from its contents and its
extension is corrected before it is posted. Files in a batch are uploaded
one at a time; the first failure stops the batch.

Usage:
  Upload files:     dropcord upload photo.jpg notes.pdf
  Run the web UI:   dropcord serve --addr :9002
  Inspect a file:   dropcord inspect photo.jpg

The webhook URL is read from --webhook, DROPCORD_WEBHOOK_URL,
DISCORD_WEBHOOK_URL, a .env file or the config file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initConfig()

		loaded, err := config.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dropcord.yaml)")
	rootCmd.PersistentFlags().String("webhook", "", "Discord webhook URL")
	rootCmd.PersistentFlags().Int64("max-size", config.DefaultMaxFileSize, "maximum size of a single file in bytes")

	viper.BindPFlag("webhook.url", rootCmd.PersistentFlags().Lookup("webhook"))
	viper.BindPFlag("upload.max_file_size", rootCmd.PersistentFlags().Lookup("max-size"))

	config.SetDefaults(viper.GetViper())

	// Set up viper environment variable support
	if err := config.BindEnv(viper.GetViper()); err != nil {
		log.Printf("Warning: Could not bind environment: %v", err)
	}
}

// initConfig reads in the .env file, config file and ENV variables
func initConfig() {
	if envPath, err := config.LoadDotEnv(""); err == nil {
		log.Printf("Loaded environment from %s", envPath)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			log.Printf("Warning: Could not find home directory: %v", err)
			return
		}

		// Search config in home directory with name ".dropcord" (without extension)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dropcord")
	}

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		log.Printf("Using config file: %s", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		log.Printf("Warning: Could not read config file %s: %v", cfgFile, err)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// createContext creates a context that cancels on interrupt signals
func createContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	return ctx
}
