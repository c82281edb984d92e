package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/app"
	"github.com/ternarybob/finsight/internal/common"
)

var (
	// Command-line flags
	configFile   = flag.String("config", "", "Configuration file path")
	configFileC  = flag.String("c", "", "Configuration file path (shorthand)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func usage() {
	fmt.Fprintf(os.Stderr, `Finsight - market analysis and advisory chat

Usage:
  finsight [flags] <command> [arguments]

Commands:
  analyze <ticker>     Fetch history, project prices and summarize the trend
  news <ticker>        Score recent news sentiment for a ticker
  chat [message]       Answer a message, or start an interactive session
  register <username>  Create a user and record their financial profile
  version              Print version information

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Finsight version %s\n", common.GetVersion())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if args[0] == "version" {
		fmt.Printf("Finsight version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// Load API keys from .env before config so env overrides see them
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file -> env)
	// 2. Initialize logger
	// 3. Initialize application
	configPath := *configFile
	if configPath == "" {
		configPath = *configFileC
	}
	if configPath == "" {
		if _, err := os.Stat("finsight.toml"); err == nil {
			configPath = "finsight.toml"
		}
	}

	var err error
	config, err = common.LoadFromFile(configPath)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger = common.InitLogger(config)

	logger.Info().
		Str("version", common.GetVersion()).
		Str("config_file", configPath).
		Str("environment", config.Environment).
		Msg("Finsight starting")

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	switch args[0] {
	case "analyze":
		err = runAnalyze(application, args[1:])
	case "news":
		err = runNews(application, args[1:])
	case "chat":
		err = runChat(application, args[1:])
	case "register":
		err = runRegister(application, args[1:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error().Err(err).Str("command", args[0]).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
