package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"yttranscript/internal/app"
	"yttranscript/internal/config"
	"yttranscript/internal/logger"
)

const version = "1.0"

// main is the application entry point
func main() {
	// Parse command line flags
	var (
		helpFlag    = flag.Bool("help", false, "Show help message")
		versionFlag = flag.Bool("version", false, "Show version information")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
		infoFlag    = flag.String("info", "", "Path to a video metadata JSON file (optional)")
		vttFlag     = flag.String("vtt", "", "Path to the WebVTT caption file (required)")
		outputFlag  = flag.String("output", "", "Transcript output path (default: stdout)")
		configFlag  = flag.String("config", "", "Path to a config file (optional)")
	)
	flag.Parse()

	if *helpFlag {
		printHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("yttranscript version %s\n", version)
		os.Exit(0)
	}

	if *vttFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: -vtt is required")
		printHelp()
		os.Exit(2)
	}

	if err := runApplication(*infoFlag, *vttFlag, *outputFlag, *configFlag, *verboseFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// runApplication contains the core application logic that can be tested
func runApplication(infoPath, vttPath, outputPath, configPath string, verbose bool) error {
	zapLogger, err := logger.NewLoggerForVerbosity(verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("yttranscript starting up",
		zap.String("component", "main"),
		zap.String("version", version))

	cfg, err := loadConfiguration(configPath)
	if err != nil {
		zapLogger.Error("failed to load configuration",
			zap.Error(err),
			zap.String("component", "main"))
		return err
	}

	// Flag overrides config for the output path
	if outputPath != "" {
		cfg.SetOutputPath(outputPath)
	}

	application := app.NewApplicationWithConfig(cfg, zapLogger)

	// Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		zapLogger.Info("received shutdown signal",
			zap.String("signal", sig.String()),
			zap.String("component", "main"))
		cancel()
	}()

	return application.Run(ctx, infoPath, vttPath)
}

// loadConfiguration resolves the configuration source: explicit file flag,
// CONFIG_PATH, or environment variables
func loadConfiguration(configPath string) (*config.Configuration, error) {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	if configPath != "" {
		return config.NewConfigurationFromFile(configPath)
	}

	return config.NewConfigurationFromEnv()
}

func printHelp() {
	fmt.Println("yttranscript - turn auto-generated caption tracks into a clean transcript")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  yttranscript -vtt captions.vtt [-info metadata.json] [-output out.json]")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
