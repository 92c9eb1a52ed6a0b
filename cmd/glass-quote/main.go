package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/paneworks/glass-quote/internal/config"
	"github.com/paneworks/glass-quote/internal/pricing"
	"github.com/paneworks/glass-quote/internal/server"
	"github.com/paneworks/glass-quote/pkg/constants"
	"github.com/paneworks/glass-quote/pkg/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// loadQuoteRequest reads one quote request from a YAML file.
func loadQuoteRequest(path string) (*pricing.QuoteRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %s: %w", path, err)
	}
	var request pricing.QuoteRequest
	if err := yaml.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("failed to decode request file %s: %w", path, err)
	}
	return &request, nil
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	requestLocation := flag.String("request", "", "path to a quote request file (YAML)")
	listenAddress := flag.String("listen", "", "serve the quote API on this address instead of running one quote")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Select the config provider: the hosted Postgres store when configured,
	// otherwise the snapshot embedded in the YAML config file.
	var provider config.Provider
	if conf.Database.Host != "" {
		pgProvider, err := config.NewPostgresProvider(conf.Database)
		if err != nil {
			logger.Fatal("failed to connect to config store",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		defer func() {
			_ = pgProvider.Close()
		}()
		provider = pgProvider
	} else {
		provider = &config.StaticProvider{Config: conf.Pricing}
	}

	// Validate the starting snapshot and display any warnings.
	snapshot, err := provider.Snapshot()
	if err != nil {
		logger.Fatal("failed to fetch pricing configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	warnings, err := snapshot.Validate()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	if err != nil {
		logger.Fatal("invalid pricing configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Server mode: expose the quote API and block.
	if *listenAddress != "" {
		handler := server.NewHandler(logger, provider, constants.DefaultMaxBodySizeBytes, version)
		logger.Info("serving quote API",
			zap.String("op", "main"),
			zap.String("address", *listenAddress),
		)
		if err := http.ListenAndServe(*listenAddress, handler); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// One-shot mode: price a single request file.
	if *requestLocation == "" {
		logger.Fatal("either -request or -listen is required",
			zap.String("op", "main"),
		)
	}

	outputFormat := *outputFormatFlag
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := output.ValidateFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	request, err := loadQuoteRequest(*requestLocation)
	if err != nil {
		logger.Fatal("failed to load quote request",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	result, err := pricing.CalculateQuote(*request, snapshot)
	if err != nil {
		logger.Fatal("failed to compute quote",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, result)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, result)
	}
}
