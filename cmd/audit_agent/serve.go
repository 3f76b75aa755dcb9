package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/hr-audit/internal/config"
	"github.com/jonathan/hr-audit/internal/notify"
	"github.com/jonathan/hr-audit/internal/orchestrator"
	"github.com/jonathan/hr-audit/internal/records"
	"github.com/jonathan/hr-audit/internal/registry"
	"github.com/jonathan/hr-audit/internal/server"
	"github.com/jonathan/hr-audit/internal/store"
)

var (
	servePort          string
	serveConfigPath    string
	serveOutputsDir    string
	serveDataCSV       string
	servePolicyFile    string
	serveMaxConcurrent int
	serveVerbose       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for launching and observing audit runs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().StringVar(&serveOutputsDir, "outputs", "", "Directory for run artifacts and scratchpads")
	serveCmd.Flags().StringVar(&serveDataCSV, "data", "", "Path to the employee records CSV")
	serveCmd.Flags().StringVar(&servePolicyFile, "policy", "", "Path to the YAML policy file")
	serveCmd.Flags().IntVar(&serveMaxConcurrent, "max-concurrent", 0, "Maximum runs executing at once (0 = unlimited)")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

// resolveConfig layers flag values over the config file over env vars over
// built-in defaults.
func resolveConfig(configPath, port, outputsDir, dataCSV, policyFile string, maxConcurrent int, verbose bool) (config.Config, error) {
	cfg := config.Config{
		Port:              port,
		OutputsDir:        outputsDir,
		DataCSV:           dataCSV,
		PolicyFile:        policyFile,
		MaxConcurrentRuns: maxConcurrent,
		Verbose:           verbose,
	}

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Port:       os.Getenv("PORT"),
		OutputsDir: os.Getenv("OUTPUTS_DIR"),
		DataCSV:    os.Getenv("DATA_CSV"),
		PolicyFile: os.Getenv("POLICY_FILE"),
	})

	cfg = cfg.MergeWithDefaults(config.Config{
		Port:       "8080",
		OutputsDir: "outputs",
	})

	if cfg.DataCSV == "" {
		return config.Config{}, fmt.Errorf("data CSV path is required (--data flag, DATA_CSV env, or config file)")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the process logger.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadPolicy reads the policy file when configured, otherwise the built-in
// defaults.
func loadPolicy(path string) (*config.PolicyConfig, error) {
	if path == "" {
		return config.DefaultPolicy(), nil
	}
	return config.LoadPolicy(path)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfigPath, servePort, serveOutputsDir, serveDataCSV,
		servePolicyFile, serveMaxConcurrent, serveVerbose)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // flush on exit; stderr sync errors are benign

	policy, err := loadPolicy(cfg.PolicyFile)
	if err != nil {
		return err
	}

	fileStore, err := store.NewFileStore(cfg.OutputsDir)
	if err != nil {
		return fmt.Errorf("failed to create output store: %w", err)
	}

	reg := registry.New()
	orch := orchestrator.New(orchestrator.Options{
		Registry:          reg,
		Store:             fileStore,
		Notifier:          notify.NewEmailSimulator(),
		Source:            records.NewCSVSource(cfg.DataCSV),
		Policy:            policy,
		Logger:            logger,
		MaxConcurrentRuns: cfg.MaxConcurrentRuns,
	})

	srv := server.New(server.Config{
		Port:         cfg.Port,
		Registry:     reg,
		Store:        fileStore,
		Orchestrator: orch,
		Logger:       logger,
	})

	return srv.Start()
}
