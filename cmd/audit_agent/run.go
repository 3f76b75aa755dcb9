package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-audit/internal/notify"
	"github.com/jonathan/hr-audit/internal/observability"
	"github.com/jonathan/hr-audit/internal/orchestrator"
	"github.com/jonathan/hr-audit/internal/pipeline"
	"github.com/jonathan/hr-audit/internal/records"
	"github.com/jonathan/hr-audit/internal/registry"
	"github.com/jonathan/hr-audit/internal/store"
	"github.com/jonathan/hr-audit/internal/types"
)

var (
	runConfigPath string
	runOutputsDir string
	runDataCSV    string
	runPolicyFile string
	runAuditID    string
	runAuditName  string
	runVerbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one audit run and print the results",
	Long:  `Run the full audit pipeline once against the configured record source, wait for completion, and print the findings.`,
	RunE:  runOnce,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Path to JSON config file")
	runCmd.Flags().StringVar(&runOutputsDir, "outputs", "", "Directory for run artifacts and scratchpads")
	runCmd.Flags().StringVar(&runDataCSV, "data", "", "Path to the employee records CSV")
	runCmd.Flags().StringVar(&runPolicyFile, "policy", "", "Path to the YAML policy file")
	runCmd.Flags().StringVar(&runAuditID, "audit-id", "adhoc", "Audit identifier")
	runCmd.Flags().StringVar(&runAuditName, "audit-name", "Ad-hoc Audit", "Audit display name")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "Print detailed debug information")
	rootCmd.AddCommand(runCmd)
}

func runOnce(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(runConfigPath, "", runOutputsDir, runDataCSV,
		runPolicyFile, 0, runVerbose)
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
		Registry: reg,
		Store:    fileStore,
		Notifier: notify.NewEmailSimulator(),
		Source:   records.NewCSVSource(cfg.DataCSV),
		Policy:   policy,
		Logger:   logger,
	})

	run := orch.StartRun(runAuditID, runAuditName)
	orch.Wait()

	final, err := reg.Get(run.RunID)
	if err != nil {
		return fmt.Errorf("run vanished from registry: %w", err)
	}
	printResults(fileStore, &final)

	if final.Status == types.RunStatusError {
		return fmt.Errorf("run %s failed: %s", final.RunID, final.Error)
	}
	return nil
}

// printResults renders the run outcome and whatever artifacts the run
// managed to persist.
func printResults(s store.Store, run *types.Run) {
	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRunStatus(run, pipeline.New().StageIDs())

	var rulesRes types.RulesResults
	if err := store.GetArtifactAs(s, run.RunID, types.ArtifactRulesResults, &rulesRes); err == nil {
		printer.PrintRulesResults(&rulesRes)
	}

	var policyRes types.PolicyResults
	if err := store.GetArtifactAs(s, run.RunID, types.ArtifactPolicyResults, &policyRes); err == nil {
		printer.PrintPolicyResults(&policyRes)
	}

	var summary types.Summary
	if err := store.GetArtifactAs(s, run.RunID, types.ArtifactSummary, &summary); err == nil {
		printer.PrintSummary(&summary)
	}
}
