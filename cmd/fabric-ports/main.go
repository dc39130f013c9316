package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netfab/fabric-port-engine/internal/constants"
	"github.com/netfab/fabric-port-engine/pkg/engine"
	"github.com/netfab/fabric-port-engine/pkg/loader"
	"github.com/netfab/fabric-port-engine/pkg/models"
	"github.com/netfab/fabric-port-engine/pkg/utils"
)

var (
	switchModel string
	dataDir     string
	dryRun      bool
	autoDir     string
	manualDir   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fabric-ports",
		Short: "Fabric Port Assignment Engine",
		Long:  `Validates and reconciles switch port assignments against the physical and logical wiring constraints of the target switch model`,
	}

	rootCmd.PersistentFlags().StringVar(&switchModel, "model", constants.DefaultSwitchModel, "Switch model identifier")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "Base directory for assignment definitions")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Report what would change without applying pins")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an assignment set against the switch model",
		RunE:  runValidate,
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare a manual assignment set against the automatic baseline",
		RunE:  runDiff,
	}
	diffCmd.Flags().StringVar(&autoDir, "auto", "assignments/auto", "Folder holding the automatic baseline set")
	diffCmd.Flags().StringVar(&manualDir, "manual", "assignments/manual", "Folder holding the manual override set")

	overridesCmd := &cobra.Command{
		Use:   "overrides",
		Short: "Show the pinned and locked ports the automatic allocator must respect",
		RunE:  runOverrides,
	}

	rootCmd.AddCommand(validateCmd, diffCmd, overridesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := utils.NewLogger(dryRun)

	profile, ok := models.ProfileFor(switchModel)
	if !ok {
		logger.Error("Unknown switch model "+switchModel, nil)
		return fmt.Errorf("unknown switch model %q", switchModel)
	}

	dataLoader := loader.NewDataLoader(dataDir, logger)
	assignments, err := dataLoader.LoadAssignments("assignments")
	if err != nil {
		logger.Error("Failed to load assignments", err)
		return err
	}

	logger.Info("Validating %d assignments against %s...", len(assignments), profile.Model)
	result := engine.ValidateAll(assignments, profile)
	printViolations(logger, result.Violations)

	if !result.IsValid {
		logger.Error("Validation failed", nil)
		return fmt.Errorf("assignment set has blocking violations")
	}

	logger.Success("Assignment set is valid for %s", profile.Model)
	return nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	logger := utils.NewLogger(dryRun)

	profile, ok := models.ProfileFor(switchModel)
	if !ok {
		logger.Error("Unknown switch model "+switchModel, nil)
		return fmt.Errorf("unknown switch model %q", switchModel)
	}

	dataLoader := loader.NewDataLoader(dataDir, logger)

	auto, err := dataLoader.LoadAssignments(autoDir)
	if err != nil {
		logger.Error("Failed to load automatic baseline", err)
		return err
	}
	manual, err := dataLoader.LoadAssignments(manualDir)
	if err != nil {
		logger.Error("Failed to load manual set", err)
		return err
	}

	diff := engine.ComputeDiff(auto, manual, profile)
	summary := diff.ImpactSummary

	logger.Info("Comparing %d baseline ports against %d manual ports...", len(auto), len(manual))
	logger.Info("Ports changed: %d", summary.PortsChanged)
	logger.Info("Ports freed:   %d", summary.PortsFreed)
	logger.Info("Efficiency impact: %+.1f%%", summary.EfficiencyImpact)
	if len(summary.AffectedServers) > 0 {
		logger.Info("Affected servers: %v", summary.AffectedServers)
	}
	if len(summary.AffectedUplinks) > 0 {
		logger.Info("Affected uplinks: %v", summary.AffectedUplinks)
	}
	printViolations(logger, diff.Conflicts)

	return nil
}

func runOverrides(cmd *cobra.Command, args []string) error {
	logger := utils.NewLogger(dryRun)

	eng, err := engine.NewEngine(switchModel, nil, logger)
	if err != nil {
		logger.Error("Failed to construct engine", err)
		return err
	}

	dataLoader := loader.NewDataLoader(dataDir, logger)
	assignments, err := dataLoader.LoadAssignments("assignments")
	if err != nil {
		logger.Error("Failed to load assignments", err)
		return err
	}

	// Replay the set through the engine so pins and locks pass the same
	// validation path the interactive tool uses
	for _, a := range assignments {
		if a.IsUnused() {
			continue
		}

		if logger.IsDryRun() {
			logger.DryRun("APPLY", "Port %s -> %s (%s)", a.PortID, a.AssignedTo, a.Type)
			continue
		}

		wantLock := a.Locked
		a.Locked = false

		var res models.PinResult
		if a.Pinned || a.Metadata.AssignedBy == models.ProvenanceManual {
			res = eng.PinAssignment(a.PortID, a)
		} else {
			res = eng.AssignPort(a.PortID, a)
		}
		if !res.Success {
			logger.Warning("Port %s rejected:", a.PortID)
			printViolations(logger, res.Conflicts)
			for _, alt := range res.Suggestions {
				logger.Info("  suggestion: %s (confidence %.2f)", alt.Rationale, alt.Confidence)
			}
			continue
		}

		if wantLock {
			if lock := eng.LockPort(a.PortID, true); !lock.Success {
				logger.Warning("Port %s could not be locked:", a.PortID)
				printViolations(logger, lock.Conflicts)
			}
		}
	}

	overrides := eng.GetOverrides()
	logger.Info("Pinned assignments: %d", len(overrides.PinnedAssignments))
	for id, a := range overrides.PinnedAssignments {
		logger.Info("  %s -> %s (%s)", id, a.AssignedTo, a.Type)
	}
	logger.Info("Locked ports: %v", overrides.LockedPorts)
	printViolations(logger, overrides.Constraints)

	return nil
}

// printViolations logs each violation colored by severity
func printViolations(logger *utils.Logger, violations []models.ConstraintViolation) {
	for _, v := range violations {
		line := fmt.Sprintf("[%s] %s", v.Category, v.Message)
		if v.Suggestion != "" {
			line += " (" + v.Suggestion + ")"
		}
		if v.Severity == models.SeverityError {
			logger.Error(line, nil)
		} else {
			logger.Warning(line)
		}
	}
}
