package cmd

import (
	"context"
	"fmt"
	"os"

	"backend-launcher/core/config"
	"backend-launcher/core/logger"
	"backend-launcher/core/storage"
	"backend-launcher/feature/preflight"
	"backend-launcher/feature/preflight/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run launch preflight checks",
	Long:  `Verifies the backend layout, the required Python packages and the trained model artifact without starting the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runPreflightChecks(cmd.Context(), false, false, false)
	},
}

// layoutCmd represents the check layout command
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Check the backend directory tree",
	Run: func(cmd *cobra.Command, args []string) {
		runPreflightChecks(cmd.Context(), true, false, false)
	},
}

// depsCmd represents the check deps command
var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check the required Python packages",
	Run: func(cmd *cobra.Command, args []string) {
		runPreflightChecks(cmd.Context(), false, true, false)
	},
}

// modelCmd represents the check model command
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Check the trained model artifact",
	Long:  `Verifies the model file exists under the application directory, fetching it from storage or a configured URL when missing.`,
	Run: func(cmd *cobra.Command, args []string) {
		runPreflightChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(layoutCmd, depsCmd, modelCmd)
}

func runPreflightChecks(ctx context.Context, onlyLayout, onlyDeps, onlyModel bool) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	// Storage client, only when the model check may need a fetch
	var store storage.Client
	if cfg.Model.Enabled() && cfg.Model.Object != "" {
		if store, err = storage.NewClient(cfg.Storage); err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
	}

	svc := preflight.NewService(cfg.Backend, cfg.Model, store, cfg.Storage.Bucket, logg)

	runDeps := onlyDeps || (!onlyLayout && !onlyModel)
	runModel := onlyModel || (!onlyLayout && !onlyDeps)

	// The layout always resolves first: every other check needs its paths.
	logg.Info("Checking backend layout...")
	layout, err := svc.ResolveLayout()
	if err != nil {
		logg.Fatal("Layout check failed", zap.Error(err))
	}
	logg.Info("Backend layout is intact.",
		zap.String("python", layout.Python),
		zap.String("script", layout.Script))

	if runDeps {
		logg.Info("Checking dependencies...")
		results := svc.CheckDependencies(ctx, layout)
		for _, r := range results {
			if r.OK() {
				logg.Info("Dependency resolved",
					zap.String("package", r.Package),
					zap.String("version", r.Version))
			} else {
				logg.Error("Dependency missing", zap.String("package", r.Package), zap.Error(r.Err))
			}
		}
		if !checks.AllResolved(results) {
			logg.Fatal("Missing dependencies detected",
				zap.String("hint", layout.Python+" -m pip install -r requirements.txt"))
		}
		logg.Info("All dependencies found.")
	}

	if runModel {
		if !cfg.Model.Enabled() {
			logg.Info("Model check disabled (no model file configured).")
		} else {
			logg.Info("Checking model artifact...")
			modelPath, err := svc.EnsureModel(ctx, layout)
			if err != nil {
				logg.Fatal("Model check failed", zap.Error(err))
			}
			logg.Info("Model artifact present.", zap.String("path", modelPath))
		}
	}
}
