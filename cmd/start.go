package cmd

import (
	"context"
	"fmt"

	"backend-launcher/core/config"
	"backend-launcher/core/journal"
	"backend-launcher/core/loader"
	"backend-launcher/core/logger"
	"backend-launcher/core/storage"
	"backend-launcher/feature/preflight"
	"backend-launcher/feature/preflight/checks"
	"backend-launcher/feature/supervisor"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchFlag bool
var skipChecksFlag bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ML backend server",
	Long: `Runs the preflight checks, then spawns the backend server inside its
virtual environment and supervises it until exit or interrupt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Storage client, only when a model object fetch is configured
		var store storage.Client
		if cfg.Model.Enabled() && cfg.Model.Object != "" {
			if store, err = storage.NewClient(cfg.Storage); err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		// 4. Preflight
		svc := preflight.NewService(cfg.Backend, cfg.Model, store, cfg.Storage.Bucket, logg)

		layout, err := svc.ResolveLayout()
		if err != nil {
			return err
		}

		if skipChecksFlag {
			logg.Warn("Skipping dependency and model checks")
		} else {
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
				return fmt.Errorf("missing dependencies; install them with: %s -m pip install -r requirements.txt", layout.Python)
			}

			if cfg.Model.Enabled() {
				modelPath, err := svc.EnsureModel(ctx, layout)
				if err != nil {
					return err
				}
				logg.Info("Model artifact present", zap.String("path", modelPath))
			}
		}

		// 5. Journal (Optional)
		var j *journal.Journal
		if cfg.Journal.Enabled {
			if db, err := journal.Connect(cfg.Journal); err != nil {
				logg.Warn("Optional journal connection failed", zap.Error(err))
			} else if jj, err := journal.New(db); err != nil {
				logg.Warn("Journal migration failed", zap.Error(err))
			} else {
				j = jj
			}
		}

		// 6. Supervisor
		sup := supervisor.New(layout, logg).WithLock(cfg.Backend.LockPath())
		if j != nil {
			sup = sup.WithJournal(j)
		}
		if cfg.Probe.Enabled {
			sup = sup.WithProbe(supervisor.NewProbe(cfg.Probe))
		}
		if watchFlag {
			restarts, err := supervisor.WatchScript(ctx, layout.Script, logg)
			if err != nil {
				return err
			}
			sup = sup.WithRestart(restarts)
		}

		// 7. Control surface (Optional)
		if cfg.Control.Enabled {
			app := fiber.New(fiber.Config{
				DisableStartupMessage: true, // We will log our own startup message
			})

			mgr := loader.NewManager()
			mgr.Register(supervisor.NewFeature(sup, cfg.Control))
			if err := mgr.LoadAll(app); err != nil {
				return fmt.Errorf("failed to load features: %w", err)
			}

			go func() {
				logg.Info("Control endpoint listening", zap.String("port", cfg.Control.Port))
				if err := app.Listen(":" + cfg.Control.Port); err != nil {
					logg.Error("Control endpoint failed", zap.Error(err))
				}
			}()
			defer func() { _ = app.Shutdown() }()
		}

		// 8. Supervise until exit or interrupt
		return sup.Run(ctx)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)

	startCmd.Flags().BoolVar(&watchFlag, "watch", false, "Restart the server when the script changes")
	startCmd.Flags().BoolVar(&skipChecksFlag, "skip-checks", false, "Skip dependency and model checks")
}
