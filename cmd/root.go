package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"freight/internal/adapters/out/postgres"
	"freight/internal/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type rootOptions struct {
	configFile string
}

// NewRootCommand builds the freight CLI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "freight",
		Short:         "Freight booking and loading sheet service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default ./config.yaml)")

	root.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newSequenceCommand(opts),
		newBranchCommand(opts),
	)
	return root
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// runtimeDeps are the pieces every subcommand needs.
type runtimeDeps struct {
	cfg    Config
	logger *zap.Logger
	db     *gorm.DB
}

func bootstrap(opts *rootOptions) (*runtimeDeps, error) {
	cfg, err := LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &runtimeDeps{cfg: cfg, logger: logger, db: db}, nil
}

func (d *runtimeDeps) close() {
	if err := postgres.Close(d.db); err != nil {
		d.logger.Warn("close database", zap.Error(err))
	}
	_ = d.logger.Sync()
}
