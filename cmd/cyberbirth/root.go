package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cyberbirth/cyberbirth-backend/config"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/repository"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/service"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/storage"
	"github.com/cyberbirth/cyberbirth-backend/internal/bootstrap"
	"github.com/cyberbirth/cyberbirth-backend/internal/logging"
	"github.com/cyberbirth/cyberbirth-backend/internal/wishes"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what every subcommand needs once the store is open
type app struct {
	svc     *service.BirthdayService
	cleanup func()
}

type rootOptions struct {
	file    string
	verbose bool

	// openSlot lets tests swap the storage backend
	openSlot func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Slot, func(), error)
	// wishClient overrides the configured generator when set
	wishClient service.WishClient
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootOptions{openSlot: bootstrap.OpenSlot})
}

func newRootCmdWith(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "cyberbirth",
		Short:         "Track birthdays and generate wishes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.file, "file", "", "birthday file (file backend only; overrides STORAGE_FILE)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newDeleteCmd(opts),
		newWishCmd(opts),
		newStatsCmd(opts),
	)
	return root
}

func (o *rootOptions) open(ctx context.Context) (*app, error) {
	cfg, err := config.Load(config.BackendFile)
	if err != nil {
		return nil, err
	}
	if o.file != "" {
		cfg.Storage.FilePath = o.file
	}

	logger := zap.NewNop()
	if o.verbose {
		if logger, err = logging.New(cfg.App.Environment, "debug"); err != nil {
			return nil, err
		}
	}
	ctx = logging.WithLogger(ctx, logger)

	slot, closeSlot, err := o.openSlot(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := repository.Open(ctx, slot, logger)
	if err != nil {
		closeSlot()
		return nil, err
	}

	var wc service.WishClient = o.wishClient
	if wc == nil {
		wc = bootstrap.NewWishClient(ctx, &cfg.Gemini, logger)
	}

	return &app{
		svc: service.NewBirthdayService(store, wc),
		cleanup: func() {
			logger.Sync()
			closeSlot()
		},
	}, nil
}

func withApp(opts *rootOptions, fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := opts.open(cmd.Context())
		if err != nil {
			return err
		}
		defer a.cleanup()
		return fn(cmd, a, args)
	}
}

func printWish(w io.Writer, res wishes.Result) {
	fmt.Fprintf(w, "%s\n\nGift ideas:\n", res.Wish)
	for _, idea := range res.GiftIdeas {
		fmt.Fprintf(w, "  - %s\n", idea)
	}
}
