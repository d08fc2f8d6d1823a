// Command seed loads the bundled sample data into MongoDB.
//
//	seed migrate [--all|--dataAssets|--domains] [--clean] [--file mock-data.json]
//	seed portfolios
//	seed program-docs
//	seed seeder [-i|-d]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/config"
	"github.com/rriehl64/collibra-app-sub009/database"
	"github.com/rriehl64/collibra-app-sub009/seed"
)

// collectionSource hands out collections for one open connection.
type collectionSource func(name string) seed.Collection

// connectFunc opens a connection, runs fn and closes the connection.
type connectFunc func(ctx context.Context, fn func(collectionSource) error) error

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	verbose  bool
	out      io.Writer
	fixtures fs.FS
	connect  connectFunc
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{out: os.Stdout, fixtures: seed.Fixtures}
	a.connect = a.mongoConnect
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func (a *app) mongoConnect(ctx context.Context, fn func(collectionSource) error) error {
	return database.WithConnection(ctx, a.cfg.MongoURI, a.cfg.MongoDatabase, a.logger, func(db *database.DB) error {
		return fn(func(name string) seed.Collection { return db.Collection(name) })
	})
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Seed the data governance catalog database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Human-readable debug logging")

	cmd.AddCommand(a.migrateCmd(), a.portfoliosCmd(), a.programDocsCmd(), a.seederCmd())
	return cmd
}

func (a *app) setup() error {
	if a.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		a.cfg = cfg
	}
	if a.logger != nil {
		return nil
	}
	var (
		logger *zap.Logger
		err    error
	)
	if a.verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = config.NewLogger(a.cfg.LogLevel)
	}
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

type migrateOptions struct {
	all        bool
	dataAssets bool
	domains    bool
	clean      bool
	file       string
}

func (a *app) migrateCmd() *cobra.Command {
	var opts migrateOptions
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Transform mock-data.json and insert data assets and domains",
		Long: `Reads the mock data file (bundled by default), converts legacy lineage
into related assets, backfills governance defaults and bulk-inserts the
result. Without a selection flag everything is migrated. Unknown flags are
ignored.`,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMigrate(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.all, "all", false, "Migrate data assets and domains")
	cmd.Flags().BoolVar(&opts.dataAssets, "dataAssets", false, "Migrate data assets")
	cmd.Flags().BoolVar(&opts.domains, "domains", false, "Migrate domains")
	cmd.Flags().BoolVar(&opts.clean, "clean", false, "Delete existing documents of the migrated collections first")
	cmd.Flags().StringVar(&opts.file, "file", "", "Mock data JSON file (default: bundled fixture)")
	return cmd
}

func (a *app) runMigrate(ctx context.Context, opts migrateOptions) error {
	if !opts.all && !opts.dataAssets && !opts.domains {
		opts.all = true
	}
	doAssets := opts.all || opts.dataAssets
	doDomains := opts.all || opts.domains

	fsys, name := a.fixtures, seed.MockDataFile
	if opts.file != "" {
		fsys, name = os.DirFS(filepath.Dir(opts.file)), filepath.Base(opts.file)
	}
	data := seed.LoadMockData(fsys, name, a.logger)
	if data == nil {
		fmt.Fprintln(a.out, "No mock data loaded; nothing migrated.")
		return nil
	}

	return a.connect(ctx, func(coll collectionSource) error {
		var targets []seed.Collection
		if doAssets {
			targets = append(targets, coll(database.DataAssets))
		}
		if doDomains {
			targets = append(targets, coll(database.Domains))
		}
		if opts.clean {
			if err := seed.Clean(ctx, a.logger, targets...); err != nil {
				return err
			}
		}

		m := seed.NewMigrator(a.logger)
		if doAssets {
			a.report("Data assets", m.MigrateDataAssets(ctx, coll(database.DataAssets), data))
		}
		if doDomains {
			a.report("Domains", m.MigrateDomains(ctx, coll(database.Domains), data))
		}
		return nil
	})
}

func (a *app) report(label string, res *seed.Result) {
	if res == nil {
		fmt.Fprintf(a.out, "%s: skipped\n", label)
		return
	}
	fmt.Fprintf(a.out, "%s: processed=%d inserted=%d errors=%d", label, res.Processed, res.Inserted, res.Errors)
	if res.Indeterminate {
		fmt.Fprint(a.out, " (counts indeterminate)")
	}
	fmt.Fprintln(a.out)
}

func (a *app) portfoliosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portfolios",
		Short: "Replace the portfolios collection with the sample portfolios",
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolios, err := seed.LoadPortfolios(a.fixtures)
			if err != nil {
				return err
			}
			return a.connect(cmd.Context(), func(coll collectionSource) error {
				n, err := seed.SeedPortfolios(cmd.Context(), a.logger, coll(database.Portfolios), portfolios)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Portfolios seeded: %d\n", n)
				return nil
			})
		},
	}
}

func (a *app) programDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "program-docs",
		Aliases: []string{"program-documentation"},
		Short:   "Replace the program documentation collection with the samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := seed.LoadProgramDocumentation(a.fixtures)
			if err != nil {
				return err
			}
			return a.connect(cmd.Context(), func(coll collectionSource) error {
				n, err := seed.SeedProgramDocumentation(cmd.Context(), a.logger, coll(database.ProgramDocumentations), docs)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Program documentation seeded: %d\n", n)
				return nil
			})
		},
	}
}

func (a *app) seederCmd() *cobra.Command {
	var importData, destroy bool
	cmd := &cobra.Command{
		Use:   "seeder",
		Short: "Import (-i, default) or destroy (-d) users, policies, data assets and domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			if importData && destroy {
				return errors.New("choose one of -i or -d")
			}
			s := seed.NewSeeder(a.logger)
			if destroy {
				return a.connect(cmd.Context(), func(coll collectionSource) error {
					if err := s.Destroy(cmd.Context(), seederCollections(coll)); err != nil {
						return err
					}
					fmt.Fprintln(a.out, "Data destroyed")
					return nil
				})
			}

			data, err := seed.LoadSampleData(a.fixtures)
			if err != nil {
				return err
			}
			return a.connect(cmd.Context(), func(coll collectionSource) error {
				if err := s.Import(cmd.Context(), seederCollections(coll), data); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "Data imported")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&importData, "import", "i", false, "Clear and import the sample data")
	cmd.Flags().BoolVarP(&destroy, "destroy", "d", false, "Delete all seeded data")
	return cmd
}

func seederCollections(coll collectionSource) seed.SeederCollections {
	return seed.SeederCollections{
		Users:      coll(database.Users),
		Policies:   coll(database.Policies),
		DataAssets: coll(database.DataAssets),
		Domains:    coll(database.Domains),
	}
}
