package cmd

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/emrgen/inquests-migration/internal/compress"
	"github.com/emrgen/inquests-migration/internal/config"
	"github.com/emrgen/inquests-migration/internal/logging"
	"github.com/emrgen/inquests-migration/internal/migration"
	"github.com/emrgen/inquests-migration/internal/resolve"
	"github.com/emrgen/inquests-migration/internal/storage"
	"github.com/emrgen/inquests-migration/internal/store"
	"github.com/emrgen/inquests-migration/internal/validate"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sys/unix"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "migration commands",
}

func init() {
	migrateCmd.AddCommand(runMigrationCmd())
	migrateCmd.AddCommand(validateMigrationCmd())
}

func runMigrationCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "run",
		Short: "load the spreadsheet exports into an empty target database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if err := cfg.Validate(); err != nil {
				color.Red("missing: %s\n", err)
				return err
			}

			counter, closer, err := logging.Configure(logging.Options{Dir: cfg.LogDir, Level: cfg.LogLevel})
			if err != nil {
				return err
			}
			defer closer.Close()

			c, err := compress.New(cfg.Compression)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), unix.SIGINT, unix.SIGTERM)
			defer stop()

			db, err := config.GetDb(cfg)
			if err != nil {
				return err
			}

			objects, err := objectStore(ctx, cfg)
			if err != nil {
				return err
			}

			migrator := migration.NewMigrator(store.NewGormStore(db), objects, migration.Options{
				DataDir:       cfg.DataDir,
				DocumentsDir:  cfg.DocumentsDir,
				Upload:        cfg.Upload,
				UploadWorkers: cfg.UploadWorkers,
				InitSchema:    cfg.InitSchema,
			})

			report, runErr := migrator.Run(ctx)
			printStages(report.Stages)

			if cfg.ManifestDir != "" && runErr == nil {
				path, err := migration.WriteManifest(cfg.ManifestDir, c, report.Manifest(counter.Count()))
				if err != nil {
					return err
				}
				logrus.Infof("Wrote manifest %s.", path)
			}

			if runErr != nil {
				color.Red("migration run %s failed: %v\n", report.RunID, runErr)
				return runErr
			}

			printViolations(report.Violations)
			if counter.Count() > 0 {
				color.Magenta("migration run %s finished with %d warnings\n", report.RunID, counter.Count())
			} else {
				color.Green("migration run %s finished\n", report.RunID)
			}
			return nil
		},
	}

	flags := command.Flags()
	flags.String(config.KeyData, "", "directory of the spreadsheet exports")
	flags.String(config.KeyDocuments, "", "directory of the document files, named by document serial")
	flags.Bool(config.KeyUpload, false, "upload stored documents to object storage")
	flags.String(config.KeyBucket, "", "object storage bucket")
	flags.String(config.KeyRegion, "", "object storage region")
	flags.String(config.KeyProfile, "", "shared credentials profile")
	flags.String(config.KeyStorageDir, "", "store documents in a local directory instead of the bucket")
	flags.Int(config.KeyUploadWorkers, 0, "number of concurrent uploads")
	flags.String(config.KeyManifestDir, "", "directory to write the run manifest to")
	flags.String(config.KeyCompression, "", "manifest compression: none, gzip, lz4 or brotli")
	flags.Bool(config.KeyInitSchema, false, "create the target schema before loading")
	bindFlags(command, config.KeyData, config.KeyDocuments, config.KeyUpload, config.KeyBucket, config.KeyRegion,
		config.KeyProfile, config.KeyStorageDir, config.KeyUploadWorkers, config.KeyManifestDir,
		config.KeyCompression, config.KeyInitSchema)

	return command
}

func validateMigrationCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "validate",
		Short: "run the post-load checks against a loaded database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if cfg.DatabaseURL == "" {
				color.Red("missing: %s\n", config.ErrMissingDatabase)
				return config.ErrMissingDatabase
			}

			_, closer, err := logging.Configure(logging.Options{Level: cfg.LogLevel})
			if err != nil {
				return err
			}
			defer closer.Close()

			// without a manifest violations name store ids instead of serials
			var tables *resolve.Tables
			if cfg.Manifest != "" {
				manifest, err := migration.ReadManifest(cfg.Manifest)
				if err != nil {
					return err
				}
				tables = resolve.TablesFromSnapshot(manifest.Tables)
			}

			db, err := config.GetDb(cfg)
			if err != nil {
				return err
			}

			violations, err := migration.Validate(cmd.Context(), store.NewGormStore(db), tables)
			if err != nil {
				return err
			}

			printViolations(violations)
			if len(violations) > 0 {
				color.Magenta("%d violations\n", len(violations))
			} else {
				color.Green("no violations\n")
			}
			return nil
		},
	}

	command.Flags().String(config.KeyManifest, "", "manifest of the run that loaded the database")
	bindFlags(command, config.KeyManifest)

	return command
}

func bindFlags(command *cobra.Command, keys ...string) {
	for _, key := range keys {
		_ = viper.BindPFlag(key, command.Flags().Lookup(key))
	}
}

// objectStore returns the document store for cfg, or nil when stored
// documents get no link.
func objectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	if cfg.StorageDir != "" {
		return storage.NewFilesystemStore(cfg.StorageDir)
	}
	if cfg.Bucket == "" {
		return nil, nil
	}

	s3, err := storage.NewS3Store(ctx, cfg.Bucket, cfg.Region, cfg.Profile)
	if err != nil {
		if cfg.Upload {
			return nil, err
		}
		logrus.Warnf("Object storage unavailable, stored documents get no link: %v", err)
		return nil, nil
	}
	return s3, nil
}

func printStages(stages []migration.StageReport) {
	if len(stages) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Stage", "Records", "Duration"})
	for _, s := range stages {
		table.Append([]string{s.Name, strconv.Itoa(s.Records), s.Duration.Round(time.Millisecond).String()})
	}
	table.Render()
}

func printViolations(violations []validate.Violation) {
	if len(violations) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Check", "Kind", "Serial", "Message"})
	for _, v := range violations {
		table.Append([]string{string(v.Check), v.Kind, v.Serial, v.Message})
	}
	table.Render()
}

