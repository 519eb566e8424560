package cmd

import (
	"github.com/emrgen/inquests-migration/internal/config"
	"github.com/emrgen/inquests-migration/internal/model"
	"github.com/emrgen/inquests-migration/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Create the target schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if cfg.DatabaseURL == "" {
				return config.ErrMissingDatabase
			}

			db, err := config.GetDb(cfg)
			if err != nil {
				return err
			}

			if err := store.NewGormStore(db).Migrate(); err != nil {
				return err
			}
			logrus.Infof("Migrated %d tables.", len(model.Tables()))
			return nil
		},
	}

	return command
}
