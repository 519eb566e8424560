package cmd

import (
	"fmt"
	"os"

	"github.com/emrgen/inquests-migration/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inquests-migration",
	Short: "load the inquests spreadsheet exports into the inquests database",
	Example: `inquests-migration migrate run --data ./exports --documents ./files --db mysql://root@localhost/inquests --upload
inquests-migration migrate validate --db mysql://root@localhost/inquests --manifest ./manifests/manifest-<run-id>.json.gz
inquests-migration db migrate --db sqlite://inquests.db
inquests-migration config show`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().String(config.KeyDatabase, "", "target database url (mysql://, postgres://, sqlite://)")
	rootCmd.PersistentFlags().String(config.KeyLogDir, "", "directory of the debug and warnings log files (default ./logs)")
	rootCmd.PersistentFlags().String(config.KeyLogLevel, "", "console log level (default info)")
	_ = viper.BindPFlag(config.KeyDatabase, rootCmd.PersistentFlags().Lookup(config.KeyDatabase))
	_ = viper.BindPFlag(config.KeyLogDir, rootCmd.PersistentFlags().Lookup(config.KeyLogDir))
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup(config.KeyLogLevel))

	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}

// initConfig reads the config file, if any, and MIGRATION_* variables.
func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}
