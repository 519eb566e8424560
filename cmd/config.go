package cmd

import (
	"net/url"
	"os"
	"strconv"

	"github.com/emrgen/inquests-migration/internal/config"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "config commands",
}

func init() {
	configCmd.AddCommand(showConfigCmd())
}

func showConfigCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "show",
		Short: "print the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig()

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Key", "Value"})
			table.Append([]string{config.KeyData, cfg.DataDir})
			table.Append([]string{config.KeyDocuments, cfg.DocumentsDir})
			table.Append([]string{config.KeyDatabase, redact(cfg.DatabaseURL)})
			table.Append([]string{config.KeyUpload, strconv.FormatBool(cfg.Upload)})
			table.Append([]string{config.KeyBucket, cfg.Bucket})
			table.Append([]string{config.KeyRegion, cfg.Region})
			table.Append([]string{config.KeyProfile, cfg.Profile})
			table.Append([]string{config.KeyStorageDir, cfg.StorageDir})
			table.Append([]string{config.KeyUploadWorkers, strconv.Itoa(cfg.UploadWorkers)})
			table.Append([]string{config.KeyLogDir, cfg.LogDir})
			table.Append([]string{config.KeyLogLevel, cfg.LogLevel})
			table.Append([]string{config.KeyManifestDir, cfg.ManifestDir})
			table.Append([]string{config.KeyCompression, cfg.Compression})
			table.Append([]string{config.KeyInitSchema, strconv.FormatBool(cfg.InitSchema)})
			table.Render()
		},
	}

	return command
}

// redact hides the password of a database url.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
