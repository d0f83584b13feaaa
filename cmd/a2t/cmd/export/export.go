package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"audio-notes/internal/app/config"
	"audio-notes/internal/app/export"
	"audio-notes/internal/app/repository"
	"audio-notes/internal/app/repository/pg"
	"audio-notes/internal/app/repository/sqlite"
)

var (
	configFile string
	sourcePath string
	outputFile string
)

// Cmd dumps the transcript store to a spreadsheet.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export all transcript records to an xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, sourcePath)
		if err != nil {
			return err
		}

		var dao repository.TranscriptionDAO
		if cfg.DBDriver == "postgres" {
			pgDAO, err := pg.Open(cfg.PostgresDSN)
			if err != nil {
				return err
			}
			dao = pgDAO
		} else {
			db, err := sqlite.Open(cfg.SQLitePath)
			if err != nil {
				return err
			}
			dao = sqlite.NewSQLiteDAO(db)
		}
		defer dao.Close()

		records, err := dao.All()
		if err != nil {
			return err
		}
		if err := export.ToExcel(records, outputFile); err != nil {
			return err
		}
		fmt.Printf("exported %d records to %s\n", len(records), outputFile)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")
	Cmd.Flags().StringVarP(&sourcePath, "source-path", "s", ".", "base directory holding recordings")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "transcriptions.xlsx", "output xlsx path")
}
