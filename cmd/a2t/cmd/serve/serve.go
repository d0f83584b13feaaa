package serve

import (
	"github.com/spf13/cobra"

	"audio-notes/internal/app/asr"
	"audio-notes/internal/app/config"
	"audio-notes/internal/app/logging"
	"audio-notes/internal/app/repository"
	"audio-notes/internal/app/repository/pg"
	"audio-notes/internal/app/repository/sqlite"
	"audio-notes/internal/app/scanner"
	"audio-notes/internal/app/status"
	"audio-notes/web"
)

var (
	configFile string
	sourcePath string
	listenAddr string
	verbose    bool
)

// Cmd serves the status and transcript endpoints consumed by the external
// dashboard. Runs alongside (not inside) the watch loop, sharing the store.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the status/data API for the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, sourcePath)
		if err != nil {
			return err
		}
		if listenAddr != "" {
			addr := *cfg
			addr.ListenAddr = listenAddr
			cfg = &addr
		}

		log := logging.MustNewLogger(verbose, "")
		defer log.Sync()

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

		pinger := asr.NewClient(cfg.ASRURL, cfg.RequestTimeout, asr.RetryPolicy{MaxAttempts: 1}, log)
		checker := status.NewChecker(pinger, scanner.New(cfg.SourceDir, cfg.Extensions), cfg.LogFile)

		server := web.NewServer(cfg.ListenAddr, dao, checker, log)
		return server.Run()
	},
}

func init() {
	Cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")
	Cmd.Flags().StringVarP(&sourcePath, "source-path", "s", ".", "base directory holding recordings")
	Cmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (overrides config)")
	Cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "verbose console logging")
}
