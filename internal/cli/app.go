package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/extract"
	"github.com/joseph-ayodele/cardscan/internal/ocr"
	"github.com/joseph-ayodele/cardscan/internal/parser"
	processor "github.com/joseph-ayodele/cardscan/internal/pipeline"
	"github.com/joseph-ayodele/cardscan/internal/repository"
	"github.com/joseph-ayodele/cardscan/internal/server"
)

// app carries what every subcommand needs once flags and config are loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	version string

	cfg    *common.Config
	logger *slog.Logger
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := common.LoadConfigFrom(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), a.v.GetString("log.level"), a.v.GetString("log.format"))
	return nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (a *app) newParser() *parser.Parser {
	return parser.New(parser.WithConfig(parser.ConfigFrom(a.cfg.Parser)))
}

func (a *app) newExtractor() *extract.OCRAdapter {
	o := a.cfg.OCR
	e := ocr.NewExtractor(ocr.Config{
		Tesseract:        o.Tesseract,
		TesseractLang:    o.Language,
		TessdataDir:      o.TessdataDir,
		HeicConverter:    o.HeicConverter,
		ArtifactCacheDir: o.ArtifactCacheDir,
		PSM:              11,
	}, a.logger)
	return extract.NewOCRAdapter(e, a.logger)
}

// newProcessor wires the pipeline. When a DSN is configured the scans are
// persisted and the returned closer releases the database.
func (a *app) newProcessor(ctx context.Context) (*processor.Processor, repository.ScanRepository, func(), error) {
	var scans repository.ScanRepository
	closer := func() {}
	if a.cfg.Database.DSN != "" {
		db, err := server.ConnectDB(ctx, a.cfg.Database, a.logger)
		if err != nil {
			return nil, nil, nil, err
		}
		scans = repository.NewScanRepository(db, a.logger)
		closer = db.Close
	}
	return processor.NewProcessor(a.logger, a.newExtractor(), a.newParser(), scans), scans, closer, nil
}

// openOutput returns w for "" or "-", otherwise a created file.
func openOutput(w io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
