package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joseph-ayodele/cardscan/internal/async"
	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/extract"
	"github.com/joseph-ayodele/cardscan/internal/ingest"
	"github.com/joseph-ayodele/cardscan/internal/ocr"
	"github.com/joseph-ayodele/cardscan/internal/parser"
	pipeline "github.com/joseph-ayodele/cardscan/internal/pipeline"
	repo "github.com/joseph-ayodele/cardscan/internal/repository"
	svc "github.com/joseph-ayodele/cardscan/internal/server"
)

func main() {
	// Setup structured logger that outputs messages with variables but no time
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}
	addr := cfg.Server.GRPCListenAddr()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := svc.ConnectDB(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	scans := repo.NewScanRepository(db, logger)

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", addr, "error", err)
		os.Exit(1)
	}

	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:        cfg.OCR.Tesseract,
		TesseractLang:    cfg.OCR.Language,
		TessdataDir:      cfg.OCR.TessdataDir,
		HeicConverter:    cfg.OCR.HeicConverter,
		ArtifactCacheDir: cfg.OCR.ArtifactCacheDir,
		PSM:              11,
	}, logger)
	ocrAdapter := extract.NewOCRAdapter(extractor, logger)

	cardParser := parser.New(parser.WithConfig(parser.ConfigFrom(cfg.Parser)))

	// Orchestrator
	processor := pipeline.NewProcessor(logger, ocrAdapter, cardParser, scans)
	queue := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(cfg.Queue.Workers),
		async.WithQueueSize(cfg.Queue.Size),
		async.WithProcessTimeout(cfg.Queue.ProcessTimeout),
	)
	ingestor := ingest.NewUsecase(processor, logger)

	service := svc.NewCardScanService(cardParser, scans, ingestor, queue, logger)
	grpcServer, healthServer := svc.NewGRPCServer(service, logger)

	logger.Info("cardscand listening", "addr", addr)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	healthServer.Shutdown()
	grpcServer.GracefulStop()
	queue.Shutdown(context.Background())
}
