package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"logboard/internal/api"
	"logboard/internal/config"
	"logboard/internal/crawlers"
	"logboard/internal/log"
	"logboard/internal/store"
)

// run은 서버가 종료될 때까지 블록합니다. 반환 전에 모든 defer가 실행됩니다.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "설정 로드 실패")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, logStore, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return errors.Wrap(err, "저장소 연결 실패")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	fetcher := crawlers.NewRestyFetcher(cfg.HTTPTimeout, cfg.UserAgent)
	server := api.NewServer(
		cfg,
		logStore,
		crawlers.NewCrawlerManager(fetcher, cfg.MaxPages),
		crawlers.NewMetaExtractor(fetcher),
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Int("port", cfg.Port).Msg("서버 시작")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "서버 종료")
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("서버 실행 실패")
		os.Exit(1)
	}
}
