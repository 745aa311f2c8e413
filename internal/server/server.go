package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// New はミドルウェアとルートを登録したechoを返す。
func New(cfg *config.Config, logger *zap.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.SessionJWT(cfg.Session))

	RegisterRoutes(e, h)
	return e
}

// Start はctxが終わるまで待ち受け、終了時にセッションを片付ける。
func Start(ctx context.Context, addr string, e *echo.Echo, sessions *usecase.SessionManager, idleTTL time.Duration, logger *zap.Logger) error {
	go evictLoop(ctx, sessions, evictInterval(idleTTL))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		sessions.CloseAll()
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := e.Shutdown(shutdownCtx)
	sessions.CloseAll()
	if err != nil {
		return err
	}
	return <-errCh
}

// 放置セッションの掃除間隔
func evictInterval(idleTTL time.Duration) time.Duration {
	every := idleTTL / 4
	if every < time.Minute {
		every = time.Minute
	}
	return every
}

func evictLoop(ctx context.Context, sessions *usecase.SessionManager, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sessions.EvictIdle(now)
		}
	}
}
