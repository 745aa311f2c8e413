package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/backend"
	"storefront/internal/infra/catalog"
	"storefront/internal/infra/storage"
	"storefront/internal/logger"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"go.uber.org/zap"
)

// 商品・記事・ギャラリーの取得元
type sources struct {
	products repo.CatalogSource
	posts    repo.BlogRepository
	gallery  repo.GalleryRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//カートの保存先
	kv, closeKV, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("storage open failed", zap.Error(err))
	}
	defer func() {
		if err := closeKV(); err != nil {
			log.Warn("storage close failed", zap.Error(err))
		}
	}()

	//バックエンド（無ければオフライン）
	var (
		orders   repo.OrderGateway   = backend.Offline{}
		contacts repo.ContactGateway = backend.Offline{}
		client   *backend.Client
	)
	if cfg.BackendEnabled() {
		client = backend.NewClient(cfg.Backend, log)
		orders = client
		contacts = client
	}

	src := newSources(cfg, client, log)

	//Usecase生成
	sessions := usecase.NewSessionManager(usecase.SessionDeps{
		KV:        kv,
		Catalog:   src.products,
		Orders:    orders,
		Validator: validator.NewCheckoutValidator(),
		Shipping: usecase.ShippingPolicy{
			FreeThreshold: cfg.Checkout.FreeShippingThreshold,
			FlatFee:       cfg.Checkout.FlatShippingFee,
		},
		CartKey:  cfg.Storage.CartKey,
		ToastTTL: cfg.ToastTTL,
		IdleTTL:  cfg.Session.IdleTTL,
		Logger:   log,
	})
	catalogUC := usecase.NewCatalogUsecase(src.products, log)
	blogUC := usecase.NewBlogUsecase(src.posts, log)
	galleryUC := usecase.NewGalleryUsecase(src.gallery, log)
	contactUC := usecase.NewContactUsecase(contacts, validator.NewContactValidator(), log)

	//Handler生成
	h := server.Handlers{
		Catalog:    handler.NewCatalogHandler(catalogUC),
		Cart:       handler.NewCartHandler(sessions, catalogUC),
		Toast:      handler.NewToastHandler(sessions),
		Checkout:   handler.NewCheckoutHandler(sessions),
		Storefront: handler.NewStorefrontHandler(sessions, blogUC, galleryUC, contactUC),
	}

	//Server起動
	e := server.New(cfg, log, h)
	addr := ":" + cfg.Port
	if err := server.Start(ctx, addr, e, sessions, cfg.Session.IdleTTL, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// static は同梱データ、remote はバックエンドから取る
func newSources(cfg *config.Config, client *backend.Client, log *zap.Logger) sources {
	static := catalog.NewStaticCatalog()
	if cfg.Catalog.Source != config.CatalogSourceRemote || client == nil {
		log.Info("catalog: static")
		return sources{products: static, posts: static, gallery: static}
	}

	log.Info("catalog: remote", zap.String("base_url", cfg.Backend.BaseURL), zap.Duration("ttl", cfg.Catalog.TTL))
	return sources{
		products: catalog.NewRemoteCatalog(client, cfg.Catalog.TTL, log),
		posts:    client,
		gallery:  client,
	}
}
