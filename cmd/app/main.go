package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
	"github.com/wichananm65/buytouch-backend/internal/infrastructure/config"
	"github.com/wichananm65/buytouch-backend/internal/infrastructure/database/inmemory"
	"github.com/wichananm65/buytouch-backend/internal/infrastructure/database/postgres"
	"github.com/wichananm65/buytouch-backend/internal/infrastructure/identity"
	"github.com/wichananm65/buytouch-backend/internal/infrastructure/logger"
	"github.com/wichananm65/buytouch-backend/internal/infrastructure/storage"
	"github.com/wichananm65/buytouch-backend/internal/interface/http/handler"
	"github.com/wichananm65/buytouch-backend/internal/interface/http/middleware"
	"github.com/wichananm65/buytouch-backend/internal/interface/http/router"
	"github.com/wichananm65/buytouch-backend/internal/interface/presenter"
	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, db, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}
	images, assets, err := openImages(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open image storage", zap.Error(err))
	}

	app := newApp(cfg, store, images, assets, log)

	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env), zap.String("storage", cfg.StorageDriver))
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	ops := map[string]gfshutdown.Operation{
		"http": func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	}
	if db != nil {
		ops["database"] = func(ctx context.Context) error {
			return db.Close()
		}
	}
	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, ops)

	code := <-wait
	log.Info("shutdown complete", zap.Int("code", code))
	_ = log.Sync()
	os.Exit(code)
}

// openStore connects to Postgres and applies the schema, or falls back to the
// in-memory store when DATABASE_URL is empty.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (repository.Store, *sql.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL is not set, using the in-memory store")
		return inmemory.NewStore(), nil, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to reach database: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgres.NewStore(db), db, nil
}

func openImages(ctx context.Context, cfg config.Config) (usecase.ImageStore, presenter.AssetURL, error) {
	if cfg.StorageDriver == config.StorageS3 {
		client, err := storage.NewS3Client(ctx, cfg.S3Endpoint)
		if err != nil {
			return nil, nil, err
		}
		s3Store := storage.NewS3Store(client, cfg.S3Bucket, cfg.S3Endpoint)
		// bundled images under img/ stay on local disk
		assets := func(path string) string {
			if strings.HasPrefix(path, storage.Prefix+"/") {
				return s3Store.URL(path)
			}
			return presenter.LocalAssets(path)
		}
		return s3Store, assets, nil
	}

	local, err := storage.NewLocalStore(cfg.PublicDir)
	if err != nil {
		return nil, nil, err
	}
	return local, local.URL, nil
}

func newApp(cfg config.Config, store repository.Store, images usecase.ImageStore, assets presenter.AssetURL, log *zap.Logger) *fiber.App {
	catalog := usecase.NewCatalogService(store, images, log)
	shopping := usecase.NewShoppingService(store, log)
	comments := usecase.NewCommentService(store)
	users := usecase.NewUserService(store, images, log)
	auth := usecase.NewAuthService(store, usecase.AdminCredentials{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}, log)

	userPresenter := presenter.NewUserPresenter(assets)
	productPresenter := presenter.NewProductPresenter(assets, userPresenter)
	shoppingPresenter := presenter.NewShoppingPresenter(productPresenter, userPresenter)

	sessions := middleware.NewSessionManager(cfg.SecretKey, cfg.SessionTTL, cfg.CookieSecure)
	google := identity.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	validate := handler.NewRequestValidator()

	return router.New(router.Options{
		BodyLimit:    cfg.BodyLimit(),
		AllowOrigins: cfg.CORSAllowOrigins,
		PublicDir:    cfg.PublicDir,
		Production:   cfg.Production(),
	}, sessions, auth, router.Handlers{
		Auth:     handler.NewAuthHandler(auth, sessions, google, userPresenter, validate, cfg.CookieSecure, log),
		Products: handler.NewProductHandler(catalog, productPresenter, validate, log),
		Shopping: handler.NewShoppingHandler(shopping, shoppingPresenter, log),
		Comments: handler.NewCommentHandler(comments, productPresenter, log),
		Users:    handler.NewUserHandler(users, catalog, userPresenter, productPresenter, validate, log),
	}, log)
}
