package main

import (
	"context"

	"app/internal/cache"
	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/metrics"
	"app/internal/server"
	"app/internal/session"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envはローカル開発用。無くても環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.Env); err != nil {
		panic(err)
	}
	log := logger.Get()

	metrics.Init("inventory")

	//DB接続（Postgres設定があればPostgres、なければSQLite）
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}

	//スキーマ初期化の失敗は起動エラー
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	movementRepo := infraRepo.NewMovementGormRepository(gormDB)
	partyRepo := infraRepo.NewPartyGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	versions := cache.NewVersions()
	sessions := session.NewFileStore(cfg.SessionFile, []byte(cfg.JWTSecret))

	//Usecase生成
	inventoryUC := usecase.NewInventoryUsecase(txManager, movementRepo, versions, log)
	productUC := usecase.NewProductUsecase(productRepo, versions, cfg.LowStockThreshold, log)
	partyUC := usecase.NewPartyUsecase(partyRepo, log)
	authUC := usecase.NewAuthUsecase(userRepo, sessions, validator.NewAuthValidator(), log)
	userAdminUC := usecase.NewUserAdminUsecase(userRepo, log)

	//信頼済みアカウントの投入（冪等）
	ctx := context.Background()
	created, err := userAdminUC.Bootstrap(ctx, cfg.BootstrapUsers)
	if err != nil {
		log.Fatal("bootstrap users failed", zap.Error(err))
	}
	if created > 0 {
		log.Info("bootstrap users seeded", zap.Int("created", created))
	}

	//保存済みセッションがあればログイン状態を復元
	if actor, _, err := authUC.RestoreSession(ctx); err == nil {
		log.Info("session restored", zap.String("username", actor.Username), zap.String("role", string(actor.Role)))
	}

	//Handler生成
	h := server.Handlers{
		Auth:      handler.NewAuthHandler(authUC),
		Products:  handler.NewProductHandler(productUC),
		Movements: handler.NewMovementHandler(inventoryUC),
		Parties:   handler.NewPartyHandler(partyUC),
		Users:     handler.NewUserHandler(userAdminUC),
	}

	//Server起動
	e := server.New(h, authUC)
	addr := ":" + cfg.Port
	log.Info("server starting", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
