package main

import (
	"context"
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraKafka "app/internal/infra/kafka"
	infraRepo "app/internal/infra/repository"
	"app/internal/outbox"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Profile{},
		&model.Category{},
		&model.Product{},
		&model.ProductIngredient{},
		&model.Ingredient{},
		&model.StockLog{},
		&model.Supplier{},
		&model.Order{},
		&model.OrderItem{},
		&model.Shift{},
		&model.CartSnapshot{},
		&model.LoyaltyCard{},
		&model.LoyaltyRule{},
		&model.OutboxEvent{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	//部分uniqueインデックスなどはSQLで適用
	if err := db.RunMigrations(gormDB, cfg.MigrationsPath); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	//Repository（GORM実装）生成
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	recipeRepo := infraRepo.NewRecipeGormRepository(gormDB)
	ingredientRepo := infraRepo.NewIngredientGormRepository(gormDB)
	stockLogRepo := infraRepo.NewStockLogGormRepository(gormDB)
	supplierRepo := infraRepo.NewSupplierGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	shiftRepo := infraRepo.NewShiftGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	loyaltyCardRepo := infraRepo.NewLoyaltyCardGormRepository(gormDB)
	loyaltyRuleRepo := infraRepo.NewLoyaltyRuleGormRepository(gormDB)
	outboxRepo := infraRepo.NewOutboxGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, profileRepo, validator.New())
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, cfg.TaxRate)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, shiftRepo, cartUC, cfg.TaxRate)
	shiftUC := usecase.NewShiftUsecase(shiftRepo, orderRepo)
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo, recipeRepo)
	inventoryUC := usecase.NewInventoryUsecase(ingredientRepo, stockLogRepo, supplierRepo)
	loyaltyUC := usecase.NewLoyaltyUsecase(loyaltyCardRepo, loyaltyRuleRepo)
	reportUC := usecase.NewReportUsecase(orderRepo, orderItemRepo)

	//outbox poller起動（売上イベントのKafka配信）
	publisher := infraKafka.NewPublisher(cfg.OutboxTopic, cfg.KafkaBrokers...)
	defer publisher.Close()
	poller := outbox.NewPoller(outboxRepo, orderRepo, publisher, cfg.OutboxTick)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	//Handler生成
	handlers := server.Handlers{
		Auth:      handler.NewAuthHandler(authUC),
		Cart:      handler.NewCartHandler(cartUC),
		Checkout:  handler.NewCheckoutHandler(checkoutUC),
		Shift:     handler.NewShiftHandler(shiftUC),
		Sync:      handler.NewSyncHandler(poller),
		Catalog:   handler.NewCatalogHandler(catalogUC),
		Inventory: handler.NewInventoryHandler(inventoryUC),
		Loyalty:   handler.NewLoyaltyHandler(loyaltyUC),
		Report:    handler.NewReportHandler(reportUC),
	}

	//Server起動
	e := server.New(cfg, handlers)
	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}
	if err := server.Start(e, addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
