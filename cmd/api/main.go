package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "creator-advance-service/internal/adapter/http"
	idemp "creator-advance-service/internal/adapter/middleware"
	"creator-advance-service/internal/adapter/repository/mysql"
	"creator-advance-service/internal/config"
	domain "creator-advance-service/internal/domain/advance"
	"creator-advance-service/internal/infrastructure/cache"
	"creator-advance-service/internal/infrastructure/db"
	advanceuc "creator-advance-service/internal/usecase/advance"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(&domain.AdvanceRequest{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	repo := mysql.NewAdvanceRepository(gdb)
	uc := advanceuc.NewUsecase(repo, cfg.Terms())

	h := httpadp.NewHandler()
	ah := httpadp.NewAdvanceHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	idempTTL := time.Duration(cfg.IdempTTLSecs) * time.Second
	guard := idemp.Idempotency(rdb, idempTTL)

	e.GET("/health", h.Health)
	e.POST("/advances", ah.CreateAdvance, guard)
	e.GET("/advances/creator/:creator_id", ah.ListByCreator)
	e.PATCH("/advances/:id/approve", ah.ApproveAdvance, guard)
	e.PATCH("/advances/:id/reject", ah.RejectAdvance, guard)
	e.GET("/advances/simulate", ah.Simulate)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
