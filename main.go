package main

import (
	"context"
	"embed"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "RENTA-backend/docs"
	"RENTA-backend/internal/catalog/attributes"
	"RENTA-backend/internal/catalog/periods"
	"RENTA-backend/internal/catalog/products"
	"RENTA-backend/internal/catalog/regions"
	"RENTA-backend/internal/pricing"
	"RENTA-backend/internal/platform/db"
	"RENTA-backend/internal/rental"
)

//go:embed migrations
var migrationFS embed.FS

// @title        RENTA Product Rental API
// @version      1.0.0
// @description  Product rentals with regional pricing.
// @BasePath     /api/v1
func main() {
	// 設定読み込み
	cfg, err := db.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	// 動作モード取得
	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("Usage: go run main.go [dev|release]")
		return
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	// スキーマを最新へ
	if err := db.Migrate(conn, migrationFS, "migrations"); err != nil {
		log.Fatal(err)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Location"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// Swagger UI
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// /api/v1
	api := r.Group("/api/v1")
	products.RegisterRoutes(api, products.NewService(conn))
	attributes.RegisterRoutes(api, attributes.NewService(conn))
	regions.RegisterRoutes(api, regions.NewService(conn))
	periods.RegisterRoutes(api, periods.NewService(conn))
	pricing.RegisterRoutes(api, pricing.NewService(conn))
	rental.RegisterRoutes(api, rental.NewService(conn))

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
