package main

import (
	"fmt"
	"os"
	"time"

	"innerlog/internal/api"
	"innerlog/internal/config"
	"innerlog/internal/cycle"
	"innerlog/internal/db"
	"innerlog/internal/profile"
	redisdb "innerlog/internal/redis"
	"innerlog/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	rdb := redisdb.NewClient(cfg)

	store := storage.NewGormStore(db.DB)
	cacheTTL := time.Duration(cfg.Insights.ContextCacheTTLMinutes) * time.Minute
	profileSvc := profile.NewService(store, rdb, cacheTTL, nil)
	cycleSvc := cycle.NewService(store, time.Duration(cfg.Insights.StalenessDays)*24*time.Hour)

	r := api.SetupRouter(cfg, rdb, profileSvc, cycleSvc)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
