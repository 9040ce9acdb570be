package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BlackYHawk/react-food-AI-sub000/data/database/mongoutil"
	"github.com/BlackYHawk/react-food-AI-sub000/global"
	"github.com/BlackYHawk/react-food-AI-sub000/logger"
	chathandler "github.com/BlackYHawk/react-food-AI-sub000/module/chat"
	"github.com/BlackYHawk/react-food-AI-sub000/module/chat/registry"
	chatstore "github.com/BlackYHawk/react-food-AI-sub000/module/chat/store"
	"github.com/BlackYHawk/react-food-AI-sub000/module/chat/ws"
	recipehandler "github.com/BlackYHawk/react-food-AI-sub000/module/recipe"
	recipesvc "github.com/BlackYHawk/react-food-AI-sub000/module/recipe/service"
	scanhandler "github.com/BlackYHawk/react-food-AI-sub000/module/scan"
	scansvc "github.com/BlackYHawk/react-food-AI-sub000/module/scan/service"
	streamhandler "github.com/BlackYHawk/react-food-AI-sub000/module/stream"
	streamsvc "github.com/BlackYHawk/react-food-AI-sub000/module/stream/service"
	userhandler "github.com/BlackYHawk/react-food-AI-sub000/module/user"
	usersvc "github.com/BlackYHawk/react-food-AI-sub000/module/user/service"
	"github.com/BlackYHawk/react-food-AI-sub000/service/storage"
	redissrv "github.com/BlackYHawk/react-food-AI-sub000/service/storage/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := global.Load(*configPath); err != nil {
		logger.Errorf("load config: %v", err)
		os.Exit(1)
	}
	cfg := global.Config
	logger.SetLevel(cfg.Server.LogLevel)
	gin.SetMode(cfg.Server.Mode)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	mongoCli, err := mongoutil.NewMongoDB(ctx, &mongoutil.Config{
		Uri:         cfg.Mongo.Uri,
		Database:    cfg.Mongo.Database,
		Username:    cfg.Mongo.Username,
		Password:    cfg.Mongo.Password,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
		MaxRetry:    cfg.Mongo.MaxRetry,
	})
	cancel()
	if err != nil {
		logger.Errorf("connect mongo: %v", err)
		os.Exit(1)
	}
	db := mongoCli.GetDB()

	if err := redissrv.InitRedis(redissrv.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}); err != nil {
		logger.Errorf("connect redis: %v", err)
		os.Exit(1)
	}
	presence := storage.NewDefaultPresence()

	users := usersvc.NewService(db)
	recipes := recipesvc.NewService(db)
	scans := scansvc.NewService(db)
	streams := streamsvc.NewService(db, presence)
	chats := chatstore.NewStore(db)
	reg := registry.New()

	r := gin.New()
	r.Use(gin.Recovery())

	userhandler.NewHandler(users).RegisterRoutes(r)
	recipehandler.NewHandler(recipes).RegisterRoutes(r)
	scanhandler.NewHandler(scans).RegisterRoutes(r)
	streamhandler.NewHandler(streams).RegisterRoutes(r)
	chathandler.NewHandler(chats, reg).RegisterRoutes(r)
	ws.NewHandler(reg, chats, users, presence).RegisterRoutes(r)

	r.GET("/healthz", func(c *gin.Context) {
		rooms, clients := reg.Stats()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": rooms, "connections": clients})
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("listen: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	if err := mongoCli.Close(shutdownCtx); err != nil {
		logger.Errorf("close mongo: %v", err)
	}
	if err := redissrv.CloseRedis(); err != nil {
		logger.Errorf("close redis: %v", err)
	}
}
