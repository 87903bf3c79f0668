package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yeremiapane/foodcourt/config"
	"github.com/yeremiapane/foodcourt/database"
	"github.com/yeremiapane/foodcourt/middlewares"
	"github.com/yeremiapane/foodcourt/router"
	"github.com/yeremiapane/foodcourt/services"
	"github.com/yeremiapane/foodcourt/session"
	"github.com/yeremiapane/foodcourt/utils"
)

// foodcourt serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := boot()
		if err != nil {
			return err
		}
		if cfg.GinMode == gin.ReleaseMode {
			gin.SetMode(gin.ReleaseMode)
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, db)
	},
}

func serve(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	janitor := services.NewJanitor()

	var store session.Store
	if cfg.RedisAddr != "" {
		rdb, err := session.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
		utils.InfoLogger.Printf("Sessions stored in Redis at %s", cfg.RedisAddr)
	} else {
		memory := session.NewMemoryStore()
		janitor.Add("sessions", memory.Prune)
		store = memory
		utils.InfoLogger.Println("Sessions stored in process memory")
	}

	opts := session.DefaultOptions()
	opts.CookieName = cfg.SessionCookie
	opts.TTL = cfg.SessionTTL
	opts.Secure = cfg.CookieSecure

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	janitor.Add("revoked tokens", tokens.PruneRevoked)

	authLimiter := middlewares.NewStrictRateLimiter(time.Minute, 5)
	janitor.Add("login limiter", authLimiter.Prune)
	deps := router.Deps{
		DB:             db,
		Sessions:       store,
		SessionOptions: opts,
		Tokens:         tokens,
		CORSOrigin:     cfg.CORSOrigin,
		MediaDir:       cfg.MediaDir,
		AuthLimiter:    authLimiter,
	}
	if cfg.RateLimitPerSecond > 0 {
		deps.RateLimiter = middlewares.NewRateLimiter(cfg.RateLimitPerSecond, time.Second)
		janitor.Add("rate limiter", deps.RateLimiter.Prune)
	}

	janitor.Start()
	defer janitor.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.InfoLogger.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	utils.InfoLogger.Println("Server exiting")
	return nil
}
