package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/lshigami/questree/config"
	"github.com/lshigami/questree/database"
	_ "github.com/lshigami/questree/docs"
	"github.com/lshigami/questree/internal/cache"
	adminctrl "github.com/lshigami/questree/internal/controller/admin"
	userctrl "github.com/lshigami/questree/internal/controller/user"
	"github.com/lshigami/questree/internal/flow"
	"github.com/lshigami/questree/internal/ledger"
	"github.com/lshigami/questree/internal/repository"
	"github.com/lshigami/questree/internal/server"
	"github.com/lshigami/questree/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().Bool("migrate", true, "Run database migrations before serving")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the root command runs serve without its flags
	migrate := true
	if cmd.Flags().Lookup("migrate") != nil {
		if migrate, err = cmd.Flags().GetBool("migrate"); err != nil {
			return err
		}
	}

	opts := []fx.Option{
		fx.Supply(cfg),
		fx.Provide(
			database.NewDatabase,
			cache.NewRedisClient,
			cache.NewTreeCache,
			newLedgerStore,
			func() *gin.Engine { return server.NewGinEngine(cfg) },
		),

		// Repositories Layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewTestSessionRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewTreeService,
			newFlowController,
			service.NewUserTestService,
			service.NewSessionService,
			service.NewAdminTestService,
			service.NewQuestionService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminTestController,
			userctrl.NewUserTestController,
		),

		fx.Invoke(closeStoresOnStop),
	}
	if migrate {
		opts = append(opts, fx.Invoke(database.Migrate))
	}
	opts = append(opts, fx.Invoke(registerRoutesAndStartServer))

	app := fx.New(opts...)
	if err := app.Start(context.Background()); err != nil {
		return err
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return app.Stop(stopCtx)
}

func newLedgerStore(cfg *config.Config, rdb *redis.Client, db *gorm.DB) (ledger.Store, error) {
	store, err := ledger.New(cfg.Ledger.Backend, rdb, db, cfg.Ledger.SessionTTL)
	if err != nil {
		return nil, err
	}
	log.Info().Str("backend", cfg.Ledger.Backend).Dur("sessionTTL", cfg.Ledger.SessionTTL).Msg("Session ledger ready")
	return store, nil
}

func newFlowController(trees service.TreeService, questions repository.QuestionRepository, store ledger.Store) *flow.Controller {
	return flow.NewController(trees, questions, store)
}

func closeStoresOnStop(lc fx.Lifecycle, db *gorm.DB, rdb *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			var errs []error
			if rdb != nil {
				errs = append(errs, rdb.Close())
			}
			if sqlDB, err := db.DB(); err == nil {
				errs = append(errs, sqlDB.Close())
			}
			return errors.Join(errs...)
		},
	})
}

func registerRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminTestCtrl *adminctrl.AdminTestController,
	userTestCtrl *userctrl.UserTestController,
) {
	server.RegisterRoutes(router, adminTestCtrl, userTestCtrl)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Questree API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			return srv.Shutdown(ctx)
		},
	})
}
