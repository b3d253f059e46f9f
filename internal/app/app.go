package app

import (
	"fmt"
	"net/http"

	"chore-tracker/internal/config"
	"chore-tracker/internal/db"
	childdomain "chore-tracker/internal/domain/child"
	choredomain "chore-tracker/internal/domain/chore"
	familydomain "chore-tracker/internal/domain/family"
	"chore-tracker/internal/domain/ownership"
	"chore-tracker/internal/domain/token"
	userdomain "chore-tracker/internal/domain/user"
	ownershiprepo "chore-tracker/internal/repository/postgres/ownership"
	userrepo "chore-tracker/internal/repository/postgres/user"
	"chore-tracker/internal/transport/httpserver"
	"chore-tracker/internal/transport/httpserver/handler"
	"chore-tracker/internal/transport/httpserver/middleware"
	"chore-tracker/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(dbConn); err != nil {
			_ = db.Close(dbConn)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	log.Info("app: initializing router")
	router := NewHandler(cfg, dbConn, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

// NewHandler wires repositories, services and the router on an open database.
func NewHandler(cfg config.Config, dbConn *gorm.DB, log logger.Logger) http.Handler {
	users := userrepo.NewPostgres(dbConn)
	families := ownershiprepo.New[familydomain.Family](dbConn, ownership.Families)
	children := ownershiprepo.New[childdomain.Child](dbConn, ownership.Children)
	chores := ownershiprepo.New[choredomain.Chore](dbConn, ownership.Chores)

	tokens := token.NewService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, users)

	choreService := choredomain.NewService(chores)
	childService := childdomain.NewService(children, choreService)
	familyService := familydomain.NewService(families, childService)
	userService := userdomain.NewService(users, tokens, cfg.Auth.BcryptCost)

	handlers := handler.New(userService, familyService, childService, choreService, log)
	guard := middleware.NewGuard(tokens, log)
	return httpserver.NewRouter(cfg, handlers, guard, log)
}

// Migrate runs a single goose command against the configured database.
func Migrate(log logger.Logger, command string) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(dbConn); err != nil {
			log.Error("db: close failed", "err", err)
		}
	}()

	log.Info("db: running migrations", "command", command)
	return db.MigrateCommand(dbConn, command)
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	return db.Close(a.db)
}
