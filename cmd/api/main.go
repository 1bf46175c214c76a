package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/invoicing-api/infrastructure/database/postgres"
	"github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo"
	"github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/siigoclient"
	"github.com/vfg2006/invoicing-api/infrastructure/repository"
	"github.com/vfg2006/invoicing-api/internal/api"
	"github.com/vfg2006/invoicing-api/internal/config"
	"github.com/vfg2006/invoicing-api/internal/scheduler"
	"github.com/vfg2006/invoicing-api/internal/usecases/analyzing"
	"github.com/vfg2006/invoicing-api/internal/usecases/authenticating"
	"github.com/vfg2006/invoicing-api/internal/usecases/cataloging"
	"github.com/vfg2006/invoicing-api/internal/usecases/purchasing"
	"github.com/vfg2006/invoicing-api/pkg/cache"
	"github.com/vfg2006/invoicing-api/pkg/log"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	providerRepo := repository.NewProviderRepository(pgConn)
	fixedAssetRepo := repository.NewFixedAssetRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	// Caches em memória: token do SIIGO e snapshot de compras. A
	// invalidação é só por TTL.
	tokenCache := cache.NewMemory(time.Hour, 10*time.Minute)
	snapshotCache := cache.NewMemory(cfg.Analytics.SnapshotTTL, time.Minute)

	siigoClient := siigoclient.NewClient(cfg, tokenCache)
	siigoIntegrator := siigo.New(cfg, siigoClient)

	analyticsService := analyzing.NewService(cfg, siigoIntegrator, snapshotCache)
	purchasingService := purchasing.NewService(siigoIntegrator)
	catalogService := cataloging.NewService(productRepo, providerRepo, fixedAssetRepo)

	snapshotWarmerService := scheduler.NewSnapshotWarmerService(analyticsService, cfg)

	if err := snapshotWarmerService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshot de compras")
	} else {
		logrus.Info("Agendador de snapshot de compras iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		analyticsService,
		purchasingService,
		catalogService,
		authenticator,
		snapshotWarmerService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs: texto
// legível em desenvolvimento, JSON estruturado em produção
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	if log.IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
		return
	}

	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
