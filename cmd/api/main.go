package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/dlourenco/business-ops-api/infrastructure/database/postgres"
	"github.com/dlourenco/business-ops-api/infrastructure/repository"
	"github.com/dlourenco/business-ops-api/internal/api"
	"github.com/dlourenco/business-ops-api/internal/config"
	"github.com/dlourenco/business-ops-api/internal/scheduler"
	"github.com/dlourenco/business-ops-api/internal/usecases/authenticating"
	"github.com/dlourenco/business-ops-api/internal/usecases/dashboarding"
	"github.com/dlourenco/business-ops-api/internal/usecases/expensing"
	"github.com/dlourenco/business-ops-api/internal/usecases/metrics"
	"github.com/dlourenco/business-ops-api/internal/usecases/ordering"
	"github.com/dlourenco/business-ops-api/internal/usecases/settings"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
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

	orderRepo := repository.NewOrderRepository(pgConn)
	expenseRepo := repository.NewExpenseRepository(pgConn)
	settingsRepo := repository.NewSettingsRepository(pgConn)
	metricsRepo := repository.NewBusinessMetricsRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	metricsService := metrics.NewService(orderRepo, expenseRepo, metricsRepo)
	orderService := ordering.NewService(orderRepo, metricsService)
	expenseService := expensing.NewService(expenseRepo, metricsService)
	settingsService := settings.NewService(settingsRepo)
	dashboardService := dashboarding.NewService(orderRepo, expenseRepo, settingsRepo)

	// Inicializa o agendador de reconciliação de métricas
	metricsReconcileService := scheduler.NewMetricsReconcileService(metricsService, cfg)

	if err := metricsReconcileService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de reconciliação de métricas")
	} else {
		logrus.Info("Agendador de reconciliação de métricas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		orderService,
		expenseService,
		settingsService,
		dashboardService,
		metricsService,
		authenticator,
		metricsReconcileService, // Serviço de reconciliação de métricas
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
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
