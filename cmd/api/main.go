package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thomas/order-management-api/infrastructure/database/postgres"
	"github.com/thomas/order-management-api/infrastructure/repository"
	"github.com/thomas/order-management-api/internal/api"
	"github.com/thomas/order-management-api/internal/config"
	"github.com/thomas/order-management-api/internal/scheduler"
	"github.com/thomas/order-management-api/internal/usecases/analyzing"
	"github.com/thomas/order-management-api/internal/usecases/catalog"
	"github.com/thomas/order-management-api/internal/usecases/customer"
	"github.com/thomas/order-management-api/internal/usecases/ordering"
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

	productRepo := repository.NewProductRepository(pgConn)
	customerRepo := repository.NewCustomerRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)

	catalogService := catalog.NewService(productRepo)
	customerService := customer.NewService(customerRepo)
	orderingService := ordering.NewService(orderRepo, customerRepo, productRepo)
	analyzer := analyzing.NewService(productRepo)

	// Inicializa o agendador do resumo analítico em background
	analyticsDigestService := scheduler.NewAnalyticsDigestService(analyzer, cfg)
	if err := analyticsDigestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do resumo analítico")
	} else {
		logrus.Info("Agendador do resumo analítico iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		api.Services{
			Catalog:  catalogService,
			Customer: customerService,
			Ordering: orderingService,
			Analyzer: analyzer,
		},
		api.Repositories{
			Product:  productRepo,
			Customer: customerRepo,
			Order:    orderRepo,
		},
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
