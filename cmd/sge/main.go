package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arenalog/sge/internal/config"
	"github.com/arenalog/sge/internal/middleware"
	"github.com/arenalog/sge/internal/sge/entity"
	"github.com/arenalog/sge/internal/sge/handler"
	"github.com/arenalog/sge/internal/sge/repository"
	"github.com/arenalog/sge/internal/sge/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting sge service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, db)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Violações de unicidade e de FK chegam como ErrDuplicatedKey /
		// ErrForeignKeyViolated e viram conflito na camada de serviço
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func migrate(db *gorm.DB, zapLogger *zap.Logger) error {
	if err := db.AutoMigrate(
		&entity.Usuario{},
		&entity.Analista{},
		&entity.Gerente{},
		&entity.TipoRecurso{},
		&entity.Profissao{},
		&entity.Armazem{},
		&entity.Pedido{},
		&entity.DocumentoRequisito{},
		&entity.RequisitoFisico{},
		&entity.RequisitoHumano{},
		&entity.Item{},
		&entity.Evento{},
		&entity.Alocacao{},
	); err != nil {
		return err
	}

	// FKs que o AutoMigrate não cria (sem relação declarada na entidade) e
	// índices de filtro. Idempotentes: já existentes viram warning e seguem.
	constraintSQL := []string{
		`ALTER TABLE pedidos ADD CONSTRAINT fk_pedidos_usuario
			FOREIGN KEY (usuario) REFERENCES usuarios(n_doc)`,
		`ALTER TABLE pedidos ADD CONSTRAINT fk_pedidos_analista
			FOREIGN KEY (analista) REFERENCES analistas(cpf)`,
		`ALTER TABLE pedidos ADD CONSTRAINT fk_pedidos_gerente
			FOREIGN KEY (gerente) REFERENCES gerentes(cpf)`,
		`ALTER TABLE documentos_requisito ADD CONSTRAINT fk_documentos_requisito_pedido
			FOREIGN KEY (pedido_id) REFERENCES pedidos(id)`,
		`ALTER TABLE requisitos_fisicos ADD CONSTRAINT fk_requisitos_fisicos_documento
			FOREIGN KEY (documento_id) REFERENCES documentos_requisito(pedido_id)`,
		`ALTER TABLE requisitos_humanos ADD CONSTRAINT fk_requisitos_humanos_documento
			FOREIGN KEY (documento_id) REFERENCES documentos_requisito(pedido_id)`,
		`ALTER TABLE requisitos_humanos ADD CONSTRAINT fk_requisitos_humanos_profissao
			FOREIGN KEY (profissao) REFERENCES profissoes(nome)`,
		`ALTER TABLE itens ADD CONSTRAINT fk_itens_armazem
			FOREIGN KEY (armazem_id) REFERENCES armazens(id)`,
		`ALTER TABLE eventos ADD CONSTRAINT fk_eventos_pedido
			FOREIGN KEY (pedido_id) REFERENCES pedidos(id)`,
		`ALTER TABLE alocacoes ADD CONSTRAINT fk_alocacoes_evento
			FOREIGN KEY (evento_nome, evento_data_inicio) REFERENCES eventos(nome, data_inicio)`,
		`CREATE INDEX IF NOT EXISTS idx_pedidos_status ON pedidos(status)`,
		`CREATE INDEX IF NOT EXISTS idx_itens_status ON itens(status_item)`,
		`CREATE INDEX IF NOT EXISTS idx_itens_qualidade ON itens(qualidade)`,
	}
	for _, sql := range constraintSQL {
		if err := db.Exec(sql).Error; err != nil {
			zapLogger.Warn("Constraint SQL warning (may already exist)", zap.Error(err))
		}
	}

	zapLogger.Info("Database migration completed")
	return nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, db *gorm.DB) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// Cadastros
	r.GET("/users", h.Usuario.ListUsuarios)
	r.GET("/analysts", h.Usuario.ListAnalistas)
	r.GET("/managers", h.Usuario.ListGerentes)
	r.POST("/usuarios", h.Usuario.CreateUsuario)

	// Pedidos e requisitos
	pedidos := r.Group("/pedidos")
	{
		pedidos.POST("", h.Pedido.CreatePedido)
		pedidos.GET("", h.Pedido.ListPedidos)
		pedidos.PATCH("/:id/status", h.Pedido.UpdateStatus)
		pedidos.GET("/:id/requisitos", h.Pedido.ListRequisitos)
		pedidos.POST("/:id/requisitos", h.Pedido.AddRequisitos)
		pedidos.DELETE("/:id/requisitos/fisico/:resId", h.Pedido.DeleteRequisitoFisico)
		pedidos.DELETE("/:id/requisitos/humano/:resId", h.Pedido.DeleteRequisitoHumano)
	}

	// Inventário
	items := r.Group("/items")
	{
		items.GET("", h.Item.ListItems)
		items.POST("", h.Item.CreateItem)
		items.GET("/export", h.Item.ExportItems)
		items.PUT("/:nropatrimonio", h.Item.UpdateItem)
		items.DELETE("/:nropatrimonio", h.Item.DeleteItem)
	}

	// Registros de apoio
	tipos := r.Group("/tipos-recurso")
	{
		tipos.GET("", h.Recurso.ListTiposRecurso)
		tipos.POST("", h.Recurso.CreateTipoRecurso)
		tipos.DELETE("/:id", h.Recurso.DeleteTipoRecurso)
	}
	r.GET("/armazens", h.Recurso.ListArmazens)
	r.GET("/profissoes", h.Recurso.ListProfissoes)

	// Eventos e alocações
	r.POST("/eventos", h.Evento.CreateEvento)
	r.POST("/alocacoes", h.Evento.CreateAlocacao)
}
