package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/arenalog/sge/internal/sge/entity"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestSchema = "test_sge"

// TestEnv recursos do ambiente de teste
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// projectRoot localiza a raiz do projeto subindo até encontrar o go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

// SetupTestDB abre uma conexão com um schema de teste isolado, migrado com as
// entidades do SGE e descartado ao final do teste. Sem banco acessível o teste
// é pulado, para que as suítes unitárias rodem em qualquer máquina.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "sge")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	// Primeiro: cria o schema numa conexão temporária
	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("Banco de teste indisponível: %v", err)
	}
	if err := setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName)).Error; err != nil {
		t.Skipf("Banco de teste indisponível: %v", err)
	}
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// Segundo: reabre com o search_path no DSN para todo o pool usar o schema
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Skipf("Banco de teste indisponível: %v", err)
	}

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
		t.Fatalf("Falha ao migrar tabelas de teste: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter cria um router gin de teste
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executa uma requisição HTTP contra o router de teste
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse desserializa o envelope JSON da resposta
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedUsuario cria um usuário pessoa física de teste
func SeedUsuario(t *testing.T, db *gorm.DB, ndoc, nome, email string) *entity.Usuario {
	t.Helper()
	usuario := &entity.Usuario{
		NDoc:    ndoc,
		TipoDoc: entity.TipoDocCPF,
		Email:   email,
		Nome:    &nome,
	}
	if err := db.Create(usuario).Error; err != nil {
		t.Fatalf("Falha ao semear usuário: %v", err)
	}
	return usuario
}

// SeedEquipe cria um analista e um gerente de teste
func SeedEquipe(t *testing.T, db *gorm.DB, analistaCPF, gerenteCPF string) {
	t.Helper()
	if err := db.Create(&entity.Analista{CPF: analistaCPF, Nome: "Analista Teste"}).Error; err != nil {
		t.Fatalf("Falha ao semear analista: %v", err)
	}
	if err := db.Create(&entity.Gerente{CPF: gerenteCPF, Nome: "Gerente Teste"}).Error; err != nil {
		t.Fatalf("Falha ao semear gerente: %v", err)
	}
}

// SeedTipoRecurso cria um tipo de recurso de teste
func SeedTipoRecurso(t *testing.T, db *gorm.DB, id, nome string) *entity.TipoRecurso {
	t.Helper()
	tipo := &entity.TipoRecurso{ID: id, Nome: nome}
	if err := db.Create(tipo).Error; err != nil {
		t.Fatalf("Falha ao semear tipo de recurso: %v", err)
	}
	return tipo
}

// SeedItem cria um item de teste vinculado a um tipo de recurso
func SeedItem(t *testing.T, db *gorm.DB, nroPatrimonio, status, tipoRecursoID string) *entity.Item {
	t.Helper()
	item := &entity.Item{
		NroPatrimonio: nroPatrimonio,
		StatusItem:    status,
		Tamanho:       1,
		TipoRecursoID: tipoRecursoID,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("Falha ao semear item: %v", err)
	}
	return item
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
