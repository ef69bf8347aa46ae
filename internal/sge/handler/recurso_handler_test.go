package handler

import (
	"net/http"
	"testing"

	"github.com/arenalog/sge/internal/sge/entity"
	"github.com/arenalog/sge/internal/sge/repository"
	"github.com/arenalog/sge/internal/sge/service"
	"github.com/arenalog/sge/internal/sge/testutil"
)

func setupRecursoTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewRecursoService(repos.TipoRecurso, repos.Profissao, repos.Armazem)
	h := NewRecursoHandler(svc)

	router := testutil.SetupRouter()
	router.GET("/tipos-recurso", h.ListTiposRecurso)
	router.POST("/tipos-recurso", h.CreateTipoRecurso)
	router.DELETE("/tipos-recurso/:id", h.DeleteTipoRecurso)
	router.GET("/armazens", h.ListArmazens)
	router.GET("/profissoes", h.ListProfissoes)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestTipoRecursoCRUD tests create, duplicate conflict, the in-use delete
// conflict and the clean delete.
func TestTipoRecursoCRUD(t *testing.T) {
	env := setupRecursoTest(t)

	body := map[string]interface{}{"idtiporecurso": "TR-SOM", "nome": "Som"}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/tipos-recurso", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/tipos-recurso", body)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate tipo: expected 409, got %d: %s", w.Code, w.Body.String())
	}

	// Tipo em uso por um item: exclusão bloqueada
	testutil.SeedItem(t, env.DB, "ABC-123", "Disponível", "TR-SOM")
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/tipos-recurso/TR-SOM", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("tipo in use: expected 409, got %d: %s", w.Code, w.Body.String())
	}

	// Sem vínculos: exclusão segue
	if err := env.DB.Delete(&entity.Item{}, "nro_patrimonio = ?", "ABC-123").Error; err != nil {
		t.Fatalf("failed to remove item: %v", err)
	}
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/tipos-recurso/TR-SOM", nil)
	if w.Code != http.StatusOK {
		t.Errorf("unreferenced tipo: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/tipos-recurso/TR-SOM", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("already deleted: expected 404, got %d", w.Code)
	}
}

// TestListagensDeApoio tests the warehouse and profession listings.
func TestListagensDeApoio(t *testing.T) {
	env := setupRecursoTest(t)

	if err := env.DB.Create(&entity.Armazem{ID: "ARM-1", Endereco: "Rua A, 100"}).Error; err != nil {
		t.Fatalf("failed to seed armazém: %v", err)
	}
	if err := env.DB.Create(&entity.Profissao{Nome: "Segurança"}).Error; err != nil {
		t.Fatalf("failed to seed profissão: %v", err)
	}

	w := testutil.DoRequest(env.Router, http.MethodGet, "/armazens", nil)
	resp := testutil.ParseResponse(w)
	rows := resp["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("armazens: expected 1 row, got %d", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["idarmazem"] != "ARM-1" || row["endereco"] != "Rua A, 100" {
		t.Errorf("unexpected armazém row: %v", row)
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/profissoes", nil)
	resp = testutil.ParseResponse(w)
	rows = resp["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("profissoes: expected 1 row, got %d", len(rows))
	}
	if nome := rows[0].(map[string]interface{})["nome"]; nome != "Segurança" {
		t.Errorf("unexpected profissão row: %v", nome)
	}
}
