package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/arenalog/sge/internal/sge/entity"
	"github.com/arenalog/sge/internal/sge/repository"
	"github.com/arenalog/sge/internal/sge/service"
	"github.com/arenalog/sge/internal/sge/testutil"
)

func setupItemTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewItemService(repos.Item, repos.TipoRecurso, repos.Armazem)
	h := NewItemHandler(svc)

	router := testutil.SetupRouter()
	router.GET("/items", h.ListItems)
	router.POST("/items", h.CreateItem)
	router.GET("/items/export", h.ExportItems)
	router.PUT("/items/:nropatrimonio", h.UpdateItem)
	router.DELETE("/items/:nropatrimonio", h.DeleteItem)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedInventario(t *testing.T, env *testutil.TestEnv) {
	t.Helper()
	testutil.SeedTipoRecurso(t, env.DB, "TR-SOM", "Som")
	testutil.SeedTipoRecurso(t, env.DB, "TR-LUZ", "Iluminação")
	testutil.SeedItem(t, env.DB, "ABC-123", "Disponível", "TR-SOM")
	testutil.SeedItem(t, env.DB, "DEF-456", "Em Uso", "TR-LUZ")
}

func listarItens(t *testing.T, env *testutil.TestEnv, query string) []interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, http.MethodGet, "/items"+query, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].([]interface{})
}

// TestListItemsFiltros tests the dynamic AND-composed filters: "all" and
// absent fields impose no constraint, search matches case-insensitively.
func TestListItemsFiltros(t *testing.T) {
	env := setupItemTest(t)
	seedInventario(t, env)

	if rows := listarItens(t, env, ""); len(rows) != 2 {
		t.Errorf("no filters: expected 2 rows, got %d", len(rows))
	}
	if rows := listarItens(t, env, "?statusitem=all"); len(rows) != 2 {
		t.Errorf("statusitem=all: expected 2 rows, got %d", len(rows))
	}

	rows := listarItens(t, env, "?statusitem=Disponível")
	if len(rows) != 1 {
		t.Fatalf("statusitem=Disponível: expected 1 row, got %d", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["nropatrimonio"] != "ABC-123" {
		t.Errorf("unexpected row: %v", row)
	}
	if tipo := row["tiporecursofisico"].(map[string]interface{}); tipo["nome"] != "Som" {
		t.Errorf("expected tipo Som, got %v", tipo)
	}

	if rows := listarItens(t, env, "?search=abc"); len(rows) != 1 {
		t.Errorf("search=abc: expected 1 row, got %d", len(rows))
	}
	if rows := listarItens(t, env, "?tiporecursofisico=TR-LUZ&statusitem=Em+Uso"); len(rows) != 1 {
		t.Errorf("combined filters: expected 1 row, got %d", len(rows))
	}
	if rows := listarItens(t, env, "?tiporecursofisico=TR-LUZ&statusitem=Disponível"); len(rows) != 0 {
		t.Errorf("contradictory filters: expected 0 rows, got %d", len(rows))
	}
}

// TestCreateItem tests FK validation and patrimony uniqueness.
func TestCreateItem(t *testing.T) {
	env := setupItemTest(t)
	testutil.SeedTipoRecurso(t, env.DB, "TR-SOM", "Som")
	if err := env.DB.Create(&entity.Armazem{ID: "ARM-1", Endereco: "Rua A, 100"}).Error; err != nil {
		t.Fatalf("failed to seed armazém: %v", err)
	}

	body := map[string]interface{}{
		"nropatrimonio":     "PAT-001",
		"tamanho":           2.5,
		"tiporecursofisico": "TR-SOM",
		"armazem":           "ARM-1",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/items", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Status default
	var item entity.Item
	if err := env.DB.First(&item, "nro_patrimonio = ?", "PAT-001").Error; err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	if item.StatusItem != entity.ItemStatusDisponivel {
		t.Errorf("expected default status %q, got %q", entity.ItemStatusDisponivel, item.StatusItem)
	}

	// Patrimônio duplicado
	w = testutil.DoRequest(env.Router, http.MethodPost, "/items", body)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate patrimônio: expected 409, got %d: %s", w.Code, w.Body.String())
	}

	// Tipo de recurso inexistente
	body["nropatrimonio"] = "PAT-002"
	body["tiporecursofisico"] = "TR-NADA"
	w = testutil.DoRequest(env.Router, http.MethodPost, "/items", body)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown tipo: expected 404, got %d: %s", w.Code, w.Body.String())
	}

	// Armazém inexistente
	body["tiporecursofisico"] = "TR-SOM"
	body["armazem"] = "ARM-NADA"
	w = testutil.DoRequest(env.Router, http.MethodPost, "/items", body)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown armazém: expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

// TestUpdateItem tests the partial update and its not-found paths.
func TestUpdateItem(t *testing.T) {
	env := setupItemTest(t)
	seedInventario(t, env)

	body := map[string]interface{}{"statusitem": "Em Manutenção", "qualidade": "Boa"}
	w := testutil.DoRequest(env.Router, http.MethodPut, "/items/ABC-123", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var item entity.Item
	if err := env.DB.First(&item, "nro_patrimonio = ?", "ABC-123").Error; err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	if item.StatusItem != "Em Manutenção" || item.Qualidade == nil || *item.Qualidade != "Boa" {
		t.Errorf("update not applied: %+v", item)
	}

	w = testutil.DoRequest(env.Router, http.MethodPut, "/items/PAT-NADA", body)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown item: expected 404, got %d", w.Code)
	}
}

// TestDeleteItem tests that an allocated item cannot be deleted and an
// unreferenced one can, disappearing from subsequent lookups.
func TestDeleteItem(t *testing.T) {
	env := setupItemTest(t)
	seedInventario(t, env)

	evento := &entity.Evento{
		Nome:       "Festival de Inverno",
		DataInicio: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:     entity.EventoStatusConfirmado,
		PedidoID:   "PED-2026-001",
	}
	if err := env.DB.Create(evento).Error; err != nil {
		t.Fatalf("failed to seed evento: %v", err)
	}
	alocacao := &entity.Alocacao{
		EventoNome:       evento.Nome,
		EventoDataInicio: evento.DataInicio,
		ItemID:           "ABC-123",
	}
	if err := env.DB.Create(alocacao).Error; err != nil {
		t.Fatalf("failed to seed alocação: %v", err)
	}

	// Item alocado: conflito
	w := testutil.DoRequest(env.Router, http.MethodDelete, "/items/ABC-123", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("allocated item: expected 409, got %d: %s", w.Code, w.Body.String())
	}

	// Item sem vínculos: removido e some das consultas
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/items/DEF-456", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unreferenced item: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	itemRepo := repository.NewItemRepository(env.DB)
	if _, err := itemRepo.FindByNroPatrimonio(context.Background(), "DEF-456"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/items/DEF-456", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("already deleted: expected 404, got %d", w.Code)
	}
}

// TestExportItems tests that the XLSX export streams with attachment headers.
func TestExportItems(t *testing.T) {
	env := setupItemTest(t)
	seedInventario(t, env)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/items/export?statusitem=Disponível", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("missing Content-Disposition header")
	}
	if w.Body.Len() == 0 {
		t.Error("empty export body")
	}
}
