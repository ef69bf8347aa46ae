package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/arenalog/sge/internal/sge/entity"
	"github.com/arenalog/sge/internal/sge/repository"
	"github.com/arenalog/sge/internal/sge/service"
	"github.com/arenalog/sge/internal/sge/testutil"
	"go.uber.org/zap"
)

func setupPedidoTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewPedidoService(repos.Pedido, repos.Usuario, repos.Analista, repos.Gerente,
		repos.Requisito, db, zap.NewNop(), service.AssignmentPolicyAuto)
	h := NewPedidoHandler(svc)

	router := testutil.SetupRouter()
	router.POST("/pedidos", h.CreatePedido)
	router.GET("/pedidos", h.ListPedidos)
	router.PATCH("/pedidos/:id/status", h.UpdateStatus)
	router.GET("/pedidos/:id/requisitos", h.ListRequisitos)
	router.POST("/pedidos/:id/requisitos", h.AddRequisitos)
	router.DELETE("/pedidos/:id/requisitos/fisico/:resId", h.DeleteRequisitoFisico)
	router.DELETE("/pedidos/:id/requisitos/humano/:resId", h.DeleteRequisitoHumano)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedPedidoBase(t *testing.T, env *testutil.TestEnv) {
	t.Helper()
	testutil.SeedUsuario(t, env.DB, "52998224725", "Maria Silva", "maria@example.com")
	testutil.SeedEquipe(t, env.DB, "11144477735", "22255588846")
}

func criarPedido(t *testing.T, env *testutil.TestEnv) string {
	t.Helper()
	body := map[string]interface{}{
		"nomeeventoproposto": "Festival de Inverno",
		"usuario":            "529.982.247-25",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/pedidos", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})["idpedido"].(string)
}

// TestCreatePedidoSequentialID tests the PED-{year}-NNN sequence: first of
// the year is 001 and the scan continues from the highest existing suffix.
func TestCreatePedidoSequentialID(t *testing.T) {
	env := setupPedidoTest(t)
	seedPedidoBase(t, env)
	ano := time.Now().Year()

	id := criarPedido(t, env)
	if want := fmt.Sprintf("PED-%d-001", ano); id != want {
		t.Fatalf("expected first id %s, got %s", want, id)
	}

	// Pedido pré-existente com sufixo maior: a sequência continua dele
	pedido := &entity.Pedido{
		ID:            fmt.Sprintf("PED-%d-007", ano),
		Status:        entity.PedidoStatusEmAnalise,
		DataSubmissao: time.Now(),
		Usuario:       "52998224725",
		Analista:      "11144477735",
		Gerente:       "22255588846",
	}
	if err := env.DB.Create(pedido).Error; err != nil {
		t.Fatalf("failed to seed pedido: %v", err)
	}

	id = criarPedido(t, env)
	if want := fmt.Sprintf("PED-%d-008", ano); id != want {
		t.Fatalf("expected next id %s, got %s", want, id)
	}
}

// TestCreatePedidoSequenciaAlemDe999 tests that the suffix keeps growing
// monotonically past three digits.
func TestCreatePedidoSequenciaAlemDe999(t *testing.T) {
	env := setupPedidoTest(t)
	seedPedidoBase(t, env)
	ano := time.Now().Year()

	pedido := &entity.Pedido{
		ID:            fmt.Sprintf("PED-%d-999", ano),
		Status:        entity.PedidoStatusEmAnalise,
		DataSubmissao: time.Now(),
		Usuario:       "52998224725",
		Analista:      "11144477735",
		Gerente:       "22255588846",
	}
	if err := env.DB.Create(pedido).Error; err != nil {
		t.Fatalf("failed to seed pedido: %v", err)
	}

	id := criarPedido(t, env)
	if want := fmt.Sprintf("PED-%d-1000", ano); id != want {
		t.Fatalf("expected id %s, got %s", want, id)
	}

	// O próximo scan ainda enxerga 1000 como máximo
	id = criarPedido(t, env)
	if want := fmt.Sprintf("PED-%d-1001", ano); id != want {
		t.Fatalf("expected id %s, got %s", want, id)
	}
}

// TestCreatePedidoValidacoes tests the not-found and date rules on creation.
func TestCreatePedidoValidacoes(t *testing.T) {
	env := setupPedidoTest(t)
	seedPedidoBase(t, env)

	// Usuário inexistente
	w := testutil.DoRequest(env.Router, http.MethodPost, "/pedidos", map[string]interface{}{
		"usuario": "00000000000",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown usuario: expected 404, got %d: %s", w.Code, w.Body.String())
	}

	// Data de início no passado
	ontem := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	w = testutil.DoRequest(env.Router, http.MethodPost, "/pedidos", map[string]interface{}{
		"usuario":            "52998224725",
		"datainicioproposto": ontem,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("past start date: expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// Fim antes do início
	amanha := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	hoje := time.Now().Format("2006-01-02")
	w = testutil.DoRequest(env.Router, http.MethodPost, "/pedidos", map[string]interface{}{
		"usuario":            "52998224725",
		"datainicioproposto": amanha,
		"datafimproposto":    hoje,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("end before start: expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// Fim igual ao início é aceito
	w = testutil.DoRequest(env.Router, http.MethodPost, "/pedidos", map[string]interface{}{
		"usuario":            "52998224725",
		"datainicioproposto": amanha,
		"datafimproposto":    amanha,
	})
	if w.Code != http.StatusCreated {
		t.Errorf("end equal to start: expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

// TestCreatePedidoSemEquipe tests that creation fails when no staff is registered.
func TestCreatePedidoSemEquipe(t *testing.T) {
	env := setupPedidoTest(t)
	testutil.SeedUsuario(t, env.DB, "52998224725", "Maria Silva", "maria@example.com")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/pedidos", map[string]interface{}{
		"usuario": "52998224725",
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
}

// TestUpdateStatus tests the status transition and its not-found paths.
func TestUpdateStatus(t *testing.T) {
	env := setupPedidoTest(t)
	seedPedidoBase(t, env)
	id := criarPedido(t, env)

	body := map[string]interface{}{
		"status":   entity.PedidoStatusAprovado,
		"analista": "11144477735",
		"gerente":  "22255588846",
	}

	w := testutil.DoRequest(env.Router, http.MethodPatch, "/pedidos/"+id+"/status", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var pedido entity.Pedido
	if err := env.DB.First(&pedido, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload pedido: %v", err)
	}
	if pedido.Status != entity.PedidoStatusAprovado {
		t.Errorf("expected status %q, got %q", entity.PedidoStatusAprovado, pedido.Status)
	}

	// Pedido inexistente
	w = testutil.DoRequest(env.Router, http.MethodPatch, "/pedidos/PED-1999-001/status", body)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown pedido: expected 404, got %d: %s", w.Code, w.Body.String())
	}

	// Analista inexistente
	body["analista"] = "99999999999"
	w = testutil.DoRequest(env.Router, http.MethodPatch, "/pedidos/"+id+"/status", body)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown analista: expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

// TestAddRequisitosLoteAtomico tests that a duplicate line aborts the whole
// batch: nothing is applied, not even the lazily created document.
func TestAddRequisitosLoteAtomico(t *testing.T) {
	env := setupPedidoTest(t)
	seedPedidoBase(t, env)
	testutil.SeedTipoRecurso(t, env.DB, "TR-SOM", "Som")
	id := criarPedido(t, env)

	body := map[string]interface{}{
		"tipos_recurso": []map[string]interface{}{
			{"id": "TR-SOM", "qtd": 2},
			{"id": "TR-SOM", "qtd": 3},
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/pedidos/"+id+"/requisitos", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}

	var fisicos, docs int64
	env.DB.Model(&entity.RequisitoFisico{}).Count(&fisicos)
	env.DB.Model(&entity.DocumentoRequisito{}).Count(&docs)
	if fisicos != 0 || docs != 0 {
		t.Fatalf("batch partially applied: %d linhas, %d documentos", fisicos, docs)
	}
}

// TestRequisitosFluxo tests add, list, delete and the empty-list case.
func TestRequisitosFluxo(t *testing.T) {
	env := setupPedidoTest(t)
	seedPedidoBase(t, env)
	testutil.SeedTipoRecurso(t, env.DB, "TR-SOM", "Som")
	if err := env.DB.Create(&entity.Profissao{Nome: "Segurança"}).Error; err != nil {
		t.Fatalf("failed to seed profissão: %v", err)
	}
	id := criarPedido(t, env)

	// Pedido sem documento: lista vazia, não erro
	w := testutil.DoRequest(env.Router, http.MethodGet, "/pedidos/"+id+"/requisitos", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if rows := resp["data"].([]interface{}); len(rows) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(rows))
	}

	body := map[string]interface{}{
		"tipos_recurso":    []map[string]interface{}{{"id": "TR-SOM", "qtd": 2}},
		"recursos_humanos": []map[string]interface{}{{"id": "Segurança", "qtd": 4}},
	}
	w = testutil.DoRequest(env.Router, http.MethodPost, "/pedidos/"+id+"/requisitos", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/pedidos/"+id+"/requisitos", nil)
	resp = testutil.ParseResponse(w)
	rows := resp["data"].([]interface{})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first := rows[0].(map[string]interface{})
	if first["nome"] != "Som" || first["tipo"] != "fisico" {
		t.Errorf("unexpected first row: %v", first)
	}

	// Requisito físico inexistente noutro pedido
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/pedidos/"+id+"/requisitos/fisico/TR-LUZ", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown requisito: expected 404, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/pedidos/"+id+"/requisitos/fisico/TR-SOM", nil)
	if w.Code != http.StatusOK {
		t.Errorf("delete fisico: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/pedidos/"+id+"/requisitos/humano/Segurança", nil)
	if w.Code != http.StatusOK {
		t.Errorf("delete humano: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

// TestAddRequisitosPedidoInexistente tests the 404 before any write happens.
func TestAddRequisitosPedidoInexistente(t *testing.T) {
	env := setupPedidoTest(t)
	seedPedidoBase(t, env)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/pedidos/PED-1999-001/requisitos", map[string]interface{}{
		"tipos_recurso": []map[string]interface{}{{"id": "TR-SOM", "qtd": 1}},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

// TestListPedidosFiltros tests the optional status/usuario equality filters.
func TestListPedidosFiltros(t *testing.T) {
	env := setupPedidoTest(t)
	seedPedidoBase(t, env)
	testutil.SeedUsuario(t, env.DB, "16899535009", "João Souza", "joao@example.com")

	criarPedido(t, env)
	w := testutil.DoRequest(env.Router, http.MethodPost, "/pedidos", map[string]interface{}{
		"usuario": "16899535009",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/pedidos", nil)
	resp := testutil.ParseResponse(w)
	if rows := resp["data"].([]interface{}); len(rows) != 2 {
		t.Fatalf("unfiltered: expected 2 rows, got %d", len(rows))
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/pedidos?usuario=16899535009", nil)
	resp = testutil.ParseResponse(w)
	rows := resp["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("filtered by usuario: expected 1 row, got %d", len(rows))
	}
	if nome := rows[0].(map[string]interface{})["usuario_nome"]; nome != "João Souza" {
		t.Errorf("expected joined usuario_nome, got %v", nome)
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/pedidos?status=Aprovado", nil)
	resp = testutil.ParseResponse(w)
	if rows := resp["data"].([]interface{}); len(rows) != 0 {
		t.Fatalf("filtered by status: expected 0 rows, got %d", len(rows))
	}
}
