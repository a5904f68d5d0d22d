package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
)

const seedPassword = "admin123"

type testServer struct {
	t   *testing.T
	app *fiber.App
}

// newTestServer arma la API completa sobre el backend en memoria.
func newTestServer(t *testing.T, companiesPolicy string) *testServer {
	t.Helper()
	ctx := context.Background()
	sessions := newSessions(t)
	hasher := auth.NewHasher(4)
	store := memory.NewStore()
	repos := store.Repositories()
	tx := store.TxRunner()
	images, err := storage.NewDiskImageStore(afero.NewMemMapFs(), "uploads", "uploads", storage.DefaultMaxBytes)
	require.NoError(t, err)

	_, err = auth.EnsureSeedAdmin(ctx, repos.Employees, hasher, seedPassword)
	require.NoError(t, err)

	productUC := usecase.NewProductUseCase(repos.Products, repos.Companies, repos.Memberships, tx, images)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:              auth.NewAuthUseCase(repos.Employees, tx, images, sessions, hasher),
		Sessions:            sessions,
		EmployeeUC:          usecase.NewEmployeeUseCase(repos.Employees, tx, images, hasher),
		CompanyUC:           usecase.NewCompanyUseCase(repos.Companies, repos.Memberships, repos.Employees),
		CategoryUC:          usecase.NewCategoryUseCase(repos.Categories),
		ProductUC:           productUC,
		ReportUC:            usecase.NewReportUseCase(repos.Employees, repos.Companies, repos.Products, productUC, pdf.NewMarotoPDFGenerator()),
		CompaniesListPolicy: companiesPolicy,
	})
	return &testServer{t: t, app: app}
}

func (s *testServer) do(req *http.Request, token string) (int, []byte) {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, body
}

func (s *testServer) json(method, path, token string, payload interface{}) (int, []byte) {
	s.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(s.t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	return s.do(req, token)
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	status, body := s.json(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(s.t, http.StatusOK, status, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(body, &out))
	require.NotEmpty(s.t, out.Token)
	return out.Token
}

// createUser crea un funcionario con rol user y devuelve su id y token.
func (s *testServer) createUser(admin, username string) (string, string) {
	s.t.Helper()
	status, body := s.json(http.MethodPost, "/api/employees", admin, map[string]string{
		"full_name": "Maria Souza",
		"username":  username,
		"email":     username + "@example.com",
		"password":  "segredo1",
		"cpf":       username + "-cpf",
	})
	require.Equal(s.t, http.StatusCreated, status, string(body))
	return decodeID(s.t, body), s.login(username, "segredo1")
}

func (s *testServer) createCompany(admin, name, cnpj string) string {
	s.t.Helper()
	status, body := s.json(http.MethodPost, "/api/companies", admin, map[string]string{"name": name, "cnpj": cnpj})
	require.Equal(s.t, http.StatusCreated, status, string(body))
	return decodeID(s.t, body)
}

func decodeID(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.ID)
	return out.ID
}

func decodeError(t *testing.T, body []byte) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, config.CompaniesListAuthenticated)

	status, body := s.json(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": seedPassword})
	require.Equal(t, http.StatusOK, status)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out["token"])
	user := out["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["username"])
	assert.Equal(t, "admin", user["role"])
	assert.NotContains(t, string(body), "password")

	// usuario inexistente y contraseña incorrecta responden igual
	_, wrongPass := s.json(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "x"})
	status, unknown := s.json(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "nadie", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, string(wrongPass), string(unknown))
	assert.Equal(t, "InvalidCredentials", decodeError(t, unknown)["kind"])

	status, body = s.json(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ValidationError", decodeError(t, body)["kind"])
}

func TestProfile(t *testing.T) {
	s := newTestServer(t, config.CompaniesListAuthenticated)
	admin := s.login("admin", seedPassword)

	status, body := s.json(http.MethodGet, "/api/profile", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"username":"admin"`)

	status, _ = s.json(http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = s.json(http.MethodPut, "/api/profile", admin, map[string]string{"new_password": "nueva123"})
	assert.Equal(t, http.StatusUnauthorized, status, string(body))
	assert.Equal(t, "InvalidCredentials", decodeError(t, body)["kind"])

	status, body = s.json(http.MethodPut, "/api/profile", admin, map[string]string{
		"current_password": seedPassword, "new_password": "nueva123", "phone": "(11) 99999-0000",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), "(11) 99999-0000")
	s.login("admin", "nueva123")
}

func TestCompanies_CreateYConflictoPorCNPJ(t *testing.T) {
	s := newTestServer(t, config.CompaniesListAuthenticated)
	admin := s.login("admin", seedPassword)

	status, body := s.json(http.MethodPost, "/api/companies", admin, map[string]string{"name": "Acme", "cnpj": "11.111.111/0001-11"})
	require.Equal(t, http.StatusCreated, status, string(body))
	id := decodeID(t, body)
	assert.Contains(t, string(body), `"name":"Acme"`)

	status, body = s.json(http.MethodPost, "/api/companies", admin, map[string]string{"name": "Acme 2", "cnpj": "11.111.111/0001-11"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Conflict", decodeError(t, body)["kind"])

	status, body = s.json(http.MethodGet, "/api/companies/"+id, admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), id)
}

func TestEmployees_SoloAdmin(t *testing.T) {
	s := newTestServer(t, config.CompaniesListAuthenticated)
	admin := s.login("admin", seedPassword)

	status, body := s.json(http.MethodPost, "/api/employees", admin, map[string]string{
		"full_name": "Maria Souza", "username": "maria", "email": "maria@example.com",
		"password": "segredo1", "cpf": "111.111.111-11",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.NotContains(t, string(body), "password")
	assert.Contains(t, string(body), `"role":"user"`)

	user := s.login("maria", "segredo1")
	status, body = s.json(http.MethodPost, "/api/employees", user, map[string]string{
		"full_name": "Otro", "username": "otro", "email": "otro@example.com", "password": "x", "cpf": "2",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Forbidden", decodeError(t, body)["kind"])

	status, _ = s.json(http.MethodGet, "/api/employees", user, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// username duplicado
	status, _ = s.json(http.MethodPost, "/api/employees", admin, map[string]string{
		"full_name": "Maria 2", "username": "maria", "email": "m2@example.com", "password": "x", "cpf": "3",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestMemberships(t *testing.T) {
	s := newTestServer(t, config.CompaniesListAuthenticated)
	admin := s.login("admin", seedPassword)
	userID, user := s.createUser(admin, "maria")
	companyID := s.createCompany(admin, "Acme", "11.111.111/0001-11")

	status, body := s.json(http.MethodGet, "/api/user/company", user, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(body))

	status, body = s.json(http.MethodPost, "/api/companies/"+companyID+"/employees", admin, map[string]string{"employee_id": userID})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, _ = s.json(http.MethodPost, "/api/companies/"+companyID+"/employees", admin, map[string]string{"employee_id": userID})
	assert.Equal(t, http.StatusConflict, status)

	status, body = s.json(http.MethodGet, "/api/user/companies", user, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), companyID)

	status, body = s.json(http.MethodGet, "/api/user/company", user, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), companyID)

	status, body = s.json(http.MethodGet, "/api/companies/"+companyID+"/employees", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"username":"maria"`)

	status, _ = s.json(http.MethodDelete, "/api/companies/"+companyID+"/employees/"+userID, admin, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = s.json(http.MethodDelete, "/api/companies/"+companyID+"/employees/"+userID, admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCompaniesListPolicy(t *testing.T) {
	open := newTestServer(t, config.CompaniesListAuthenticated)
	_, user := open.createUser(open.login("admin", seedPassword), "maria")
	status, _ := open.json(http.MethodGet, "/api/companies", user, nil)
	assert.Equal(t, http.StatusOK, status)

	restricted := newTestServer(t, config.CompaniesListAdmin)
	admin := restricted.login("admin", seedPassword)
	_, user = restricted.createUser(admin, "maria")
	status, _ = restricted.json(http.MethodGet, "/api/companies", user, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = restricted.json(http.MethodGet, "/api/companies", admin, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProducts_CRUDYAlcancePorEmpresa(t *testing.T) {
	s := newTestServer(t, config.CompaniesListAuthenticated)
	admin := s.login("admin", seedPassword)
	userID, user := s.createUser(admin, "maria")
	companyID := s.createCompany(admin, "Acme", "11.111.111/0001-11")

	status, body := s.json(http.MethodPost, "/api/products", admin, map[string]interface{}{
		"company_id":    companyID,
		"code":          "P-1",
		"name":          "Parafuso",
		"cost_price":    "10,00",
		"selling_price": 13.5,
		"current_stock": "5",
		"minimum_stock": 2,
		"unit":          "un",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	productID := decodeID(t, body)
	assert.Contains(t, string(body), `"profit_margin":"35"`)

	status, _ = s.json(http.MethodPost, "/api/products", user, map[string]interface{}{"company_id": companyID})
	assert.Equal(t, http.StatusForbidden, status)

	// sin vínculo no ve los productos de la empresa
	status, _ = s.json(http.MethodGet, "/api/products?companyId="+companyID, user, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.json(http.MethodPost, "/api/companies/"+companyID+"/employees", admin, map[string]string{"employee_id": userID})
	require.Equal(t, http.StatusCreated, status)
	status, body = s.json(http.MethodGet, "/api/products?companyId="+companyID, user, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), productID)

	status, _ = s.json(http.MethodGet, "/api/products", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.json(http.MethodPut, "/api/products/"+productID, admin, map[string]interface{}{"stock_delta": -4})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"current_stock":1`)
	assert.Contains(t, string(body), `"low_stock":true`)

	status, _ = s.json(http.MethodPut, "/api/products/"+productID, admin, map[string]interface{}{"stock_delta": -5})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.json(http.MethodDelete, "/api/products/"+productID, admin, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, body = s.json(http.MethodGet, "/api/products/"+productID, admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NotFound", decodeError(t, body)["kind"])
}

func TestProducts_CreateMultipartConImagen(t *testing.T) {
	s := newTestServer(t, config.CompaniesListAuthenticated)
	admin := s.login("admin", seedPassword)
	companyID := s.createCompany(admin, "Acme", "11.111.111/0001-11")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"company_id": companyID, "code": "P-1", "name": "Parafuso",
		"cost_price": "10", "selling_price": "12", "unit": "un",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="foto.png"`)
	h.Set("Content-Type", "image/png")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	status, body := s.do(req, admin)
	require.Equal(t, http.StatusCreated, status, string(body))

	var out struct {
		Image *string `json:"image"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotNil(t, out.Image)
	assert.Regexp(t, `^uploads/[0-9a-f-]+\.png$`, *out.Image)
}

func TestReports(t *testing.T) {
	s := newTestServer(t, config.CompaniesListAuthenticated)
	admin := s.login("admin", seedPassword)
	_, user := s.createUser(admin, "maria")
	companyID := s.createCompany(admin, "Acme", "11.111.111/0001-11")

	status, body := s.json(http.MethodGet, "/api/reports/summary?companyId="+companyID, admin, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var summary map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.EqualValues(t, 2, summary["employees"]["total"])
	assert.EqualValues(t, 1, summary["companies"]["total"])
	assert.EqualValues(t, 0, summary["products"]["total"])

	status, _ = s.json(http.MethodGet, "/api/reports/summary", user, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = s.json(http.MethodGet, "/api/reports/summary?companyId=00000000-0000-0000-0000-000000000099", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NotFound", decodeError(t, body)["kind"])

	req := httptest.NewRequest(http.MethodGet, "/api/reports/stock?companyId="+companyID, nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock-"+companyID)
	pdfBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBody, []byte("%PDF")))

	status, _ = s.json(http.MethodGet, "/api/reports/stock?companyId="+companyID, user, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCategories_RutaAnteriorEquivalente(t *testing.T) {
	s := newTestServer(t, config.CompaniesListAuthenticated)
	admin := s.login("admin", seedPassword)
	_, user := s.createUser(admin, "maria")

	status, body := s.json(http.MethodPost, "/api/product-categories", admin, map[string]string{"name": " Bebidas "})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Contains(t, string(body), `"name":"Bebidas"`)

	status, _ = s.json(http.MethodPost, "/api/categories", admin, map[string]string{"name": "Bebidas"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.json(http.MethodPost, "/api/product-categories", user, map[string]string{"name": "Limpeza"})
	assert.Equal(t, http.StatusForbidden, status)

	for _, path := range []string{"/api/categories", "/api/product-categories"} {
		status, body = s.json(http.MethodGet, path, user, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), "Bebidas", path)
	}
}

func TestRutaInexistente(t *testing.T) {
	s := newTestServer(t, config.CompaniesListAuthenticated)
	status, body := s.json(http.MethodGet, "/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ROUTE_NOT_FOUND", decodeError(t, body)["code"])

	status, _ = s.json(http.MethodGet, "/api/test", "", nil)
	assert.Equal(t, http.StatusOK, status)
}
