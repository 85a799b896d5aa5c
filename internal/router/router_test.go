package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/gadget-store-api/config"
	"github.com/oksasatya/gadget-store-api/internal/container"
	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	"github.com/oksasatya/gadget-store-api/internal/infrastructure/storage"
	"github.com/oksasatya/gadget-store-api/internal/interface/middleware"
	"github.com/oksasatya/gadget-store-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

type testApp struct {
	engine    *gin.Engine
	c         *container.Container
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		UploadsDir:        dir,
		UploadMaxBytes:    1024,
		PublicUploadsPath: "/uploads",
		MetricsEnabled:    true,
		ESProductsIndex:   "products",
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	c := container.New(cfg, logger)
	c.UseMemoryStores()
	images, err := storage.NewLocalImageStore(dir, cfg.PublicUploadsPath, cfg.UploadMaxBytes)
	require.NoError(t, err)
	c.Images = images

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return &testApp{engine: r, c: c, uploadDir: dir}
}

func (a *testApp) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (a *testApp) doJSON(t *testing.T, method, path, token string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return a.do(t, method, path, token, body, "application/json")
}

func (a *testApp) tokenFor(t *testing.T, role entity.Role) string {
	t.Helper()
	ctx := context.Background()
	email := string(role) + "@shop.ph"
	u := &entity.User{Name: string(role), Email: email, Role: role, Password: "x"}
	require.NoError(t, a.c.Users.Create(ctx, u))
	token, _, err := a.c.JWT.GenerateToken(u.ID, string(role), email)
	require.NoError(t, err)
	return token
}

func productForm(t *testing.T, fields map[string]string, fileName string, file []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func baseFields() map[string]string {
	return map[string]string{
		"name":     "NeuralPods Pro",
		"category": "Audio",
		"price":    "10499",
		"desc":     "Earbuds",
		"specs":    "Bluetooth 5.4",
	}
}

func TestSystemRoutes(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(t, http.MethodGet, "/", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Backend is live. Use /api/apps for products."}`, w.Body.String())

	w, _ = app.do(t, http.MethodGet, "/health", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	w, _ = app.do(t, http.MethodGet, "/metrics", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gadgetstore_orders_created_total")
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	w, env := app.doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Ana", "email": "Ana@Example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var signup struct {
		Token string            `json:"token"`
		User  entity.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &signup))
	assert.NotEmpty(t, signup.Token)
	assert.Equal(t, "ana@example.com", signup.User.Email)
	assert.Equal(t, entity.RoleCustomer, signup.User.Role)
	assert.NotContains(t, string(env.Data), "password")

	w, env = app.doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Other", "email": "ana@example.com", "password": "secret2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already exists.", env.Message)

	w, env = app.doJSON(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "ana@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password.", env.Message)

	w, env = app.doJSON(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "ANA@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var signin struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &signin))

	w, env = app.do(t, http.MethodGet, "/api/auth/me", signin.Token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var me entity.PublicUser
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, signup.User, me)

	w, env = app.do(t, http.MethodPost, "/api/auth/signout", signin.Token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"signed_out":true,"revoked":false}`, string(env.Data))
}

func TestSignupPaddedEmail(t *testing.T) {
	app := newTestApp(t)

	w, env := app.doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Alice", "email": "  ALICE@Example.com  ", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		User entity.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "alice@example.com", res.User.Email)

	w, env = app.doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Other", "email": " Alice@EXAMPLE.com ", "password": "secret2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already exists.", env.Message)

	w, env = app.doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Bad", "email": "not-an-email", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide a valid email address.", env.Message)
}

func TestAuthenticationGuard(t *testing.T) {
	app := newTestApp(t)

	w, env := app.do(t, http.MethodGet, "/api/auth/me", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication token is required.", env.Message)

	w, env = app.do(t, http.MethodGet, "/api/auth/me", "garbage", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token.", env.Message)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token.")

	// valid signature but the user no longer exists
	token, _, err := app.c.JWT.GenerateToken("507f1f77bcf86cd799439011", "customer", "ghost@x.io")
	require.NoError(t, err)
	w, env = app.do(t, http.MethodGet, "/api/auth/me", token, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found.", env.Message)
}

func TestRevokedTokenRejected(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, entity.RoleCustomer)
	claims, err := app.c.JWT.ParseToken(token)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	app.c.UseRedis(rdb)
	// rebuild routes so the guard sees the denylist
	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg, app.c)
	reg.RegisterAll()
	app.engine = r

	mock.ExpectExists("auth:revoked:" + claims.ID).SetVal(1)
	w, env := app.do(t, http.MethodGet, "/api/auth/me", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token.", env.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminGuard(t *testing.T) {
	app := newTestApp(t)
	customer := app.tokenFor(t, entity.RoleCustomer)

	p := &entity.Product{Name: "P", Category: "C", Price: 1, Desc: "d", Specs: "s", Image: "/uploads/p.jpg"}
	require.NoError(t, app.c.Products.Create(context.Background(), p))

	w, _ := app.do(t, http.MethodGet, "/api/apps", customer, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/apps"},
		{http.MethodPut, "/api/apps/" + p.ID},
		{http.MethodDelete, "/api/apps/" + p.ID},
		{http.MethodGet, "/api/orders"},
		{http.MethodPut, "/api/orders/" + p.ID + "/status"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w, env := app.doJSON(t, rt.method, rt.path, customer, map[string]string{"status": "completed"})
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "Only admin users can perform this action.", env.Message)

			w, _ = app.doJSON(t, rt.method, rt.path, "", map[string]string{"status": "completed"})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	// the guard ran before the handlers: the product is untouched
	got, err := app.c.Products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "P", got.Name)
}

func TestCatalogAdmin(t *testing.T) {
	app := newTestApp(t)
	admin := app.tokenFor(t, entity.RoleAdmin)

	body, ct := productForm(t, baseFields(), "", nil)
	w, env := app.do(t, http.MethodPost, "/api/apps", admin, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product image is required.", env.Message)

	body, ct = productForm(t, baseFields(), "big.png", bytes.Repeat([]byte("x"), 2048))
	w, env = app.do(t, http.MethodPost, "/api/apps", admin, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File too large", env.Message)

	fields := baseFields()
	fields["price"] = "cheap"
	body, ct = productForm(t, fields, "a.png", []byte("png"))
	w, _ = app.do(t, http.MethodPost, "/api/apps", admin, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body, ct = productForm(t, baseFields(), "Photo.PNG", []byte("png-bytes"))
	w, env = app.do(t, http.MethodPost, "/api/apps", admin, body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created entity.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, strings.HasPrefix(created.Image, "/uploads/"))
	assert.True(t, strings.HasSuffix(created.Image, ".png"))
	assert.Equal(t, 10499.0, created.Price)
	stored, err := os.ReadFile(filepath.Join(app.uploadDir, filepath.Base(created.Image)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))

	fields = baseFields()
	fields["name"] = "NeuralPods Pro 2"
	fields["existingImage"] = "/uploads/kept.png"
	body, ct = productForm(t, fields, "", nil)
	w, env = app.do(t, http.MethodPut, "/api/apps/"+created.ID, admin, body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated entity.Product
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "NeuralPods Pro 2", updated.Name)
	assert.Equal(t, "/uploads/kept.png", updated.Image)

	body, ct = productForm(t, baseFields(), "", nil)
	w, env = app.do(t, http.MethodPut, "/api/apps/507f1f77bcf86cd799439011", admin, body, ct)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "App not found.", env.Message)

	w, env = app.do(t, http.MethodGet, "/api/apps", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []entity.Product
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)

	w, env = app.do(t, http.MethodDelete, "/api/apps/"+created.ID, admin, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"App deleted successfully"}`, string(env.Data))

	w, env = app.do(t, http.MethodDelete, "/api/apps/"+created.ID, admin, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "App not found.", env.Message)
}

func TestCatalogCreate_JSONWithImageURL(t *testing.T) {
	app := newTestApp(t)
	admin := app.tokenFor(t, entity.RoleAdmin)

	w, env := app.doJSON(t, http.MethodPost, "/api/apps", admin, map[string]any{
		"name": "HomeMind Hub", "category": "Smart Home", "price": 11999,
		"desc": "Hub", "specs": "Voice", "image": "https://cdn.example.com/hub.jpg",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p entity.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "https://cdn.example.com/hub.jpg", p.Image)
	assert.Equal(t, 11999.0, p.Price)
}

func TestSearchWithoutIndex(t *testing.T) {
	app := newTestApp(t)

	w, env := app.do(t, http.MethodGet, "/api/apps/search?q=pods", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"count":0}`, string(env.Meta))
}

func TestOrderFlow(t *testing.T) {
	app := newTestApp(t)
	admin := app.tokenFor(t, entity.RoleAdmin)
	ctx := context.Background()

	p1 := &entity.Product{Name: "P1", Category: "C", Price: 100, Desc: "d", Specs: "s", Image: "/uploads/p1.jpg"}
	require.NoError(t, app.c.Products.Create(ctx, p1))

	order := map[string]any{
		"customerName":     "Juan",
		"customerEmail":    "Juan@Example.com",
		"customerPhone":    "0917",
		"customerLocation": "Makati",
		"items": []map[string]any{
			{"productId": p1.ID, "quantity": 2, "price": 1},
			{"productId": "bogus", "quantity": 5},
		},
	}
	w, env := app.doJSON(t, http.MethodPost, "/api/orders", "", order)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var placed entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	assert.Equal(t, 200.0, placed.TotalAmount)
	assert.Equal(t, entity.OrderPending, placed.Status)
	assert.Equal(t, "juan@example.com", placed.CustomerEmail)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, 2, placed.Items[0].Quantity)
	assert.JSONEq(t, `{"rejected_items":[{"index":1,"productId":"bogus","reason":"product not found"}]}`, string(env.Meta))

	w, env = app.doJSON(t, http.MethodPost, "/api/orders", "", map[string]any{
		"customerName": "Juan", "customerEmail": "j@x.io", "customerPhone": "1", "customerLocation": "X",
		"items": []map[string]any{{"productId": "bogus"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No valid products found in cart.", env.Message)

	w, env = app.doJSON(t, http.MethodPost, "/api/orders", "", map[string]any{"customerName": "Juan"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Customer name, email, phone, and location are required.", env.Message)

	w, env = app.do(t, http.MethodGet, "/api/orders", admin, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var orders []entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)

	w, env = app.doJSON(t, http.MethodPut, "/api/orders/"+placed.ID+"/status", admin, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status value.", env.Message)

	w, env = app.doJSON(t, http.MethodPut, "/api/orders/507f1f77bcf86cd799439011/status", admin, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found.", env.Message)

	w, env = app.doJSON(t, http.MethodPut, "/api/orders/"+placed.ID+"/status", admin, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, entity.OrderCompleted, updated.Status)
	assert.Equal(t, placed.Items, updated.Items)
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t)
	w, env := app.do(t, http.MethodGet, "/api/apps", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, id)
	assert.True(t, env.Success)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, id, raw["request_id"])
}
