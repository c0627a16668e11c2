package handlers_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jimitchavdadev/ecommerce-platform/internal/auth"
	"github.com/jimitchavdadev/ecommerce-platform/internal/db"
	"github.com/jimitchavdadev/ecommerce-platform/internal/events"
	"github.com/jimitchavdadev/ecommerce-platform/internal/handlers"
	"github.com/jimitchavdadev/ecommerce-platform/internal/models"
	"github.com/jimitchavdadev/ecommerce-platform/internal/orders"
	"github.com/jimitchavdadev/ecommerce-platform/internal/payments"
)

const testGatewaySecret = "test-gateway-secret"

// stubGateway stands in for Razorpay. When fail is set it simulates an
// unreachable gateway.
type stubGateway struct {
	fail    bool
	lastAmt int64
}

func (s *stubGateway) CreateIntent(ctx context.Context, amount float64, receiptID string) (*payments.Intent, error) {
	if s.fail {
		return nil, errors.New("gateway unreachable")
	}
	s.lastAmt = payments.MinorUnits(amount)
	return &payments.Intent{GatewayOrderID: "order_gw123", Amount: s.lastAmt, Currency: "INR"}, nil
}

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	tokens  *auth.Service
	gateway *stubGateway
}

func setupEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	logger := zap.NewNop().Sugar()
	tokens := auth.NewService("test-jwt-secret", time.Hour)
	orderSvc := orders.NewService(gdb, events.Nop{}, logger)
	gateway := &stubGateway{}
	verifier := payments.NewVerifier(testGatewaySecret)

	authHandler := handlers.NewAuthHandler(gdb, tokens, logger)
	productHandler := handlers.NewProductHandler(gdb, nil, logger)
	orderHandler := handlers.NewOrderHandler(orderSvc, logger)
	paymentHandler := handlers.NewPaymentHandler(gdb, orderSvc, gateway, verifier, nil, logger)

	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/products", productHandler.List)
	r.GET("/products/:id", productHandler.Get)

	api := r.Group("/")
	api.Use(tokens.RequireAuth())
	{
		api.POST("/products", productHandler.Create)
		api.PATCH("/products/:id", productHandler.Update)
		api.DELETE("/products/:id", productHandler.Delete)
		api.POST("/orders", orderHandler.Create)
		api.GET("/orders/mine", orderHandler.ListMine)
		api.GET("/orders", orderHandler.ListAll)
		api.GET("/admin/summary", orderHandler.Summary)
		api.POST("/payments/intent", paymentHandler.CreateIntent)
		api.POST("/payments/verify", paymentHandler.Verify)
	}

	return &testEnv{router: r, db: gdb, tokens: tokens, gateway: gateway}
}

// seedUserWithToken creates a user directly and returns a valid bearer token
// for it.
func (e *testEnv) seedUserWithToken(t *testing.T, email, role string) (models.User, string) {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{Email: email, Password: hash, Name: "Test User", Role: role}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	token, err := e.tokens.IssueToken(&user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return user, token
}

func (e *testEnv) seedProduct(t *testing.T, name string, price float64, stock int) models.Product {
	p := models.Product{Name: name, Description: name, Price: price, Stock: stock, Category: "test"}
	if err := e.db.Create(&p).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return p
}

func (e *testEnv) perform(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func gatewaySignature(gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
