package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/lendmarket/config"
	"github.com/yourusername/lendmarket/middleware"
	"github.com/yourusername/lendmarket/models"
	"github.com/yourusername/lendmarket/repositories"
	"github.com/yourusername/lendmarket/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *services.AuthService
	ledger *services.LedgerService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Operation{}, &models.Bid{}))
	return db
}

// setupEnv wires the full route table against an in-memory database, the
// same shape main assembles.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: 30 * time.Minute}

	userRepo := repositories.NewUserRepository(db)
	operationRepo := repositories.NewOperationRepository(db)
	bidRepo := repositories.NewBidRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService)
	ledgerService := services.NewLedgerService(operationRepo, bidRepo)

	authHandler := NewAuthHandler(authService, cfg)
	operationHandler := NewOperationHandler(ledgerService)
	bidHandler := NewBidHandler(ledgerService)
	userHandler := NewUserHandler(authService)

	router := gin.New()
	router.POST("/register", authHandler.Register)
	router.POST("/token", authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	authed := router.Group("")
	authed.Use(middleware.Auth(authService))
	{
		authed.GET("/users/me", authHandler.Me)
		authed.GET("/operator_dashboard", middleware.RequireRole(models.RoleOperator), authHandler.Dashboard)
		authed.GET("/investor_dashboard", middleware.RequireRole(models.RoleInvestor), authHandler.Dashboard)
		authed.GET("/admin_dashboard", middleware.RequireRole(models.RoleAdmin), authHandler.Dashboard)
	}

	operator := router.Group("/operator")
	operator.Use(middleware.Auth(authService), middleware.RequireRole(models.RoleOperator, models.RoleAdmin))
	{
		operator.POST("/create-operation", operationHandler.CreateOperation)
		operator.GET("/operations", operationHandler.ListAll)
		operator.PUT("/update-status", operationHandler.UpdateStatus)
	}

	investor := router.Group("/investor")
	investor.Use(middleware.Auth(authService), middleware.RequireRole(models.RoleInvestor))
	{
		investor.GET("/operations", operationHandler.ListOpen)
		investor.POST("/make-offer", bidHandler.MakeOffer)
		investor.GET("/my-bids", bidHandler.MyBids)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.Auth(authService), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/users/add", userHandler.AddUser)
		admin.DELETE("/users/delete/:user_id", userHandler.DeleteUser)
	}

	return &testEnv{router: router, db: db, auth: authService, ledger: ledgerService}
}

func (e *testEnv) register(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	user, err := e.auth.Register(services.RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "s3cret",
		Role:      role,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	token, _, err := e.auth.Login(email, "s3cret")
	require.NoError(t, err)
	return token
}

// do performs a JSON request, attaching the session cookie when token != "".
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
