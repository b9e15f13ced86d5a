package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/config"
	"github.com/BruksfildServices01/crm-manager/internal/db/dbtest"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/storage"
)

const secret = "test-secret"

type env struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	token  string
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	cfg := &config.Config{JWTSecret: secret}

	r := gin.New()
	RegisterRoutes(r, db, cfg, Infra{
		Broker: realtime.NewMemoryBroker(),
		Store:  storage.NewMemoryStore("/files"),
	})

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: "Ana", Email: "ana@crm.test", PasswordHash: string(hash), Role: models.RoleOwner}
	require.NoError(t, db.Create(&user).Error)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	return &env{t: t, db: db, router: r, token: token}
}

func (e *env) httpDo(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type listBody[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type errBody struct {
	Code string `json:"error_code"`
}

func TestLogin(t *testing.T) {
	e := setup(t)
	e.token = ""

	w := e.httpDo(http.MethodPost, "/api/auth/login", gin.H{"email": "ANA@crm.test", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, decode[map[string]any](t, w)["token"])

	w = e.httpDo(http.MethodPost, "/api/auth/login", gin.H{"email": "ana@crm.test", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid_credentials", decode[errBody](t, w).Code)

	w = e.httpDo(http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	e := setup(t)

	w := e.httpDo(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ana@crm.test")
	require.NotContains(t, w.Body.String(), "password")
}

func TestClientAppointmentPaymentFlow(t *testing.T) {
	e := setup(t)

	w := e.httpDo(http.MethodPost, "/api/clients", gin.H{"name": "Bruno", "phone": "12"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_phone", decode[errBody](t, w).Code)

	w = e.httpDo(http.MethodPost, "/api/clients", gin.H{"name": "Bruno Lima", "phone": "(11) 98888-7777", "origin": "Referral"})
	require.Equal(t, http.StatusCreated, w.Code)
	client := decode[models.Client](t, w)
	require.Equal(t, "11988887777", client.Phone)

	w = e.httpDo(http.MethodPost, "/api/appointments/with-payment", gin.H{
		"client_id":        client.ID,
		"service_name":     "Consultoria",
		"appointment_date": "2099-05-10",
		"appointment_time": "14:30",
		"value":            "150.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		AppointmentID string `json:"appointment_id"`
		PaymentID     string `json:"payment_id"`
	}](t, w)

	w = e.httpDo(http.MethodGet, "/api/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	payments := decode[listBody[models.Payment]](t, w)
	require.Equal(t, 1, payments.Total)
	require.Equal(t, models.PaymentPending, payments.Data[0].Status)

	w = e.httpDo(http.MethodPatch, "/api/payments/"+created.PaymentID+"/pay", gin.H{"payment_method": "Bitcoin"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_payment_method", decode[errBody](t, w).Code)

	w = e.httpDo(http.MethodPatch, "/api/payments/"+created.PaymentID+"/pay", gin.H{"payment_method": "PIX"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.httpDo(http.MethodPatch, "/api/payments/"+created.PaymentID+"/pay", gin.H{"payment_method": "PIX"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "already_paid", decode[errBody](t, w).Code)

	w = e.httpDo(http.MethodGet, "/api/clients/"+client.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Client](t, w)
	require.Equal(t, 1, got.TotalAppointments)
	require.True(t, got.TotalSpent.Equal(decimal.NewFromInt(150)), got.TotalSpent.String())

	w = e.httpDo(http.MethodPatch, "/api/appointments/"+created.AppointmentID+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.httpDo(http.MethodPatch, "/api/appointments/"+created.AppointmentID+"/cancel", gin.H{"reason": "late"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "invalid_state", decode[errBody](t, w).Code)

	w = e.httpDo(http.MethodGet, "/api/appointments/search?status=Completed&client_id="+client.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, decode[listBody[map[string]any]](t, w).Total)

	w = e.httpDo(http.MethodGet, "/api/clients/"+client.ID.String()+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotZero(t, decode[listBody[models.ClientHistory]](t, w).Total)

	w = e.httpDo(http.MethodDelete, "/api/clients/"+client.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = e.httpDo(http.MethodGet, "/api/payments", nil)
	require.Zero(t, decode[listBody[models.Payment]](t, w).Total)
}

func TestNotFoundAndBadIDs(t *testing.T) {
	e := setup(t)

	w := e.httpDo(http.MethodGet, "/api/clients/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_id", decode[errBody](t, w).Code)

	w = e.httpDo(http.MethodGet, "/api/clients/6f1c2d9e-5b7a-4c3e-9d2f-1a2b3c4d5e6f", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "client_not_found", decode[errBody](t, w).Code)

	w = e.httpDo(http.MethodPatch, "/api/payments/6f1c2d9e-5b7a-4c3e-9d2f-1a2b3c4d5e6f/pay", gin.H{"payment_method": "PIX"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportAndArchive(t *testing.T) {
	e := setup(t)

	w := e.httpDo(http.MethodPost, "/api/clients", gin.H{"name": `Ana "Aninha" Souza`, "phone": "11977776666"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.httpDo(http.MethodGet, "/api/export/clients?archive=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "clients_")

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "name,phone,email,status,registration_date,last_contact,total_appointments,total_spent", lines[0])
	require.True(t, strings.HasPrefix(lines[1], `"Ana ""Aninha"" Souza","11977776666"`))

	archive := w.Header().Get("X-Archive-URL")
	require.True(t, strings.HasPrefix(archive, "/files/exports/clients/"))

	w = e.httpDo(http.MethodGet, archive, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, lines[0], strings.SplitN(w.Body.String(), "\n", 2)[0])

	w = e.httpDo(http.MethodGet, "/api/export/invoices", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_export_entity", decode[errBody](t, w).Code)
}

func TestDashboardAndReports(t *testing.T) {
	e := setup(t)

	w := e.httpDo(http.MethodPost, "/api/clients", gin.H{"name": "Caio", "phone": "11955554444", "origin": "WhatsApp"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.httpDo(http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[map[string]any](t, w)
	require.EqualValues(t, 1, stats["total_clients"])
	require.EqualValues(t, 1, stats["active_clients"])

	w = e.httpDo(http.MethodGet, "/api/dashboard/monthly-revenue?months=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 3, decode[listBody[map[string]any]](t, w).Total)

	w = e.httpDo(http.MethodGet, "/api/dashboard/performance?month=13", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_month", decode[errBody](t, w).Code)

	w = e.httpDo(http.MethodGet, "/api/reports/distributions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"name":"WhatsApp","count":1`)
}

func TestServicesCatalog(t *testing.T) {
	e := setup(t)

	w := e.httpDo(http.MethodPost, "/api/services", gin.H{"name": "Avaliação", "default_price": "80.00", "duration_minutes": 30})
	require.Equal(t, http.StatusCreated, w.Code)
	svc := decode[models.Service](t, w)

	w = e.httpDo(http.MethodPatch, "/api/services/"+svc.ID.String(), gin.H{"active": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = e.httpDo(http.MethodGet, "/api/services", nil)
	require.Zero(t, decode[listBody[models.Service]](t, w).Total)

	w = e.httpDo(http.MethodGet, "/api/services?all=true", nil)
	require.Equal(t, 1, decode[listBody[models.Service]](t, w).Total)
}
