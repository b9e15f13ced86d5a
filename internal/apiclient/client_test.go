package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/crm-manager/internal/config"
	"github.com/BruksfildServices01/crm-manager/internal/db/dbtest"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/routes"
	"github.com/BruksfildServices01/crm-manager/internal/storage"
)

func server(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	r := gin.New()
	routes.RegisterRoutes(r, db, &config.Config{JWTSecret: "k"}, routes.Infra{
		Broker: realtime.NewMemoryBroker(),
		Store:  storage.NewMemoryStore("/files"),
	})

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Name: "Ana", Email: "ana@crm.test", PasswordHash: string(hash)}).Error)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := New(srv.URL+"/", "")
	_, err = c.Login(context.Background(), "ana@crm.test", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, c.Token())
	return c
}

func TestErrorMessageFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error_code":"already_paid","message":"Pagamento já quitado."}`))
	}))
	defer srv.Close()

	err := New(srv.URL, "t").MarkAsPaid(context.Background(), uuid.New(), "PIX", "")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "already_paid", apiErr.Code)
	require.Equal(t, "Pagamento já quitado.", err.Error())

	require.Equal(t, "502 Bad Gateway", (&Error{Status: http.StatusBadGateway}).Error())
}

func TestReadEvents(t *testing.T) {
	body := ": hello\n\nevent:change\ndata:{\"table\":\"clients\"}\n\nevent: ping\ndata: now\n\ndata:a\ndata:b\n\n"

	var got []string
	require.NoError(t, readEvents(strings.NewReader(body), func(name, data string) {
		got = append(got, name+"="+data)
	}))
	require.Equal(t, []string{`change={"table":"clients"}`, "ping=now", "message=a\nb"}, got)
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := server(t)

	_, err := c.CreateClient(ctx, ClientInput{Name: "Sem telefone"})
	require.Error(t, err)

	created, err := c.CreateClient(ctx, ClientInput{Name: "Dora", Phone: "11933332222", Origin: models.OriginSocialMedia})
	require.NoError(t, err)

	list, err := c.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, created.ID, list[0].ID)

	found, err := c.SearchClients(ctx, ClientSearch{Term: "dor"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	apID, payID, err := c.CreateAppointmentWithPayment(ctx, AppointmentWithPaymentInput{
		AppointmentInput: AppointmentInput{
			ClientID:    created.ID,
			ServiceName: "Sessão",
			Date:        "2099-01-02",
			Time:        "10:00",
			Value:       decimalPtr("90"),
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, apID)

	require.NoError(t, c.MarkAsPaid(ctx, payID, models.MethodCash, ""))

	err = c.MarkAsPaid(ctx, payID, models.MethodCash, "")
	require.EqualError(t, err, "Pagamento já quitado.")

	exp, err := c.Export(ctx, "payments", false)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(exp.Filename, "payments_"))
	require.Contains(t, string(exp.Content), `"Dora","Sessão"`)
}

func TestSubscribeReceivesChanges(t *testing.T) {
	c := server(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := c.Subscribe(ctx, realtime.TableClients)
	require.NoError(t, err)

	created, err := c.CreateClient(context.Background(), ClientInput{Name: "Eva", Phone: "11922221111"})
	require.NoError(t, err)

	select {
	case ev := <-events:
		require.Equal(t, realtime.TableClients, ev.Table)
		require.Equal(t, realtime.Insert, ev.Type)
		require.Equal(t, created.ID, ev.RecordID)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}

	cancel()
	for range events {
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
