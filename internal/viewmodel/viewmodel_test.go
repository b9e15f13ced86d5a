package viewmodel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/crm-manager/internal/apiclient"
	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/usecase/dashboard"
)

// ======================================================
// FAKES
// ======================================================

type fakeClients struct {
	mu      sync.Mutex
	rows    []dto.ClientListDTO
	listErr error
	failOp  error
	lists   int
}

func (f *fakeClients) ListClients(context.Context) ([]dto.ClientListDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]dto.ClientListDTO(nil), f.rows...), nil
}

func (f *fakeClients) CreateClient(_ context.Context, in apiclient.ClientInput) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOp != nil {
		return nil, f.failOp
	}
	c := models.Client{Name: in.Name, Phone: in.Phone, Email: in.Email}
	c.ID = uuid.New()
	f.rows = append(f.rows, dto.ClientListDTO{Client: c})
	return &c, nil
}

func (f *fakeClients) UpdateClient(_ context.Context, id uuid.UUID, patch apiclient.ClientPatch) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOp != nil {
		return nil, f.failOp
	}
	for i := range f.rows {
		if f.rows[i].ID == id && patch.Name != nil {
			f.rows[i].Name = *patch.Name
			return &f.rows[i].Client, nil
		}
	}
	return nil, &apiclient.Error{Status: 404, Code: "client_not_found", Message: "Cliente não encontrado."}
}

func (f *fakeClients) DeleteClient(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOp != nil {
		return f.failOp
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return &apiclient.Error{Status: 404, Code: "client_not_found", Message: "Cliente não encontrado."}
}

func (f *fakeClients) SearchClients(context.Context, apiclient.ClientSearch) ([]dto.ClientListDTO, error) {
	return nil, f.failOp
}

func row(name, phone, email string) dto.ClientListDTO {
	c := models.Client{Name: name, Phone: phone, Email: email}
	c.ID = uuid.New()
	return dto.ClientListDTO{Client: c}
}

func names(rows []dto.ClientListDTO) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

// ======================================================
// COLLECTION
// ======================================================

func TestCreateAddsRecordAfterReload(t *testing.T) {
	ctx := context.Background()
	api := &fakeClients{}
	vm := NewClients(api)
	require.NoError(t, vm.Reload(ctx))
	require.Empty(t, vm.Items())

	require.True(t, vm.Create(ctx, apiclient.ClientInput{Name: "Ana", Phone: "11999990000"}))
	require.Empty(t, vm.Err())
	require.Equal(t, []string{"Ana"}, names(vm.Items()))
	require.Equal(t, 2, api.lists)
}

func TestFailedCallKeepsItemsAndSetsError(t *testing.T) {
	ctx := context.Background()
	api := &fakeClients{rows: []dto.ClientListDTO{row("Ana", "1", "")}}
	vm := NewClients(api)
	require.NoError(t, vm.Reload(ctx))

	api.failOp = &apiclient.Error{Status: 400, Code: "invalid_phone", Message: "Telefone inválido."}
	require.False(t, vm.Create(ctx, apiclient.ClientInput{Name: "Bia", Phone: "x"}))
	require.Equal(t, "Telefone inválido.", vm.Err())
	require.Equal(t, []string{"Ana"}, names(vm.Items()))
	require.Equal(t, 1, api.lists)

	api.failOp = nil
	api.listErr = errors.New("connection refused")
	require.Error(t, vm.Reload(ctx))
	require.Equal(t, "connection refused", vm.Err())
	require.Equal(t, []string{"Ana"}, names(vm.Items()))

	api.listErr = nil
	require.True(t, vm.Delete(ctx, vm.Items()[0].ID))
	require.Empty(t, vm.Err())
	require.Empty(t, vm.Items())
}

func TestLocalFilter(t *testing.T) {
	api := &fakeClients{rows: []dto.ClientListDTO{
		row("Ana Souza", "11999990001", "ana@mail.com"),
		row("Bruno Lima", "11999990002", "bruno@work.com"),
		row("Carla Dias", "21988880003", "carla@mail.com"),
		row("Davi Souza", "31977770004", ""),
		row("Eva Martins", "11966660005", "eva@work.com"),
	}}
	vm := NewClients(api)
	require.NoError(t, vm.Reload(context.Background()))

	require.Equal(t, []string{"Ana Souza", "Davi Souza"}, names(vm.Filter("SOUZA")))
	require.Equal(t, []string{"Bruno Lima", "Eva Martins"}, names(vm.Filter("work.com")))
	require.Equal(t, []string{"Carla Dias"}, names(vm.Filter("2198")))
	require.Len(t, vm.Filter("  "), 5)
	require.Empty(t, vm.Filter("zeca"))
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	c := newCollection("clients",
		func(context.Context) ([]string, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				<-release
				return []string{"old"}, nil
			}
			return []string{"new"}, nil
		},
		func(string) uuid.UUID { return uuid.Nil },
		func(s string) []string { return []string{s} },
	)

	done := make(chan struct{})
	go func() {
		_ = c.Reload(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, c.Reload(ctx))
	close(release)
	<-done

	require.Equal(t, []string{"new"}, c.Items())
}

func TestWatchReloadsOnOwnTable(t *testing.T) {
	api := &fakeClients{}
	vm := NewClients(api)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan realtime.Event)
	done := make(chan struct{})
	reloads := 0
	go func() {
		vm.Watch(ctx, events, func() { reloads++ })
		close(done)
	}()

	events <- realtime.NewEvent(realtime.TablePayments, realtime.Update, uuid.New())
	events <- realtime.NewEvent(realtime.TableClients, realtime.Insert, uuid.New())
	events <- realtime.NewEvent(realtime.TableClients, realtime.Delete, uuid.New())

	cancel()
	<-done

	require.Equal(t, 2, reloads)

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Equal(t, 2, api.lists)
}

// ======================================================
// PAYMENTS
// ======================================================

type fakePayments struct {
	rows       []models.Payment
	paidWith   []string
	overdueErr error
}

func (f *fakePayments) ListPayments(context.Context) ([]models.Payment, error) {
	return f.rows, nil
}
func (f *fakePayments) CreatePayment(context.Context, apiclient.PaymentInput) (*models.Payment, error) {
	return nil, errors.New("not used")
}
func (f *fakePayments) UpdatePayment(context.Context, uuid.UUID, apiclient.PaymentPatch) (*models.Payment, error) {
	return nil, errors.New("not used")
}
func (f *fakePayments) DeletePayment(context.Context, uuid.UUID) error { return nil }
func (f *fakePayments) MarkAsPaid(_ context.Context, _ uuid.UUID, method, date string) error {
	f.paidWith = append(f.paidWith, method+"@"+date)
	return nil
}
func (f *fakePayments) SearchPayments(context.Context, apiclient.PaymentSearch) ([]dto.PaymentListDTO, error) {
	return nil, nil
}
func (f *fakePayments) RecomputeOverdue(context.Context) (int, error) { return 0, f.overdueErr }

func payment(status, due string, value int64) models.Payment {
	p := models.Payment{Status: status, DueDate: due, Value: decimal.NewFromInt(value), ServiceName: "S"}
	p.ID = uuid.New()
	return p
}

func TestPaymentsDerivedViews(t *testing.T) {
	api := &fakePayments{rows: []models.Payment{
		payment(models.PaymentPaid, "2025-03-01", 100),
		payment(models.PaymentPending, "2025-03-09", 50),
		payment(models.PaymentPending, "2025-03-20", 30),
		payment(models.PaymentOverdue, "2025-02-01", 20),
	}}
	vm := NewPayments(api)
	vm.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, vm.Reload(context.Background()))

	require.Len(t, vm.Overdue(), 2)

	s := vm.Stats()
	require.Equal(t, 4, s.TotalPayments)
	require.Equal(t, "200", s.TotalRevenue.String())
	require.Equal(t, "80", s.TotalPending.String())
	require.Equal(t, 2, s.CountPending)

	require.True(t, vm.MarkAsPaid(context.Background(), api.rows[1].ID, models.MethodPIX, ""))
	require.Equal(t, []string{"PIX@2025-03-10"}, api.paidWith)
}

// ======================================================
// DASHBOARD
// ======================================================

type fakeDashboard struct {
	fail   error
	months []time.Month
}

func (f *fakeDashboard) Stats(context.Context) (*dashboard.Stats, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return &dashboard.Stats{TotalClients: 3}, nil
}
func (f *fakeDashboard) RecentClients(_ context.Context, limit int) ([]models.Client, error) {
	return make([]models.Client, limit), nil
}
func (f *fakeDashboard) MonthlyRevenue(_ context.Context, months int) ([]dashboard.MonthlyRevenue, error) {
	return make([]dashboard.MonthlyRevenue, months), nil
}
func (f *fakeDashboard) Performance(_ context.Context, _ int, month time.Month) ([]dashboard.Metric, error) {
	f.months = append(f.months, month)
	return []dashboard.Metric{{Metric: dashboard.MetricRevenue}}, nil
}

func TestDashboardRefreshKeepsLastSnapshotOnError(t *testing.T) {
	ctx := context.Background()
	api := &fakeDashboard{}
	d := NewDashboard(api)

	require.True(t, d.Refresh(ctx))
	data := d.Data()
	require.EqualValues(t, 3, data.Stats.TotalClients)
	require.Len(t, data.RecentClients, 5)
	require.Len(t, data.Revenue, 12)
	require.Equal(t, []time.Month{0}, api.months)

	api.fail = &apiclient.Error{Status: 500, Message: "Erro ao carregar indicadores."}
	require.False(t, d.Refresh(ctx))
	require.Equal(t, "Erro ao carregar indicadores.", d.Err())
	require.EqualValues(t, 3, d.Data().Stats.TotalClients)

	metrics, ok := d.MonthlyPerformance(ctx, 2025, time.February)
	require.True(t, ok)
	require.Len(t, metrics, 1)
}

func TestDashboardRunStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDashboard(&fakeDashboard{})

	refreshed := make(chan struct{}, 10)
	done := make(chan struct{})
	go func() {
		d.Run(ctx, 10*time.Millisecond, func(DashboardData, string) { refreshed <- struct{}{} })
		close(done)
	}()

	<-refreshed
	<-refreshed
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRunOverdueRepeatsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	vm := NewPayments(&fakePayments{overdueErr: &apiclient.Error{Status: 500, Message: "Erro ao atualizar pagamentos."}})

	runs := make(chan bool, 10)
	done := make(chan struct{})
	go func() {
		vm.RunOverdue(ctx, 10*time.Millisecond, func(ok bool) { runs <- ok })
		close(done)
	}()

	require.False(t, <-runs)
	require.False(t, <-runs)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunOverdue did not stop")
	}
	require.Equal(t, "Erro ao atualizar pagamentos.", vm.Err())
}

// gatedDashboard holds the first Stats call until release is closed.
type gatedDashboard struct {
	fakeDashboard
	mu      sync.Mutex
	calls   int
	release chan struct{}
}

func (g *gatedDashboard) Stats(context.Context) (*dashboard.Stats, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()

	if n == 1 {
		<-g.release
		return &dashboard.Stats{TotalClients: 1}, nil
	}
	return &dashboard.Stats{TotalClients: 2}, nil
}

func (g *gatedDashboard) Performance(context.Context, int, time.Month) ([]dashboard.Metric, error) {
	return nil, nil
}

func TestDashboardStaleRefreshIsDiscarded(t *testing.T) {
	ctx := context.Background()
	api := &gatedDashboard{release: make(chan struct{})}
	d := NewDashboard(api)

	done := make(chan bool)
	go func() { done <- d.Refresh(ctx) }()

	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.calls == 1
	}, time.Second, time.Millisecond)
	require.True(t, d.Loading())

	require.True(t, d.Refresh(ctx))
	close(api.release)
	require.True(t, <-done)

	require.EqualValues(t, 2, d.Data().Stats.TotalClients)
	require.False(t, d.Loading())
}
