package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/logging"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/model"
)

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

type failingKV struct{ loadErr, saveErr error }

func (f failingKV) Load(context.Context, string) ([]byte, bool, error) { return nil, false, f.loadErr }
func (f failingKV) Save(context.Context, string, []byte) error        { return f.saveErr }
func (f failingKV) Close() error                                      { return nil }

func sampleTenants() []model.Tenant {
	return []model.Tenant{
		{
			ID:         "t2",
			Name:       "Yab",
			Email:      "yab@example.com",
			Phone:      "555-0102",
			RentAmount: decimal.RequireFromString("1000.50"),
			StartDate:  "2024-01-15",
			PhotoURL:   "https://picsum.photos/200/200?random=11",
			PropertyID: "p1",
			LeaseEnd:   "2025-01-14",
			Notes:      "Prefers email.",
			Payments: model.Ledger{
				"2024-Jan":   true,
				"2024-Feb":   false,
				"legacy-key": true,
			},
			History: model.AuditTrail{
				{At: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), Action: "Marked Feb 2024 as Unpaid"},
				{At: time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC), Action: "Marked Jan 2024 as Paid"},
				{Legacy: "1/15/2024", Action: "Tenant profile created"},
			},
		},
		{ID: "t9", Name: "Empty", RentAmount: decimal.Zero, Payments: model.Ledger{}, History: model.AuditTrail{}},
	}
}

// assertSameTenant checks that got holds the same values as want. Times and
// decimals lose their in-memory representation through JSON (monotonic
// clock readings, coefficient/exponent form), so they are compared with
// Equal; everything else must match exactly.
func assertSameTenant(t *testing.T, want, got model.Tenant) {
	t.Helper()
	assert.True(t, want.RentAmount.Equal(got.RentAmount), "rent: want %s, got %s", want.RentAmount, got.RentAmount)
	require.Len(t, got.History, len(want.History))
	for i := range want.History {
		assert.True(t, want.History[i].At.Equal(got.History[i].At), "history[%d] time", i)
	}

	normalize := func(tn model.Tenant) model.Tenant {
		tn.RentAmount = decimal.Zero
		tn.History = append(model.AuditTrail(nil), tn.History...)
		for i := range tn.History {
			tn.History[i].At = time.Time{}
		}
		return tn
	}
	assert.Equal(t, normalize(want), normalize(got))
}

func TestGateway_TenantsRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemoryKV(), nil)
	want := sampleTenants()

	require.NoError(t, g.SaveTenants(ctx, want))
	got := g.LoadTenants(ctx, testNow)

	require.Len(t, got, len(want))
	for i := range want {
		assertSameTenant(t, want[i], got[i])
	}

	// Encoding again yields identical bytes.
	a, err := json.Marshal(want)
	require.NoError(t, err)
	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestGateway_RoundTripWithLocalTimes(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemoryKV(), nil)
	want := sampleTenants()
	// time.Now carries a monotonic reading and a local zone.
	want[0].History = want[0].History.Prepend(model.AuditEntry{At: time.Now(), Action: "Marked Mar 2024 as Paid"})

	require.NoError(t, g.SaveTenants(ctx, want))
	got := g.LoadTenants(ctx, testNow)

	require.Len(t, got, len(want))
	assertSameTenant(t, want[0], got[0])
}

func TestGateway_PreservesMalformedKeys(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemoryKV(), nil)
	require.NoError(t, g.SaveTenants(ctx, sampleTenants()))

	got := g.LoadTenants(ctx, testNow)
	assert.True(t, got[0].Payments.IsPaid("legacy-key"))
}

func TestGateway_MissingFallsBackToSeed(t *testing.T) {
	g := NewGateway(NewMemoryKV(), nil)
	ctx := context.Background()

	tenants := g.LoadTenants(ctx, testNow)
	require.Len(t, tenants, 3)
	assert.True(t, tenants[1].Payments.IsPaid("2024-Jun"), "seed uses the current year")

	assert.Len(t, g.LoadProperties(ctx), 2)
	assert.False(t, g.LoadTheme(ctx))
}

func TestGateway_MalformedFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Save(ctx, NamespaceTenants, []byte("{not json")))
	require.NoError(t, kv.Save(ctx, NamespaceProperties, []byte("null")))
	require.NoError(t, kv.Save(ctx, NamespaceTheme, []byte(`"dark"`)))

	var buf bytes.Buffer
	g := NewGateway(kv, logging.New(&buf, slog.LevelDebug))

	assert.Len(t, g.LoadTenants(ctx, testNow), 3)
	assert.Len(t, g.LoadProperties(ctx), 2)
	assert.False(t, g.LoadTheme(ctx))
	assert.Contains(t, buf.String(), "malformed")
}

func TestGateway_LoadErrorFallsBackToSeed(t *testing.T) {
	g := NewGateway(failingKV{loadErr: errors.New("disk on fire")}, nil)
	assert.Len(t, g.LoadTenants(context.Background(), testNow), 3)
}

func TestGateway_EmptyRosterStaysEmpty(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemoryKV(), nil)
	require.NoError(t, g.SaveTenants(ctx, nil))

	got := g.LoadTenants(ctx, testNow)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGateway_Theme(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemoryKV(), nil)

	require.NoError(t, g.SaveTheme(ctx, true))
	assert.True(t, g.LoadTheme(ctx))
	require.NoError(t, g.SaveTheme(ctx, false))
	assert.False(t, g.LoadTheme(ctx))
}

func TestGateway_SaveError(t *testing.T) {
	g := NewGateway(failingKV{saveErr: errors.New("quota exceeded")}, nil)
	err := g.SaveTenants(context.Background(), sampleTenants())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGateway_LoadsLegacyStorageFormat(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	raw := `[{"id":"abc123xyz","name":"Yab","rentAmount":1000,"startDate":"2024-01-15",
		"payments":{"2024-Jan":true,"2024-Feb":false},
		"paymentHistory":[{"date":"1/20/2024 • 09:12 AM","action":"Marked Jan 2024 as Paid"}]}]`
	require.NoError(t, kv.Save(ctx, NamespaceTenants, []byte(raw)))

	got := NewGateway(kv, nil).LoadTenants(ctx, testNow)
	require.Len(t, got, 1)
	assert.True(t, got[0].RentAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, got[0].Payments.IsPaid("2024-Jan"))
	assert.Equal(t, "1/20/2024 • 09:12 AM", got[0].History[0].Display())
}
