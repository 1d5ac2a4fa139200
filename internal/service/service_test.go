package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/archive"
	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/api"
	"github.com/mmynk/tripsplit/pkg/api/apiconnect"
)

const testSecret = "test-secret"

var testRoster = models.NewRoster("Iwa", "Caca", "Ciko", "Chris")

// testServer bundles a running server with clients acting as one participant.
type testServer struct {
	URL         string
	store       storage.Store
	sessions    *auth.SessionManager
	session     apiconnect.SessionServiceClient
	expenses    apiconnect.ExpenseServiceClient
	inventory   apiconnect.InventoryServiceClient
	settlements apiconnect.SettlementServiceClient
}

func newSQLiteStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// setupTestServer starts a server over a fresh SQLite database with clients
// signed in as Iwa.
func setupTestServer(t *testing.T) *testServer {
	return setupTestServerWithStore(t, newSQLiteStore(t))
}

// setupTestServerWithStore starts a server over the given store.
func setupTestServerWithStore(t *testing.T, store storage.Store) *testServer {
	t.Helper()

	sessions := auth.NewSessionManager(testSecret, time.Hour)
	m := metrics.New()
	archiver := archive.New(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireSession(sessions, "/"+apiconnect.SessionServiceName+"/"),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSessionServiceHandler(NewSessionService(testRoster, sessions, logger), interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store, archiver), interceptors))
	mux.Handle(apiconnect.NewInventoryServiceHandler(NewInventoryService(store, m), interceptors))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store, archiver, testRoster, m), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	ts := &testServer{URL: server.URL, store: store, sessions: sessions}
	ts.session = apiconnect.NewSessionServiceClient(http.DefaultClient, server.URL)
	ts.signIn(t, "Iwa", nil)
	return ts
}

// signIn points the authenticated clients at a new session.
func (ts *testServer) signIn(t *testing.T, name string, extra []string) {
	t.Helper()
	token, err := ts.sessions.Issue(name, extra)
	if err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}
	ts.useToken(token)
}

func (ts *testServer) useToken(token string) {
	opt := connect.WithInterceptors(apiconnect.WithSessionToken(token))
	ts.expenses = apiconnect.NewExpenseServiceClient(http.DefaultClient, ts.URL, opt)
	ts.inventory = apiconnect.NewInventoryServiceClient(http.DefaultClient, ts.URL, opt)
	ts.settlements = apiconnect.NewSettlementServiceClient(http.DefaultClient, ts.URL, opt)
}

func amount(v int64) *int64 { return &v }

func str(s string) *string { return &s }

func (ts *testServer) addExpense(t *testing.T, title string, amt int64, payer string, category models.Category) api.Expense {
	t.Helper()
	resp, err := ts.expenses.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		Title:    title,
		Amount:   amount(amt),
		Payer:    payer,
		Category: string(category),
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %v, got %v (%v)", want, got, err)
	}
}

func TestListParticipants(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.session.ListParticipants(context.Background(), connect.NewRequest(&api.ListParticipantsRequest{}))
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(resp.Msg.Participants) != 4 || resp.Msg.Participants[0] != "Iwa" {
		t.Errorf("unexpected participants: %v", resp.Msg.Participants)
	}
}

func TestSelectParticipant(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	t.Run("roster name", func(t *testing.T) {
		resp, err := ts.session.SelectParticipant(ctx, connect.NewRequest(&api.SelectParticipantRequest{Name: " Caca "}))
		if err != nil {
			t.Fatalf("SelectParticipant failed: %v", err)
		}
		if resp.Msg.Participant != "Caca" || resp.Msg.Token == "" {
			t.Errorf("unexpected response: %+v", resp.Msg)
		}
		claims, err := ts.sessions.Validate(resp.Msg.Token)
		if err != nil || claims.Participant != "Caca" || len(claims.Extra) != 0 {
			t.Errorf("unexpected claims %+v (%v)", claims, err)
		}
	})

	t.Run("ad hoc name", func(t *testing.T) {
		resp, err := ts.session.SelectParticipant(ctx, connect.NewRequest(&api.SelectParticipantRequest{
			Name:  "Budi",
			Extra: []string{"Budi", "Iwa"},
		}))
		if err != nil {
			t.Fatalf("SelectParticipant failed: %v", err)
		}
		if len(resp.Msg.Participants) != 5 || resp.Msg.Participants[4] != "Budi" {
			t.Errorf("Participants = %v", resp.Msg.Participants)
		}
		claims, _ := ts.sessions.Validate(resp.Msg.Token)
		if len(claims.Extra) != 1 || claims.Extra[0] != "Budi" {
			t.Errorf("Extra = %v, want [Budi]", claims.Extra)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ts.session.SelectParticipant(ctx, connect.NewRequest(&api.SelectParticipantRequest{Name: "Stranger"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := ts.session.SelectParticipant(ctx, connect.NewRequest(&api.SelectParticipantRequest{Name: "  "}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestRequireSession(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	t.Run("no token", func(t *testing.T) {
		ts.useToken("")
		_, err := ts.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("forged token", func(t *testing.T) {
		forged, _ := auth.NewSessionManager("other-secret", time.Hour).Issue("Iwa", nil)
		ts.useToken(forged)
		_, err := ts.settlements.ListSettlements(ctx, connect.NewRequest(&api.ListSettlementsRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("streams are guarded too", func(t *testing.T) {
		ts.useToken("")
		stream, err := ts.inventory.WatchInventory(ctx, connect.NewRequest(&api.WatchInventoryRequest{}))
		if err == nil {
			defer stream.Close()
			if stream.Receive() {
				t.Fatal("expected no message without a session")
			}
			err = stream.Err()
		}
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("token from SelectParticipant works", func(t *testing.T) {
		resp, err := ts.session.SelectParticipant(ctx, connect.NewRequest(&api.SelectParticipantRequest{Name: "Chris"}))
		if err != nil {
			t.Fatalf("SelectParticipant failed: %v", err)
		}
		ts.useToken(resp.Msg.Token)

		added := ts.addExpense(t, "Parkir", 10000, "", models.CategoryTransport)
		if added.Payer != "Chris" {
			t.Errorf("Payer = %q, want the session participant", added.Payer)
		}
	})
}

// flakyStore fails deletes of selected expenses.
type flakyStore struct {
	storage.Store
	failDelete map[string]bool
}

func (s *flakyStore) DeleteExpense(ctx context.Context, id string) error {
	if s.failDelete[id] {
		return storage.Unavailable("delete expense", errors.New("connection reset"))
	}
	return s.Store.DeleteExpense(ctx, id)
}
