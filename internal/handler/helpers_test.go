package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/msomdec/ocean-watch/internal/content"
	"github.com/msomdec/ocean-watch/internal/domain"
	"github.com/msomdec/ocean-watch/internal/handler"
	"github.com/msomdec/ocean-watch/internal/repository/sqlite"
	"github.com/msomdec/ocean-watch/internal/service"
	"github.com/msomdec/ocean-watch/internal/view"
)

const testSessionSecret = "test-session-secret-for-handler-tests"

type testApp struct {
	srv     *httptest.Server
	db      domain.Database
	members *service.MemberService
	metrics *handler.Metrics
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestApp wires the full handler stack, including middleware, on db.
func newTestApp(t *testing.T, db domain.Database) *testApp {
	t.Helper()

	catalog, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load: %v", err)
	}
	views, err := view.New(catalog)
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}

	members := service.NewMemberService(db)
	metrics := handler.NewMetrics()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, members, service.NewFlashSigner(testSessionSecret), catalog, views, db, metrics, false)

	srv := httptest.NewServer(handler.SecurityHeaders(handler.RequestLogger(metrics.Middleware(mux))))
	t.Cleanup(srv.Close)

	return &testApp{srv: srv, db: db, members: members, metrics: metrics}
}

// noRedirectClient returns a client that does not follow redirects.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}
