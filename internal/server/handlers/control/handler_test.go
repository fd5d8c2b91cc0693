package control

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gitpulse/gitpulse/internal/history"
	"github.com/gitpulse/gitpulse/internal/orchestrator"
	"github.com/gitpulse/gitpulse/internal/repo"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zaptest"
)

type stubWorkTree struct{}

func (stubWorkTree) Path() string                                         { return "/srv/notes" }
func (stubWorkTree) CurrentBranch(_ context.Context) (string, error)      { return "main", nil }
func (stubWorkTree) HasChanges(_ context.Context) (bool, error)           { return false, nil }
func (stubWorkTree) ChangedFiles(_ context.Context) ([]string, error)     { return nil, nil }
func (stubWorkTree) StatusSummary(_ context.Context) (string, error)      { return "", nil }
func (stubWorkTree) StageAll(_ context.Context) error                     { return nil }
func (stubWorkTree) Pull(_ context.Context, _, _ string) error            { return nil }
func (stubWorkTree) Commit(_ context.Context, _ string, _ repo.Author) (string, error) {
	return "", repo.ErrNothingToCommit
}

type stubPusher struct{}

func (stubPusher) Push(_ context.Context) bool { return true }

func newTestApp(t *testing.T) (*fiber.App, *orchestrator.Service, *history.Repository) {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	records := history.NewRepository(db)
	orchestratorSvc := orchestrator.NewService(
		orchestrator.Config{Interval: time.Hour, Remote: "origin", Branch: "main"},
		stubWorkTree{}, stubPusher{}, records, nil,
		zaptest.NewLogger(t),
	)

	app := fiber.New()
	NewHandler(orchestratorSvc, records, zaptest.NewLogger(t)).Register(app.Group("/api/v1"))

	return app, orchestratorSvc, records
}

func getStatus(t *testing.T, app *fiber.App) StatusResponse {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/status", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}

	return status
}

func TestHandler_Status(t *testing.T) {
	app, _, records := newTestApp(t)

	status := getStatus(t, app)
	if status.Paused {
		t.Fatal("expected unpaused status")
	}
	if status.RepositoryPath != "/srv/notes" || status.Branch != "main" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.LastCommit != nil {
		t.Fatal("expected no last commit on empty history")
	}

	_, err := records.Append(context.Background(), &history.CommitRecordDraft{
		Hash:         "0123456789abcdef",
		Message:      "feat: add widget",
		Timestamp:    time.Now(),
		FilesChanged: 2,
		Success:      true,
	})
	if err != nil {
		t.Fatal(err)
	}

	status = getStatus(t, app)
	if status.LastCommit == nil {
		t.Fatal("expected a last commit")
	}
	if status.LastCommit.Hash != "0123456" {
		t.Fatalf("expected short hash, got %q", status.LastCommit.Hash)
	}
	if status.LastCommit.Message != "feat: add widget" || status.LastCommit.FilesChanged != 2 {
		t.Fatalf("unexpected last commit: %+v", status.LastCommit)
	}
}

func TestHandler_PauseResume(t *testing.T) {
	app, orchestratorSvc, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/control/pause", nil))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on pause, got %d", resp.StatusCode)
	}
	if !orchestratorSvc.Paused() {
		t.Fatal("expected orchestrator to be paused")
	}

	if status := getStatus(t, app); !status.Paused {
		t.Fatal("expected paused status")
	}

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/control/resume", nil))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on resume, got %d", resp.StatusCode)
	}
	if orchestratorSvc.Paused() {
		t.Fatal("expected orchestrator to be resumed")
	}
}

func TestHandler_Trigger(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/control/trigger", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("expected 202 on trigger, got %d", resp.StatusCode)
	}

	var action ActionResponse
	if err := json.NewDecoder(resp.Body).Decode(&action); err != nil {
		t.Fatal(err)
	}
	if action.Status != "triggered" {
		t.Fatalf("unexpected action status %q", action.Status)
	}
}
