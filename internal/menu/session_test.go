package menu

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/observon/sheetsight/internal/analysis"
	"github.com/observon/sheetsight/internal/drive"
)

type fakeStorage struct {
	files       []drive.File
	exports     map[string][]byte
	listErr     error
	exportErr   error
	listCalls   int
	exportCalls int
}

func (f *fakeStorage) ListSpreadsheets(ctx context.Context, folderID string) ([]drive.File, error) {
	f.listCalls++
	return f.files, f.listErr
}

func (f *fakeStorage) ExportSpreadsheet(ctx context.Context, fileID string) ([]byte, error) {
	f.exportCalls++
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return f.exports[fileID], nil
}

type fakeAsker struct {
	answer string
	err    error
	calls  int
}

func (f *fakeAsker) Ask(ctx context.Context, promptContext, instruction string, mode analysis.Mode) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestSession(storage *fakeStorage, asker *fakeAsker) (*Session, *bytes.Buffer) {
	out := &bytes.Buffer{}
	s := &Session{Storage: storage, Analyst: asker, Out: out}
	return s, out
}

func TestListEmpty(t *testing.T) {
	s, out := newTestSession(&fakeStorage{}, &fakeAsker{})

	if _, err := s.Dispatch(context.Background(), "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No spreadsheets found") {
		t.Errorf("expected empty-listing message, got: %s", out.String())
	}
}

func TestListAndLoadByNumber(t *testing.T) {
	storage := &fakeStorage{
		files: []drive.File{{ID: "f1", Name: "Sales.xlsx", MimeType: drive.SpreadsheetMimeType}},
		exports: map[string][]byte{
			"f1": nil,
		},
	}
	storage.exports["f1"] = workbookBytes(t, [][]interface{}{
		{"Date", "Region", "Amount"},
		{"2024-01-01", "North", 100},
		{"2024-01-02", "South", 200},
	})

	s, out := newTestSession(storage, &fakeAsker{})
	ctx := context.Background()

	if _, err := s.Dispatch(ctx, "list"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Sales.xlsx") {
		t.Errorf("listing should show Sales.xlsx, got: %s", out.String())
	}

	if _, err := s.Dispatch(ctx, "load 1"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.table == nil {
		t.Fatal("expected a loaded table")
	}
	if s.table.RowCount() != 2 || s.table.ColumnCount() != 3 {
		t.Errorf("unexpected table shape: %d×%d", s.table.RowCount(), s.table.ColumnCount())
	}
}

func TestLoadByNumberWithoutListing(t *testing.T) {
	s, _ := newTestSession(&fakeStorage{}, &fakeAsker{})

	_, err := s.Dispatch(context.Background(), "load 1")
	if err == nil || !strings.Contains(err.Error(), "list") {
		t.Errorf("expected error pointing at 'list', got %v", err)
	}
}

func TestLoadFailureKeepsCurrentTable(t *testing.T) {
	storage := &fakeStorage{
		files:   []drive.File{{ID: "f1", Name: "Good"}, {ID: "f2", Name: "Bad"}},
		exports: map[string][]byte{},
	}
	storage.exports["f1"] = workbookBytes(t, [][]interface{}{{"A"}, {"1"}})

	s, _ := newTestSession(storage, &fakeAsker{})
	ctx := context.Background()

	if _, err := s.Dispatch(ctx, "list"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Dispatch(ctx, "load 1"); err != nil {
		t.Fatal(err)
	}
	previous := s.table

	storage.exportErr = errors.New("permission denied")
	if _, err := s.Dispatch(ctx, "load 2"); err == nil {
		t.Fatal("expected load failure")
	}
	if s.table != previous {
		t.Error("failed load must not replace the current table")
	}
}

func TestAskWithoutTableFailsBeforeNetwork(t *testing.T) {
	asker := &fakeAsker{}
	s, _ := newTestSession(&fakeStorage{}, asker)

	_, err := s.Dispatch(context.Background(), "ask what is the trend?")
	if !errors.Is(err, ErrNoTable) {
		t.Errorf("expected ErrNoTable, got %v", err)
	}
	if asker.calls != 0 {
		t.Error("no completion call may happen without a loaded table")
	}

	_, err = s.Dispatch(context.Background(), "insight")
	if !errors.Is(err, ErrNoTable) {
		t.Errorf("expected ErrNoTable for insight, got %v", err)
	}
	if asker.calls != 0 {
		t.Error("no completion call may happen without a loaded table")
	}
}

func TestAskAndInsight(t *testing.T) {
	storage := &fakeStorage{
		files:   []drive.File{{ID: "f1", Name: "Sales"}},
		exports: map[string][]byte{},
	}
	storage.exports["f1"] = workbookBytes(t, [][]interface{}{
		{"Region", "Amount"},
		{"North", 100},
	})
	asker := &fakeAsker{answer: "North leads."}

	s, out := newTestSession(storage, asker)
	ctx := context.Background()

	if _, err := s.Dispatch(ctx, "list"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Dispatch(ctx, "load 1"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Dispatch(ctx, "ask which region leads?"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if !strings.Contains(out.String(), "North leads.") {
		t.Errorf("answer missing from output: %s", out.String())
	}

	if _, err := s.Dispatch(ctx, "insight"); err != nil {
		t.Fatalf("insight failed: %v", err)
	}
	if asker.calls != 2 {
		t.Errorf("expected 2 completion calls, got %d", asker.calls)
	}
}

func TestAnalysisFailureKeepsTable(t *testing.T) {
	storage := &fakeStorage{
		files:   []drive.File{{ID: "f1", Name: "Sales"}},
		exports: map[string][]byte{},
	}
	storage.exports["f1"] = workbookBytes(t, [][]interface{}{{"A"}, {"1"}})
	asker := &fakeAsker{err: errors.New("completion timeout")}

	s, _ := newTestSession(storage, asker)
	ctx := context.Background()
	s.Dispatch(ctx, "list")
	s.Dispatch(ctx, "load 1")

	if _, err := s.Dispatch(ctx, "insight"); err == nil {
		t.Fatal("expected analysis error")
	}
	if s.table == nil {
		t.Error("analysis failure must not drop the loaded table")
	}
}

func TestExit(t *testing.T) {
	s, _ := newTestSession(&fakeStorage{}, &fakeAsker{})

	for _, line := range []string{"exit", "quit", "5"} {
		done, err := s.Dispatch(context.Background(), line)
		if err != nil {
			t.Errorf("%q: unexpected error %v", line, err)
		}
		if !done {
			t.Errorf("%q should end the session", line)
		}
	}
}

func TestUnknownChoice(t *testing.T) {
	s, _ := newTestSession(&fakeStorage{}, &fakeAsker{})

	done, err := s.Dispatch(context.Background(), "frobnicate")
	if err == nil {
		t.Error("expected error for unknown choice")
	}
	if done {
		t.Error("unknown choice must not end the session")
	}
}
