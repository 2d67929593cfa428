// Package menu provides the interactive sheetsight session: a small loop
// that lists, loads, and analyzes Drive spreadsheets.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/observon/sheetsight/internal/analysis"
	"github.com/observon/sheetsight/internal/config"
	"github.com/observon/sheetsight/internal/drive"
	"github.com/observon/sheetsight/internal/prompts"
	"github.com/observon/sheetsight/internal/xlsx"
)

// Storage lists and exports remote spreadsheets.
type Storage interface {
	ListSpreadsheets(ctx context.Context, folderID string) ([]drive.File, error)
	ExportSpreadsheet(ctx context.Context, fileID string) ([]byte, error)
}

// Asker submits prompt context to a completion provider.
type Asker interface {
	Ask(ctx context.Context, promptContext, instruction string, mode analysis.Mode) (string, error)
}

// ErrNoTable reports an analysis request made before any spreadsheet was
// loaded. It is raised before any network call.
var ErrNoTable = errors.New("no spreadsheet loaded — choose 'load' first")

// Session holds the state of one interactive run: the last listing and at
// most one loaded table, replaced wholesale on each successful load.
type Session struct {
	Storage  Storage
	Analyst  Asker
	FolderID string
	Out      io.Writer

	files     []drive.File
	table     *xlsx.Table
	tableName string
}

// NewSession creates an interactive session writing to stdout.
func NewSession(storage Storage, analyst Asker, folderID string) *Session {
	return &Session{
		Storage:  storage,
		Analyst:  analyst,
		FolderID: folderID,
		Out:      os.Stdout,
	}
}

// Run starts the menu loop. It blocks until 'exit' or Ctrl+D and returns nil
// on a normal quit.
func (s *Session) Run(ctx context.Context) error {
	histFile := filepath.Join(config.Dir(), "menu_history")
	os.MkdirAll(filepath.Dir(histFile), 0755)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sheetsight> ",
		HistoryFile:     histFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	s.printMenu()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		done, err := s.Dispatch(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		if done {
			return nil
		}
	}
}

// Dispatch executes one menu choice. It returns true when the session should
// end. Errors are reported to the caller and never end the session.
func (s *Session) Dispatch(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	choice := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch choice {
	case "1", "list":
		return false, s.list(ctx)
	case "2", "load":
		return false, s.load(ctx, fields[1:])
	case "3", "insight":
		return false, s.insight(ctx, rest)
	case "4", "ask":
		return false, s.ask(ctx, rest)
	case "5", "exit", "quit":
		fmt.Fprintln(s.Out, "Bye.")
		return true, nil
	case "help", "menu":
		s.printMenu()
		return false, nil
	case "status":
		s.printStatus()
		return false, nil
	default:
		return false, fmt.Errorf("unknown choice %q — type 'help' for the menu", choice)
	}
}

func (s *Session) list(ctx context.Context) error {
	files, err := s.Storage.ListSpreadsheets(ctx, s.FolderID)
	if err != nil {
		return err
	}
	s.files = files

	if len(files) == 0 {
		fmt.Fprintln(s.Out, "No spreadsheets found.")
		return nil
	}

	fmt.Fprintln(s.Out, "Available spreadsheets:")
	for i, f := range files {
		fmt.Fprintf(s.Out, "  %d. %s (ID: %s)\n", i+1, f.Name, f.ID)
	}
	return nil
}

// load exports and decodes one spreadsheet. The argument is a number from the
// last listing or a Drive file ID; an optional second argument selects a
// sheet by name. The current table is only replaced on success.
func (s *Session) load(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: load <number|file-id> [sheet]")
	}

	var file drive.File
	if n, err := strconv.Atoi(args[0]); err == nil {
		if len(s.files) == 0 {
			return fmt.Errorf("no listing yet — choose 'list' first")
		}
		if n < 1 || n > len(s.files) {
			return fmt.Errorf("selection %d out of range 1..%d", n, len(s.files))
		}
		file = s.files[n-1]
	} else {
		file = drive.File{ID: args[0], Name: args[0]}
	}

	sheet := ""
	if len(args) > 1 {
		sheet = args[1]
	}

	fmt.Fprintf(s.Out, "Exporting %s...\n", file.Name)
	data, err := s.Storage.ExportSpreadsheet(ctx, file.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "Downloaded %s.\n", drive.FormatSize(int64(len(data))))

	wb, err := xlsx.ReadBytes(data)
	if err != nil {
		return err
	}
	table, err := wb.Table(sheet)
	if err != nil {
		return err
	}

	s.table = table
	s.tableName = file.Name
	fmt.Fprintf(s.Out, "Loaded %q: %d rows × %d columns (sheet %s).\n",
		file.Name, table.RowCount(), table.ColumnCount(), table.SheetName)
	return nil
}

// insight runs the fixed auto-analysis. An optional argument names a prompt
// preset to steer it.
func (s *Session) insight(ctx context.Context, presetName string) error {
	if s.table == nil {
		return ErrNoTable
	}

	instruction := ""
	if presetName != "" {
		loaded, err := prompts.Load(prompts.DefaultPath())
		if err != nil {
			return err
		}
		p, err := prompts.Get(loaded, presetName)
		if err != nil {
			return err
		}
		instruction = p.Instruction
	}

	fmt.Fprintln(s.Out, "Analyzing...")
	answer, err := s.Analyst.Ask(ctx, analysis.Summarize(s.table), instruction, analysis.ModeAuto)
	if err != nil {
		return err
	}

	s.printAnswer(answer)
	return nil
}

func (s *Session) ask(ctx context.Context, question string) error {
	if s.table == nil {
		return ErrNoTable
	}
	if question == "" {
		return fmt.Errorf("usage: ask <question>")
	}

	fmt.Fprintln(s.Out, "Analyzing...")
	answer, err := s.Analyst.Ask(ctx, analysis.Summarize(s.table), question, analysis.ModeCustom)
	if err != nil {
		return err
	}

	s.printAnswer(answer)
	return nil
}

func (s *Session) printAnswer(answer string) {
	fmt.Fprintln(s.Out, strings.Repeat("=", 50))
	fmt.Fprintln(s.Out, answer)
	fmt.Fprintln(s.Out, strings.Repeat("=", 50))
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.Out, "sheetsight — spreadsheet analysis from your terminal")
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, "  1) list     — list spreadsheets in Google Drive")
	fmt.Fprintln(s.Out, "  2) load     — load a spreadsheet into memory")
	fmt.Fprintln(s.Out, "  3) insight  — AI analysis of the loaded spreadsheet")
	fmt.Fprintln(s.Out, "  4) ask      — ask a question about the loaded spreadsheet")
	fmt.Fprintln(s.Out, "  5) exit")
	fmt.Fprintln(s.Out)
}

func (s *Session) printStatus() {
	if s.table == nil {
		fmt.Fprintln(s.Out, "No spreadsheet loaded.")
		return
	}
	fmt.Fprintf(s.Out, "Loaded %q: %d rows × %d columns (sheet %s).\n",
		s.tableName, s.table.RowCount(), s.table.ColumnCount(), s.table.SheetName)
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("list"),
		readline.PcItem("load"),
		readline.PcItem("insight",
			readline.PcItem("insight"),
			readline.PcItem("trends"),
			readline.PcItem("quality"),
		),
		readline.PcItem("ask"),
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}
