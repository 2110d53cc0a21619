package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"knarchief/internal/testsupport"
	"knarchief/internal/workbook"
)

type cliTestEnv struct {
	baseDir      string
	configPath   string
	resourcesDir string
	workbookPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	resourcesDir := filepath.Join(base, "resources")
	configPath := filepath.Join(homeDir, ".config", "knarchief", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, base)

	env := &cliTestEnv{
		baseDir:      base,
		configPath:   configPath,
		resourcesDir: resourcesDir,
		workbookPath: filepath.Join(base, "archief.xlsx"),
	}
	writeTestWorkbook(t, env.workbookPath)
	return env
}

func writeTestConfig(t *testing.T, path, base string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
database = %q
resources_dir = %q
log_dir = %q

[thumbnails]
workers = 2
`,
		filepath.Join(base, "archive.db"),
		filepath.Join(base, "resources"),
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeTestWorkbook(t *testing.T, path string) {
	t.Helper()
	testsupport.WriteWorkbook(t, path,
		testsupport.SheetData{
			Name:    workbook.SheetMembers,
			Columns: []string{"id_lid", "Voornaam", "Achternaam", "Startjaar", "gdpr_permission"},
			Rows: [][]any{
				{"M1", "Jan", "van der Berg", 2001, 1},
				{"M2", "Piet", "Jansen", 2020, 1},
			},
		},
		testsupport.SheetData{
			Name:    workbook.SheetPerformances,
			Columns: []string{"uitvoering", "titel", "jaar", "type", "folder"},
			Rows:    [][]any{{"P1", "Hamlet", 2020, "Uitvoering", "hamlet"}},
		},
		testsupport.SheetData{
			Name:    workbook.SheetRoles,
			Columns: []string{"ref_uitvoering", "id_lid", "rol"},
			Rows:    [][]any{{"P1", "M1", "Regie"}, {"P1", "M2", "Hamlet"}},
		},
		testsupport.SheetData{
			Name:    workbook.SheetFiles,
			Columns: []string{"ref_uitvoering", "bestand", "type_media", "lid_1"},
			Rows:    [][]any{{"P1", "poster1.jpg", "poster", nil}},
		},
		testsupport.SheetData{
			Name:    workbook.SheetMediaTypes,
			Columns: []string{"type_media", "omschrijving"},
			Rows:    [][]any{{"poster", "Poster"}},
		},
	)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}
