package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"knarchief/internal/config"
	"knarchief/internal/loader"
	"knarchief/internal/store"
	"knarchief/internal/testsupport"
	"knarchief/internal/workbook"
)

func writeArchiveWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archief.xlsx")
	testsupport.WriteWorkbook(t, path,
		testsupport.SheetData{
			Name:    workbook.SheetMembers,
			Columns: []string{"id_lid", "Voornaam", "Achternaam", "Geboortedatum", "Startjaar", "gdpr_permission"},
			Rows: [][]any{
				{"M1", "Jan", "van der Berg", "1980-05-01", 2001, 1},
				{"M2", "Piet", "Jansen", nil, 1995, 1},
				{"M3", "Kees", nil, nil, nil, 0},
			},
		},
		testsupport.SheetData{
			Name:    workbook.SheetPerformances,
			Columns: []string{"uitvoering", "titel", "auteur", "jaar", "type", "datum_van", "datum_tot", "folder"},
			Rows: [][]any{
				{"P1", "Hamlet", "Shakespeare", 2020, "Uitvoering", "2020-03-01", "2020-03-03", "hamlet"},
				{"P2", "Faust", nil, 2021, "Uitvoering", nil, nil, "faust"},
			},
		},
		testsupport.SheetData{
			Name:    workbook.SheetRoles,
			Columns: []string{"ref_uitvoering", "id_lid", "rol", "rol_bijnaam"},
			Rows: [][]any{
				{"P1", "M1", "Regie", nil},
				{"P1", "M2", "Hamlet", "de prins"},
				{"P2", "M1", "Faust", nil},
				{"P2", "M2", "Regie", nil},
				{"P2", "M3", "Regie", nil},
			},
		},
		testsupport.SheetData{
			Name:    workbook.SheetFiles,
			Columns: []string{"ref_uitvoering", "bestand", "type_media", "lid_1", "lid_2"},
			Rows: [][]any{
				{"P1", "poster1.JPG", "poster", nil, nil},
				{"P1", "scene1.jpg", "foto", "M2", "M1"},
				{"P1", "scene2.jpg", "foto", "M2", nil},
			},
		},
		testsupport.SheetData{
			Name:    workbook.SheetMediaTypes,
			Columns: []string{"type_media", "omschrijving"},
			Rows: [][]any{
				{"foto", "Foto"},
				{"poster", "Poster"},
				{"pdf", "Programmaboekje"},
			},
		},
	)
	return path
}

func runLoad(t *testing.T) (*config.Config, *store.Store, *loader.Report) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	path := writeArchiveWorkbook(t)

	report, err := loader.New(cfg, st, testsupport.SilentLogger(t)).Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return cfg, st, report
}

func TestRunLoadsAllTables(t *testing.T) {
	_, _, report := runLoad(t)

	want := map[string]int{
		"lid":        3,
		"uitvoering": 2,
		"media_type": 3,
		"file":       3,
		"file_leden": 3,
		"rol":        5,
	}
	for table, expected := range want {
		if report.Tables[table] != expected {
			t.Fatalf("table %s: expected %d rows, got %d", table, expected, report.Tables[table])
		}
	}
	if report.RunID == "" {
		t.Fatal("expected a run id")
	}
}

func TestRunComputesSortKeys(t *testing.T) {
	_, st, _ := runLoad(t)
	ctx := context.Background()

	cases := map[string]string{
		"M1": "Berg, van der",
		"M2": "Jansen",
		"M3": "zzzzzzzz",
	}
	for id, want := range cases {
		var got string
		row := st.DB().QueryRowContext(ctx, `SELECT achternaam_sort FROM lid WHERE id_lid = ?`, id)
		if err := row.Scan(&got); err != nil {
			t.Fatalf("scan %s: %v", id, err)
		}
		if got != want {
			t.Fatalf("sort key for %s: expected %q, got %q", id, want, got)
		}
	}
}

func TestRunPicksDirectorPerPerformance(t *testing.T) {
	_, st, _ := runLoad(t)
	ctx := context.Background()

	cases := map[string]string{
		"P1": "M1",
		// Two directors on P2; the higher member id wins.
		"P2": "M3",
	}
	for ref, want := range cases {
		var got string
		row := st.DB().QueryRowContext(ctx, `SELECT regie FROM uitvoering WHERE ref_uitvoering = ?`, ref)
		if err := row.Scan(&got); err != nil {
			t.Fatalf("scan %s: %v", ref, err)
		}
		if got != want {
			t.Fatalf("director for %s: expected %q, got %q", ref, want, got)
		}
	}
}

func TestRunDerivesMediaCounts(t *testing.T) {
	_, st, _ := runLoad(t)
	ctx := context.Background()

	var qty int64
	row := st.DB().QueryRowContext(ctx, `SELECT qty_media FROM uitvoering WHERE ref_uitvoering = ?`, "P1")
	if err := row.Scan(&qty); err != nil {
		t.Fatalf("scan qty_media: %v", err)
	}
	if qty != 3 {
		t.Fatalf("expected 3 media on P1, got %d", qty)
	}

	roleCases := []struct {
		ref, member string
		want        int64
	}{
		{"P1", "M1", 1},
		{"P1", "M2", 2},
		{"P2", "M1", 0},
	}
	for _, tc := range roleCases {
		var got int64
		row := st.DB().QueryRowContext(ctx,
			`SELECT qty_media FROM rol WHERE ref_uitvoering = ? AND id_lid = ?`, tc.ref, tc.member)
		if err := row.Scan(&got); err != nil {
			t.Fatalf("scan role %s/%s: %v", tc.ref, tc.member, err)
		}
		if got != tc.want {
			t.Fatalf("role media for %s/%s: expected %d, got %d", tc.ref, tc.member, tc.want, got)
		}
	}
}

func TestRunUnpivotsFileMembers(t *testing.T) {
	_, st, _ := runLoad(t)
	ctx := context.Background()

	rows, err := st.DB().QueryContext(ctx,
		`SELECT vlnr, lid FROM file_leden WHERE bestand = ? ORDER BY vlnr`, "scene1.jpg")
	if err != nil {
		t.Fatalf("query file_leden: %v", err)
	}
	defer rows.Close()

	var got [][2]string
	for rows.Next() {
		var marker, member string
		if err := rows.Scan(&marker, &member); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, [2]string{marker, member})
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}

	want := [][2]string{{"lid_1", "M2"}, {"lid_2", "M1"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d links, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("link %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRunRecordsFolderAndExtension(t *testing.T) {
	_, st, _ := runLoad(t)
	ctx := context.Background()

	var folder, ext string
	row := st.DB().QueryRowContext(ctx,
		`SELECT folder, file_ext FROM file WHERE bestand = ?`, "poster1.JPG")
	if err := row.Scan(&folder, &ext); err != nil {
		t.Fatalf("scan file: %v", err)
	}
	if folder != "hamlet" {
		t.Fatalf("expected folder hamlet, got %q", folder)
	}
	if ext != "jpg" {
		t.Fatalf("expected lowercased extension jpg, got %q", ext)
	}
}

func TestRunGeneratesThumbnails(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithThumbnailSize(40))
	st := testsupport.MustOpenStore(t, cfg)
	path := writeArchiveWorkbook(t)
	testsupport.WritePNG(t, filepath.Join(cfg.Paths.ResourcesDir, "hamlet", "scene1.png"), 120, 120)

	report, err := loader.New(cfg, st, testsupport.SilentLogger(t)).Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Thumbnails != 1 {
		t.Fatalf("expected 1 thumbnail, got %d", report.Thumbnails)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.ResourcesDir, "hamlet", "thumbnails", "scene1.png")); err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}
}

func TestRunIsRepeatable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	path := writeArchiveWorkbook(t)
	l := loader.New(cfg, st, testsupport.SilentLogger(t))

	if _, err := l.Run(context.Background(), path); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	report, err := l.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report.Tables["lid"] != 3 {
		t.Fatalf("second run should land on identical counts, got %d members", report.Tables["lid"])
	}
}

func TestRunFailsOnMissingWorkbook(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if _, err := loader.New(cfg, st, testsupport.SilentLogger(t)).Run(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}
