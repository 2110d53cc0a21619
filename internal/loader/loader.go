// Package loader ingests the archive workbook into the SQLite store and
// refreshes the thumbnail tree. A load rewrites every table from scratch;
// there is no incremental mode.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"knarchief/internal/config"
	"knarchief/internal/names"
	"knarchief/internal/store"
	"knarchief/internal/thumbnails"
	"knarchief/internal/workbook"
)

// ErrAlreadyRunning indicates another load holds the lock file.
var ErrAlreadyRunning = errors.New("another load is already running")

// directorRole is the role name that marks a member as director of a
// performance.
const directorRole = "Regie"

// Report summarizes one completed load.
type Report struct {
	RunID      string
	Tables     map[string]int
	Thumbnails int
}

// Loader orchestrates the workbook-to-store ingestion.
type Loader struct {
	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger
}

// New builds a loader over an open store.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) *Loader {
	return &Loader{cfg: cfg, store: st, logger: logger.With("component", "loader")}
}

// Run executes a full load from the workbook at path. Each table is replaced
// in its own transaction, in dependency order; a failure aborts the remaining
// steps but does not roll back tables already replaced. Callers that need a
// consistent store after a failed load rerun the load.
func (l *Loader) Run(ctx context.Context, path string) (*Report, error) {
	lock := flock.New(filepath.Join(l.cfg.Paths.LogDir, "load.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire load lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}
	defer func() {
		_ = lock.Unlock()
	}()

	report := &Report{
		RunID:  uuid.New().String(),
		Tables: make(map[string]int),
	}
	logger := l.logger.With("run_id", report.RunID)
	logger.Info("starting load", "workbook", path)

	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	steps := []struct {
		name string
		run  func(context.Context, *workbook.Workbook, *Report) error
	}{
		{"members", l.loadMembers},
		{"performances", l.loadPerformances},
		{"media types", l.loadMediaTypes},
		{"files", l.loadFiles},
		{"roles", l.loadRoles},
	}
	for _, step := range steps {
		if err := step.run(ctx, wb, report); err != nil {
			return nil, fmt.Errorf("load %s: %w", step.name, err)
		}
		logger.Info("step complete", "step", step.name)
	}

	created, err := thumbnails.Generate(ctx, l.cfg.Paths.ResourcesDir, thumbnails.Options{
		MaxSize: l.cfg.Thumbnails.MaxSize,
		Quality: l.cfg.Thumbnails.Quality,
		Workers: l.cfg.Thumbnails.Workers,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("generate thumbnails: %w", err)
	}
	report.Thumbnails = created

	logger.Info("load complete", "thumbnails", created)
	return report, nil
}

func (l *Loader) loadMembers(ctx context.Context, wb *workbook.Workbook, report *Report) error {
	sheet, err := wb.Sheet(workbook.SheetMembers)
	if err != nil {
		return err
	}

	members := make([]store.Member, 0, sheet.Len())
	for _, row := range sheet.Rows() {
		lastName := row.Ptr(workbook.ColLastName)
		members = append(members, store.Member{
			ID:          row.Value(workbook.ColMemberID),
			FirstName:   row.Value(workbook.ColFirstName),
			LastName:    lastName,
			BirthDate:   row.Ptr(workbook.ColBirthDate),
			StartYear:   parseYear(row.Value(workbook.ColStartYear)),
			GDPRConsent: parseConsent(row.Value(workbook.ColConsent)),
			SortKey:     names.SortKey(lastName),
		})
	}

	if err := l.store.ReplaceMembers(ctx, members); err != nil {
		return err
	}
	report.Tables["lid"] = len(members)
	return nil
}

func (l *Loader) loadPerformances(ctx context.Context, wb *workbook.Workbook, report *Report) error {
	sheet, err := wb.Sheet(workbook.SheetPerformances)
	if err != nil {
		return err
	}
	directors, err := directorByRef(wb)
	if err != nil {
		return err
	}

	performances := make([]store.Performance, 0, sheet.Len())
	for _, row := range sheet.Rows() {
		// The source sheet names its key column "uitvoering"; everywhere
		// else the same value travels as ref_uitvoering.
		ref := row.Value(workbook.ColPerformance)
		performances = append(performances, store.Performance{
			Ref:      ref,
			Title:    row.Value(workbook.ColTitle),
			Author:   row.Ptr(workbook.ColAuthor),
			Year:     parseYear(row.Value(workbook.ColYear)),
			Kind:     row.Value(workbook.ColKind),
			DateFrom: row.Ptr(workbook.ColDateFrom),
			DateTo:   row.Ptr(workbook.ColDateTo),
			Folder:   row.Value(workbook.ColFolder),
			Director: directors[ref],
		})
	}

	if err := l.store.ReplacePerformances(ctx, performances); err != nil {
		return err
	}
	report.Tables["uitvoering"] = len(performances)
	return nil
}

// directorByRef picks one director per performance from the roles sheet.
// When several members carry the director role, the highest member id wins,
// which keeps repeat loads deterministic.
func directorByRef(wb *workbook.Workbook) (map[string]*string, error) {
	sheet, err := wb.Sheet(workbook.SheetRoles)
	if err != nil {
		return nil, err
	}

	directors := make(map[string]*string)
	for _, row := range sheet.Rows() {
		if row.Value(workbook.ColRole) != directorRole {
			continue
		}
		ref := row.Value(workbook.ColRef)
		memberID := row.Value(workbook.ColMemberID)
		if current := directors[ref]; current == nil || memberID > *current {
			directors[ref] = &memberID
		}
	}
	return directors, nil
}

func (l *Loader) loadMediaTypes(ctx context.Context, wb *workbook.Workbook, report *Report) error {
	sheet, err := wb.Sheet(workbook.SheetMediaTypes)
	if err != nil {
		return err
	}

	types := make([]store.MediaType, 0, sheet.Len())
	for _, row := range sheet.Rows() {
		types = append(types, store.MediaType{
			Code:        row.Value(workbook.ColMediaType),
			Description: row.Value(workbook.ColMediaTypeDesc),
		})
	}

	if err := l.store.ReplaceMediaTypes(ctx, types); err != nil {
		return err
	}
	report.Tables["media_type"] = len(types)
	return nil
}

func (l *Loader) loadFiles(ctx context.Context, wb *workbook.Workbook, report *Report) error {
	sheet, err := wb.Sheet(workbook.SheetFiles)
	if err != nil {
		return err
	}
	folders, err := folderByRef(wb)
	if err != nil {
		return err
	}
	markers := markerColumns(sheet)

	files := make([]store.File, 0, sheet.Len())
	var links []store.FileMember
	for _, row := range sheet.Rows() {
		ref := row.Value(workbook.ColRef)
		file := store.File{
			PerformanceRef: ref,
			Filename:       row.Value(workbook.ColFilename),
			MediaType:      row.Value(workbook.ColMediaType),
			Ext:            fileExt(row.Value(workbook.ColFilename)),
			Folder:         folders[ref],
		}
		files = append(files, file)

		// Marker columns unpivot into one link row per tagged member. The
		// column name records left-to-right position on group photos.
		for _, marker := range markers {
			memberID := row.Value(marker)
			if memberID == "" {
				continue
			}
			links = append(links, store.FileMember{
				PerformanceRef: file.PerformanceRef,
				Filename:       file.Filename,
				MediaType:      file.MediaType,
				Ext:            file.Ext,
				Folder:         file.Folder,
				Marker:         marker,
				MemberID:       memberID,
			})
		}
	}

	if err := l.store.ReplaceFileMembers(ctx, links); err != nil {
		return err
	}
	if err := l.store.ReplaceFiles(ctx, files); err != nil {
		return err
	}
	report.Tables["file"] = len(files)
	report.Tables["file_leden"] = len(links)

	perRef := make(map[string]int64)
	for _, file := range files {
		perRef[file.PerformanceRef]++
	}
	for ref, count := range perRef {
		if err := l.store.UpdatePerformanceMediaCount(ctx, ref, count); err != nil {
			return err
		}
	}
	return nil
}

func folderByRef(wb *workbook.Workbook) (map[string]string, error) {
	sheet, err := wb.Sheet(workbook.SheetPerformances)
	if err != nil {
		return nil, err
	}
	folders := make(map[string]string, sheet.Len())
	for _, row := range sheet.Rows() {
		folders[row.Value(workbook.ColPerformance)] = row.Value(workbook.ColFolder)
	}
	return folders, nil
}

// markerColumns returns the member-tag columns of the files sheet: everything
// that is not one of the fixed file columns.
func markerColumns(sheet *workbook.Sheet) []string {
	var markers []string
	for _, column := range sheet.Columns {
		switch column {
		case "", workbook.ColRef, workbook.ColFilename, workbook.ColMediaType:
			continue
		}
		markers = append(markers, column)
	}
	return markers
}

func (l *Loader) loadRoles(ctx context.Context, wb *workbook.Workbook, report *Report) error {
	sheet, err := wb.Sheet(workbook.SheetRoles)
	if err != nil {
		return err
	}
	counts, err := l.store.FileMemberCounts(ctx)
	if err != nil {
		return err
	}

	roles := make([]store.Role, 0, sheet.Len())
	for _, row := range sheet.Rows() {
		ref := row.Value(workbook.ColRef)
		memberID := row.Value(workbook.ColMemberID)
		roles = append(roles, store.Role{
			PerformanceRef: ref,
			MemberID:       memberID,
			Name:           row.Value(workbook.ColRole),
			Nickname:       row.Ptr(workbook.ColRoleNickname),
			MediaCount:     counts[store.RoleMediaKey{PerformanceRef: ref, MemberID: memberID}],
		})
	}

	if err := l.store.ReplaceRoles(ctx, roles); err != nil {
		return err
	}
	report.Tables["rol"] = len(roles)
	return nil
}

func parseYear(value string) *int64 {
	if value == "" {
		return nil
	}
	// Excel sometimes hands back years as floats ("2001.0").
	if dot := strings.IndexByte(value, '.'); dot >= 0 {
		value = value[:dot]
	}
	year, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &year
}

func parseConsent(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "ja", "yes":
		return true
	}
	return false
}

func fileExt(filename string) string {
	if dot := strings.LastIndexByte(filename, '.'); dot >= 0 {
		return strings.ToLower(filename[dot+1:])
	}
	return ""
}
