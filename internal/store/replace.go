package store

import (
	"context"
	"fmt"
)

// replaceTable drops and recreates a table, then runs insert for every row
// index, all inside one transaction. Atomic per table; the loader sequences
// multiple calls without a surrounding transaction.
func (s *Store) replaceTable(ctx context.Context, name, schema string, count int, insert func(exec func(query string, args ...any) error, i int) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("drop %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	exec := func(query string, args ...any) error {
		_, execErr := tx.ExecContext(ctx, query, args...)
		return execErr
	}
	for i := 0; i < count; i++ {
		if err := insert(exec, i); err != nil {
			return fmt.Errorf("insert into %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", name, err)
	}
	return nil
}

// ReplaceMembers rewrites the lid table.
func (s *Store) ReplaceMembers(ctx context.Context, members []Member) error {
	return s.replaceTable(ctx, "lid", schemaLid, len(members), func(exec func(string, ...any) error, i int) error {
		m := members[i]
		return exec(
			`INSERT INTO lid (id_lid, voornaam, achternaam, geboortedatum, startjaar, gdpr_permission, achternaam_sort)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.ID,
			m.FirstName,
			nullableString(m.LastName),
			nullableString(m.BirthDate),
			nullableInt(m.StartYear),
			boolToInt(m.GDPRConsent),
			m.SortKey,
		)
	})
}

// ReplacePerformances rewrites the uitvoering table.
func (s *Store) ReplacePerformances(ctx context.Context, performances []Performance) error {
	return s.replaceTable(ctx, "uitvoering", schemaUitvoering, len(performances), func(exec func(string, ...any) error, i int) error {
		p := performances[i]
		return exec(
			`INSERT INTO uitvoering (ref_uitvoering, titel, auteur, jaar, type, datum_van, datum_tot, folder, regie, qty_media)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Ref,
			p.Title,
			nullableString(p.Author),
			nullableInt(p.Year),
			p.Kind,
			nullableString(p.DateFrom),
			nullableString(p.DateTo),
			p.Folder,
			nullableString(p.Director),
			p.MediaCount,
		)
	})
}

// ReplaceRoles rewrites the rol table.
func (s *Store) ReplaceRoles(ctx context.Context, roles []Role) error {
	return s.replaceTable(ctx, "rol", schemaRol, len(roles), func(exec func(string, ...any) error, i int) error {
		r := roles[i]
		return exec(
			`INSERT INTO rol (ref_uitvoering, id_lid, rol, rol_bijnaam, qty_media) VALUES (?, ?, ?, ?, ?)`,
			r.PerformanceRef,
			r.MemberID,
			r.Name,
			nullableString(r.Nickname),
			r.MediaCount,
		)
	})
}

// ReplaceFiles rewrites the file table.
func (s *Store) ReplaceFiles(ctx context.Context, files []File) error {
	return s.replaceTable(ctx, "file", schemaFile, len(files), func(exec func(string, ...any) error, i int) error {
		f := files[i]
		return exec(
			`INSERT INTO file (ref_uitvoering, bestand, type_media, file_ext, folder) VALUES (?, ?, ?, ?, ?)`,
			f.PerformanceRef,
			f.Filename,
			f.MediaType,
			f.Ext,
			f.Folder,
		)
	})
}

// ReplaceFileMembers rewrites the file_leden table.
func (s *Store) ReplaceFileMembers(ctx context.Context, links []FileMember) error {
	return s.replaceTable(ctx, "file_leden", schemaFileLeden, len(links), func(exec func(string, ...any) error, i int) error {
		l := links[i]
		return exec(
			`INSERT INTO file_leden (ref_uitvoering, bestand, type_media, file_ext, folder, vlnr, lid)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			l.PerformanceRef,
			l.Filename,
			l.MediaType,
			l.Ext,
			l.Folder,
			l.Marker,
			l.MemberID,
		)
	})
}

// ReplaceMediaTypes rewrites the media_type table.
func (s *Store) ReplaceMediaTypes(ctx context.Context, types []MediaType) error {
	return s.replaceTable(ctx, "media_type", schemaMediaType, len(types), func(exec func(string, ...any) error, i int) error {
		t := types[i]
		return exec(
			`INSERT INTO media_type (type_media, omschrijving) VALUES (?, ?)`,
			t.Code,
			t.Description,
		)
	})
}

// UpdatePerformanceMediaCount sets the derived qty_media column for one
// performance ref.
func (s *Store) UpdatePerformanceMediaCount(ctx context.Context, ref string, count int64) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE uitvoering SET qty_media = ? WHERE ref_uitvoering = ?`, count, ref); err != nil {
		return fmt.Errorf("update media count for %s: %w", ref, err)
	}
	return nil
}

// RoleMediaKey identifies a (performance, member) pair for media counting.
type RoleMediaKey struct {
	PerformanceRef string
	MemberID       string
}

// FileMemberCounts groups the file_leden table by (performance, member) and
// returns the row count per pair. The loader merges these onto roles.
func (s *Store) FileMemberCounts(ctx context.Context) (map[RoleMediaKey]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ref_uitvoering, lid, COUNT(1) FROM file_leden GROUP BY ref_uitvoering, lid`)
	if err != nil {
		return nil, fmt.Errorf("count file members: %w", err)
	}
	defer rows.Close()

	counts := make(map[RoleMediaKey]int64)
	for rows.Next() {
		var key RoleMediaKey
		var count int64
		if err := rows.Scan(&key.PerformanceRef, &key.MemberID, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

// TableCount returns the number of rows in a table.
func (s *Store) TableCount(ctx context.Context, table string) (int64, error) {
	var count int64
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM "`+table+`"`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}
