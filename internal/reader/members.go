package reader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"knarchief/internal/fileutil"
	"knarchief/internal/pathcodec"
)

// MemberSummary is one row of the member listing.
type MemberSummary struct {
	ID         string
	FirstName  string
	LastName   string
	BirthDate  *string
	StartYear  *int64
	SortKey    string
	MediaCount int64
	PhotoToken string
	Roles      []MemberRole
}

// MemberRole links a member to one performance they took part in.
type MemberRole struct {
	PerformanceRef string
	Title          string
	Year           *int64
	Author         *string
	MediaCount     int64
}

// RoleCredit is one named role, with the optional character nickname.
type RoleCredit struct {
	Name     string
	Nickname *string
}

// RoleGroup collects a member's roles within one performance.
type RoleGroup struct {
	PerformanceRef string
	MemberID       string
	SortKey        string
	Roles          []RoleCredit
}

const memberColumns = `
	l.id_lid, l.voornaam, l.achternaam, l.geboortedatum, l.startjaar,
	l.achternaam_sort, COUNT(fl.bestand)`

// ListMembers returns all consenting members with a known surname, ordered by
// sort key, each with their media count, profile photo token, and the
// performances they appear in.
func (r *Reader) ListMembers(ctx context.Context) ([]MemberSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+memberColumns+`
		FROM lid l
		LEFT JOIN file_leden fl ON fl.lid = l.id_lid
		WHERE l.gdpr_permission = 1 AND l.achternaam IS NOT NULL
		GROUP BY l.id_lid, l.voornaam, l.achternaam, l.geboortedatum, l.startjaar, l.achternaam_sort
		ORDER BY l.achternaam_sort`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []MemberSummary
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		member.PhotoToken = r.memberPhotoToken(member.ID)
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roles, err := r.rolesByMember(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].Roles = roles[members[i].ID]
	}
	return members, nil
}

// MemberInfo returns one member's detail row, or ErrNotFound when the id is
// unknown, the member withheld consent, or no surname is recorded.
func (r *Reader) MemberInfo(ctx context.Context, id string) (*MemberSummary, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT`+memberColumns+`
		FROM lid l
		LEFT JOIN file_leden fl ON fl.lid = l.id_lid
		WHERE l.gdpr_permission = 1 AND l.achternaam IS NOT NULL AND l.id_lid = ?
		GROUP BY l.id_lid, l.voornaam, l.achternaam, l.geboortedatum, l.startjaar, l.achternaam_sort`,
		id)

	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("member %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	member.PhotoToken = r.memberPhotoToken(member.ID)
	return &member, nil
}

// MemberRoles returns the member's roles, one group per performance, each
// collecting the role names played there. A member can hold several roles in
// one performance.
func (r *Reader) MemberRoles(ctx context.Context, id string) ([]RoleGroup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.ref_uitvoering, r.id_lid, r.rol, r.rol_bijnaam, l.achternaam_sort
		FROM rol r
		INNER JOIN lid l ON l.id_lid = r.id_lid
		WHERE l.gdpr_permission = 1 AND r.id_lid = ?
		ORDER BY r.ref_uitvoering`,
		id)
	if err != nil {
		return nil, fmt.Errorf("member roles for %s: %w", id, err)
	}
	defer rows.Close()

	type roleRow struct {
		ref, memberID, sortKey string
		credit                 RoleCredit
	}
	var raw []roleRow
	for rows.Next() {
		var row roleRow
		var nickname sql.NullString
		if err := rows.Scan(&row.ref, &row.memberID, &row.credit.Name, &nickname, &row.sortKey); err != nil {
			return nil, err
		}
		row.credit.Nickname = strPtr(nickname)
		raw = append(raw, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var groups []RoleGroup
	for _, g := range groupRows(raw, func(row roleRow) string { return row.ref }) {
		roleGroup := RoleGroup{
			PerformanceRef: g.Key,
			MemberID:       g.Rows[0].memberID,
			SortKey:        g.Rows[0].sortKey,
		}
		for _, row := range g.Rows {
			roleGroup.Roles = append(roleGroup.Roles, row.credit)
		}
		groups = append(groups, roleGroup)
	}
	return groups, nil
}

// YearMedia is one year of a member's media, newest years first.
type YearMedia struct {
	Year         int64
	Performances []PerformanceMediaGroup
}

// PerformanceMediaGroup collects a member's media within one performance,
// together with the roles they played there. Roles is empty when the member
// appears on media without a listed role.
type PerformanceMediaGroup struct {
	PerformanceRef string
	Title          string
	Roles          []RoleCredit
	Media          []Medium
}

// MemberMedia returns all media a member is tagged on, grouped by year and
// performance, newest years first. Media on performances without a known year
// are omitted.
func (r *Reader) MemberMedia(ctx context.Context, id string) ([]YearMedia, error) {
	raw, err := r.memberMediaRows(ctx, id, "")
	if err != nil {
		return nil, err
	}

	roleGroups, err := r.MemberRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	rolesByRef := make(map[string][]RoleCredit, len(roleGroups))
	for _, g := range roleGroups {
		rolesByRef[g.PerformanceRef] = g.Roles
	}

	var years []YearMedia
	for _, yearGroup := range groupRows(raw, func(row memberMediaRow) int64 { return row.year }) {
		entry := YearMedia{Year: yearGroup.Key}
		for _, refGroup := range groupRows(yearGroup.Rows, func(row memberMediaRow) string { return row.ref }) {
			performance := PerformanceMediaGroup{
				PerformanceRef: refGroup.Key,
				Title:          refGroup.Rows[0].title,
				Roles:          rolesByRef[refGroup.Key],
			}
			for _, row := range refGroup.Rows {
				performance.Media = append(performance.Media, row.medium)
			}
			entry.Performances = append(entry.Performances, performance)
		}
		years = append(years, entry)
	}
	slices.Reverse(years)
	return years, nil
}

type memberMediaRow struct {
	ref    string
	title  string
	year   int64
	medium Medium
}

// memberMediaRows reads and enriches the tagged-media rows for one member,
// optionally scoped to a single performance ref.
func (r *Reader) memberMediaRows(ctx context.Context, id, ref string) ([]memberMediaRow, error) {
	query := `
		SELECT f.ref_uitvoering, f.bestand, f.type_media, f.file_ext, f.vlnr,
		       u.titel, u.jaar, u.folder
		FROM file_leden f
		INNER JOIN uitvoering u ON u.ref_uitvoering = f.ref_uitvoering
		WHERE f.lid = ?`
	args := []any{id}
	if ref != "" {
		query += ` AND f.ref_uitvoering = ?`
		args = append(args, ref)
	}
	query += ` ORDER BY f.ref_uitvoering, f.bestand`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("media for member %s: %w", id, err)
	}
	defer rows.Close()

	var result []memberMediaRow
	for rows.Next() {
		var row memberMediaRow
		var year sql.NullInt64
		var folder string
		if err := rows.Scan(
			&row.medium.PerformanceRef, &row.medium.Filename, &row.medium.MediaType,
			&row.medium.Ext, &row.medium.Marker,
			&row.title, &year, &folder,
		); err != nil {
			return nil, err
		}
		if !year.Valid {
			continue
		}
		row.ref = row.medium.PerformanceRef
		row.year = year.Int64
		row.medium = r.enrichMedium(folder, row.medium)
		result = append(result, row)
	}
	return result, rows.Err()
}

// memberPhotoToken resolves the profile photo for a member: the per-member
// portrait when one exists on disk, the generic placeholder otherwise.
func (r *Reader) memberPhotoToken(id string) string {
	file := id + ".png"
	if fileutil.Exists(filepath.Join(r.cfg.Paths.MembersPhotoDir, file)) {
		return pathcodec.Encode(r.cfg.Paths.MembersPhotoDir, file)
	}
	return pathcodec.Encode(r.cfg.Paths.StaticImagesDir, placeholderPhoto)
}

// rolesByMember maps member id to their performance appearances, for the
// member listing.
func (r *Reader) rolesByMember(ctx context.Context) (map[string][]MemberRole, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT u.ref_uitvoering, u.titel, u.jaar, u.auteur, r.id_lid, r.qty_media
		FROM rol r
		INNER JOIN uitvoering u ON u.ref_uitvoering = r.ref_uitvoering
		INNER JOIN lid l ON l.id_lid = r.id_lid
		WHERE l.gdpr_permission = 1
		ORDER BY u.jaar, u.titel`)
	if err != nil {
		return nil, fmt.Errorf("list member roles: %w", err)
	}
	defer rows.Close()

	roles := make(map[string][]MemberRole)
	for rows.Next() {
		var role MemberRole
		var year sql.NullInt64
		var author sql.NullString
		var memberID string
		if err := rows.Scan(&role.PerformanceRef, &role.Title, &year, &author, &memberID, &role.MediaCount); err != nil {
			return nil, err
		}
		role.Year = intPtr(year)
		role.Author = strPtr(author)
		roles[memberID] = append(roles[memberID], role)
	}
	return roles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (MemberSummary, error) {
	var member MemberSummary
	var birthDate sql.NullString
	var startYear sql.NullInt64
	if err := row.Scan(
		&member.ID, &member.FirstName, &member.LastName,
		&birthDate, &startYear, &member.SortKey, &member.MediaCount,
	); err != nil {
		return MemberSummary{}, err
	}
	member.BirthDate = strPtr(birthDate)
	member.StartYear = intPtr(startYear)
	return member, nil
}
