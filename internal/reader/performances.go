package reader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"

	"knarchief/internal/pathcodec"
	"knarchief/internal/store"
	"knarchief/internal/thumbnails"
)

// PerformanceSummary is one row of the performance listing, with cast and a
// resolved thumbnail token.
type PerformanceSummary struct {
	store.Performance
	Cast           []CastEntry
	ThumbnailToken string
}

// CastEntry is one consenting member in a performance's cast, with every role
// they held there.
type CastEntry struct {
	MemberID   string
	FirstName  string
	LastName   *string
	SortKey    string
	MediaCount int64
	Roles      []RoleCredit
}

// MediaTypeGroup collects media of one display type.
type MediaTypeGroup struct {
	Type  string
	Files []Medium
}

const performanceColumns = `
	ref_uitvoering, titel, auteur, jaar, type, datum_van, datum_tot,
	folder, regie, qty_media`

// ListPerformances returns all staged productions (kind "Uitvoering"), newest
// first, each with its cast and poster thumbnail token.
func (r *Reader) ListPerformances(ctx context.Context) ([]PerformanceSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+performanceColumns+`
		FROM uitvoering
		WHERE type = 'Uitvoering'
		ORDER BY jaar DESC`)
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}
	defer rows.Close()

	var performances []PerformanceSummary
	for rows.Next() {
		performance, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		performances = append(performances, PerformanceSummary{Performance: performance})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range performances {
		ref := performances[i].Ref
		cast, err := r.PerformanceRoles(ctx, ref)
		if err != nil {
			return nil, err
		}
		thumbnail, err := r.PerformanceThumbnail(ctx, ref)
		if err != nil {
			return nil, err
		}
		performances[i].Cast = cast
		performances[i].ThumbnailToken = thumbnail
	}
	return performances, nil
}

// PerformanceInfo returns one performance, or ErrNotFound on an unknown ref.
func (r *Reader) PerformanceInfo(ctx context.Context, ref string) (*store.Performance, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT`+performanceColumns+`
		FROM uitvoering
		WHERE ref_uitvoering = ?`,
		ref)

	performance, err := scanPerformance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("performance %s: %w", ref, ErrNotFound)
		}
		return nil, err
	}
	return &performance, nil
}

// PerformanceRoles returns the cast of one performance, ordered by surname
// sort key, with each member's roles collapsed into one entry.
func (r *Reader) PerformanceRoles(ctx context.Context, ref string) ([]CastEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id_lid, r.rol, r.rol_bijnaam, r.qty_media,
		       l.voornaam, l.achternaam, l.achternaam_sort
		FROM rol r
		INNER JOIN lid l ON l.id_lid = r.id_lid
		WHERE l.gdpr_permission = 1 AND r.ref_uitvoering = ?
		ORDER BY l.achternaam_sort, r.id_lid`,
		ref)
	if err != nil {
		return nil, fmt.Errorf("roles for %s: %w", ref, err)
	}
	defer rows.Close()

	var cast []CastEntry
	for rows.Next() {
		var memberID, firstName, sortKey string
		var lastName, nickname sql.NullString
		var mediaCount int64
		var credit RoleCredit
		if err := rows.Scan(&memberID, &credit.Name, &nickname, &mediaCount, &firstName, &lastName, &sortKey); err != nil {
			return nil, err
		}
		credit.Nickname = strPtr(nickname)

		// Rows arrive sorted, so a member's roles are adjacent.
		if n := len(cast); n > 0 && cast[n-1].MemberID == memberID {
			cast[n-1].Roles = append(cast[n-1].Roles, credit)
			continue
		}
		cast = append(cast, CastEntry{
			MemberID:   memberID,
			FirstName:  firstName,
			LastName:   strPtr(lastName),
			SortKey:    sortKey,
			MediaCount: mediaCount,
			Roles:      []RoleCredit{credit},
		})
	}
	return cast, rows.Err()
}

// PerformanceMedia returns all media of one performance grouped by display
// type.
func (r *Reader) PerformanceMedia(ctx context.Context, ref string) ([]MediaTypeGroup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.ref_uitvoering, f.bestand, f.type_media, f.file_ext, u.folder
		FROM file f
		INNER JOIN uitvoering u ON u.ref_uitvoering = f.ref_uitvoering
		WHERE f.ref_uitvoering = ?
		ORDER BY f.bestand`,
		ref)
	if err != nil {
		return nil, fmt.Errorf("media for %s: %w", ref, err)
	}
	defer rows.Close()

	var media []Medium
	for rows.Next() {
		var m Medium
		var folder string
		if err := rows.Scan(&m.PerformanceRef, &m.Filename, &m.MediaType, &m.Ext, &folder); err != nil {
			return nil, err
		}
		media = append(media, r.enrichMedium(folder, m))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupMediaByType(media), nil
}

// MemberInPerformanceMedia returns the media one member is tagged on within
// one performance, grouped by display type.
func (r *Reader) MemberInPerformanceMedia(ctx context.Context, ref, memberID string) ([]MediaTypeGroup, error) {
	raw, err := r.memberMediaRows(ctx, memberID, ref)
	if err != nil {
		return nil, err
	}
	media := make([]Medium, 0, len(raw))
	for _, row := range raw {
		media = append(media, row.medium)
	}
	return groupMediaByType(media), nil
}

func groupMediaByType(media []Medium) []MediaTypeGroup {
	var groups []MediaTypeGroup
	for _, g := range groupRows(media, func(m Medium) string { return m.MediaType }) {
		groups = append(groups, MediaTypeGroup{Type: g.Key, Files: g.Rows})
	}
	return groups
}

// PerformanceThumbnail resolves the listing image for a performance: its
// poster if one exists, a ticket (kaartje) otherwise, a static placeholder
// when it has neither. The absence of both is the normal case for many
// archive entries, not an error.
//
// The returned token always points into the folder's thumbnails directory,
// so it resolves only after thumbnail generation has run for that folder.
func (r *Reader) PerformanceThumbnail(ctx context.Context, ref string) (string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.folder, f.type_media, MIN(f.bestand)
		FROM uitvoering u
		INNER JOIN file f ON f.ref_uitvoering = u.ref_uitvoering
		WHERE u.ref_uitvoering = ? AND f.type_media IN ('poster', 'kaartje')
		GROUP BY u.folder, f.type_media`,
		ref)
	if err != nil {
		return "", fmt.Errorf("thumbnail for %s: %w", ref, err)
	}
	defer rows.Close()

	var folder, poster, ticket string
	for rows.Next() {
		var mediaType, filename string
		if err := rows.Scan(&folder, &mediaType, &filename); err != nil {
			return "", err
		}
		switch mediaType {
		case "poster":
			poster = filename
		case "kaartje":
			ticket = filename
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	file := poster
	if file == "" {
		file = ticket
	}
	if file == "" {
		return pathcodec.Encode(r.cfg.Paths.StaticImagesDir, placeholderPoster), nil
	}
	dir := path.Join(r.cfg.Paths.ResourcesDir, folder, thumbnails.SubdirName)
	return pathcodec.Encode(dir, file), nil
}

func scanPerformance(row rowScanner) (store.Performance, error) {
	var p store.Performance
	var author, dateFrom, dateTo, director sql.NullString
	var year sql.NullInt64
	if err := row.Scan(
		&p.Ref, &p.Title, &author, &year, &p.Kind,
		&dateFrom, &dateTo, &p.Folder, &director, &p.MediaCount,
	); err != nil {
		return store.Performance{}, err
	}
	p.Author = strPtr(author)
	p.Year = intPtr(year)
	p.DateFrom = strPtr(dateFrom)
	p.DateTo = strPtr(dateTo)
	p.Director = strPtr(director)
	return p, nil
}
