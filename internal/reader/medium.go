package reader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"

	"knarchief/internal/pathcodec"
)

// MediumInfo is the detail view of one media file.
type MediumInfo struct {
	PerformanceRef string
	Filename       string
	MediaType      string
	Ext            string
	// Folder is the absolute media directory under the resources root.
	Folder     string
	MediaToken string
	Members    []TaggedMember
}

// TaggedMember is one member tagged on a media file, with the position marker
// used for photo captions (left to right).
type TaggedMember struct {
	Marker   string
	MemberID string
}

// MediumDetail resolves a path token to its file row and the ordered list of
// tagged members. Filenames are not unique across performances; when the same
// (folder, filename) pair occurs more than once the row with the lowest
// performance ref wins, so repeated calls agree. Returns ErrNotFound when no
// row matches, and the token's decode error when the token is malformed.
func (r *Reader) MediumDetail(ctx context.Context, token string) (*MediumInfo, error) {
	dir, file, err := pathcodec.Split(token)
	if err != nil {
		return nil, err
	}
	folder := strings.TrimPrefix(dir, path.Clean(r.cfg.Paths.ResourcesDir)+"/")
	r.logger.Debug("resolving medium", "folder", folder, "file", file)

	var info MediumInfo
	row := r.db.QueryRowContext(ctx, `
		SELECT f.ref_uitvoering, f.bestand, f.type_media, f.file_ext, f.folder
		FROM file f
		INNER JOIN uitvoering u ON u.ref_uitvoering = f.ref_uitvoering
		WHERE u.folder = ? AND f.bestand = ?
		ORDER BY f.ref_uitvoering
		LIMIT 1`,
		folder, file)
	if err := row.Scan(&info.PerformanceRef, &info.Filename, &info.MediaType, &info.Ext, &info.Folder); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("medium %s/%s: %w", folder, file, ErrNotFound)
		}
		return nil, err
	}
	info.Folder = path.Join(r.cfg.Paths.ResourcesDir, info.Folder)
	info.MediaToken = pathcodec.Encode(info.Folder, info.Filename)

	members, err := r.taggedMembers(ctx, folder, file)
	if err != nil {
		return nil, err
	}
	info.Members = members
	return &info, nil
}

func (r *Reader) taggedMembers(ctx context.Context, folder, file string) ([]TaggedMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT fl.vlnr, fl.lid
		FROM file_leden fl
		INNER JOIN uitvoering u ON u.ref_uitvoering = fl.ref_uitvoering
		WHERE u.folder = ? AND fl.bestand = ?
		ORDER BY fl.vlnr`,
		folder, file)
	if err != nil {
		return nil, fmt.Errorf("tagged members of %s/%s: %w", folder, file, err)
	}
	defer rows.Close()

	var members []TaggedMember
	for rows.Next() {
		var member TaggedMember
		if err := rows.Scan(&member.Marker, &member.MemberID); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}
