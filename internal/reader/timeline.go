package reader

import (
	"context"
	"database/sql"
	"fmt"

	"knarchief/internal/store"
)

// TimelineYear is one year of group history: the events held that year and
// the members who joined then.
type TimelineYear struct {
	Year       int64
	NewMembers []NewMember
	Kinds      []TimelineKind
}

// TimelineKind groups a year's events by kind (staged production, outing,
// anniversary, and so on).
type TimelineKind struct {
	Kind   string
	Events []store.Performance
}

// NewMember is a member listed on the timeline under their start year.
type NewMember struct {
	ID        string
	FirstName string
	LastName  *string
	SortKey   string
}

// Timeline returns all events grouped by year ascending, each year nested by
// event kind and annotated with that year's new members. Events without a
// known year are omitted.
func (r *Reader) Timeline(ctx context.Context) ([]TimelineYear, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+performanceColumns+`
		FROM uitvoering
		ORDER BY jaar, ref_uitvoering`)
	if err != nil {
		return nil, fmt.Errorf("timeline events: %w", err)
	}
	defer rows.Close()

	var events []store.Performance
	for rows.Next() {
		event, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		if event.Year == nil {
			continue
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	newMembers, err := r.membersByStartYear(ctx)
	if err != nil {
		return nil, err
	}

	var years []TimelineYear
	for _, yearGroup := range groupRows(events, func(e store.Performance) int64 { return *e.Year }) {
		entry := TimelineYear{
			Year:       yearGroup.Key,
			NewMembers: newMembers[yearGroup.Key],
		}
		for _, kindGroup := range groupRows(yearGroup.Rows, func(e store.Performance) string { return e.Kind }) {
			entry.Kinds = append(entry.Kinds, TimelineKind{Kind: kindGroup.Key, Events: kindGroup.Rows})
		}
		years = append(years, entry)
	}
	return years, nil
}

func (r *Reader) membersByStartYear(ctx context.Context) (map[int64][]NewMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id_lid, voornaam, achternaam, startjaar, achternaam_sort
		FROM lid
		WHERE gdpr_permission = 1 AND startjaar IS NOT NULL
		ORDER BY achternaam_sort`)
	if err != nil {
		return nil, fmt.Errorf("timeline members: %w", err)
	}
	defer rows.Close()

	members := make(map[int64][]NewMember)
	for rows.Next() {
		var member NewMember
		var lastName sql.NullString
		var startYear int64
		if err := rows.Scan(&member.ID, &member.FirstName, &lastName, &startYear, &member.SortKey); err != nil {
			return nil, err
		}
		member.LastName = strPtr(lastName)
		members[startYear] = append(members[startYear], member)
	}
	return members, rows.Err()
}
