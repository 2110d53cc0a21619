package store

// Member is a row of the lid table. Optional columns are pointers so a
// missing surname can be told apart from an empty one.
type Member struct {
	ID          string
	FirstName   string
	LastName    *string
	BirthDate   *string
	StartYear   *int64
	GDPRConsent bool
	SortKey     string
}

// Performance is a row of the uitvoering table. Director and MediaCount are
// derived by the loader, not present in the source sheet.
type Performance struct {
	Ref        string
	Title      string
	Author     *string
	Year       *int64
	Kind       string
	DateFrom   *string
	DateTo     *string
	Folder     string
	Director   *string
	MediaCount int64
}

// Role is a row of the rol table. The composite natural key is
// (PerformanceRef, MemberID, Name, Nickname); duplicates are not rejected.
type Role struct {
	PerformanceRef string
	MemberID       string
	Name           string
	Nickname       *string
	MediaCount     int64
}

// File is a row of the file table: performance-level media with the
// performance folder denormalized onto it.
type File struct {
	PerformanceRef string
	Filename       string
	MediaType      string
	Ext            string
	Folder         string
}

// FileMember is a row of the file_leden table, produced by unpivoting the
// per-member marker columns of the files sheet. Marker keeps the original
// column tag, which orders tagged members left to right in captions.
type FileMember struct {
	PerformanceRef string
	Filename       string
	MediaType      string
	Ext            string
	Folder         string
	Marker         string
	MemberID       string
}

// MediaType is a row of the media_type lookup table.
type MediaType struct {
	Code        string
	Description string
}
