package area

import "time"

// Translation is a localized caption set for an area.
type Translation struct {
	Locale      string
	Title       string
	Subtitle    string
	Description string
}

// AttachedFile is the reduced shape of a file linked to an area.
type AttachedFile struct {
	ID   string
	Name string
	Type string
}

// Area is a point of interest in a project's tree. ParentID is nil for
// roots; Weight orders siblings.
type Area struct {
	ID           string
	ProjectID    string
	ParentID     *string
	Weight       int
	Translations []Translation
	Files        []AttachedFile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateRequest creates one area with its translations and file links in a
// single transaction.
type CreateRequest struct {
	ProjectID    string
	ParentID     *string
	Weight       int
	Translations map[string]Translation
	FileIDs      []string
}

// UpdateRequest modifies an area. Nil fields are left untouched;
// Translations and FileIDs, when set, replace the stored sets wholesale.
type UpdateRequest struct {
	ProjectID    string
	AreaID       string
	ParentID     *string
	Weight       *int
	Translations map[string]Translation
	FileIDs      *[]string
}

// ListQuery filters and paginates the area listing. Limit -1 disables
// pagination.
type ListQuery struct {
	ProjectID string
	ParentID  *string
	Limit     int
	Page      int
}

// DropdownItem is the reduced shape used by picker widgets. Title comes
// from the project's first configured language.
type DropdownItem struct {
	ID    string
	Title string
}
