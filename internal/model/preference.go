package model

// ViewModeKey is the preference key for the document center layout.
const ViewModeKey = "documentCenterViewMode"

// ViewMode is the document center layout.
type ViewMode string

const (
	ViewTable ViewMode = "table"
	ViewSplit ViewMode = "split"
)

func (m ViewMode) Valid() bool { return m == ViewTable || m == ViewSplit }
