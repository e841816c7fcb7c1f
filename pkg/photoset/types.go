package photoset

// CaptureDateLayout is the layout of Item.CaptureDate.
const CaptureDateLayout = "2006-01-02 15:04:05"

// Media kinds reported by ListSizes.
const (
	MediaPhoto = "photo"
	MediaVideo = "video"
)

// Size labels that identify the untouched upload.
const (
	LabelOriginal      = "Original"
	LabelVideoOriginal = "Video Original"
)

type Set struct {
	ID    string
	Title string
}

// Item is a single remote photo or video. CaptureDate is empty when the
// service does not know it.
type Item struct {
	ID          string
	Title       string
	CaptureDate string
	Description string
}

// Size is one downloadable variant of an item.
type Size struct {
	Media  string
	Label  string
	Source string
}

// Handle tracks the set being synced. ID stays empty until the set is found
// remotely or created by the first upload.
type Handle struct {
	ID   string
	Name string

	// Planned is set when a dry run has journalled the creation of the set.
	Planned bool
}

// Exists reports whether the set has a remote identity yet.
func (h *Handle) Exists() bool {
	return h.ID != ""
}
