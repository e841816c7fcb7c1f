package planner

type Action string

const (
	ActionUpload    Action = "upload"
	ActionCreateSet Action = "create-set"
	ActionAddToSet  Action = "add-to-set"
	ActionDelete    Action = "delete"
	ActionDownload  Action = "download"
	ActionRename    Action = "rename"
	ActionReorder   Action = "reorder"
	ActionSkip      Action = "skip"
)

// Decision is a single step the engine chose to take.
type Decision struct {
	Action Action
	// Target identifies what the action applies to: a local path, an item
	// title or a set name.
	Target string
	ItemID string
	Detail string
}

// Source is the variant of a remote item picked for download.
type Source struct {
	URL string
	// Ext is the file extension for the downloaded file, without dot.
	Ext string
}
