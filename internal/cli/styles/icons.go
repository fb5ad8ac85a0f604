package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconKeyboard  = "\uf11c" // keyboard
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info
	IconTrash   = "\uf1f8" // trash
	IconConfig  = "\ue615" // config
	IconSchema  = "\uf121" // code
	IconCursor  = "\uf054" // chevron-right
	IconPlay    = "\uf04b" // play
	IconPause   = "\uf04c" // pause
	IconClock   = "\uf017" // clock
)
