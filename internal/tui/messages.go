package tui

type InfoMsg string

// ErrorMsg reports an error to the user. The message and args are formatted
// and prefixed to the error.
type ErrorMsg struct {
	Error   error
	Message string
	Args    []any
}

func NewErrorMsg(err error, msg string, args ...any) ErrorMsg {
	return ErrorMsg{
		Error:   err,
		Message: msg,
		Args:    args,
	}
}

// OpenFileMsg is a request to open the file at the path in a new tab.
type OpenFileMsg struct {
	Path string
}

// OpenFolderMsg is a request to show the directory at the path in the
// explorer.
type OpenFolderMsg struct {
	Path string
}

// SaveAsMsg is a request to save the current document to the path.
type SaveAsMsg struct {
	Path string
}
