package resource

type Kind int

const (
	Global Kind = iota
	Document
	Folder
	Log
)

func (k Kind) String() string {
	return [...]string{
		"global",
		"doc",
		"dir",
		"log",
	}[k]
}
