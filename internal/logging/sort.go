package logging

// BySerialDesc sorts log messages by their serial, newest first.
func BySerialDesc(i, j Message) int {
	if i.Serial < j.Serial {
		return 1
	}
	return -1
}
