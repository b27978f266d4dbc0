package kiosk

import "strings"

// ClassroomLabel maps a classroom id to its display label.
// Ids missing from the table are shown verbatim; an empty id yields "".
func ClassroomLabel(id string, table map[string]string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if label, ok := table[id]; ok && label != "" {
		return label
	}
	return id
}
