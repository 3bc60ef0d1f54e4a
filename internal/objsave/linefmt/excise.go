package linefmt

import (
	"bytes"
	"strings"
)

// Excise returns data with the block for roomId removed. A block missing
// its sentinel ends at the next header.
func Excise(data []byte, roomId string) []byte {
	var out bytes.Buffer
	skipping := false
	for _, line := range bytes.SplitAfter(data, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		trimmed := strings.TrimRight(string(line), "\r\n")

		if strings.HasPrefix(trimmed, "#") {
			skipping = headerRoom(trimmed) == roomId
			if skipping {
				continue
			}
		}
		if skipping {
			if trimmed == "$" {
				skipping = false
			}
			continue
		}
		out.Write(line)
	}
	return out.Bytes()
}

func headerRoom(line string) string {
	fields := strings.Fields(strings.TrimPrefix(line, "#"))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
