package command

import "strings"

// Parse splits line on whitespace. The first field is the command name, the
// rest are its arguments. A blank line yields an empty name.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
