package proc

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadUsers reads the account directory once and returns a uid → name
// snapshot. A missing or unreadable /etc/passwd yields an empty map; the
// caller degrades unmapped uids to the unknown sentinel.
func LoadUsers() map[int]string {
	f, err := os.Open("/etc/passwd")
	if err != nil {
		return map[int]string{}
	}
	defer f.Close()
	return ParsePasswd(f)
}

// ParsePasswd decodes passwd(5) lines (name:x:uid:...). Malformed lines
// are skipped.
func ParsePasswd(r io.Reader) map[int]string {
	users := make(map[int]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		if _, seen := users[uid]; !seen {
			users[uid] = fields[0]
		}
	}
	return users
}
