package proc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePasswd(t *testing.T) {
	passwd := `root:x:0:0:root:/root:/bin/bash
# comment line
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
alice:x:1000:1000:Alice:/home/alice:/bin/zsh
broken line without colons
shortline:x
dup:x:1000:1000::/home/dup:/bin/sh
`
	users := ParsePasswd(strings.NewReader(passwd))

	assert.Equal(t, "root", users[0])
	assert.Equal(t, "daemon", users[1])
	assert.Equal(t, "alice", users[1000]) // first entry wins over dup
	assert.Len(t, users, 3)

	_, ok := users[9999]
	assert.False(t, ok)
}

func TestParsePasswdEmpty(t *testing.T) {
	users := ParsePasswd(strings.NewReader(""))
	assert.Empty(t, users)
}
