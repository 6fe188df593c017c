package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact_HomeDirectory(t *testing.T) {
	r := &Redactor{home: "/home/alice"}
	got := r.Redact("writing host config /home/alice/.config/Claude/claude_desktop_config.json: permission denied")
	assert.Equal(t, "writing host config [path]: permission denied", got)
}

func TestRedact_PosixPathWithoutHomeMatch(t *testing.T) {
	r := &Redactor{}
	got := r.Redact("open /etc/claude/config.json: no such file or directory")
	assert.Equal(t, "open [path]: no such file or directory", got)
}

func TestRedact_WindowsPath(t *testing.T) {
	r := &Redactor{}
	got := r.Redact(`open C:\Users\alice\AppData\Roaming\Claude\claude_desktop_config.json failed`)
	assert.Equal(t, "open [path] failed", got)
}

func TestRedact_Secrets(t *testing.T) {
	r := &Redactor{secrets: []string{"sk-ant-secret123"}}
	got := r.Redact("request failed: token sk-ant-secret123 rejected")
	assert.Equal(t, "request failed: token [REDACTED] rejected", got)
}

func TestRedact_PlainTextUntouched(t *testing.T) {
	r := &Redactor{home: "/home/alice"}
	msg := "merge complete: 2 servers configured"
	assert.Equal(t, msg, r.Redact(msg))
}
