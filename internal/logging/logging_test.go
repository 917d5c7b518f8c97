package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelsAndStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters("probe", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("segments: %d", 4)
	l.Warnf("reload failed")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[probe] INFO: segments: 4")
	assert.Contains(t, errOut.String(), "[probe] WARN: reload failed")

	l.SetDebug(true)
	l.Debugf("shown")
	assert.Contains(t, out.String(), "DEBUG: shown")
}

func TestNoPrefix(t *testing.T) {
	var out bytes.Buffer
	l := NewWithWriters("", true, &out, &out)
	l.Errorf("boom")
	assert.Contains(t, out.String(), "ERROR: boom")
	assert.NotContains(t, out.String(), "[")
}

func TestOrNop(t *testing.T) {
	l := OrNop(nil)
	assert.False(t, l.DebugEnabled())
	l.Infof("discarded")

	d := New("x", true)
	assert.Same(t, d, OrNop(d))
}
