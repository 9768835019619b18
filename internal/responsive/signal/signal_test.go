package signal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingEnv struct {
	widths []int
	calls  int
	agent  string
}

func (c *countingEnv) ViewportWidth() int {
	w := c.widths[c.calls%len(c.widths)]
	c.calls++
	return w
}

func (c *countingEnv) UserAgent() string { return c.agent }

func TestReaderReadsFreshValues(t *testing.T) {
	env := &countingEnv{widths: []int{400, 300, 320}}
	r := NewReader(env)

	assert.Equal(t, 400, r.Read().WidthPx)
	assert.Equal(t, 300, r.Read().WidthPx)
	assert.Equal(t, 320, r.Read().WidthPx)
	assert.Equal(t, 3, env.calls)
}

func TestReaderClampsNegativeWidth(t *testing.T) {
	r := NewReader(StaticEnvironment{WidthPx: -10})
	assert.Equal(t, 0, r.Read().WidthPx)
}

func TestReaderNilEnvironment(t *testing.T) {
	assert.Equal(t, ViewportSignal{}, Reader{}.Read())
}

func TestIsTouchUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"", false},
		{"Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0", false},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", true},
		{"Mozilla/5.0 (Linux; android 14; Pixel 8)", true},
		{"Opera/9.80 (J2ME/MIDP; Opera Mini/9.80)", true},
		{"Mozilla/5.0 (iPad; CPU OS 16_0)", true},
		{"BlackBerry9700/5.0.0.351", true},
	}
	for _, tc := range tests {
		t.Run(tc.ua, func(t *testing.T) {
			assert.Equal(t, tc.want, IsTouchUserAgent(tc.ua))
		})
	}
}

func TestTerminalEnvironment(t *testing.T) {
	env := NewTerminalEnvironment(0, "iPhone")
	env.size = func(int) (int, int, error) { return 40, 20, nil }

	assert.Equal(t, 40*DefaultCellWidthPx, env.ViewportWidth())
	assert.True(t, NewReader(env).Read().IsTouchDevice)

	env.size = func(int) (int, int, error) { return 0, 0, errors.New("not a tty") }
	assert.Equal(t, 0, env.ViewportWidth())
}

func TestColumnsToPx(t *testing.T) {
	assert.Equal(t, 320, ColumnsToPx(40, 8))
	assert.Equal(t, 0, ColumnsToPx(-1, 8))
	assert.Equal(t, 80, ColumnsToPx(10, 0))
}
