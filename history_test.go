package pagerouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHistory(t *testing.T) {

	assert := assert.New(t)

	var h MemoryHistory
	assert.Equal("/", h.Path())

	pops := 0
	cancel, err := h.OnPop(func() { pops++ })
	require.NoError(t, err)

	h.Push("/a")
	h.Push("/b")
	assert.Equal("/b", h.Path())
	assert.Equal(0, pops)

	assert.True(h.Back())
	assert.Equal("/a", h.Path())
	assert.Equal(1, pops)

	// pushing drops forward entries
	h.Push("/c")
	assert.Equal([]string{"/", "/a", "/c"}, h.Entries())
	assert.False(h.Forward())

	assert.True(h.Back())
	assert.True(h.Back())
	assert.False(h.Back())
	assert.Equal("/", h.Path())
	assert.Equal(3, pops)

	cancel()
	assert.True(h.Forward())
	assert.Equal(3, pops)

	h.Assign("/login")
	assert.Equal("/login", h.Path())
	assert.Equal([]string{"/login"}, h.Assigned())

}

func TestBrowserHistoryOutsideBrowser(t *testing.T) {

	// tests do not run in a js environment
	var h BrowserHistory
	assert.Equal(t, "/", h.Path())
	h.Push("/a")
	h.Assign("/b")

	_, err := h.OnPop(func() {})
	assert.ErrorIs(t, err, ErrNotBrowser)

}
