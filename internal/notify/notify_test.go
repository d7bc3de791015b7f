package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderSlotLifecycle(t *testing.T) {
	r := NewRecorder()

	id := r.Loading("Preparing transaction...")
	r.Update(id, "Confirming transaction...")
	r.Success(id, "Transaction successful!", "https://example.com/tx/0xabc")

	require.Len(t, r.Events, 3)
	assert.Equal(t, KindSuccess, r.Active[id].Kind)
	assert.Equal(t, "https://example.com/tx/0xabc", r.Active[id].Link)
}

func TestRecorderDistinctSlots(t *testing.T) {
	r := NewRecorder()
	a := r.Loading("first")
	b := r.Loading("second")
	assert.NotEqual(t, a, b)
}

func TestRecorderDismissRemovesSlot(t *testing.T) {
	r := NewRecorder()
	id := r.Loading("working")
	r.Dismiss(id)

	_, ok := r.Active[id]
	assert.False(t, ok)
	// The loading event remains in history; nothing terminal was added.
	require.Len(t, r.Events, 1)
	assert.Equal(t, KindLoading, r.Last().Kind)
}

func TestConsoleWritesStyledLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf)

	id := c.Loading("Preparing transaction...")
	c.Success(id, "Transaction successful!", "https://example.com/tx/0xabc")

	out := buf.String()
	assert.Contains(t, out, "Preparing transaction...")
	assert.Contains(t, out, "Transaction successful!")
	assert.Contains(t, out, "https://example.com/tx/0xabc")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestConsoleDismissIsSilent(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf)
	id := c.Loading("working")
	before := buf.Len()
	c.Dismiss(id)
	assert.Equal(t, before, buf.Len())
}
