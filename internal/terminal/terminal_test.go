//go:build unix

package terminal

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPipeConsole(t *testing.T) (*Console, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return NewConsole(r, &bytes.Buffer{}), w
}

func TestConsole_NotInteractiveOnPipe(t *testing.T) {
	c, _ := newPipeConsole(t)

	assert.False(t, c.Interactive())
}

func TestConsole_SupportsTimeout(t *testing.T) {
	c, _ := newPipeConsole(t)

	assert.True(t, c.SupportsTimeout())
}

func TestConsole_Timeout(t *testing.T) {
	c, _ := newPipeConsole(t)

	start := time.Now()
	_, err := c.ReadLine(context.Background(), 50*time.Millisecond)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestConsole_ReadsLines(t *testing.T) {
	c, w := newPipeConsole(t)

	_, err := w.WriteString("R1-3\r\nq\n")
	require.NoError(t, err)

	line, err := c.ReadLine(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "R1-3", line)

	// Second line is already buffered
	line, err = c.ReadLine(context.Background(), time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "q", line)
}

func TestConsole_EOF(t *testing.T) {
	c, w := newPipeConsole(t)

	_, err := w.WriteString("partial")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	line, err := c.ReadLine(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "partial", line)

	_, err = c.ReadLine(context.Background(), time.Second)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsole_Cancelled(t *testing.T) {
	c, _ := newPipeConsole(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.ReadLine(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsole_SecretBuffered(t *testing.T) {
	c, w := newPipeConsole(t)

	_, err := w.WriteString("hunter2\n")
	require.NoError(t, err)

	secret, err := c.ReadSecret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hunter2", secret)
}

func TestClearScreen(t *testing.T) {
	var out bytes.Buffer
	ClearScreen(&out)

	assert.Equal(t, "\033[2J\033[H", out.String())
}
