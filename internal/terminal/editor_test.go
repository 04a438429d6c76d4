package terminal

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedAll(t *testing.T, e *editor, input string) (bool, error) {
	t.Helper()
	for i := 0; i < len(input); i++ {
		done, err := e.feed(input[i])
		if done || err != nil {
			return done, err
		}
	}
	return false, nil
}

func TestEditor_EchoAndEnter(t *testing.T) {
	var out bytes.Buffer
	e := &editor{out: &out, echo: true}

	done, err := feedAll(t, e, "r1-3\r")
	require.NoError(t, err)

	assert.True(t, done)
	assert.Equal(t, "r1-3", e.String())
	assert.Equal(t, "r1-3\r\n", out.String())
}

func TestEditor_Backspace(t *testing.T) {
	var out bytes.Buffer
	e := &editor{out: &out, echo: true}

	done, err := feedAll(t, e, "KX\x7fA\n")
	require.NoError(t, err)

	assert.True(t, done)
	assert.Equal(t, "KA", e.String())
	assert.Equal(t, "KX\b \bA\r\n", out.String())
}

func TestEditor_BackspaceOnEmpty(t *testing.T) {
	var out bytes.Buffer
	e := &editor{out: &out, echo: true}

	_, err := feedAll(t, e, "\b\b")
	require.NoError(t, err)

	assert.Empty(t, e.String())
	assert.Empty(t, out.String())
}

func TestEditor_BackspaceRemovesRune(t *testing.T) {
	e := &editor{out: io.Discard, echo: true}

	_, err := feedAll(t, e, "pé\x7f")
	require.NoError(t, err)

	assert.Equal(t, "p", e.String())
}

func TestEditor_NoEcho(t *testing.T) {
	var out bytes.Buffer
	e := &editor{out: &out, echo: false}

	done, err := feedAll(t, e, "s3cr3t\x7f\r")
	require.NoError(t, err)

	assert.True(t, done)
	assert.Equal(t, "s3cr3", e.String())
	assert.Equal(t, "\r\n", out.String())
}

func TestEditor_ControlKeys(t *testing.T) {
	e := &editor{out: io.Discard, echo: true}
	_, err := feedAll(t, e, "R\x03")
	assert.ErrorIs(t, err, ErrInterrupted)

	e = &editor{out: io.Discard, echo: true}
	_, err = feedAll(t, e, "\x04")
	assert.ErrorIs(t, err, io.EOF)

	// Ctrl-D mid-line and other control bytes are ignored
	e = &editor{out: io.Discard, echo: true}
	done, err := feedAll(t, e, "Q\x04\x1b\r")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "Q", e.String())
}
