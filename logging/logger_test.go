package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLoggerKeepsMessagesInOrder(t *testing.T) {
	var l CapturingLogger
	l.Printf("first %d", 1)
	l.Printf("second %s", "two")

	out := l.Output()
	require.Len(t, out, 2)
	assert.Equal(t, "first 1", out[0].Message)
	assert.Equal(t, "second two", out[1].Message)
}

func TestCapturedOutputDump(t *testing.T) {
	when := time.Date(2021, 3, 4, 5, 6, 7, 8000000, time.UTC)
	output := CapturedOutput{{Time: when, Message: "hello"}}

	var buf bytes.Buffer
	output.Dump(&buf, "  DEBUG ")
	assert.Equal(t, "  DEBUG [2021-03-04 05:06:07.008] hello\n", buf.String())
}

func TestWithPrefix(t *testing.T) {
	var l CapturingLogger
	WithPrefix(&l, "[stop] ").Printf("exit %d", 2)

	out := l.Output()
	require.Len(t, out, 1)
	assert.Equal(t, "[stop] exit 2", out[0].Message)
}

func TestWithPrefixOfNilIsNullLogger(t *testing.T) {
	assert.Equal(t, NullLogger(), WithPrefix(nil, "x"))
}
