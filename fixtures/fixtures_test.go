package fixtures

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestKnownValues(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Digest(nil))
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Digest([]byte{}))
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", Digest([]byte("abc")))
}

func TestDigestIsDeterministic(t *testing.T) {
	data := []byte("some response body")
	assert.Equal(t, Digest(data), Digest(append([]byte(nil), data...)))
}

func TestDigestDistinguishesInputs(t *testing.T) {
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("a\n")))
}

func TestDigestFormat(t *testing.T) {
	assert.Regexp(t, `^[0-9a-f]{32}$`, Digest([]byte("anything")))
}

func TestBodyDigestIgnoresSecondArgument(t *testing.T) {
	body := []byte("abc")
	assert.Equal(t, Digest(body), BodyDigest(body, nil))
	assert.Equal(t, Digest(body), BodyDigest(body, "unrelated"))
}

func TestLoaderLoad(t *testing.T) {
	l := NewLoader("testdata")
	s, err := l.LoadString("hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello fixture\n", s)
}

func TestLoaderLoadIsRepeatable(t *testing.T) {
	l := NewLoader("testdata")
	first, err := l.Load("tiny.png")
	require.NoError(t, err)
	second, err := l.Load("tiny.png")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader("testdata").Load("no-such-file")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "no-such-file")
}

func TestLoaderMissingDirectory(t *testing.T) {
	_, err := NewLoader("testdata/missing").Load("hello.txt")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoaderDigest(t *testing.T) {
	l := NewLoader("testdata")
	d, err := l.Digest("hello.txt")
	require.NoError(t, err)

	data, err := os.ReadFile("testdata/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, Digest(data), d)

	_, err = l.Digest("no-such-file")
	assert.Error(t, err)
}
