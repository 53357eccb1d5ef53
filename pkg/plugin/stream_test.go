package plugin_test

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LordGrimmauld/rmenu/pkg/plugin"
)

func TestEncoder_OneMessagePerLine(t *testing.T) {
	var buf bytes.Buffer
	enc := plugin.NewEncoder(&buf)

	require.NoError(t, enc.Options(plugin.Options{Placeholder: plugin.String("search apps")}))
	require.NoError(t, enc.Entry(plugin.NewEntry("Firefox", "firefox", nil)))
	require.NoError(t, enc.Entry(plugin.EchoEntry("copy me", nil)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"type":"options"`)
	assert.Contains(t, lines[1], `"type":"entry"`)
	assert.Contains(t, lines[2], `"type":"entry"`)
}

func TestDecoder_Stream(t *testing.T) {
	stream := `{"type":"options","page_size":20}

{"type":"entry","name":"Firefox","actions":[{"name":"main","exec":{"run":"firefox"}}]}
{"type":"entry","name":"Htop","actions":[{"name":"main","exec":{"terminal":"htop"}}]}
`
	dec := plugin.NewDecoder(strings.NewReader(stream))

	first, err := dec.Decode()
	require.NoError(t, err)
	require.NotNil(t, first.Options)
	require.NotNil(t, first.Options.PageSize)
	assert.Equal(t, 20, *first.Options.PageSize)

	second, err := dec.Decode()
	require.NoError(t, err)
	require.NotNil(t, second.Entry)
	assert.Equal(t, "Firefox", second.Entry.Name)

	third, err := dec.Decode()
	require.NoError(t, err)
	require.NotNil(t, third.Entry)
	assert.Equal(t, "Htop", third.Entry.Name)

	_, err = dec.Decode()
	assert.Equal(t, io.EOF, err)
}

// The decoder must hand out messages while the producer is still
// writing, not buffer until the stream closes.
func TestDecoder_Incremental(t *testing.T) {
	pr, pw := io.Pipe()
	dec := plugin.NewDecoder(pr)
	next := make(chan struct{})

	go func() {
		enc := plugin.NewEncoder(pw)
		_ = enc.Entry(plugin.NewEntry("first", "true", nil))
		<-next
		_ = enc.Entry(plugin.NewEntry("second", "true", nil))
		pw.Close()
	}()

	m, err := dec.Decode()
	require.NoError(t, err)
	require.NotNil(t, m.Entry)
	assert.Equal(t, "first", m.Entry.Name)

	close(next)

	m, err = dec.Decode()
	require.NoError(t, err)
	require.NotNil(t, m.Entry)
	assert.Equal(t, "second", m.Entry.Name)

	_, err = dec.Decode()
	assert.Equal(t, io.EOF, err)
}

func TestDecoder_MalformedLine(t *testing.T) {
	stream := `{"type":"entry","name":"ok","actions":[]}
{"type":"entry",
`
	dec := plugin.NewDecoder(strings.NewReader(stream))

	_, err := dec.Decode()
	require.NoError(t, err)

	_, err = dec.Decode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestSelfExe(t *testing.T) {
	exe := plugin.SelfExe()
	assert.NotEmpty(t, exe)
	assert.True(t, filepath.IsAbs(exe))
}
