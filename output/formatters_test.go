package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamtools/m3u8-common/m3u8"
)

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"json", "yaml", "yml", "summary", "text", "JSON"} {
		f, err := NewFormatter(format)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	result, err := m3u8.Parse(m3u8.TestMediaPlaylist)
	require.NoError(t, err)

	data, err := (&JSONFormatter{}).Format(result, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"uri":"segment0.ts"`)
	assert.Contains(t, string(data), `"is_endlist":true`)

	pretty, err := (&JSONFormatter{}).Format(result, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  ")
}

func TestYAMLFormatter(t *testing.T) {
	result, err := m3u8.Parse(m3u8.TestMediaPlaylist)
	require.NoError(t, err)

	data, err := (&YAMLFormatter{}).Format(result, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), "segment0.ts")
}

func TestSummaryFormatter(t *testing.T) {
	t.Run("media playlist", func(t *testing.T) {
		result, err := m3u8.Parse("#EXTM3U\n#EXT-X-PLAYLIST-TYPE:VOD\n#EXT-X-TARGETDURATION:10\n#EXTINF:9,\na.ts\n#EXTINF:9,\nb.ts\n#EXT-X-ENDLIST")
		require.NoError(t, err)

		data, err := (&SummaryFormatter{}).Format(result, false)
		require.NoError(t, err)

		out := string(data)
		assert.Contains(t, out, "Kind: Media")
		assert.Contains(t, out, "Type: Vod")
		assert.Contains(t, out, "Segments: 2")
		assert.Contains(t, out, "Total Duration: 18.0s")
		assert.Contains(t, out, "Ended: true")
	})

	t.Run("master playlist", func(t *testing.T) {
		result, err := m3u8.Parse(m3u8.TestMasterPlaylist)
		require.NoError(t, err)

		data, err := (&SummaryFormatter{}).Format(result, false)
		require.NoError(t, err)

		out := string(data)
		assert.Contains(t, out, "Kind: Master")
		assert.Contains(t, out, "Variant Streams: 2")
		assert.Contains(t, out, "480p.m3u8 (1280000 bps)")
		assert.Contains(t, out, "I-Frame Streams: 1")
	})
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ms", FormatDuration(500*time.Millisecond))
	assert.Equal(t, "9.0s", FormatDuration(9*time.Second))
	assert.Equal(t, "1.5m", FormatDuration(90*time.Second))
}
