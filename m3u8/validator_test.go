package m3u8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionValidator(t *testing.T) {
	validator := NewVersionValidator()

	t.Run("no declared version accepts everything", func(t *testing.T) {
		violations := validator.Validate(splitTrimmedLines("#EXTM3U\n#EXT-X-BYTERANGE:100@0"))

		assert.Empty(t, violations)
	})

	t.Run("byterange requires version 4", func(t *testing.T) {
		violations := validator.Validate(splitTrimmedLines("#EXTM3U\n#EXT-X-VERSION:3\n#EXT-X-BYTERANGE:100@0"))

		require.Len(t, violations, 1)
		assert.Equal(t, 3, violations[0].LineNumber)
		assert.Contains(t, violations[0].Reason, "EXT-X-BYTERANGE")
	})

	t.Run("key iv requires version 2", func(t *testing.T) {
		violations := validator.Validate(splitTrimmedLines("#EXT-X-VERSION:1\n#EXT-X-KEY:METHOD=AES-128,IV=0x9c7db8778570d05c3177c349fd9236aa"))

		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Reason, "IV")
	})

	t.Run("float extinf requires version 3", func(t *testing.T) {
		violations := validator.Validate(splitTrimmedLines("#EXT-X-VERSION:2\n#EXTINF:9.009,\nseg.ts"))

		require.Len(t, violations, 1)

		violations = validator.Validate(splitTrimmedLines("#EXT-X-VERSION:2\n#EXTINF:9,\nseg.ts"))
		assert.Empty(t, violations)
	})

	t.Run("i-frames-only requires version 4", func(t *testing.T) {
		violations := validator.Validate(splitTrimmedLines("#EXT-X-VERSION:3\n#EXT-X-I-FRAMES-ONLY"))

		require.Len(t, violations, 1)
	})

	t.Run("keyformat requires version 5", func(t *testing.T) {
		violations := validator.Validate(splitTrimmedLines("#EXT-X-VERSION:4\n#EXT-X-KEY:METHOD=SAMPLE-AES,KEYFORMAT=\"com.apple.streamingkeydelivery\""))

		require.Len(t, violations, 1)
	})

	t.Run("map floor depends on i-frames-only", func(t *testing.T) {
		violations := validator.Validate(splitTrimmedLines("#EXT-X-VERSION:5\n#EXT-X-MAP:URI=\"init.mp4\""))
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Reason, "version 6")

		violations = validator.Validate(splitTrimmedLines("#EXT-X-VERSION:5\n#EXT-X-I-FRAMES-ONLY\n#EXT-X-MAP:URI=\"init.mp4\""))
		assert.Empty(t, violations)
	})

	t.Run("multiple violations are all reported", func(t *testing.T) {
		violations := validator.Validate(splitTrimmedLines("#EXT-X-VERSION:1\n#EXT-X-BYTERANGE:100@0\n#EXTINF:9.5,\nseg.ts"))

		assert.Len(t, violations, 2)
	})
}

func TestSplitTrimmedLines(t *testing.T) {
	t.Run("keeps internal blanks", func(t *testing.T) {
		lines := splitTrimmedLines("  #EXTM3U\n\n#EXT-X-ENDLIST  ")

		assert.Equal(t, []string{"#EXTM3U", "", "#EXT-X-ENDLIST"}, lines)
	})

	t.Run("crlf", func(t *testing.T) {
		lines := splitTrimmedLines("#EXTM3U\r\n#EXT-X-ENDLIST")

		assert.Equal(t, []string{"#EXTM3U", "#EXT-X-ENDLIST"}, lines)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, splitTrimmedLines("   \n  "))
	})
}
