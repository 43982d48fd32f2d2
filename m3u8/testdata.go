package m3u8

// Sample playlist documents shared across the package's test files.
var (
	TestMediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:9.009,
segment0.ts
#EXTINF:9.009,
segment1.ts
#EXTINF:9.009,
segment2.ts
#EXT-X-ENDLIST`

	TestMasterPlaylist = `#EXTM3U
#EXT-X-VERSION:4
#EXT-X-INDEPENDENT-SEGMENTS
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="English",DEFAULT=YES,URI="audio/en.m3u8"
#EXT-X-STREAM-INF:BANDWIDTH=1280000,AVERAGE-BANDWIDTH=1000000,CODECS="avc1.42e00a,mp4a.40.2",RESOLUTION=852x480,AUDIO="aac"
480p.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2560000,CODECS="avc1.42e00a,mp4a.40.2",RESOLUTION=1280x720
720p.m3u8
#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=151288,CODECS="avc1.4d401f",URI="iframe/480p.m3u8"
#EXT-X-IMAGE-STREAM-INF:BANDWIDTH=10000,RESOLUTION=320x180,CODECS="jpeg",URI="images/180p.m3u8"
#EXT-X-SESSION-DATA:DATA-ID="com.example.title",VALUE="Example Stream"
#EXT-X-SESSION-KEY:METHOD=AES-128,URI="https://example.com/key.bin"`

	TestAdBreakPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:6
#EXT-X-MEDIA-SEQUENCE:100
#EXT-OATCLS-SCTE35:/DA0AAAAAAAA
#EXT-X-CUE-OUT:DURATION=30
#EXTINF:6,
ad0.ts
#EXT-X-CUE-OUT-CONT:6/30
#EXTINF:6,
ad1.ts
#EXT-X-CUE-IN
#EXTINF:6,
content0.ts`

	TestLowLatencyPlaylist = `#EXTM3U
#EXT-X-VERSION:9
#EXT-X-TARGETDURATION:4
#EXT-X-SERVER-CONTROL:CAN-BLOCK-RELOAD=YES,PART-HOLD-BACK=1.0,CAN-SKIP-UNTIL=12.0
#EXT-X-PART-INF:PART-TARGET=0.5
#EXT-X-MEDIA-SEQUENCE:266
#EXT-X-PROGRAM-DATE-TIME:2024-03-01T10:00:00Z
#EXT-X-PART:DURATION=0.5,URI="filePart266.0.ts"
#EXT-X-PART:DURATION=0.5,URI="filePart266.1.ts",INDEPENDENT=YES
#EXTINF:1.0,
fileSequence266.ts
#EXT-X-PRELOAD-HINT:TYPE=PART,URI="filePart267.0.ts"
#EXT-X-RENDITION-REPORT:URI="../1M/waitForMSN.m3u8",LAST-MSN=266,LAST-PART=1
#EXT-X-SKIP:SKIPPED-SEGMENTS=20`

	TestEncryptedPlaylist = `#EXTM3U
#EXT-X-VERSION:6
#EXT-X-TARGETDURATION:10
#EXT-X-MAP:URI="init.mp4"
#EXT-X-KEY:METHOD=AES-128,URI="https://example.com/key1.bin",IV=0x1234
#EXTINF:10,
enc0.ts
#EXT-X-KEY:METHOD=AES-128,URI="https://example.com/key1.bin",IV=0x1234
#EXTINF:10,
enc1.ts
#EXT-X-KEY:METHOD=NONE
#EXTINF:10,
clear0.ts`

	TestDateRangePlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:6
#EXT-X-PROGRAM-DATE-TIME:2024-03-01T10:00:00.000Z
#EXT-X-DATERANGE:ID="splice-6FFFFFF0",START-DATE="2024-03-01T10:00:00Z",PLANNED-DURATION=59.993
#EXTINF:6,
main0.ts
#EXTINF:6,
main1.ts`
)
