package ffprobe_test

import (
	"encoding/json"
	"math"
	"testing"

	"winnow/internal/media/ffprobe"
)

const sampleJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "avg_frame_rate": "30000/1001",
      "nb_frames": "901",
      "duration": "30.063367"
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "duration": "30.101333"
    }
  ],
  "format": {
    "filename": "clip.mp4",
    "nb_streams": 2,
    "duration": "30.101333",
    "size": "5242880",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2"
  }
}`

func parseSample(t *testing.T) ffprobe.Result {
	t.Helper()
	var result ffprobe.Result
	if err := json.Unmarshal([]byte(sampleJSON), &result); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	return result
}

func TestStreamCounts(t *testing.T) {
	result := parseSample(t)
	if got := result.VideoStreamCount(); got != 1 {
		t.Fatalf("video streams = %d, want 1", got)
	}
	if got := result.AudioStreamCount(); got != 1 {
		t.Fatalf("audio streams = %d, want 1", got)
	}
}

func TestAvgFrameRateParsesRational(t *testing.T) {
	result := parseSample(t)
	want := 30000.0 / 1001.0
	if got := result.AvgFrameRate(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("avg frame rate = %v, want %v", got, want)
	}
}

func TestFrameCountAndDimensions(t *testing.T) {
	result := parseSample(t)
	if got := result.FrameCount(); got != 901 {
		t.Fatalf("frame count = %d, want 901", got)
	}
	w, h := result.Dimensions()
	if w != 1920 || h != 1080 {
		t.Fatalf("dimensions = %dx%d, want 1920x1080", w, h)
	}
}

func TestDurationFallsBackToVideoStream(t *testing.T) {
	result := parseSample(t)
	if got := result.DurationSeconds(); math.Abs(got-30.101333) > 1e-6 {
		t.Fatalf("duration = %v, want 30.101333", got)
	}

	result.Format.Duration = ""
	if got := result.DurationSeconds(); math.Abs(got-30.063367) > 1e-6 {
		t.Fatalf("fallback duration = %v, want 30.063367", got)
	}
}

func TestNoVideoStream(t *testing.T) {
	result := ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "audio"}}}
	if result.VideoStreamCount() != 0 {
		t.Fatal("expected zero video streams")
	}
	if result.AvgFrameRate() != 0 {
		t.Fatal("expected zero frame rate without a video stream")
	}
	if _, ok := result.VideoStream(); ok {
		t.Fatal("expected no video stream")
	}
}
