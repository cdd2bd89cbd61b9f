package bar

import (
	"bytes"
	"testing"
)

func TestTracker(t *testing.T) {
	var buf bytes.Buffer
	pb := NewWriter(&buf, 100, "decoding")
	track := Tracker(pb)
	track(40)
	track(10)
	if got := pb.State().CurrentBytes; got != 50 {
		t.Errorf("CurrentBytes = %v, want 50", got)
	}
}
