package client

import "testing"

func TestRTTTrackerNilUntilFirstSample(t *testing.T) {
	tr := newRTTTracker()

	if _, ok := tr.last(); ok {
		t.Fatal("expected no last sample before any record")
	}
	if _, ok := tr.average(); ok {
		t.Fatal("expected no average before any record")
	}
}

func TestRTTTrackerAverageOverWindow(t *testing.T) {
	tr := newRTTTracker()

	// Fill the buffer past its capacity; only the most recent
	// rttBufferSize samples should count toward the average.
	for i := int64(1); i <= int64(rttBufferSize)+5; i++ {
		tr.record(i)
	}

	last, ok := tr.last()
	if !ok || last != int64(rttBufferSize)+5 {
		t.Fatalf("last() = %d, %v; want %d, true", last, ok, int64(rttBufferSize)+5)
	}

	var wantSum int64
	for i := int64(6); i <= int64(rttBufferSize)+5; i++ {
		wantSum += i
	}
	wantAvg := wantSum / int64(rttBufferSize)

	avg, ok := tr.average()
	if !ok {
		t.Fatal("expected an average after filling the buffer")
	}
	if avg != wantAvg {
		t.Fatalf("average() = %d, want %d", avg, wantAvg)
	}
}
