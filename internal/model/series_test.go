package model

import (
	"testing"
	"time"
)

func TestDailySeries_Date(t *testing.T) {
	start := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)
	s := &DailySeries{Start: start, Sessions: make([]int, 5)}
	if got := s.Date(3).Format(time.DateOnly); got != "2026-04-02" {
		t.Errorf("expected 2026-04-02, got %s", got)
	}

	anchored := &DailySeries{
		Sessions:  make([]int, 3),
		FetchedAt: time.Date(2026, 5, 10, 15, 30, 0, 0, time.UTC),
	}
	if got := anchored.Date(0).Format(time.DateOnly); got != "2026-05-08" {
		t.Errorf("expected series to end on fetch day, start got %s", got)
	}
	if got := anchored.Date(2).Format(time.DateOnly); got != "2026-05-10" {
		t.Errorf("expected last day 2026-05-10, got %s", got)
	}
}

func TestDailySeries_EventOn(t *testing.T) {
	s := &DailySeries{Events: []Event{{Day: 10, Label: "Email campaign"}}}
	if label, ok := s.EventOn(10); !ok || label != "Email campaign" {
		t.Errorf("expected event on day 10, got %q %v", label, ok)
	}
	if _, ok := s.EventOn(11); ok {
		t.Error("expected no event on day 11")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"continuous", ModeContinuous, false},
		{" Glide ", ModeContinuous, false},
		{"perday", ModePerDay, false},
		{"per-day", ModePerDay, false},
		{"pluck", ModePerDay, false},
		{"stereo", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestAudioBuffer_ChannelOps(t *testing.T) {
	b := NewAudioBuffer(3, 8000, 3.0/8000)
	b.SetChannel(ChannelRight, []float64{0.1, -0.7, 0.2})
	if got := b.Peak(ChannelRight); got != 0.7 {
		t.Errorf("expected right peak 0.7, got %v", got)
	}
	if got := b.Peak(ChannelLeft); got != 0 {
		t.Errorf("expected silent left, got %v", got)
	}
	solo := b.Solo(ChannelLeft)
	if solo.Peak(ChannelRight) != 0 {
		t.Error("left solo should silence the right channel")
	}
	if ch := b.Channel(ChannelRight); ch[1] != -0.7 {
		t.Errorf("Channel copy mismatch: %v", ch)
	}
	if ChannelLeft.String() != "left" || ChannelRight.String() != "right" {
		t.Error("unexpected channel names")
	}
}
