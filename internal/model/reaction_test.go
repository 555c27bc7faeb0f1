package model

import (
	"encoding/json"
	"testing"
)

func TestReactionCycle(t *testing.T) {
	cases := []struct {
		from, to Reaction
	}{
		{ReactionNeutral, ReactionLiked},
		{ReactionLiked, ReactionDisliked},
		{ReactionDisliked, ReactionNeutral},
	}
	for _, c := range cases {
		if got := c.from.Next(); got != c.to {
			t.Fatalf("%v.Next() = %v, want %v", c.from, got, c.to)
		}
	}
	// three steps close the cycle from any starting point
	for _, start := range []Reaction{ReactionNeutral, ReactionLiked, ReactionDisliked} {
		if got := start.Next().Next().Next(); got != start {
			t.Fatalf("cycle starting at %v did not close, ended at %v", start, got)
		}
	}
}

func TestReactionJSON(t *testing.T) {
	cases := []struct {
		r    Reaction
		wire string
	}{
		{ReactionNeutral, "null"},
		{ReactionLiked, "true"},
		{ReactionDisliked, "false"},
	}
	for _, c := range cases {
		b, err := json.Marshal(c.r)
		if err != nil {
			t.Fatalf("marshal %v: %v", c.r, err)
		}
		if string(b) != c.wire {
			t.Fatalf("marshal %v = %s, want %s", c.r, b, c.wire)
		}
		var back Reaction
		if err := json.Unmarshal([]byte(c.wire), &back); err != nil {
			t.Fatalf("unmarshal %s: %v", c.wire, err)
		}
		if back != c.r {
			t.Fatalf("unmarshal %s = %v, want %v", c.wire, back, c.r)
		}
	}
}

func TestReactionStoredRoundTrip(t *testing.T) {
	if _, present := ReactionNeutral.Stored(); present {
		t.Fatalf("neutral reported a stored row")
	}
	for _, r := range []Reaction{ReactionLiked, ReactionDisliked} {
		isLiked, present := r.Stored()
		if !present {
			t.Fatalf("%v reported no stored row", r)
		}
		if got := ReactionFromStored(true, isLiked); got != r {
			t.Fatalf("round trip of %v = %v", r, got)
		}
	}
	if got := ReactionFromStored(false, true); got != ReactionNeutral {
		t.Fatalf("missing row mapped to %v, want neutral", got)
	}
}
