package partition

import (
	"reflect"
	"testing"
)

func TestCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 8},
	}
	for _, tt := range tests {
		if got := Count(tt.n); got != tt.want {
			t.Errorf("Count(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestAllEmpty(t *testing.T) {
	if got := All(nil); len(got) != 0 {
		t.Errorf("All(nil) = %v, want empty", got)
	}
}

func TestAllSingleToken(t *testing.T) {
	got := All([]string{"sfo"})
	want := []StringSet{{{"sfo"}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All([sfo]) = %v, want %v", got, want)
	}
}

func TestAllThreeTokens(t *testing.T) {
	got := All([]string{"rio", "de", "janeiro"})
	want := []StringSet{
		{{"rio", "de", "janeiro"}},
		{{"rio"}, {"de", "janeiro"}},
		{{"rio", "de"}, {"janeiro"}},
		{{"rio"}, {"de"}, {"janeiro"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All([rio de janeiro]) =\n%v, want\n%v", got, want)
	}
	if len(got) != Count(3) {
		t.Errorf("len = %d, want %d", len(got), Count(3))
	}
}

func TestPartitionsLazyStopsEarly(t *testing.T) {
	seen := 0
	for range Partitions([]string{"a", "b", "c", "d"}) {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Errorf("expected to observe exactly 2 partitions before breaking, got %d", seen)
	}
}

func TestDescription(t *testing.T) {
	s := StringSet{{"rio"}, {"de", "janeiro"}}
	if got, want := s.Description(), "rio | de janeiro"; got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}
}

func TestNoOverlapCoversAllTokens(t *testing.T) {
	tokens := []string{"a", "b", "c", "d"}
	for _, set := range All(tokens) {
		var rebuilt []string
		for _, group := range set {
			if len(group) == 0 {
				t.Fatalf("empty group in %v", set)
			}
			rebuilt = append(rebuilt, group...)
		}
		if !reflect.DeepEqual(rebuilt, tokens) {
			t.Errorf("partition %v does not reconstruct to %v (got %v)", set, tokens, rebuilt)
		}
	}
}
