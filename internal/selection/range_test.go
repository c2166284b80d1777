package selection

import (
	"errors"
	"testing"

	"github.com/handiism/poddl/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []*model.Episode {
	episodes := make([]*model.Episode, n)
	for i := range episodes {
		episodes[i] = model.NewEpisode(i+1, "ep", "https://example.com/ep.mp3", "mp3", "")
	}
	return episodes
}

func numbers(episodes []*model.Episode) []int {
	out := make([]int, 0, len(episodes))
	for _, ep := range episodes {
		out = append(out, ep.Number)
	}
	return out
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec string
		want []EpisodeRange
	}{
		{"7", []EpisodeRange{{Start: 7, End: 7}}},
		{"2-4", []EpisodeRange{{Start: 2, End: 4}}},
		{"3-", []EpisodeRange{{Start: 3, Open: true}}},
		{"1,3-3", []EpisodeRange{{Start: 1, End: 1}, {Start: 3, End: 3}}},
		{" 1 , 5 - 6 ", []EpisodeRange{{Start: 1, End: 1}, {Start: 5, End: 6}}},
		{"5-2", []EpisodeRange{{Start: 5, End: 2}}},
		{"0", []EpisodeRange{{Start: 0, End: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSpec_Invalid(t *testing.T) {
	for _, spec := range []string{"", "a", "1,", ",1", "-3", "1-2-3", "1-x", "1;2", "+1", "1..3"} {
		t.Run(spec, func(t *testing.T) {
			ranges, err := ParseSpec(spec)
			assert.Nil(t, ranges)

			var rerr *InvalidRangeError
			require.True(t, errors.As(err, &rerr), "want *InvalidRangeError, got %v", err)
			assert.Equal(t, spec, rerr.Spec)
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		spec string
		want []int
	}{
		{"2-4", []int{2, 3, 4}},
		{"3-", []int{3, 4, 5}},
		{"1,3-3", []int{1, 3}},
		{"4,1", []int{4, 1}},
		{"1-2,2-3", []int{1, 2, 2, 3}},
		{"6-9", []int{}},
		{"4-9", []int{4, 5}},
		{"5-2", []int{}},
		{"0", []int{}},
		{"0-2", []int{}},
	}

	episodes := numbered(5)
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			ranges, err := ParseSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, numbers(Apply(episodes, ranges)))
		})
	}
}

func TestApply_KeepsEpisodeOrder(t *testing.T) {
	// Emitted order 5,4,3,2,1 as produced by a reversed numbering.
	episodes := numbered(5)
	for i, j := 0, len(episodes)-1; i < j; i, j = i+1, j-1 {
		episodes[i], episodes[j] = episodes[j], episodes[i]
	}

	ranges, err := ParseSpec("2-4")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, numbers(Apply(episodes, ranges)))
}

func TestApply_DoesNotMutateSource(t *testing.T) {
	episodes := numbered(3)
	ranges, _ := ParseSpec("1,1")

	selected := Apply(episodes, ranges)
	require.Len(t, selected, 2)
	assert.Same(t, episodes[0], selected[0])
	assert.Same(t, episodes[0], selected[1])
	assert.Equal(t, []int{1, 2, 3}, numbers(episodes))
}

func TestEpisodeRange_Valid(t *testing.T) {
	assert.True(t, EpisodeRange{Start: 1, End: 1}.Valid())
	assert.True(t, EpisodeRange{Start: 3, Open: true}.Valid())
	assert.False(t, EpisodeRange{Start: 0, End: 2}.Valid())
	assert.False(t, EpisodeRange{Start: 4, End: 2}.Valid())
}

func TestEpisodeRange_String(t *testing.T) {
	assert.Equal(t, "3", EpisodeRange{Start: 3, End: 3}.String())
	assert.Equal(t, "3-5", EpisodeRange{Start: 3, End: 5}.String())
	assert.Equal(t, "3-", EpisodeRange{Start: 3, Open: true}.String())
}
