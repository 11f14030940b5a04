package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeIntervals(t *testing.T) {
	window := Window{Open: 540, Close: 1080} // 09:00-18:00

	tests := []struct {
		name string
		busy []Interval
		want []Interval
	}{
		{
			name: "no bookings yields whole window",
			busy: nil,
			want: []Interval{{540, 1080}},
		},
		{
			name: "single booking splits window",
			busy: []Interval{{600, 645}}, // 10:00-10:45
			want: []Interval{{540, 600}, {645, 1080}},
		},
		{
			name: "back to back bookings yield no gap between them",
			busy: []Interval{{600, 660}, {660, 720}},
			want: []Interval{{540, 600}, {720, 1080}},
		},
		{
			name: "unsorted busy list is handled",
			busy: []Interval{{900, 960}, {600, 660}},
			want: []Interval{{540, 600}, {660, 900}, {960, 1080}},
		},
		{
			name: "booking starting before open is clipped",
			busy: []Interval{{480, 570}},
			want: []Interval{{570, 1080}},
		},
		{
			name: "booking ending after close is clipped",
			busy: []Interval{{1050, 1140}},
			want: []Interval{{540, 1050}},
		},
		{
			name: "booking entirely outside window is ignored",
			busy: []Interval{{0, 500}},
			want: []Interval{{540, 1080}},
		},
		{
			name: "booking covering whole window leaves nothing",
			busy: []Interval{{500, 1100}},
			want: []Interval{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeIntervals(window, tt.busy)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFreeIntervalsDegenerateWindow(t *testing.T) {
	assert.Nil(t, FreeIntervals(Window{Open: 600, Close: 600}, nil))
	assert.Nil(t, FreeIntervals(Window{Open: 700, Close: 600}, nil))
}

func TestSlots(t *testing.T) {
	t.Run("09:00-18:00 with 10:00-10:45 booked", func(t *testing.T) {
		window := Window{Open: 540, Close: 1080}
		busy := []Interval{{600, 645}}

		free := FreeIntervals(window, busy)
		got := Slots(free, 30, 30, 0)

		// Before the booking only 09:00 and 09:30 fit; 09:45 is not a
		// candidate (starts align to the interval start at 09:00).
		require.GreaterOrEqual(t, len(got), 2)
		assert.Equal(t, 540, got[0])
		assert.Equal(t, 570, got[1])

		// After the booking candidates resume at 10:45 stepping by 30.
		assert.Equal(t, 645, got[2])
		assert.Equal(t, 675, got[3])

		// Last slot must leave room for the full duration.
		assert.Equal(t, 1050, got[len(got)-1])

		for _, s := range got {
			assert.GreaterOrEqual(t, s, window.Open)
			assert.LessOrEqual(t, s+30, window.Close)
			assert.False(t, Overlaps(Interval{s, s + 30}, busy[0]),
				"slot %d overlaps the existing booking", s)
		}
	})

	t.Run("zero duration yields nothing", func(t *testing.T) {
		free := []Interval{{540, 1080}}
		assert.Nil(t, Slots(free, 0, 30, 0))
		assert.Nil(t, Slots(free, -15, 30, 0))
	})

	t.Run("zero step yields nothing", func(t *testing.T) {
		free := []Interval{{540, 1080}}
		assert.Nil(t, Slots(free, 30, 0, 0))
	})

	t.Run("duration longer than any gap yields nothing", func(t *testing.T) {
		free := []Interval{{540, 570}, {600, 620}}
		assert.Nil(t, Slots(free, 45, 15, 0))
	})

	t.Run("notBefore filters today's past slots", func(t *testing.T) {
		free := []Interval{{540, 720}}
		got := Slots(free, 30, 30, 601)
		require.NotEmpty(t, got)
		assert.Equal(t, 630, got[0])
		for _, s := range got {
			assert.GreaterOrEqual(t, s, 601)
		}
	})

	t.Run("slots align to interval start not global clock", func(t *testing.T) {
		// Free interval starting at 09:10 with 30 minute step emits
		// 09:10, 09:40, ... not 09:30.
		free := []Interval{{550, 670}}
		got := Slots(free, 30, 30, 0)
		assert.Equal(t, []int{550, 580, 610, 640}, got)
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		window := Window{Open: 540, Close: 1080}
		busy := []Interval{{600, 645}, {720, 780}}
		first := Slots(FreeIntervals(window, busy), 30, 15, 0)
		second := Slots(FreeIntervals(window, busy), 30, 15, 0)
		assert.Equal(t, first, second)
	})
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{540, 600}, Interval{600, 660}, false},
		{"touching endpoints do not overlap", Interval{540, 600}, Interval{600, 700}, false},
		{"partial overlap", Interval{540, 610}, Interval{600, 660}, true},
		{"containment", Interval{540, 700}, Interval{600, 660}, true},
		{"identical", Interval{540, 600}, Interval{540, 600}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestRoundUp(t *testing.T) {
	assert.Equal(t, 600, RoundUp(600, 30))
	assert.Equal(t, 630, RoundUp(601, 30))
	assert.Equal(t, 630, RoundUp(629, 30))
	assert.Equal(t, 0, RoundUp(0, 15))
	assert.Equal(t, 7, RoundUp(7, 0))
}
