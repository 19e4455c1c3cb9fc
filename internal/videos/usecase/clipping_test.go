package usecase

import (
	"reflect"
	"testing"
)

func TestThumbnailPercentages(t *testing.T) {
	cases := []struct {
		n    int
		want []int
	}{
		{3, []int{25, 50, 75}},
		{2, []int{33, 66}},
		{1, []int{50}},
		{4, []int{20, 40, 60, 80}},
		{0, []int{50}},
		{-1, []int{50}},
	}
	for _, tc := range cases {
		got := ThumbnailPercentages(tc.n)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ThumbnailPercentages(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestThumbnailPercentagesProperties(t *testing.T) {
	for n := 1; n <= 20; n++ {
		points := ThumbnailPercentages(n)
		if len(points) != n {
			t.Fatalf("n=%d: got %d points", n, len(points))
		}
		prev := 0
		for _, p := range points {
			if p <= prev {
				t.Errorf("n=%d: points not strictly increasing: %v", n, points)
				break
			}
			if p <= 0 || p >= 100 {
				t.Errorf("n=%d: point %d is not an interior percentage", n, p)
			}
			prev = p
		}
	}
}
