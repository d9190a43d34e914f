package routine_test

import (
	"testing"

	"github.com/nogmois/nana-back/internal/domain/routine"
	"github.com/stretchr/testify/require"
)

func TestWakeWindowMinutes_Boundaries(t *testing.T) {
	cases := []struct {
		age  int
		want int
	}{
		{0, 50}, {29, 50},
		{30, 60}, {89, 60},
		{90, 75}, {149, 75},
		{150, 90}, {209, 90},
		{210, 105}, {269, 105},
		{270, 120}, {359, 120},
		{360, 150}, {2000, 150},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, routine.WakeWindowMinutes(tc.age), "age %d", tc.age)
	}
}

func TestNapsPerDay_Boundaries(t *testing.T) {
	cases := []struct {
		age  int
		want int
	}{
		{0, 6}, {90, 6},
		{91, 4}, {180, 4},
		{181, 3}, {270, 3},
		{271, 2}, {365, 2},
		{366, 1}, {730, 1},
		{731, 1},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, routine.NapsPerDay(tc.age), "age %d", tc.age)
	}
}

func TestNapDurationFallback_Boundaries(t *testing.T) {
	cases := []struct {
		age  int
		want int
	}{
		{0, 90}, {90, 90}, {91, 90}, {365, 90},
		{366, 120}, {730, 120},
		{731, 90},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, routine.NapDurationFallback(tc.age), "age %d", tc.age)
	}
}
