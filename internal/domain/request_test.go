package domain

import (
	"reflect"
	"testing"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from DonationStatus
		to   DonationStatus
		want bool
	}{
		{DonationPending, DonationInProgress, true},
		{DonationInProgress, DonationInProgress, true},
		{DonationInProgress, DonationDone, true},
		{DonationInProgress, DonationCanceled, true},
		{DonationPending, DonationDone, false},
		{DonationPending, DonationCanceled, false},
		{DonationDone, DonationInProgress, false},
		{DonationDone, DonationCanceled, false},
		{DonationCanceled, DonationDone, false},
		{DonationInProgress, DonationPending, false},
		{DonationDone, DonationPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransitionSources(t *testing.T) {
	cases := []struct {
		to   DonationStatus
		want []string
	}{
		{DonationInProgress, []string{"pending", "inprogress"}},
		{DonationDone, []string{"inprogress"}},
		{DonationCanceled, []string{"inprogress"}},
		{DonationPending, nil},
	}
	for _, tc := range cases {
		if got := TransitionSources(tc.to); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("TransitionSources(%s) = %v, want %v", tc.to, got, tc.want)
		}
	}
}

func TestTerminalDonationStatus(t *testing.T) {
	for status, terminal := range map[DonationStatus]bool{
		DonationPending:    false,
		DonationInProgress: false,
		DonationDone:       true,
		DonationCanceled:   true,
	} {
		if got := TerminalDonationStatus(status); got != terminal {
			t.Errorf("TerminalDonationStatus(%s) = %v, want %v", status, got, terminal)
		}
	}
}
