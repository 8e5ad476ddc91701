package app

import (
	"testing"
	"time"

	"github.com/dayanaadylkhanova/barnum/pkg/config"
)

func TestDispatcherOptions(t *testing.T) {
	pinned := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		cfg  config.Config
		want int
	}{
		{"anchors", config.Config{}, 0},
		{"pinned", config.Config{ReferenceTime: pinned}, 1},
		{"live", config.Config{LiveReference: true}, 1},
		{"live wins", config.Config{LiveReference: true, ReferenceTime: pinned}, 1},
	}
	for _, tc := range cases {
		if got := len(dispatcherOptions(tc.cfg)); got != tc.want {
			t.Fatalf("%s: expected %d options, got %d", tc.name, tc.want, got)
		}
	}
}
