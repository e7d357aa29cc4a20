package main

import (
	"testing"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func TestGameIDForMode(t *testing.T) {
	tests := []struct {
		mode    string
		want    string
		wantErr bool
	}{
		{"", t2048.IDClassic, false},
		{"classic", t2048.IDClassic, false},
		{"CLASSIC", t2048.IDClassic, false},
		{"2048", t2048.IDClassic, false},
		{"campaign", t2048.IDCampaign, false},
		{"2048_campaign", t2048.IDCampaign, false},
		{"endless", "", true},
	}

	for _, tt := range tests {
		got, err := gameIDForMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("gameIDForMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("gameIDForMode(%q) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
