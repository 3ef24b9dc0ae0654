package model

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusAccepted, StatusRejected, StatusArchived} {
		if !ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if ValidStatus("approved") {
		t.Error("unknown status accepted")
	}
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusAccepted, StatusArchived, true},
		{StatusRejected, StatusArchived, true},
		{StatusAccepted, StatusRejected, false},
		{StatusRejected, StatusAccepted, false},
		{StatusArchived, StatusArchived, false},
		{StatusAccepted, StatusPending, false},
	}
	for _, tt := range tests {
		err := ValidTransition(tt.from, tt.to)
		if tt.ok && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tt.from, tt.to, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%s -> %s: expected error", tt.from, tt.to)
		}
	}
}
