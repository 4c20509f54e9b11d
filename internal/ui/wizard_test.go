package ui

import "testing"

func TestValidatePort(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"4739", false},
		{"1", false},
		{"65535", false},
		{"0", true},
		{"65536", true},
		{"-1", true},
		{"abc", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validatePort(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePort(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestBuildReplayForm(t *testing.T) {
	values := replayFormValues{
		address: "127.0.0.1",
		port:    "4739",
		proto:   "UDP",
		family:  "any",
	}
	form := buildReplayForm(&values)
	if form == nil {
		t.Fatal("buildReplayForm returned nil")
	}

	// Pre-filled defaults survive form construction
	if values.address != "127.0.0.1" || values.port != "4739" || values.proto != "UDP" || values.family != "any" {
		t.Errorf("form construction disturbed the defaults: %+v", values)
	}
}

func TestTitleAndHintRender(t *testing.T) {
	if Title("flowreplay") == "" {
		t.Error("Title should render text")
	}
	if Hint("press enter") == "" {
		t.Error("Hint should render text")
	}
}
