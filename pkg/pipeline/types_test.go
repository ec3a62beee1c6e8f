package pipeline

import (
	"context"
	"testing"
)

func TestParseMaterial(t *testing.T) {
	tests := []struct {
		in      string
		want    Material
		wantErr bool
	}{
		{"glass", MaterialGlass, false},
		{" Wood ", MaterialWood, false},
		{"GLASS", MaterialGlass, false},
		{"paper", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMaterial(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMaterial(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMaterial(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDepthFromPercent(t *testing.T) {
	cases := map[float64]float64{
		-5:  0,
		0:   0,
		10:  0.1,
		70:  0.7,
		100: 1,
		150: 1,
	}
	for in, want := range cases {
		if got := DepthFromPercent(in); got < want-1e-9 || got > want+1e-9 {
			t.Errorf("DepthFromPercent(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestContrastParams_Validate(t *testing.T) {
	if err := DefaultToneParams().Contrast.Validate(); err != nil {
		t.Errorf("default contrast params should be valid: %v", err)
	}
	if err := SketchToneParams().Contrast.Validate(); err != nil {
		t.Errorf("sketch contrast params should be valid: %v", err)
	}
	if err := (ContrastParams{Threshold: 200, DarkGain: 1.5, LightGain: 1.2}).Validate(); err == nil {
		t.Error("expected error when dark gain exceeds light gain")
	}
	if err := (ContrastParams{Threshold: 200, DarkGain: -1, LightGain: 1.2}).Validate(); err == nil {
		t.Error("expected error for negative gain")
	}
}

func TestStageFunc(t *testing.T) {
	var s Stage[int, int] = StageFunc[int, int](func(ctx context.Context, in int) (int, error) {
		return in * 2, nil
	})
	got, err := s.Execute(context.Background(), 21)
	if err != nil || got != 42 {
		t.Errorf("StageFunc.Execute = %d, %v", got, err)
	}
}

func TestCheckpoint(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	if err := Checkpoint(ctx); err != nil {
		t.Errorf("unexpected error before cancel: %v", err)
	}
	cancel()
	if err := Checkpoint(ctx); err == nil {
		t.Error("expected error after cancel")
	}
}
