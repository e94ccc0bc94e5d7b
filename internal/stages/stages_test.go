package stages

import "testing"

func TestResolveStage(t *testing.T) {
	tests := []struct {
		name      string
		segment   string
		wantStage Stage
		wantOK    bool
	}{
		{
			name:      "transformations tab",
			segment:   "transformations",
			wantStage: StageTransformation,
			wantOK:    true,
		},
		{
			name:      "destinations tab",
			segment:   "destinations",
			wantStage: StageDestination,
			wantOK:    true,
		},
		{
			name:      "site apps tab",
			segment:   "site-apps",
			wantStage: StageSiteApp,
			wantOK:    true,
		},
		{
			name:    "singular form is not a tab",
			segment: "destination",
			wantOK:  false,
		},
		{
			name:    "unknown segment",
			segment: "imports",
			wantOK:  false,
		},
		{
			name:    "empty segment",
			segment: "",
			wantOK:  false,
		},
		{
			name:    "case sensitive",
			segment: "Destinations",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, ok := ResolveStage(tt.segment)
			if ok != tt.wantOK {
				t.Fatalf("ResolveStage(%q) ok = %v, want %v", tt.segment, ok, tt.wantOK)
			}
			if ok && stage != tt.wantStage {
				t.Errorf("ResolveStage(%q) = %v, want %v", tt.segment, stage, tt.wantStage)
			}
		})
	}
}

func TestStageTabRoundTrip(t *testing.T) {
	// Every stage must resolve back from its own tab; the mapping is total
	// in both directions.
	for _, stage := range All() {
		resolved, ok := ResolveStage(stage.Tab())
		if !ok {
			t.Fatalf("stage %v has tab %q that does not resolve", stage, stage.Tab())
		}
		if resolved != stage {
			t.Errorf("tab %q resolved to %v, want %v", stage.Tab(), resolved, stage)
		}
	}
}

func TestStageLabel(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageTransformation, "Transformations"},
		{StageDestination, "Destinations"},
		{StageSiteApp, "Site apps"},
		{Stage("bogus"), "Unknown"},
		{Stage(""), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.Label(); got != tt.want {
			t.Errorf("Stage(%q).Label() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestStageValid(t *testing.T) {
	for _, stage := range All() {
		if !stage.Valid() {
			t.Errorf("stage %v should be valid", stage)
		}
	}
	if Stage("imports").Valid() {
		t.Error("unknown stage should not be valid")
	}
}
