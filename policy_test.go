package tagcache

import (
	"testing"
	"time"
)

func TestPolicyPresets(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		abs, sld time.Duration
		prio     Priority
		tag      string
	}{
		{PolicyNameFileList, PolicyFileList, 10 * time.Minute, 3 * time.Minute, PriorityHigh, TagFiles},
		{PolicyNameCategories, PolicyCategories, 2 * time.Hour, 30 * time.Minute, PriorityHigh, TagCategories},
		{PolicyNameConfigurations, PolicyConfigurations, 30 * time.Minute, 10 * time.Minute, PriorityNormal, TagConfigurations},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.policy.AbsoluteTTL != tt.abs || tt.policy.SlidingTTL != tt.sld {
				t.Fatalf("ttls = %v/%v, want %v/%v",
					tt.policy.AbsoluteTTL, tt.policy.SlidingTTL, tt.abs, tt.sld)
			}
			if tt.policy.Priority != tt.prio {
				t.Fatalf("priority = %v, want %v", tt.policy.Priority, tt.prio)
			}
			found := false
			for _, tag := range tt.policy.Tags {
				if tag == tt.tag {
					found = true
				}
			}
			if !found {
				t.Fatalf("tags %v missing %q", tt.policy.Tags, tt.tag)
			}
			if got := PolicyNamed(tt.name); got.AbsoluteTTL != tt.policy.AbsoluteTTL {
				t.Fatalf("PolicyNamed(%q) mismatch", tt.name)
			}
		})
	}
}

func TestFileListPolicyCarriesUIDataTag(t *testing.T) {
	found := false
	for _, tag := range PolicyFileList.Tags {
		if tag == TagUIData {
			found = true
		}
	}
	if !found {
		t.Fatalf("file list policy tags = %v, want %q included", PolicyFileList.Tags, TagUIData)
	}
}

func TestPolicyNamedUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown policy name")
		}
	}()
	PolicyNamed("no-such-policy")
}

func TestPriorityString(t *testing.T) {
	if PriorityLow.String() != "low" || PriorityNormal.String() != "normal" || PriorityHigh.String() != "high" {
		t.Fatal("priority names wrong")
	}
}
