package config

import "testing"

func TestLoadUploadPolicy(t *testing.T) {
	policy, err := LoadUploadPolicy()
	if err != nil {
		t.Fatalf("LoadUploadPolicy: %v", err)
	}
	if policy.MaxSizeBytes <= 0 {
		t.Errorf("MaxSizeBytes = %d, want positive", policy.MaxSizeBytes)
	}
	if len(policy.AllowedMimeTypes) == 0 {
		t.Error("AllowedMimeTypes is empty")
	}
}

func TestUploadPolicyAllows(t *testing.T) {
	policy := &UploadPolicy{
		MaxSizeBytes: 1024,
		AllowedMimeTypes: []string{
			"application/pdf",
			"image/*",
		},
	}

	tests := []struct {
		mime string
		want bool
	}{
		{"application/pdf", true},
		{"image/png", true},
		{"image/svg+xml", true},
		{"application/x-msdownload", false},
		{"imagepng", false},
		{"image", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := policy.Allows(tt.mime); got != tt.want {
			t.Errorf("Allows(%q) = %v, want %v", tt.mime, got, tt.want)
		}
	}
}
