package config

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed policy/*.yaml
var policyFiles embed.FS

// UploadPolicy bounds what phase 1 of the upload protocol will sign for.
type UploadPolicy struct {
	MaxSizeBytes     int64    `yaml:"max_size_bytes"`
	AllowedMimeTypes []string `yaml:"allowed_mime_types"`
}

// LoadUploadPolicy loads the embedded upload policy YAML.
func LoadUploadPolicy() (*UploadPolicy, error) {
	data, err := policyFiles.ReadFile("policy/upload.yaml")
	if err != nil {
		return nil, fmt.Errorf("read upload policy: %w", err)
	}

	var policy UploadPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("unmarshal upload policy: %w", err)
	}

	if policy.MaxSizeBytes <= 0 {
		return nil, fmt.Errorf("upload policy: max_size_bytes must be positive")
	}

	return &policy, nil
}

// Allows reports whether the MIME type is accepted. Entries ending in /*
// match the whole type family, e.g. image/* matches image/png.
func (p *UploadPolicy) Allows(mimeType string) bool {
	for _, allowed := range p.AllowedMimeTypes {
		if family, ok := strings.CutSuffix(allowed, "/*"); ok {
			if strings.HasPrefix(mimeType, family+"/") {
				return true
			}
			continue
		}
		if mimeType == allowed {
			return true
		}
	}
	return false
}
