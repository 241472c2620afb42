package storagefactory

import (
	"context"
	"testing"

	"chargen/internal/config"
)

func TestNewStorage(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.StorageConfig
		wantErr  bool
		wantType string
	}{
		{
			name:     "local storage with base path",
			cfg:      &config.StorageConfig{Type: "local", Local: &config.LocalConfig{BasePath: t.TempDir()}},
			wantType: "local",
		},
		{
			name:     "empty type defaults to local",
			cfg:      &config.StorageConfig{},
			wantType: "local",
		},
		{
			name:    "missing oss config",
			cfg:     &config.StorageConfig{Type: "oss"},
			wantErr: true,
		},
		{
			name:    "unsupported storage type",
			cfg:     &config.StorageConfig{Type: "s3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStorage(context.Background(), tt.cfg)

			if tt.wantErr {
				if err == nil {
					t.Errorf("NewStorage() expected error, got nil")
				}
				if s != nil {
					t.Errorf("NewStorage() expected nil storage, got %v", s)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewStorage() unexpected error: %v", err)
			}
			if got := s.GetStorageType(); got != tt.wantType {
				t.Errorf("GetStorageType() = %v, want %v", got, tt.wantType)
			}
		})
	}
}
