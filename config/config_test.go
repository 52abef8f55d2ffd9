package config_test

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasecurity/patch-tuesday/config"
)

func TestLoad(t *testing.T) {
	defaults := config.Config{
		URL:         "https://api.msrc.microsoft.com/cvrf/v2.0/cvrf/",
		Concurrency: 12,
		Product:     "Win10_1809_x64",
		Format:      "text",
	}

	tests := []struct {
		name     string
		files    map[string]string
		path     string
		required bool
		env      map[string]string
		want     config.Config
		wantErr  string
	}{
		{
			name: "happy path",
			files: map[string]string{
				"/etc/patch-tuesday/config.yaml": "testdata/config.yaml",
			},
			path: "/etc/patch-tuesday/config.yaml",
			want: config.Config{
				URL:         "http://localhost:8080/cvrf/",
				APIKey:      "secret",
				Concurrency: 4,
				Product:     "Win11_22H2_x64",
				Format:      "json",
			},
		},
		{
			name: "missing optional file",
			path: "/etc/patch-tuesday/config.yaml",
			want: defaults,
		},
		{
			name: "environment overrides the file",
			files: map[string]string{
				"/etc/patch-tuesday/config.yaml": "testdata/config.yaml",
			},
			path: "/etc/patch-tuesday/config.yaml",
			env: map[string]string{
				"PATCH_TUESDAY_API_KEY":     "from-env",
				"PATCH_TUESDAY_CONCURRENCY": "2",
			},
			want: config.Config{
				URL:         "http://localhost:8080/cvrf/",
				APIKey:      "from-env",
				Concurrency: 2,
				Product:     "Win11_22H2_x64",
				Format:      "json",
			},
		},
		{
			name:     "missing required file",
			path:     "/etc/patch-tuesday/config.yaml",
			required: true,
			wantErr:  "config file not found: /etc/patch-tuesday/config.yaml",
		},
		{
			name: "broken YAML",
			files: map[string]string{
				"/etc/patch-tuesday/config.yaml": "testdata/broken.yaml",
			},
			path:    "/etc/patch-tuesday/config.yaml",
			wantErr: "failed to read config /etc/patch-tuesday/config.yaml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			fs := afero.NewMemMapFs()
			for dst, src := range tt.files {
				b, err := os.ReadFile(src)
				require.NoError(t, err)
				require.NoError(t, afero.WriteFile(fs, dst, b, 0600))
			}

			got, err := config.Load(fs, tt.path, tt.required)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
