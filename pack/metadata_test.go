package pack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/media"
)

func TestLoadMetadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want Metadata
	}{
		{
			name: "app",
			yaml: "type: app\nhandles: comic",
			want: Metadata{Type: media.TypeApp, Handles: media.TypeComic},
		},
		{
			name: "comic",
			yaml: "type: comic",
			want: Metadata{Type: media.TypeComic},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, err := LoadMetadata(writeMetadata(t, tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, *meta)
		})
	}
}

func TestLoadMetadataInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "{"},
		{name: "unknown field", yaml: "type: comic\ncolor: blue"},
		{name: "unknown type", yaml: "type: video"},
		{name: "missing type", yaml: "handles: comic"},
		{name: "app without handles", yaml: "type: app"},
		{name: "app with unknown handles", yaml: "type: app\nhandles: video"},
		{name: "comic with handles", yaml: "type: comic\nhandles: comic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadMetadata(writeMetadata(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func writeMetadata(tb testing.TB, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), MetadataFile)
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o644))
	return path
}
