package stock

import (
	"encoding/json"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nxmods/stockcheck/pkg/errclass"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in   string
		want Platform
	}{
		{"wiiu", WiiU},
		{"WiiU", WiiU},
		{"wii-u", WiiU},
		{"cemu", WiiU},
		{" u ", WiiU},
		{"switch", Switch},
		{"Switch", Switch},
		{"NX", Switch},
	}

	for _, tt := range tests {
		got, err := ParsePlatform(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParsePlatform_Unknown(t *testing.T) {
	for _, in := range []string{"", "ps5", "wii"} {
		_, err := ParsePlatform(in)
		assert.ErrorIs(t, err, errclass.ErrPlatformUnknown, in)
	}
}

func TestPlatform_String(t *testing.T) {
	assert.Equal(t, "wiiu", WiiU.String())
	assert.Equal(t, "switch", Switch.String())
	assert.Equal(t, "platform(7)", Platform(7).String())
	assert.Equal(t, "1.5.0", WiiU.GameVersion())
	assert.Equal(t, "1.6.0", Switch.GameVersion())
}

func TestPlatform_FlagValue(t *testing.T) {
	var p Platform
	var _ pflag.Value = &p

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&p, "platform", "target platform")
	require.NoError(t, fs.Parse([]string{"--platform", "nx"}))
	assert.Equal(t, Switch, p)
	assert.Equal(t, "platform", p.Type())

	assert.Error(t, fs.Parse([]string{"--platform", "gamecube"}))
}

func TestPlatform_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]Platform{"target": Switch})
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"switch"}`, string(data))

	var out struct {
		Target Platform `json:"target"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"target":"wiiu"}`), &out))
	assert.Equal(t, WiiU, out.Target)

	assert.Error(t, json.Unmarshal([]byte(`{"target":"3ds"}`), &out))
	_, err = json.Marshal(Platform(5))
	assert.Error(t, err)
}

func TestPlatform_YAML(t *testing.T) {
	var out struct {
		Platform Platform `yaml:"platform"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("platform: switch\n"), &out))
	assert.Equal(t, Switch, out.Platform)

	data, err := yaml.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, "platform: switch\n", string(data))
}
