package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestCheckPassword(t *testing.T) {
	cfg := &Configuration{
		Users: []User{
			{Username: "root", Passwords: []string{"root", "toor"}},
			{Username: "guest", Passwords: []string{"guest"}},
		},
	}

	assert.True(t, cfg.CheckPassword("root", "toor"))
	assert.False(t, cfg.CheckPassword("root", "guest"))
	assert.False(t, cfg.CheckPassword("nobody", ""))
	assert.Equal(t, []string{"guest"}, cfg.GetPasswords("guest"))

	cfg.AllowAnyPassword = true
	assert.True(t, cfg.CheckPassword("nobody", ""))
}

func TestLoadFs(t *testing.T) {
	valid := "name: demo\nversion: v1\nhostname: demo\n"

	cases := map[string]struct {
		contents string
		wantErr  string
	}{
		"minimal": {
			contents: valid,
		},
		"unknown field": {
			contents: valid + "uname: linux\n",
			wantErr:  "parsing config.yaml",
		},
		"port out of range": {
			contents: valid + "ssh_port: 70000\n",
			wantErr:  "ssh_port",
		},
		"bad hostname": {
			contents: "name: demo\nversion: v1\nhostname: under_score\n",
			wantErr:  "hostname",
		},
		"operator in command name": {
			contents: valid + "static_commands:\n  - name: a|b\n",
			wantErr:  "name",
		},
		"duplicate users": {
			contents: valid + "users:\n  - username: a\n  - username: a\n",
			wantErr:  "users",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			configFs := afero.NewMemMapFs()
			assert.NoError(t, afero.WriteFile(configFs, ConfigurationName, []byte(tc.contents), 0600))

			cfg, err := LoadFs(configFs)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "demo", cfg.Name)
		})
	}
}
