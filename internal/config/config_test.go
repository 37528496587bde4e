package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authOff(c *Config) *Config {
	c.AuthEnabled = false
	return c
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{"memory ok", authOff(&Config{StoreDriver: "memory"}), ""},
		{"postgres without dsn", authOff(&Config{StoreDriver: "postgres"}), "POSTGRES_DSN"},
		{"postgres ok", authOff(&Config{StoreDriver: "postgres", PostgresDSN: "postgres://u@h/db"}), ""},
		{"sqlite without path", authOff(&Config{StoreDriver: "sqlite"}), "SQLITE_PATH"},
		{"mongo without uri", authOff(&Config{StoreDriver: "mongo"}), "MONGO_URI"},
		{"unknown driver", authOff(&Config{StoreDriver: "dynamo"}), "unsupported STORE_DRIVER"},
		{"auth without secret", &Config{StoreDriver: "memory", AuthEnabled: true}, "SESSION_SECRET"},
		{"auth without client", &Config{StoreDriver: "memory", AuthEnabled: true, SessionSecret: "s"}, "GITHUB_CLIENT_ID"},
		{"auth without callback", &Config{StoreDriver: "memory", AuthEnabled: true, SessionSecret: "s",
			GitHubClientID: "id", GitHubClientSecret: "sec"}, "CALLBACK_URL"},
		{"auth ok", &Config{StoreDriver: "memory", AuthEnabled: true, SessionSecret: "s",
			GitHubClientID: "id", GitHubClientSecret: "sec", CallbackURL: "http://localhost:3000/auth/github/callback"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/bucket.db")
	t.Setenv("AUTH_ENABLED", "false")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "/tmp/bucket.db", cfg.SQLitePath)
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, ":8081", cfg.GetHTTPAddr())
	assert.Equal(t, 168, cfg.SessionTTLHours)
}
