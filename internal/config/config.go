// Package config handles configuration for the check-tracking CLI,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - Backend: which remote snapshot store to use ("github", "s3" or "postgres").
//   - GitHubOwner/GitHubRepo/GitHubBranch/GitHubFilePath/GitHubToken: contents-API
//     settings; without a token the public raw path is used read-only.
//   - S3Bucket/S3Key/S3Region/S3Endpoint/S3AccessKey/S3SecretKey: S3-compatible
//     backend settings (MinIO works via S3Endpoint).
//   - DatabaseDSN: PostgreSQL DSN for the postgres backend (pgx).
//   - SnapshotName: document name in the postgres backend.
//   - CachePath: sqlite file for the local snapshot cache and bank list.
//   - HTTPTimeout: bound on every remote HTTP call.
//   - PasswordHash: shared admin password hash (bcrypt, or legacy SHA-256 hex).
//   - SessionSecret / SessionTTL: HMAC secret and lifetime for session tokens.
//   - EmailJS*: reminder dispatch settings; empty PublicKey disables email.
//   - BaselineBanks: the fixed part of the bank directory.
type Config struct {
	Backend string

	GitHubOwner    string
	GitHubRepo     string
	GitHubBranch   string
	GitHubFilePath string
	GitHubToken    string

	S3Bucket    string
	S3Key       string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	DatabaseDSN  string
	SnapshotName string

	CachePath   string
	HTTPTimeout time.Duration

	PasswordHash  string
	SessionSecret string
	SessionTTL    time.Duration

	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSToEmail    string

	BaselineBanks []string
}

// LoadDefaults populates Config with the historical defaults. The default
// password hash is a known weakness inherited from the original deployment;
// override it in real use.
func (c *Config) LoadDefaults() {
	c.Backend = "github"
	c.GitHubOwner = "gokturk078"
	c.GitHubRepo = "cek-takip"
	c.GitHubBranch = "main"
	c.GitHubFilePath = "data/checks.json"

	c.S3Key = "data/checks.json"
	c.S3Region = "us-east-1"

	c.SnapshotName = "checks"

	c.CachePath = "cektakip.db"
	c.HTTPTimeout = 15 * time.Second

	// SHA-256 of the original shared password.
	c.PasswordHash = "8b1a9953c4611296a827abf8c47804d7e6c49c6b8154936c0f2c0fb9b686f4e6"
	c.SessionSecret = "cektakip-session-secret"
	c.SessionTTL = 30 * time.Minute

	c.BaselineBanks = []string{
		"GARANTİ BANKASI",
		"NEARESTBANK",
		"NEAR EAST BANK",
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags. Later
// sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
