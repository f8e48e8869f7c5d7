package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gokturk078/cektakip/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are strings in time.ParseDuration form ("15s", "30m"). Only fields
// present in the file override the running config.
type jsonConfig struct {
	Backend *string `json:"backend"`

	GitHubOwner    *string `json:"github_owner"`
	GitHubRepo     *string `json:"github_repo"`
	GitHubBranch   *string `json:"github_branch"`
	GitHubFilePath *string `json:"github_file_path"`
	GitHubToken    *string `json:"github_token"`

	S3Bucket    *string `json:"s3_bucket"`
	S3Key       *string `json:"s3_key"`
	S3Region    *string `json:"s3_region"`
	S3Endpoint  *string `json:"s3_endpoint"`
	S3AccessKey *string `json:"s3_access_key"`
	S3SecretKey *string `json:"s3_secret_key"`

	DatabaseDSN  *string `json:"database_dsn"`
	SnapshotName *string `json:"snapshot_name"`

	CachePath   *string `json:"cache_path"`
	HTTPTimeout *string `json:"http_timeout"`

	PasswordHash  *string `json:"password_hash"`
	SessionSecret *string `json:"session_secret"`
	SessionTTL    *string `json:"session_ttl"`

	EmailJSServiceID  *string `json:"emailjs_service_id"`
	EmailJSTemplateID *string `json:"emailjs_template_id"`
	EmailJSPublicKey  *string `json:"emailjs_public_key"`
	EmailJSToEmail    *string `json:"emailjs_to_email"`

	BaselineBanks []string `json:"baseline_banks"`
}

// parseJSON overlays cfg with values from the JSON file named by -c/-config.
// No file flag means no JSON layer. Read or parse errors panic; the caller
// decides whether to recover.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.GitHubOwner, jc.GitHubOwner)
	setString(&cfg.GitHubRepo, jc.GitHubRepo)
	setString(&cfg.GitHubBranch, jc.GitHubBranch)
	setString(&cfg.GitHubFilePath, jc.GitHubFilePath)
	setString(&cfg.GitHubToken, jc.GitHubToken)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Key, jc.S3Key)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.SnapshotName, jc.SnapshotName)
	setString(&cfg.CachePath, jc.CachePath)
	setString(&cfg.PasswordHash, jc.PasswordHash)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	setString(&cfg.EmailJSServiceID, jc.EmailJSServiceID)
	setString(&cfg.EmailJSTemplateID, jc.EmailJSTemplateID)
	setString(&cfg.EmailJSPublicKey, jc.EmailJSPublicKey)
	setString(&cfg.EmailJSToEmail, jc.EmailJSToEmail)

	if jc.HTTPTimeout != nil {
		d, err := time.ParseDuration(*jc.HTTPTimeout)
		if err != nil {
			panic(err)
		}
		cfg.HTTPTimeout = d
	}
	if jc.SessionTTL != nil {
		d, err := time.ParseDuration(*jc.SessionTTL)
		if err != nil {
			panic(err)
		}
		cfg.SessionTTL = d
	}

	if jc.BaselineBanks != nil {
		cfg.BaselineBanks = jc.BaselineBanks
	}
}
