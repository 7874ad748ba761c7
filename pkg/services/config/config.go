package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// requiredKeys mirror the deployment contract: every key must be present in
// the environment or startup aborts naming the first missing one.
var requiredKeys = []string{
	"PROJECT_NAME",
	"REPORT_OWNER",
	"WEBDAV_HOSTNAME",
	"WEBDAV_LOGIN",
	"WEBDAV_PASSWORD",
	"DATABASE_URL",
}

// WebDAV holds the remote store endpoint and credentials.
type WebDAV struct {
	Hostname string
	Login    string
	Password string
}

// Config is the process configuration, constructed once at startup and
// passed into every component that needs it.
type Config struct {
	ProjectName string
	ReportOwner string
	DatabaseURL string
	WebDAV      WebDAV

	// ExceptAppIDs and ExceptIPs are excluded from every aggregation query.
	ExceptAppIDs []string
	ExceptIPs    []string

	LogLevel     string
	ReportTime   string
	PeriodAnchor string
	ReportDir    string
	ChartDir     string

	// AttackTypes maps attack.type.<n> keys to display labels.
	AttackTypes map[string]string
}

// Load reads configuration from the environment plus the attack-type
// dictionary file. It fails fast on the first missing required variable.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REPORT_TIME", "12:00")
	v.SetDefault("PERIOD_ANCHOR", "yesterday")
	v.SetDefault("REPORT_DIR", "report")
	v.SetDefault("CHART_DIR", "charts")
	v.SetDefault("ATTACK_TYPE_DICT", "config/attack_type_dict.json")

	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			return nil, fmt.Errorf("required environment variable %s is not set", key)
		}
	}

	attackTypes, err := loadAttackTypes(v.GetString("ATTACK_TYPE_DICT"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ProjectName: v.GetString("PROJECT_NAME"),
		ReportOwner: v.GetString("REPORT_OWNER"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		WebDAV: WebDAV{
			Hostname: v.GetString("WEBDAV_HOSTNAME"),
			Login:    v.GetString("WEBDAV_LOGIN"),
			Password: v.GetString("WEBDAV_PASSWORD"),
		},
		ExceptAppIDs: splitList(v.GetString("EXCEPT_APP_IDS")),
		ExceptIPs:    splitList(v.GetString("EXCEPT_IPS")),
		LogLevel:     v.GetString("LOG_LEVEL"),
		ReportTime:   v.GetString("REPORT_TIME"),
		PeriodAnchor: v.GetString("PERIOD_ANCHOR"),
		ReportDir:    v.GetString("REPORT_DIR"),
		ChartDir:     v.GetString("CHART_DIR"),
		AttackTypes:  attackTypes,
	}, nil
}

// splitList parses a comma-separated environment value into trimmed,
// non-empty entries.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadAttackTypes(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attack type dictionary: %w", err)
	}
	var dict map[string]string
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("parse attack type dictionary %s: %w", path, err)
	}
	return dict, nil
}
