package model

import "time"

// Config is the complete eliwatch configuration
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Data    DataConfig    `yaml:"data"`
	Cache   CacheConfig   `yaml:"cache"`
	Sources []SourceConfig `yaml:"sources"`
	ELI     ELIConfig     `yaml:"eli"`
	LLM     LLMConfig     `yaml:"llm"`
	Output  OutputConfig  `yaml:"output"`
}

// HTTPConfig controls the retrieval client
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	UserAgent         string        `yaml:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second"` // Per-host rate limit
	Burst             int           `yaml:"burst"`
	RespectRobots     bool          `yaml:"respect_robots"` // Check robots.txt before fetching
}

// DataConfig controls on-disk snapshot locations
type DataConfig struct {
	Dir string `yaml:"dir"` // Directory holding snapshot files
}

// CacheConfig controls the check-result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// SourceConfig describes one monitored statute source
type SourceConfig struct {
	Name     string `yaml:"name"`     // Display name (e.g. "Japanese Law")
	URL      string `yaml:"url"`      // Download URL (XML or ZIP containing XML)
	Filename string `yaml:"filename"` // Snapshot file name under data.dir
	Language string `yaml:"language"` // "ja" or "en", selects the tag convention
}

// ELIConfig carries the fixed resource identity used by the projector
// and the fallback metadata values the sources do not always supply
type ELIConfig struct {
	ResourceBase string `yaml:"resource_base"` // URI base, law ID appended
	LawID        string `yaml:"law_id"`        // Resource path segment (e.g. radio-act/1950/131)
	DocID        string `yaml:"doc_id"`        // Official law document ID (e.g. 325AC0000000131)
	LawName      string `yaml:"law_name"`
	LawNameAlt   string `yaml:"law_name_alt"`
	LawNumber    string `yaml:"law_number"`
	Number       string `yaml:"number"` // Bare statute number for eli:number
	DefaultDate  string `yaml:"default_date"` // Fallback when a source date cannot be parsed
	Version      string `yaml:"version"`
	DateVersion  string `yaml:"date_version"`
	Publisher    string `yaml:"publisher"`
	PassedBy     string `yaml:"passed_by"`
	DocumentType string `yaml:"document_type"`
	IsAbout      string `yaml:"is_about"`
}

// LLMConfig controls the optional change-summary generation.
// Summaries never affect diff results or exit codes.
type LLMConfig struct {
	Provider string `yaml:"provider"` // "" disables, "openai" or "ollama"
	Model    string `yaml:"model"`
	APIKey   string `yaml:"-"` // Taken from the environment, never persisted
	BaseURL  string `yaml:"base_url"`
}

// OutputConfig controls presentation
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults, pre-wired for the Radio Act
// sources the tool was written around
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "eliwatch/0.1 (+https://github.com/mshibata/eliwatch)",
			MaxBodyBytes:      20_000_000,
			RequestsPerSecond: 1,
			Burst:             2,
			RespectRobots:     true,
		},
		Data: DataConfig{
			Dir: "data",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "data/cache",
			TTL:     30 * 24 * time.Hour,
		},
		Sources: []SourceConfig{
			{
				Name:     "Japanese Law",
				URL:      "https://elaws.e-gov.go.jp/api/1/lawdata/325AC0000000131",
				Filename: "RadioAct_ja.xml",
				Language: "ja",
			},
			{
				Name:     "English Law",
				URL:      "https://www.japaneselawtranslation.go.jp/common/data/law/325AC0000000131.zip",
				Filename: "RadioAct_en.xml",
				Language: "en",
			},
		},
		ELI: ELIConfig{
			ResourceBase: "http://data.japan.go.jp/law",
			LawID:        "radio-act/1950/131",
			DocID:        "325AC0000000131",
			LawName:      "電波法",
			LawNameAlt:   "Radio Act",
			LawNumber:    "昭和25年法律第131号",
			Number:       "131",
			DefaultDate:  "1950-05-02",
			Version:      "20240801",
			DateVersion:  "2024-08-01",
			Publisher:    "Ministry of Internal Affairs and Communications",
			PassedBy:     "National Diet of Japan",
			DocumentType: "Act",
			IsAbout:      "radio spectrum management",
		},
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		Output: OutputConfig{},
	}
}
