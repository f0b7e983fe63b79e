package types

import "time"

// HTTPConfig holds HTTP settings used by the fetcher.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig holds settings for a batch download.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// DownloadPath is the directory downloaded files are written to.
	DownloadPath string `json:"download_path" yaml:"download_path" mapstructure:"download_path"`

	// Concurrency caps the number of in-flight fetches. Zero starts one
	// fetch per identifier at once.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// DocBaseURL is the root of the 3GPP specification archive.
	DocBaseURL string `json:"doc_base_url" yaml:"doc_base_url" mapstructure:"doc_base_url"`

	// PDFBaseURL is the root of the ETSI TS deliverables tree.
	PDFBaseURL string `json:"pdf_base_url" yaml:"pdf_base_url" mapstructure:"pdf_base_url"`
}
