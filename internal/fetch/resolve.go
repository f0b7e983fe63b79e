// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/specdl/pkg/types"
)

// Default archive roots. The 3GPP archive serves zipped Word documents, the
// ETSI deliverables tree serves the published PDFs.
const (
	DefaultDocBaseURL = "http://www.3gpp.org/ftp/Specs/archive/"
	DefaultPDFBaseURL = "https://www.etsi.org/deliver/etsi_ts/"
)

// ErrUnsupportedMajor is returned for major versions with no archive code.
var ErrUnsupportedMajor = errors.New("unsupported major version")

// majorCodes holds the single-character archive codes for majors 10 and up.
const majorCodes = "abcdefghijklm"

// Job is the remote URL and local filename for one spec in one format.
type Job struct {
	Spec types.SpecID
	URL  string
	File string
}

// MajorCode returns the character 3GPP uses for a major version in archive
// filenames: 0-9 are the digit itself, 10-22 map to 'a'-'m'.
func MajorCode(major int) (string, error) {
	switch {
	case major >= 0 && major < 10:
		return fmt.Sprintf("%d", major), nil
	case major >= 10 && major < 10+len(majorCodes):
		return string(majorCodes[major-10]), nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnsupportedMajor, major)
}

// Bucket returns the hundred-wide range containing number, as used by the
// ETSI folder layout: 278 is in 200-299.
func Bucket(number int) (lower, upper int) {
	lower = number - number%100
	upper = number + 99 - number%100
	return lower, upper
}

// DocFile returns the archive filename, e.g. "22179-f10.zip".
func DocFile(s types.SpecID) (string, error) {
	code, err := MajorCode(s.Major)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d%03d-%s%d%d.zip", s.Series, s.Number, code, s.Tech, s.Editorial), nil
}

// DocURL returns the archive URL under base, e.g.
// base + "22_series/22.179/22179-f10.zip".
func DocURL(base string, s types.SpecID) (string, error) {
	file, err := DocFile(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%02d_series/%02d.%03d/%s", withSlash(base), s.Series, s.Series, s.Number, file), nil
}

// PDFFile returns the ETSI filename, e.g. "ts_122278v150400p.pdf".
func PDFFile(s types.SpecID) string {
	return fmt.Sprintf("ts_1%02d%03dv%02d%02d%02dp.pdf", s.Series, s.Number, s.Major, s.Tech, s.Editorial)
}

// PDFURL returns the ETSI URL under base, e.g.
// base + "122200_122299/122278/15.04.00_60/ts_122278v150400p.pdf".
func PDFURL(base string, s types.SpecID) string {
	lower, upper := Bucket(s.Number)
	return fmt.Sprintf("%s1%02d%03d_1%02d%03d/1%02d%03d/%02d.%02d.%02d_60/%s",
		withSlash(base),
		s.Series, lower, s.Series, upper,
		s.Series, s.Number,
		s.Major, s.Tech, s.Editorial,
		PDFFile(s))
}

// Resolve builds the Job for s in the given format using the base URLs in
// cfg, falling back to the defaults when they are empty.
func Resolve(docType types.DocType, s types.SpecID, cfg types.FetchConfig) (Job, error) {
	switch docType {
	case types.DocTypeDoc:
		base := cfg.DocBaseURL
		if base == "" {
			base = DefaultDocBaseURL
		}
		url, err := DocURL(base, s)
		if err != nil {
			return Job{}, err
		}
		file, _ := DocFile(s)
		return Job{Spec: s, URL: url, File: file}, nil
	case types.DocTypePDF:
		base := cfg.PDFBaseURL
		if base == "" {
			base = DefaultPDFBaseURL
		}
		return Job{Spec: s, URL: PDFURL(base, s), File: PDFFile(s)}, nil
	}
	return Job{}, fmt.Errorf("%w (%s) specified", types.ErrInvalidDocType, docType)
}

func withSlash(base string) string {
	if strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}
