// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared by the specdl packages.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// SpecID identifies one version of a technical specification, e.g.
// TS 22.278 version 15.4.0 is SpecID{22, 278, 15, 4, 0}.
type SpecID struct {
	Series    int `json:"series" yaml:"series"`
	Number    int `json:"number" yaml:"number"`
	Major     int `json:"major" yaml:"major"`
	Tech      int `json:"tech" yaml:"tech"`
	Editorial int `json:"editorial" yaml:"editorial"`
}

// String renders the identifier in inline list form: series.number.major.tech.editorial.
func (s SpecID) String() string {
	return fmt.Sprintf("%d.%d.%d.%d.%d", s.Series, s.Number, s.Major, s.Tech, s.Editorial)
}

// DocType selects which archive a spec is fetched from.
type DocType string

const (
	// DocTypeDoc is the ZIP-packaged Word document from the 3GPP archive.
	DocTypeDoc DocType = "doc"
	// DocTypePDF is the PDF published in the ETSI deliverables tree.
	DocTypePDF DocType = "pdf"
)

// ErrInvalidDocType is returned for any doc type other than "doc" or "pdf".
var ErrInvalidDocType = errors.New("invalid download type")

// ParseDocType validates s as a DocType. Matching is exact; "PDF" is rejected.
func ParseDocType(s string) (DocType, error) {
	switch DocType(s) {
	case DocTypeDoc, DocTypePDF:
		return DocType(s), nil
	}
	return "", fmt.Errorf("%w (%s) specified", ErrInvalidDocType, strings.TrimSpace(s))
}
