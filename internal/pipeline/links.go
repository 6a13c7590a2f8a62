package pipeline

import (
	"fmt"
	"slices"
	"strings"
)

// Default link targets.
const (
	DefaultRFCURL       = "http://www.faqs.org/rfcs/rfc%d.html"
	DefaultDocURL       = "rep-%04d.html"
	DefaultSourceURL    = "https://github.com/ros-infrastructure/rep/blob/master/rep-%04d.rst"
	DefaultTypeRegistry = 9
)

// IndexDocID identifies the index document.
const IndexDocID = 0

// DefaultTrustList holds the addresses that are published as mailto links.
var DefaultTrustList = []string{
	"ros-users@code.ros.org",
	"ros-developers@code.ros.org",
}

// Links holds the URL templates and trust list used while rendering.
// Templates are fmt formats taking a single integer.
type Links struct {
	RFCURL       string
	DocURL       string
	SourceURL    string
	TypeRegistry int
	TrustList    []string
}

// DefaultLinks returns the stock link configuration.
func DefaultLinks() Links {
	return Links{
		RFCURL:       DefaultRFCURL,
		DocURL:       DefaultDocURL,
		SourceURL:    DefaultSourceURL,
		TypeRegistry: DefaultTypeRegistry,
		TrustList:    slices.Clone(DefaultTrustList),
	}
}

// withDefaults fills empty templates and copies the trust list so callers
// cannot mutate it after construction.
func (l Links) withDefaults() Links {
	if l.RFCURL == "" {
		l.RFCURL = DefaultRFCURL
	}
	if l.DocURL == "" {
		l.DocURL = DefaultDocURL
	}
	if l.SourceURL == "" {
		l.SourceURL = DefaultSourceURL
	}
	if l.TypeRegistry == 0 {
		l.TypeRegistry = DefaultTypeRegistry
	}
	if l.TrustList == nil {
		l.TrustList = DefaultTrustList
	}
	l.TrustList = slices.Clone(l.TrustList)
	return l
}

// RFC returns the citation registry URL for an RFC number.
func (l Links) RFC(n int) string {
	return fmt.Sprintf(l.RFCURL, n)
}

// Doc returns the page URL for a document number.
func (l Links) Doc(n int) string {
	return fmt.Sprintf(l.DocURL, n)
}

// Source returns the source-history URL for a document number.
func (l Links) Source(n int) string {
	return fmt.Sprintf(l.SourceURL, n)
}

// Trusted reports whether address is on the trust list (case-insensitive).
func (l Links) Trusted(address string) bool {
	return slices.ContainsFunc(l.TrustList, func(t string) bool {
		return strings.EqualFold(t, address)
	})
}
