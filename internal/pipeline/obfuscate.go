package pipeline

import (
	"html"
	"strings"
)

// maskedAt replaces "@" in visible address text.
const maskedAt = "&#32;&#97;t&#32;"

// Obfuscator renders email addresses so the "@" separator never appears as
// plain text. Addresses on the trust list become mailto links.
type Obfuscator struct {
	links Links
}

// NewObfuscator creates an Obfuscator using the trust list from links.
func NewObfuscator(links Links) *Obfuscator {
	return &Obfuscator{links: links.withDefaults()}
}

// Obfuscate returns the linked form for trusted addresses and the masked
// form for every other address.
func (o *Obfuscator) Obfuscate(address, docID string) string {
	if o.links.Trusted(address) {
		return o.Link(address, docID)
	}
	return o.Mask(address)
}

// Mask returns the address with "@" spelled out as numeric character
// references. No anchor is produced.
func (o *Obfuscator) Mask(address string) string {
	local, domain, ok := strings.Cut(address, "@")
	if !ok {
		return html.EscapeString(address)
	}
	return html.EscapeString(local) + maskedAt + html.EscapeString(domain)
}

// Link returns a mailto anchor whose subject names the document. The visible
// text is masked the same way as Mask.
func (o *Obfuscator) Link(address, docID string) string {
	local, domain, ok := strings.Cut(address, "@")
	if !ok {
		return html.EscapeString(address)
	}
	local, domain = html.EscapeString(local), html.EscapeString(domain)
	return `<a href="mailto:` + local + "&#64;" + domain +
		"?subject=REP%20" + html.EscapeString(docID) + `">` +
		local + maskedAt + domain + "</a>"
}
