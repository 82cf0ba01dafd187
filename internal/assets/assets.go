// Package assets resolves the relative media paths stored in the quiz
// workbook into absolute URLs on the CDN.
package assets

import (
	"strconv"
	"strings"
)

// DefaultBaseURL is the production CDN prefix for game media.
const DefaultBaseURL = "https://upfile.neungyule.com/file_nebuildandgrow_co_kr/play/phonicscode/"

// slotSpinFile is the jingle played while the answer slot spins.
const slotSpinFile = "slotmachine2.mp3"

// Resolver joins workbook-relative asset paths onto a base URL.
type Resolver struct {
	base string
}

// NewResolver returns a Resolver rooted at base. An empty base selects
// DefaultBaseURL.
func NewResolver(base string) *Resolver {
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Resolver{base: base}
}

// URL resolves path against the base URL. Absolute http(s) URLs pass through
// untouched so the workbook can point individual rows elsewhere. An empty
// path resolves to an empty string.
func (r *Resolver) URL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return r.base + strings.TrimPrefix(path, "/")
}

// OptionAudio returns the pronunciation clip URL for an answer option. Clips
// follow the fixed naming scheme sound/B{level}_{phonetic}.mp3.
func (r *Resolver) OptionAudio(level int, phonetic string) string {
	return r.URL("sound/B" + strconv.Itoa(level) + "_" + phonetic + ".mp3")
}

// SlotSpinAudio returns the slot-machine jingle URL.
func (r *Resolver) SlotSpinAudio() string {
	return r.URL(slotSpinFile)
}
