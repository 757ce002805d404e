package document

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"regexp"
	"sort"
	"strings"
)

// DefaultUIDLength is the truncation applied to content hashes.
const DefaultUIDLength = 8

var docIDPattern = regexp.MustCompile(`^doc::([^:]+)`)

// UID derives a stable content identifier for a document payload. Zip
// containers (docx and friends) hash their word/*.xml entries in sorted
// order so volatile zip metadata never shifts the ID; anything else hashes
// the raw bytes. length truncates the hex digest; 0 means DefaultUIDLength.
func UID(data []byte, length int) string {
	if length <= 0 {
		length = DefaultUIDLength
	}

	var sum [sha256.Size]byte
	if bytes.HasPrefix(data, []byte("PK")) {
		if h, ok := zipContentHash(data); ok {
			sum = h
		} else {
			sum = sha256.Sum256(data)
		}
	} else {
		sum = sha256.Sum256(data)
	}

	uid := hex.EncodeToString(sum[:])
	if length < len(uid) {
		uid = uid[:length]
	}
	return uid
}

// zipContentHash hashes the names and contents of the container's
// word/*.xml entries in sorted name order.
func zipContentHash(data []byte) ([sha256.Size]byte, bool) {
	var zero [sha256.Size]byte

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return zero, false
	}

	var names []string
	files := make(map[string]*zip.File)
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") && strings.HasSuffix(f.Name, ".xml") {
			names = append(names, f.Name)
			files[f.Name] = f
		}
	}
	if len(names) == 0 {
		return zero, false
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		rc, err := files[name].Open()
		if err != nil {
			return zero, false
		}
		h.Write([]byte(name))
		if _, err := io.Copy(h, rc); err != nil {
			rc.Close()
			return zero, false
		}
		rc.Close()
	}

	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum, true
}

// MakeDocID builds a content-derived document ID from a UID.
func MakeDocID(uid string) string {
	return "doc::" + slug(uid)
}

// DocUID extracts the UID part of a document ID; empty when the ID does not
// carry one.
func DocUID(docID string) string {
	m := docIDPattern.FindStringSubmatch(docID)
	if m == nil {
		return ""
	}
	return m[1]
}

// slug lowercases and collapses anything outside [a-z0-9] into single
// hyphens.
func slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
