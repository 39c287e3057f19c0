// Package wordlist embeds the label list used by the brute-force
// discovery module.
package wordlist

import (
	"bufio"
	"bytes"
	"sync"

	_ "embed"
)

//go:embed subdomains.txt
var raw []byte

var load = sync.OnceValue(func() []string {
	var words []string
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		words = append(words, string(line))
	}
	return words
})

// Subdomains returns the embedded label list, trimmed, with comments and
// blank lines removed. The returned slice is shared; callers must not
// mutate it.
func Subdomains() []string {
	return load()
}
