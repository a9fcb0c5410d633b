// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed default.txt
var defaultWords string

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file)
}

// Default returns the embedded English word list.
func Default() []string {
	words, err := readWords(strings.NewReader(defaultWords))
	if err != nil {
		// The embedded list is never empty.
		panic(err)
	}
	return words
}

// FilterTypable keeps words made only of ASCII letters.
func FilterTypable(words []string) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if isTypable(word) {
			out = append(out, word)
		}
	}
	return out
}

// Resolve loads the word list at path, falling back to fallbackPath when it
// exists and finally to the embedded list. It returns the source it used.
func Resolve(path, fallbackPath string) ([]string, string, error) {
	if path != "" {
		words, err := LoadWords(path)
		if err != nil {
			return nil, path, err
		}
		return words, path, nil
	}
	if fallbackPath != "" {
		if _, err := os.Stat(fallbackPath); err == nil {
			words, err := LoadWords(fallbackPath)
			if err != nil {
				return nil, fallbackPath, err
			}
			return words, fallbackPath, nil
		}
	}
	return Default(), "embedded", nil
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

func isTypable(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') {
			return false
		}
	}
	return true
}
