package assets

import (
	"embed"
	"io/fs"
)

//go:embed words5.txt
var FS embed.FS

// Corpus opens the embedded reference corpus (five-letter words, one per line).
func Corpus() (fs.File, error) {
	return FS.Open("words5.txt")
}
