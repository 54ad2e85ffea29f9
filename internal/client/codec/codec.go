// Package codec maps an entry's text and optional image reference onto the
// single flat blob stored both in local entry files and in remote documents.
//
// A blob with an image starts with a marker line:
//
//	IMAGE_URI::journal_images/IMG_2025-06-02.jpg
//	Beach day
//
// A blob without the marker line has no image. Text is stored verbatim, so a
// body whose first line itself starts with the marker cannot be told apart
// from a real marker; existing files rely on this exact format.
package codec

import "strings"

// MarkerPrefix starts the reserved first line of a blob that references an image.
const MarkerPrefix = "IMAGE_URI::"

// Encode builds a blob. An empty imagePath means "no image".
func Encode(text, imagePath string) string {
	if imagePath == "" {
		return text
	}
	return MarkerPrefix + imagePath + "\n" + text
}

// Decode splits a blob into its text and image path. imagePath is empty when
// the first line is not a marker line.
func Decode(blob string) (text, imagePath string) {
	if !strings.HasPrefix(blob, MarkerPrefix) {
		return blob, ""
	}

	first, rest, _ := strings.Cut(blob, "\n")
	imagePath = strings.TrimRightFunc(strings.TrimPrefix(first, MarkerPrefix), isSpace)

	return rest, imagePath
}

// ImagePath returns only the image path of blob.
func ImagePath(blob string) string {
	_, p := Decode(blob)
	return p
}

// HasImage reports whether blob carries a marker line with a non-empty path.
func HasImage(blob string) bool {
	return ImagePath(blob) != ""
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f'
}
