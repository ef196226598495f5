package tui

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// Art dimensions in terminal cells.
const (
	ArtWidth  = 20
	ArtHeight = 14
)

// ArtCache converts card images to ANSI art and keeps the result on disk.
type ArtCache struct {
	Dir string
}

// Art returns ANSI art for a local image path. Remote references and images
// that cannot be decoded return an error; callers show the placeholder.
func (a ArtCache) Art(imagePath string) (string, error) {
	if imagePath == "" || strings.Contains(imagePath, "://") {
		return "", fmt.Errorf("no local image")
	}
	if _, err := os.Stat(imagePath); err != nil {
		return "", fmt.Errorf("image not found: %s", imagePath)
	}

	var cachePath string
	if a.Dir != "" {
		if err := os.MkdirAll(a.Dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
		}
		abs, _ := filepath.Abs(imagePath)
		cachePath = filepath.Join(a.Dir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(abs))))
		if data, err := os.ReadFile(cachePath); err == nil {
			return string(data), nil
		}
	}

	art, err := generateAnsiArt(imagePath)
	if err != nil {
		return "", err
	}
	if cachePath != "" {
		// A failed cache write only costs a regeneration next time.
		_ = os.WriteFile(cachePath, []byte(art), 0644)
	}
	return art, nil
}

// generateAnsiArt decodes an image file and converts it to ANSI art
func generateAnsiArt(imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return imageToAnsi(img, ArtWidth, ArtHeight), nil
}

// imageToAnsi converts an image to ANSI art using upper half blocks, so each
// cell carries two vertically stacked pixels.
func imageToAnsi(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			top := averageColor(colorAt(resized, x, y), colorAt(resized, x+1, y))
			bottom := averageColor(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			buffer.WriteString(ansiCell('▀', top, bottom))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// colorAt returns the colour at a coordinate, black when out of bounds
func colorAt(img image.Image, x, y int) colorful.Color {
	bounds := img.Bounds()
	var c color.Color = color.RGBA{0, 0, 0, 255}
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		c = img.At(x, y)
	}
	col, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent pixels.
		return colorful.Color{}
	}
	return col
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

func ansiCell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m", r1, g1, b1, r2, g2, b2, char)
}

// placeholderArt is drawn when a card's image cannot be shown.
func placeholderArt() string {
	var b strings.Builder
	inner := ArtWidth - 2
	label := "Card Image"
	pad := (inner - len(label)) / 2
	b.WriteString("┌" + strings.Repeat("─", inner) + "┐\n")
	for row := 1; row < ArtHeight-1; row++ {
		if row == (ArtHeight-1)/2 {
			b.WriteString("│" + strings.Repeat(" ", pad) + label + strings.Repeat(" ", inner-pad-len(label)) + "│\n")
			continue
		}
		b.WriteString("│" + strings.Repeat(" ", inner) + "│\n")
	}
	b.WriteString("└" + strings.Repeat("─", inner) + "┘\n")
	return b.String()
}
