// gen-diagrams generates sample fallback diagram outputs for README documentation.
// Run: go run ./cmd/gen-diagrams
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manukrishna804/logic-solver-ai/internal/diagram"
)

// Even/odd check with one decision, as a model typically drafts it.
const sampleAlgorithm = `1. Start
2. Input: Get the number from user
3. If number % 2 == 0
4. Output: "Number is even"
5. Else
6. Output: "Number is odd"
7. End`

func main() {
	g, degraded := diagram.FallbackGraph(sampleAlgorithm)
	if degraded != nil {
		fmt.Fprintf(os.Stderr, "build degraded: %v\n", degraded)
	}

	outDir := filepath.Join("docs", "assets")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir error: %v\n", err)
		os.Exit(1)
	}

	// ASCII
	ascii := diagram.RenderASCII(g)
	write(filepath.Join(outDir, "diagram-ascii.txt"), []byte(ascii))
	fmt.Println("=== ASCII ===")
	fmt.Println(ascii)

	// Mermaid
	mermaid := diagram.RenderMermaid(g)
	write(filepath.Join(outDir, "diagram-mermaid.md"), []byte("```mermaid\n"+mermaid+"\n```\n"))
	fmt.Println("=== Mermaid ===")
	fmt.Println(mermaid)

	// Images
	for _, format := range []diagram.ImageFormat{diagram.ImagePNG, diagram.ImageSVG} {
		img, err := diagram.RenderImage(context.Background(), g, format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s error: %v\n", format, err)
			continue
		}
		path := filepath.Join(outDir, "diagram-sample."+string(format))
		write(path, img)
		fmt.Printf("=== Image (%s) ===\nWritten: %s (%d bytes)\n", format, path, len(img))
	}
}

func write(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
	}
}
