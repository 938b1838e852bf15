package main

import (
	"fmt"
	"os"

	"github.com/SeakMengs/FigStudio/pkg/figstudio"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: pdf_size <file.pdf>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	converter := figstudio.NewConverter(nil, nil, nil)
	info, err := converter.Inspect(data)
	if err != nil {
		panic(err)
	}

	fmt.Printf("PDF Page Count: %d\n", info.PageCount)
	for _, size := range info.PageSizes {
		fmt.Printf("Page %d: %.2f x %.2f pt\n", size.Page, size.Width, size.Height)
	}
	for _, p := range info.Previews {
		quality := ""
		if p.JournalQuality {
			quality = " (journal quality)"
		}
		fmt.Printf("First page at %d dpi: %d x %d px%s\n", p.DPI, p.Width, p.Height, quality)
	}
}
