package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SeakMengs/FigStudio/internal/constant"
	"github.com/SeakMengs/FigStudio/internal/util"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
)

var (
	dpiArg     = flag.Int("dpi", figstudio.JournalQualityDPI, "output resolution, one of "+figstudio.DefaultDPIs.String())
	outArg     = flag.String("o", "figstudio_tmp", "output directory")
	paddingArg = flag.Int("padding", 0, "pixels kept around the cropped figure")
	noCropArg  = flag.Bool("no-crop", false, "keep the full page")
	zipArg     = flag.Bool("zip", false, "write a single zip instead of loose png files")
)

func main() {
	flag.CommandLine.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] <file.pdf>...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	logger := util.NewLogger("development")
	converter := figstudio.NewConverter(figstudio.FitzOpener, figstudio.DefaultDPIs, logger)

	crop := figstudio.DefaultCropOptions()
	crop.Padding = *paddingArg

	if err := os.MkdirAll(*outArg, 0o755); err != nil {
		logger.Fatal(err)
	}

	var entries []figstudio.ZipEntry
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal(err)
		}

		pages, err := converter.Convert(figstudio.ConversionRequest{
			Name:     path,
			PDF:      data,
			DPI:      *dpiArg,
			AutoCrop: !*noCropArg,
			Crop:     crop,
		})
		if err != nil {
			logger.Fatalf("failed to convert %s: %v", path, err)
		}

		for _, p := range pages {
			name := figstudio.PageFileName(path, p.Page)
			entries = append(entries, figstudio.ZipEntry{Name: name, Data: p.PNG})
			fmt.Printf("%s: %dx%d px at %d dpi, box %s\n", name, p.Width, p.Height, p.DPI, p.Box)
		}
	}

	if *zipArg {
		archive, err := figstudio.BuildZip(entries)
		if err != nil {
			logger.Fatal(err)
		}
		output := filepath.Join(*outArg, constant.BATCH_ZIP_NAME)
		if err := os.WriteFile(output, archive, 0o644); err != nil {
			logger.Fatal(err)
		}
		fmt.Printf("Wrote %d figures to %s\n", len(entries), output)
		return
	}

	for _, e := range entries {
		if err := os.WriteFile(filepath.Join(*outArg, e.Name), e.Data, 0o644); err != nil {
			logger.Fatal(err)
		}
	}
	fmt.Printf("PDF to PNG conversion successful. Output directory: %s\n", *outArg)
}
