package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/legalease/legalease/backend/go-services/internal/document/service"
	"github.com/legalease/legalease/backend/go-services/internal/export"
)

// Export a saved document from a user's store slot to a PDF on disk.
// Useful for rendering server-side without going through the HTTP API.
func main() {
	var (
		dataDir  = flag.String("data", "data", "data directory holding document store slots")
		userID   = flag.String("user", "", "user slot to read from")
		docID    = flag.String("id", "", "document id to export")
		language = flag.String("lang", "en", "language code for font selection")
		fontDir  = flag.String("fonts", "fonts", "directory holding language font files")
		outPath  = flag.String("out", "", "output path (defaults to the stored filename)")
	)
	flag.Parse()

	if *userID == "" || *docID == "" {
		flag.Usage()
		os.Exit(2)
	}

	stores := service.NewManager(*dataDir)
	svc, err := stores.Get(*userID)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	doc, err := svc.Get(*docID)
	if err != nil {
		log.Fatalf("load document %s: %v", *docID, err)
	}

	filename := export.EnsurePDFExt(doc.Filename)
	pdf, err := export.NewPipeline(*fontDir).Render(doc.Content, filename, *language)
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	out := *outPath
	if out == "" {
		out = filename
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		log.Fatalf("write %s: %v", out, err)
	}
	log.Printf("exported %s (%d bytes) to %s", doc.ID, len(pdf), out)
}
