// Package printing renders report documents to PDF.
//
// This package contains:
// - PDFRenderer interface for rendering a report.Document to PDF
// - FPDFRenderer implementation drawing the document in memory with fpdf
// - Page settings (paper size, orientation, margins)
//
// Example usage:
//
//	renderer := NewFPDFRenderer()
//
//	result, err := renderer.Render(ctx, &RenderRequest{
//	    Document:    doc,
//	    PaperSize:   PaperSizeA4,
//	    Orientation: OrientationPortrait,
//	    Margins:     DefaultMargins(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Generated PDF: %d bytes, %d pages\n", len(result.PDFData), result.PageCount)
package printing
