package printing

import "fmt"

// PaperSize represents the paper size for printing
type PaperSize string

const (
	PaperSizeA4     PaperSize = "A4"     // 210mm x 297mm
	PaperSizeA5     PaperSize = "A5"     // 148mm x 210mm
	PaperSizeLetter PaperSize = "LETTER" // 216mm x 279mm
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeA4, PaperSizeA5, PaperSizeLetter:
		return true
	}
	return false
}

// String returns the string representation of PaperSize
func (p PaperSize) String() string {
	return string(p)
}

// fpdfSize returns the page size name understood by fpdf
func (p PaperSize) fpdfSize() string {
	switch p {
	case PaperSizeA5:
		return "A5"
	case PaperSizeLetter:
		return "Letter"
	default:
		return "A4"
	}
}

// Orientation represents the page orientation for printing
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// IsValid checks if the Orientation is a valid value
func (o Orientation) IsValid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

func (o Orientation) fpdfOrientation() string {
	if o == OrientationLandscape {
		return "L"
	}
	return "P"
}

// Margins represents page margins in millimeters
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// NewMargins creates margins, rejecting negative or oversized values
func NewMargins(top, right, bottom, left int) (Margins, error) {
	for _, m := range []int{top, right, bottom, left} {
		if m < 0 || m > 100 {
			return Margins{}, fmt.Errorf("margins must be between 0 and 100mm, got %d", m)
		}
	}
	return Margins{Top: top, Right: right, Bottom: bottom, Left: left}, nil
}

// DefaultMargins returns the default page margins for A4 paper
func DefaultMargins() Margins {
	return Margins{
		Top:    20,
		Right:  18,
		Bottom: 18,
		Left:   18,
	}
}

// IsZero reports whether no margin is set
func (m Margins) IsZero() bool {
	return m == Margins{}
}
