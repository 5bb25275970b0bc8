package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(tableID string) ([]byte, error)
}

// TableQRGenerator encodes the per-table entry link customers scan to open
// the ordering view.
type TableQRGenerator struct {
	BaseURL string
}

func (g TableQRGenerator) Generate(tableID string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/table/%s", g.BaseURL, tableID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
