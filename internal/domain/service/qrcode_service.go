package service

// QRCodeService defines the interface for QR code rendering.
type QRCodeService interface {
	// GenerateReceiptQR renders a PNG QR code encoding a transaction
	// reference, suitable for receipt scanning.
	GenerateReceiptQR(reference string) ([]byte, error)
}
