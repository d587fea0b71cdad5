package qrcode

import (
	"testing"

	goqrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReceiptQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateReceiptQR("TRX-1700000000000-deadbeef")

	require.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
}

func TestNewQRCodeService_UnknownLevelDefaultsToMedium(t *testing.T) {
	svc := NewQRCodeService(128, "X").(*qrcodeService)

	assert.Equal(t, goqrcode.Medium, svc.errorCorrectionLevel)
}
