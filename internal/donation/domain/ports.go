package domain

import (
	"context"
	"io"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// NeedFulfiller records fulfillment progress against a need when a donation
// tied to it completes. Implemented by the need service.
type NeedFulfiller interface {
	RecordFulfillment(ctx context.Context, tx *gorm.DB, needID snowflake.ID, quantity int) error
}

// ReceiptData is what the receipt renderer needs to produce a document.
type ReceiptData struct {
	ReceiptNumber   string
	DonorName       string
	OrphanageName   string
	CategoryName    string
	DonationType    DonationType
	AmountFormatted string
	ItemDescription string
	Quantity        int
	CompletedOn     string
}

// ReceiptRenderer produces a donation receipt document.
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, data ReceiptData) (io.Reader, error)
}
