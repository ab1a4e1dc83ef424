// Package pdf renders donation receipts with maroto.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	donationdomain "github.com/heartlink/heartlink/internal/donation/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type Renderer struct{}

func NewRenderer() donationdomain.ReceiptRenderer {
	return &Renderer{}
}

func (r *Renderer) RenderReceipt(ctx context.Context, data donationdomain.ReceiptData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(30,
		text.NewCol(12, "Donation Receipt", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Receipt number: "+data.ReceiptNumber, props.Text{Top: 0}),
			text.New("Completed on: "+data.CompletedOn, props.Text{Top: 4}),
		),
		col.New(6),
	)

	m.AddRow(30,
		col.New(6).Add(
			text.New("From", props.Text{Style: fontstyle.Bold}),
			text.New(data.DonorName, props.Text{Top: 5}),
		),
		col.New(6).Add(
			text.New("To", props.Text{Style: fontstyle.Bold}),
			text.New(data.OrphanageName, props.Text{Top: 5}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Category", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Value", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	description, value := lineItem(data)
	m.AddRow(15,
		text.NewCol(6, description, props.Text{Size: 9}),
		text.NewCol(3, data.CategoryName, props.Text{Size: 9}),
		text.NewCol(3, value, props.Text{Size: 9, Align: align.Right}),
	)

	m.AddRow(15,
		text.NewCol(12, "Thank you for your support.", props.Text{
			Size: 9,
			Top:  5,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func lineItem(data donationdomain.ReceiptData) (description, value string) {
	if data.DonationType == donationdomain.TypeInKind {
		return data.ItemDescription, fmt.Sprintf("%d item(s)", data.Quantity)
	}
	return "Monetary donation", data.AmountFormatted
}
