package service

import (
	"io"
	"strings"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

type productCSVRow struct {
	ID                 int64  `csv:"id"`
	SKU                string `csv:"sku"`
	Name               string `csv:"name"`
	Categories         string `csv:"categories"`
	Supplier           string `csv:"supplier"`
	BuyingPrice        string `csv:"buying_price"`
	SuggestedPrice     string `csv:"suggested_price"`
	Stock              int    `csv:"stock"`
	AvailabilityStatus string `csv:"availability_status"`
	MeasurementUnit    string `csv:"measurement_unit"`
	Location           string `csv:"location"`
}

func writeProductsCSV(products []*domain.Product, w io.Writer) error {
	rows := make([]*productCSVRow, 0, len(products))
	for _, p := range products {
		names := make([]string, 0, len(p.Categories))
		for _, c := range p.Categories {
			names = append(names, c.Name)
		}
		row := &productCSVRow{
			ID:                 p.ID,
			SKU:                p.SKU,
			Name:               p.Name,
			Categories:         strings.Join(names, "|"),
			BuyingPrice:        p.BuyingPrice.StringFixed(2),
			SuggestedPrice:     p.SuggestedPrice.StringFixed(2),
			Stock:              p.Stock,
			AvailabilityStatus: string(p.AvailabilityStatus),
			MeasurementUnit:    p.MeasurementUnit,
		}
		if p.Supplier != nil {
			row.Supplier = p.Supplier.Name
		}
		if p.Location != nil {
			row.Location = *p.Location
		}
		rows = append(rows, row)
	}
	return errors.Wrap(gocsv.Marshal(rows, w), "export products csv")
}
