// Package billing renders order bills as PDF documents.
package billing

import (
	"bytes"
	"fmt"
	"time"

	"urbanease-api/models"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// BillNumber derives a stable, human-readable bill reference for an order.
func BillNumber(order *models.Order) string {
	return fmt.Sprintf("BILL/%s/%06d", order.OrderDate.Format("20060102"), order.ID)
}

// RenderOrderBill produces the PDF bill for a delivered-or-in-flight order.
// The order must have its Meal and Customer associations loaded.
func RenderOrderBill(order *models.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "UrbanEase", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Tiffin Order Bill", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Bill No: "+BillNumber(order), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+order.OrderDate.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Customer: "+order.Customer.Username, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Deliver to: "+order.DeliveryAddress, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Line items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	lineTotal := order.BasePrice.Mul(decimal.NewFromInt(int64(order.Quantity)))
	pdf.CellFormat(80, 8, order.Meal.MealName, "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, fmt.Sprintf("%d", order.Quantity), "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, order.BasePrice.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, lineTotal.StringFixed(2), "1", 1, "R", false, 0, "")

	pdf.CellFormat(145, 8, "Fast delivery charge", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, order.FastDeliveryCharge.StringFixed(2), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(145, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, order.TotalPrice.StringFixed(2), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04")+" - thank you for ordering with UrbanEase.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
