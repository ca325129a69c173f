package export

import (
	"html"
	"strconv"
	"strings"
	"time"

	"truckledger-backend/internal/models"
	"truckledger-backend/internal/report"
)

// displayDateLayout is the human-readable date form used in print documents.
const displayDateLayout = "Jan 2, 2006"

const printStyles = `
      body { font-family: Arial, sans-serif; margin: 20px; }
      h1 { font-size: 18px; margin-bottom: 10px; }
      h2 { font-size: 16px; margin-top: 20px; margin-bottom: 10px; }
      h3 { font-size: 14px; margin-top: 15px; margin-bottom: 5px; }
      table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
      th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
      th { background-color: #f2f2f2; }
      .summary { margin-bottom: 30px; }
`

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// formatCurrency renders "$1,234.56"; negative values come out as "-$...".
func formatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	out := "$" + groupThousands(s[:dot]) + s[dot:]
	if neg {
		return "-" + out
	}
	return out
}

// formatMileage renders a mileage reading with thousands separators and no
// forced decimals: 125000 -> "125,000", 120.5 -> "120.5".
func formatMileage(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	return groupThousands(intPart) + frac
}

// truckLabel resolves a truck id to its display name, falling back to the
// raw id when the truck is gone.
func truckLabel(trucksMap map[uint]string, id uint) string {
	if name, ok := trucksMap[id]; ok {
		return name
	}
	return strconv.FormatUint(uint64(id), 10)
}

func esc(s string) string {
	return html.EscapeString(s)
}

func openDocument(b *strings.Builder, title string) {
	b.WriteString("<html>\n<head>\n<title>")
	b.WriteString(esc(title))
	b.WriteString("</title>\n<style>")
	b.WriteString(printStyles)
	b.WriteString("</style>\n</head>\n<body>\n<h1>")
	b.WriteString(esc(title))
	b.WriteString("</h1>\n")
}

func closeDocument(b *strings.Builder) {
	b.WriteString("</body>\n</html>\n")
}

// WriteRawPrintDocument renders filtered record sets as a self-contained
// printable HTML document. Saving it as PDF is the host browser's job; this
// side only guarantees well-formed markup. Unlike the delimited export,
// free-text fields are HTML-escaped here.
func WriteRawPrintDocument(expenses []models.Expense, payEntries []models.PayEntry, maintenanceLogs []models.MaintenanceLog, trucksMap map[uint]string, from, to time.Time) string {
	var b strings.Builder

	openDocument(&b, "Trucking Expense Tracker Report")
	b.WriteString("<p>Date Range: ")
	b.WriteString(from.Format(displayDateLayout))
	b.WriteString(" - ")
	b.WriteString(to.Format(displayDateLayout))
	b.WriteString("</p>\n")

	if len(expenses) > 0 {
		b.WriteString("<h2>Expenses</h2>\n<table>\n<thead>\n<tr><th>Date</th><th>Category</th><th>Amount</th><th>Description</th><th>Truck</th></tr>\n</thead>\n<tbody>\n")
		for _, exp := range expenses {
			truck := ""
			if exp.TruckID != nil {
				truck = truckLabel(trucksMap, *exp.TruckID)
			}
			b.WriteString("<tr><td>")
			b.WriteString(exp.Date.Format(displayDateLayout))
			b.WriteString("</td><td>")
			b.WriteString(esc(string(exp.Category)))
			b.WriteString("</td><td>")
			b.WriteString(formatCurrency(exp.Amount))
			b.WriteString("</td><td>")
			b.WriteString(esc(exp.Description))
			b.WriteString("</td><td>")
			b.WriteString(esc(truck))
			b.WriteString("</td></tr>\n")
		}
		b.WriteString("</tbody>\n</table>\n")
	}

	if len(payEntries) > 0 {
		b.WriteString("<h2>Pay Entries</h2>\n<table>\n<thead>\n<tr><th>Start Date</th><th>End Date</th><th>Amount</th><th>Client</th><th>Notes</th></tr>\n</thead>\n<tbody>\n")
		for _, pay := range payEntries {
			b.WriteString("<tr><td>")
			b.WriteString(pay.StartDate.Format(displayDateLayout))
			b.WriteString("</td><td>")
			b.WriteString(pay.EndDate.Format(displayDateLayout))
			b.WriteString("</td><td>")
			b.WriteString(formatCurrency(pay.Amount))
			b.WriteString("</td><td>")
			b.WriteString(esc(pay.Client))
			b.WriteString("</td><td>")
			b.WriteString(esc(pay.Notes))
			b.WriteString("</td></tr>\n")
		}
		b.WriteString("</tbody>\n</table>\n")
	}

	if len(maintenanceLogs) > 0 {
		b.WriteString("<h2>Maintenance Logs</h2>\n<table>\n<thead>\n<tr><th>Date</th><th>Truck</th><th>Service Type</th><th>Mileage</th><th>Cost</th><th>Description</th></tr>\n</thead>\n<tbody>\n")
		for _, ml := range maintenanceLogs {
			b.WriteString("<tr><td>")
			b.WriteString(ml.Date.Format(displayDateLayout))
			b.WriteString("</td><td>")
			b.WriteString(esc(truckLabel(trucksMap, ml.TruckID)))
			b.WriteString("</td><td>")
			b.WriteString(esc(string(ml.ServiceType)))
			b.WriteString("</td><td>")
			b.WriteString(formatMileage(ml.Mileage))
			b.WriteString("</td><td>")
			b.WriteString(formatCurrency(ml.Cost))
			b.WriteString("</td><td>")
			b.WriteString(esc(ml.Description))
			b.WriteString("</td></tr>\n")
		}
		b.WriteString("</tbody>\n</table>\n")
	}

	closeDocument(&b)
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// WriteTaxReportPrintDocument renders an aggregated report as a printable
// HTML document: per period, a summary table followed by the category and
// service-type breakdowns, all currency formatted.
func WriteTaxReportPrintDocument(r *report.Report) string {
	var b strings.Builder

	title := "Tax Report - " + capitalize(string(r.Granularity)) + " - " + strconv.Itoa(r.Year)
	openDocument(&b, title)

	for _, period := range r.Periods {
		bucket := r.Buckets[period]

		b.WriteString("<div class=\"summary\">\n<h2>")
		b.WriteString(esc(period))
		b.WriteString("</h2>\n<table>\n<thead>\n<tr><th>Category</th><th>Amount</th></tr>\n</thead>\n<tbody>\n")
		b.WriteString("<tr><td>Income</td><td>")
		b.WriteString(formatCurrency(bucket.Income))
		b.WriteString("</td></tr>\n<tr><td>Expenses</td><td>")
		b.WriteString(formatCurrency(bucket.Expenses))
		b.WriteString("</td></tr>\n<tr><td>Maintenance</td><td>")
		b.WriteString(formatCurrency(bucket.Maintenance))
		b.WriteString("</td></tr>\n<tr><td><strong>Profit</strong></td><td><strong>")
		b.WriteString(formatCurrency(bucket.Profit))
		b.WriteString("</strong></td></tr>\n</tbody>\n</table>\n")

		b.WriteString("<h3>Expenses by Category</h3>\n")
		if len(bucket.ExpensesByCategory) > 0 {
			b.WriteString("<table>\n<thead>\n<tr><th>Category</th><th>Amount</th></tr>\n</thead>\n<tbody>\n")
			for _, cat := range sortedCategories(bucket.ExpensesByCategory) {
				b.WriteString("<tr><td>")
				b.WriteString(esc(string(cat)))
				b.WriteString("</td><td>")
				b.WriteString(formatCurrency(bucket.ExpensesByCategory[cat]))
				b.WriteString("</td></tr>\n")
			}
			b.WriteString("</tbody>\n</table>\n")
		} else {
			b.WriteString("<p>No expense data available</p>\n")
		}

		b.WriteString("<h3>Maintenance by Type</h3>\n")
		if len(bucket.MaintenanceByType) > 0 {
			b.WriteString("<table>\n<thead>\n<tr><th>Service Type</th><th>Amount</th></tr>\n</thead>\n<tbody>\n")
			for _, st := range sortedServiceTypes(bucket.MaintenanceByType) {
				b.WriteString("<tr><td>")
				b.WriteString(esc(string(st)))
				b.WriteString("</td><td>")
				b.WriteString(formatCurrency(bucket.MaintenanceByType[st]))
				b.WriteString("</td></tr>\n")
			}
			b.WriteString("</tbody>\n</table>\n")
		} else {
			b.WriteString("<p>No maintenance data available</p>\n")
		}

		b.WriteString("</div>\n")
	}

	closeDocument(&b)
	return b.String()
}
