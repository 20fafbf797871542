package product

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TripleAConsortium/gog-price-checker/internal/catalog"
	"github.com/TripleAConsortium/gog-price-checker/internal/fetch"
	"github.com/TripleAConsortium/gog-price-checker/internal/price"
	"github.com/TripleAConsortium/gog-price-checker/internal/rank"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))
	cheapestStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))
	rowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// renderPlain formats ranked prices one region per line, cheapest first.
func renderPlain(prices []price.RegionPrice, normalize bool) string {
	var b strings.Builder
	for _, p := range prices {
		b.WriteString(formatLine(p, normalize))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatLine(p price.RegionPrice, normalize bool) string {
	line := fmt.Sprintf("%s: %s %s", p.Region, p.Amount.StringFixed(2), p.Currency)
	if normalize && p.HasUSD && p.Currency != "USD" {
		line += fmt.Sprintf(" (%s USD)", p.AmountUSD.StringFixed(2))
	}
	return line
}

// renderPretty formats ranked prices as a styled table with the cheapest
// region highlighted.
func renderPretty(prices []price.RegionPrice, normalize bool) string {
	if len(prices) == 0 {
		return ""
	}

	showUSD := false
	if normalize {
		for _, p := range prices {
			if p.HasUSD {
				showUSD = true
				break
			}
		}
	}

	headers := []string{"Region", "Price"}
	if showUSD {
		headers = append(headers, "USD")
	}

	rows := make([][]string, 0, len(prices))
	for _, p := range prices {
		row := []string{p.Region, fmt.Sprintf("%s %s", p.Amount.StringFixed(2), p.Currency)}
		if showUSD {
			usd := ""
			if p.HasUSD {
				usd = fmt.Sprintf("%s USD", p.AmountUSD.StringFixed(2))
			}
			row = append(row, usd)
		}
		rows = append(rows, row)
	}

	widths := columnWidths(headers, rows)

	var b strings.Builder
	b.WriteString(headerStyle.Render(formatRow(headers, widths)))
	b.WriteByte('\n')
	for i, row := range rows {
		style := rowStyle
		if i == 0 {
			style = cheapestStyle
		}
		b.WriteString(style.Render(formatRow(row, widths)))
		b.WriteByte('\n')
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

// RegionReport is one ranked row of the JSON report.
type RegionReport struct {
	Region    string `json:"region"`
	Code      string `json:"code"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	AmountUSD string `json:"amount_usd,omitempty"`
}

// ExcludedReport records a region that returned no usable price.
type ExcludedReport struct {
	Region string `json:"region"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

// Report is the JSON output of a product price check.
type Report struct {
	ProductID string           `json:"product_id"`
	Prices    []RegionReport   `json:"prices"`
	Excluded  []ExcludedReport `json:"excluded,omitempty"`
}

func buildReport(productID string, ranked []price.RegionPrice, results map[catalog.Code]fetch.PriceResult) Report {
	report := Report{ProductID: productID, Prices: make([]RegionReport, 0, len(ranked))}

	for _, p := range ranked {
		row := RegionReport{
			Region:   p.Region,
			Code:     string(p.Code),
			Amount:   p.Amount.StringFixed(2),
			Currency: p.Currency,
		}
		if p.HasUSD {
			row.AmountUSD = p.AmountUSD.StringFixed(2)
		}
		report.Prices = append(report.Prices, row)
	}

	for _, r := range rank.Excluded(results) {
		report.Excluded = append(report.Excluded, ExcludedReport{
			Region: r.Region.Name,
			Code:   string(r.Region.Code),
			Error:  r.Err.Error(),
		})
	}

	return report
}
