package wishlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TripleAConsortium/gog-price-checker/internal/rank"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// renderPlain formats best offers one product per line, in wishlist order.
func renderPlain(best []rank.BestOffer) string {
	var b strings.Builder
	for _, offer := range best {
		fmt.Fprintf(&b, "%s: %s %s (%s)\n",
			offer.Title, offer.Price.Amount.StringFixed(2), offer.Price.Currency, offer.Price.Region)
	}
	return b.String()
}

// renderPretty formats best offers as a styled table.
func renderPretty(best []rank.BestOffer) string {
	if len(best) == 0 {
		return ""
	}

	headers := []string{"Product", "Best price", "Region"}
	rows := make([][]string, 0, len(best))
	for _, offer := range best {
		rows = append(rows, []string{
			offer.Title,
			fmt.Sprintf("%s %s", offer.Price.Amount.StringFixed(2), offer.Price.Currency),
			offer.Price.Region,
		})
	}

	widths := columnWidths(headers, rows)

	var b strings.Builder
	b.WriteString(headerStyle.Render(formatRow(headers, widths)))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(rowStyle.Render(formatRow(row, widths)))
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

// OfferReport is one product row of the JSON report.
type OfferReport struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Region    string `json:"region"`
	Code      string `json:"code"`
}

// Report is the JSON output of a wishlist check.
type Report struct {
	Username string        `json:"username"`
	Offers   []OfferReport `json:"offers"`
}

func buildReport(username string, best []rank.BestOffer) Report {
	report := Report{Username: username, Offers: make([]OfferReport, 0, len(best))}
	for _, offer := range best {
		report.Offers = append(report.Offers, OfferReport{
			ProductID: offer.ID,
			Title:     offer.Title,
			Amount:    offer.Price.Amount.StringFixed(2),
			Currency:  offer.Price.Currency,
			Region:    offer.Price.Region,
			Code:      string(offer.Price.Code),
		})
	}
	return report
}
