package shell

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"fakestore/shop/internal/service"

	"github.com/olekukonko/tablewriter"
)

const (
	fullStar  = "★"
	emptyStar = "☆"
	maxStars  = 5
)

// Stars renders a 0-5 rating as five stars. A fraction of .5 or more counts as
// a full star; everything else is padded with empty stars.
func Stars(rate float64) string {
	full := int(math.Floor(rate))
	if rate-float64(full) >= 0.5 {
		full++
	}
	full = max(0, min(full, maxStars))
	return strings.Repeat(fullStar, full) + strings.Repeat(emptyStar, maxStars-full)
}

func (s *Shell) render(w io.Writer, snap service.Snapshot) {
	cartLabel := "My Cart"
	if snap.CartCount > 0 {
		cartLabel = fmt.Sprintf("My Cart (%d items)", snap.CartCount)
	}
	fmt.Fprintf(w, "\n[Home]  Search by category: %q  [%s]\n", snap.State.SearchTerm, cartLabel)

	if snap.Notification {
		fmt.Fprintln(w, "Successfully added to cart")
	}

	if snap.State.CartView {
		s.renderCart(w, snap)
		return
	}
	s.renderCatalog(w, snap)
}

func (s *Shell) renderCart(w io.Writer, snap service.Snapshot) {
	fmt.Fprintln(w, "My Cart")

	if len(snap.Lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}

	table := newTable(w, []string{"ID", "Title", "Price", "Quantity"})
	for _, l := range snap.Lines {
		table.Append([]string{
			strconv.FormatInt(l.Product.ID, 10),
			l.Product.Title,
			"$" + l.Product.Price.String(),
			strconv.Itoa(l.Quantity),
		})
	}
	table.Render()

	fmt.Fprintf(w, "Total: $%s\n", snap.Total)
	fmt.Fprintln(w, "[Back to Products]")
}

func (s *Shell) renderCatalog(w io.Writer, snap service.Snapshot) {
	if !snap.CatalogLoaded {
		fmt.Fprintln(w, "Loading products...")
	}

	if len(snap.Products) > 0 {
		table := newTable(w, []string{"ID", "Title", "Category", "Rating", "Price"})
		for _, p := range snap.Products {
			table.Append([]string{
				strconv.FormatInt(p.ID, 10),
				p.Title,
				p.Category,
				Stars(p.Rating.Rate),
				"$" + p.Price.String(),
			})
		}
		table.Render()

		for _, p := range snap.Products {
			if s.expanded[p.ID] {
				fmt.Fprintf(w, "%s Description\n%s\n", p.Title, p.Description)
			}
		}
	}

	prev, next := "[Previous]", "[Next]"
	if !snap.HasPrev {
		prev = "(Previous)"
	}
	if !snap.HasNext {
		next = "(Next)"
	}
	fmt.Fprintf(w, "%s Page %d %s\n", prev, snap.State.Page, next)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	return table
}
