package wiki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageLink is one entry anchor found on a category listing page.
type PageLink struct {
	Name string
	Href string
}

// CardRow is one row of a card table page.
type CardRow struct {
	Name   string
	Href   string
	Rarity string
	Type   string
	Energy string
	Effect string
}

// RelicInfo holds the infobox fields of a relic or potion detail page.
type RelicInfo struct {
	Description string
	Rarity      string
	Class       string
}

// ParseCategoryPage extracts the member links of a category listing page.
func ParseCategoryPage(doc *goquery.Document) []PageLink {
	var links []PageLink
	doc.Find("a.category-page__member-link").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if name == "" {
			return
		}
		href, _ := sel.Attr("href")
		links = append(links, PageLink{Name: name, Href: href})
	})
	return links
}

// ParseHeadingClass extracts the page class from the first heading, with the
// "Cards" suffix trimmed (the wiki titles card pages "Ironclad Cards").
func ParseHeadingClass(doc *goquery.Document) string {
	heading := strings.TrimSpace(doc.Find("#firstHeading").First().Text())
	return strings.TrimSpace(strings.ReplaceAll(heading, "Cards", ""))
}

// ParseCardTable extracts the rows of the first table on a card listing page.
// Cell meaning follows position among the row's non-empty cells: the second
// is rarity, then type, energy and effect. Rows without a linked name are
// skipped (header rows).
func ParseCardTable(doc *goquery.Document) []CardRow {
	var rows []CardRow
	doc.Find("table").First().Find("tr").Each(func(_ int, tr *goquery.Selection) {
		anchor := tr.Find("a").First()
		name := strings.TrimSpace(anchor.Text())
		if name == "" {
			return
		}
		href, _ := anchor.Attr("href")

		row := CardRow{Name: name, Href: href}
		cnt := 0
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			val := strings.TrimSpace(td.Text())
			if val == "" {
				return
			}
			cnt++
			switch cnt {
			case 2:
				row.Rarity = val
			case 3:
				row.Type = val
			case 4:
				row.Energy = val
			case 5:
				row.Effect = val
			}
		})
		rows = append(rows, row)
	})
	return rows
}

// ParseRelicInfobox extracts description, rarity and class from an entry
// detail page's data-source infobox.
func ParseRelicInfobox(doc *goquery.Document) RelicInfo {
	return RelicInfo{
		Description: infoboxValue(doc, "description"),
		Rarity:      infoboxValue(doc, "rarity"),
		Class:       infoboxValue(doc, "class"),
	}
}

// infoboxValue returns the value of one infobox field. The field's text
// starts with its label on the first line; everything after the first
// newline is the value.
func infoboxValue(doc *goquery.Document, source string) string {
	text := strings.TrimSpace(doc.Find(`div[data-source="` + source + `"]`).First().Text())
	if idx := strings.Index(text, "\n"); idx >= 0 {
		return strings.TrimSpace(text[idx:])
	}
	return text
}
