package wiki

import (
	"fmt"
	"strings"

	"mention-scanner/feature/catalog/models"
)

// RelicDescription composes the markdown reply snippet for a relic or potion
// from its infobox fields.
func RelicDescription(name, link string, entryType models.EntryType, info RelicInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "* [%s](%s) %s ", name, link, info.Rarity)
	if info.Class != "" && !strings.EqualFold(info.Class, "any") {
		fmt.Fprintf(&b, "(%s only) ", info.Class)
	}
	fmt.Fprintf(&b, "%s\n\n %s", entryType, info.Description)
	return b.String()
}

// CardDescription composes the markdown reply snippet for a card from its
// table row and page class. Curses and statuses carry no meaningful energy
// cost column, so they use a reduced layout.
func CardDescription(row CardRow, link, class string) string {
	lowered := strings.ToLower(class)
	if lowered == "curse" || lowered == "status" {
		return curseDescription(row, link, class)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "* [%s](%s)", row.Name, link)
	if class != "" {
		fmt.Fprintf(&b, " %s", class)
	}
	if row.Rarity != "" {
		fmt.Fprintf(&b, " %s", row.Rarity)
	}
	if row.Type != "" {
		fmt.Fprintf(&b, " %s", row.Type)
	}
	b.WriteString("\n\n   ")
	if row.Energy != "" {
		fmt.Fprintf(&b, " %s Energy |", row.Energy)
	}
	if row.Effect != "" {
		fmt.Fprintf(&b, " %s", row.Effect)
	}
	return b.String()
}

func curseDescription(row CardRow, link, class string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "* [%s](%s)", row.Name, link)
	if class != "" {
		fmt.Fprintf(&b, " %s", class)
	}
	b.WriteString("\n\n   ")
	if row.Energy != "" {
		fmt.Fprintf(&b, " %s", row.Energy)
	}
	if row.Rarity != "" {
		fmt.Fprintf(&b, " %s", row.Rarity)
	}
	if row.Type != "" {
		fmt.Fprintf(&b, " %s", row.Type)
	}
	if row.Effect != "" {
		fmt.Fprintf(&b, " %s", row.Effect)
	}
	return b.String()
}
