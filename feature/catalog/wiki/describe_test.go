package wiki_test

import (
	"testing"

	"mention-scanner/feature/catalog/models"
	"mention-scanner/feature/catalog/wiki"

	"github.com/stretchr/testify/assert"
)

func TestRelicDescription(t *testing.T) {
	info := wiki.RelicInfo{
		Description: "Draw 2 additional cards each turn.",
		Rarity:      "Boss",
		Class:       "Any",
	}

	descr := wiki.RelicDescription("Snecko Eye", "https://example.com/wiki/Snecko_Eye", models.EntryRelic, info)

	assert.Contains(t, descr, "[Snecko Eye](https://example.com/wiki/Snecko_Eye)")
	assert.Contains(t, descr, "Boss")
	assert.Contains(t, descr, "Relic")
	assert.Contains(t, descr, "Draw 2 additional cards each turn.")
	assert.NotContains(t, descr, "only", "class Any must not render a class restriction")
}

func TestRelicDescriptionClassRestricted(t *testing.T) {
	info := wiki.RelicInfo{Description: "At the start of your turn, gain 1 Energy.", Rarity: "Rare", Class: "Watcher"}

	descr := wiki.RelicDescription("Violet Lotus", "https://example.com/wiki/Violet_Lotus", models.EntryRelic, info)

	assert.Contains(t, descr, "(Watcher only)")
}

func TestCardDescription(t *testing.T) {
	row := wiki.CardRow{
		Name:   "Bash",
		Rarity: "Starter",
		Type:   "Attack",
		Energy: "2",
		Effect: "Deal 8 damage. Apply 2 Vulnerable.",
	}

	descr := wiki.CardDescription(row, "https://example.com/wiki/Bash", "Ironclad")

	assert.Contains(t, descr, "[Bash](https://example.com/wiki/Bash)")
	assert.Contains(t, descr, "Ironclad Starter Attack")
	assert.Contains(t, descr, "2 Energy |")
	assert.Contains(t, descr, "Deal 8 damage.")
}

func TestCardDescriptionCurseUsesReducedLayout(t *testing.T) {
	row := wiki.CardRow{
		Name:   "Regret",
		Rarity: "Special",
		Effect: "Unplayable. At the end of your turn, lose 1 HP per card in your hand.",
	}

	descr := wiki.CardDescription(row, "https://example.com/wiki/Regret", "Curse")

	assert.Contains(t, descr, "[Regret](https://example.com/wiki/Regret) Curse")
	assert.NotContains(t, descr, "Energy |")
	assert.Contains(t, descr, "Unplayable.")
}
