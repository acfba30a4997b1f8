package mentions_test

import (
	"strings"
	"testing"

	"mention-scanner/feature/catalog/models"
	"mention-scanner/feature/mentions"

	"github.com/stretchr/testify/assert"
)

func TestReplyEmpty(t *testing.T) {
	assert.Empty(t, mentions.Reply(nil))
}

func TestReplySingleMention(t *testing.T) {
	reply := mentions.Reply([]mentions.Mention{
		{Name: "Snecko Eye", EntryType: models.EntryRelic, Confidence: 1.0},
	})

	assert.True(t, strings.HasPrefix(reply,
		"I am 100.0% confident you mentioned [[Snecko Eye]] in your post."))
	assert.Contains(t, reply, "Let me call the bot for you.")
	assert.Contains(t, reply, strings.Repeat("-", 50))
	assert.Contains(t, reply, "I am a bot response.")
}

func TestReplyFractionalConfidence(t *testing.T) {
	reply := mentions.Reply([]mentions.Mention{
		{Name: "Snecko Eye", EntryType: models.EntryRelic, Confidence: 0.9245},
	})

	assert.Contains(t, reply, "I am 92.4% confident")
}

func TestReplyPairJoinedWithAnd(t *testing.T) {
	reply := mentions.Reply([]mentions.Mention{
		{Name: "Bash", EntryType: models.EntryCard, Confidence: 1.0},
		{Name: "Anchor", EntryType: models.EntryRelic, Confidence: 1.0},
	})

	assert.Contains(t, reply, "[[Anchor]] and [[Bash]]")
	assert.NotContains(t, reply, "[[Anchor]], and")
}

func TestReplyOxfordComma(t *testing.T) {
	reply := mentions.Reply([]mentions.Mention{
		{Name: "Bash", EntryType: models.EntryCard, Confidence: 1.0},
		{Name: "Anchor", EntryType: models.EntryRelic, Confidence: 1.0},
		{Name: "Clash", EntryType: models.EntryCard, Confidence: 1.0},
	})

	assert.Contains(t, reply, "[[Anchor]], [[Bash]], and [[Clash]]")
}

func TestReplyGroupsByConfidenceDescending(t *testing.T) {
	reply := mentions.Reply([]mentions.Mention{
		{Name: "Snecko Eye", EntryType: models.EntryRelic, Confidence: 0.924},
		{Name: "Bash", EntryType: models.EntryCard, Confidence: 1.0},
	})

	first := strings.Index(reply, "I am 100.0% confident you mentioned [[Bash]] in your post.")
	second := strings.Index(reply, "I am also 92.4% confident you mentioned [[Snecko Eye]].")
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
	// Only the leading sentence carries the long form.
	assert.NotContains(t, reply, "also 92.4% confident you mentioned [[Snecko Eye]] in your post")
}

func TestReplyDeduplicatesWithinGroup(t *testing.T) {
	reply := mentions.Reply([]mentions.Mention{
		{Name: "Bash", EntryType: models.EntryCard, Confidence: 1.0},
		{Name: "Bash", EntryType: models.EntryRelic, Confidence: 1.0},
	})

	assert.Equal(t, 1, strings.Count(reply, "[[Bash]]"))
}
