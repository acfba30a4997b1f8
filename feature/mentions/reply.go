package mentions

import (
	"fmt"
	"sort"
	"strings"
)

const (
	firstReplyTemplate = "I am %.1f%% confident you mentioned %s in your post."
	nextReplyTemplate  = "I am also %.1f%% confident you mentioned %s."
	paragraphBreak     = "\n\n"
)

var replyFooter = "Let me call the bot for you." +
	paragraphBreak + strings.Repeat("-", 50) +
	paragraphBreak + "I am a bot response. Please reply to me if I got something wrong so it can be fixed."

// Reply renders the comment body for a set of detected mentions. Mentions are
// grouped by confidence at tenth-of-a-percent precision and announced from
// most to least confident; entity names are wrapped in [[...]] so the wiki
// linker bot expands them. An empty set renders an empty string.
func Reply(mentions []Mention) string {
	if len(mentions) == 0 {
		return ""
	}

	grouped := make(map[int][]string)
	seen := make(map[string]struct{})
	for _, m := range mentions {
		key := int(m.Confidence * 1000)
		dedup := fmt.Sprintf("%d\x00%s", key, m.Name)
		if _, dup := seen[dedup]; dup {
			continue
		}
		seen[dedup] = struct{}{}
		grouped[key] = append(grouped[key], m.Name)
	}

	keys := make([]int, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	var b strings.Builder
	template := firstReplyTemplate
	for _, key := range keys {
		names := grouped[key]
		sort.Strings(names)
		fmt.Fprintf(&b, template, float64(key)/10, joinNames(names))
		b.WriteString(paragraphBreak)
		template = nextReplyTemplate
	}
	b.WriteString(replyFooter)
	return b.String()
}

// joinNames renders a wiki-linked name list with an Oxford comma for three or
// more names.
func joinNames(names []string) string {
	wrapped := make([]string, len(names))
	for i, name := range names {
		wrapped[i] = "[[" + name + "]]"
	}
	switch len(wrapped) {
	case 1:
		return wrapped[0]
	case 2:
		return wrapped[0] + " and " + wrapped[1]
	default:
		return strings.Join(wrapped[:len(wrapped)-1], ", ") + ", and " + wrapped[len(wrapped)-1]
	}
}
