package wishes

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the request sent to the text model.
func BuildPrompt(p Params) string {
	tone := p.Tone
	if tone == "" {
		tone = ToneCyberpunk
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a birthday greeting for %s who is turning %d.\n", p.Name, p.Age)
	fmt.Fprintf(&b, "Relationship: %s.\n", p.Relationship)
	fmt.Fprintf(&b, "Tone: %s.\n\n", tone)
	fmt.Fprintf(&b, "Also suggest %d futuristic or cool gift ideas appropriate for them.\n\n", GiftIdeaCount)
	b.WriteString(`Return the response in strict JSON format with "wish" (string) and "giftIdeas" (array of strings).`)
	return b.String()
}
