package generator

import (
	"fmt"
	"strings"

	"github.com/smartfinancehub/content-engine/internal/config"
)

const systemPrompt = `You are a personal-finance writer for Smart Finance Hub.
You write accurate, practical, plain-English articles for US readers.
Never promise returns, never give individualized advice, and prefer
concrete examples over generalities. Output HTML for the article body.`

// buildUserPrompt asks for the delimited block format the parser
// understands: TITLE / META_DESCRIPTION / CONTENT / CTA.
func buildUserPrompt(topic config.Topic, keywords []string, targetWords int) string {
	return fmt.Sprintf(`Write a complete article on the topic below.

Topic: %s
Category: %s
Target keywords: %s
Target length: about %d words.

Respond in exactly this format, keeping the markers on their own lines:

TITLE: <a headline of 40-60 characters>
META_DESCRIPTION: <a summary of 140-160 characters>
CONTENT:
<the full article body as HTML: one <h1>, 3-8 <h2> sections, short
paragraphs, and a closing "The Bottom Line" section>
CTA: <one sentence inviting the reader to act>`,
		topic.Title, topic.Category, strings.Join(keywords, ", "), targetWords)
}
