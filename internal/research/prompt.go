package research

import (
	"fmt"
	"strings"
)

// BuildPrompt assembles the research prompt for one partner from whatever
// context the existing page provides. The numbered sections tell the model
// which literal headings to emit; extraction depends on them.
func BuildPrompt(partnerName string, doc *Doc) string {
	tags := strings.Join(doc.Meta.Tags, ", ")

	return fmt.Sprintf(`I need comprehensive, factual information about %[1]s, who is a partner of ElizaOS.
Here's what I currently have about them:

Description: %[2]s
Website: %[3]s
Twitter: %[4]s
Tags: %[5]s

Original content:
%[6]s

When researching the integration, please also investigate if there might be an official ElizaOS plugin for %[1]s.
Consider looking for resources associated with ElizaOS plugins, such as repositories within the elizaos-plugins organization on GitHub.
If you find relevant plugin information, please summarize it in the 'Integration with Eliza' section.

Please research this company/project and provide detailed, factual information for these sections:

1. ## About %[1]s
   - A detailed introduction to what they do
   - Their main products/services
   - Their significance in the Web3/blockchain space

2. ## Technology
   - Their technology stack and innovations
   - Technical approach and how their technology works
   - What problems their technology solves

3. ## Key Features
   - 5-7 specific, enhanced bullet points about their key features and advantages
   - Technical capabilities and differentiators

4. ## Integration with Eliza
   - Specific details on how their technology integrates with elizaOS
   - Technical synergies and use cases for the partnership
   - Potential benefits for users of both platforms

5. ## Recent Developments
   - Latest news, updates, or milestones (within the last year)
   - Roadmap items or future plans that have been publicly announced

6. ## Market Position
   - Their position compared to competitors
   - Key partnerships besides ElizaOS
   - User base or adoption metrics if available

7. ## Links
   - Website, documentation, GitHub, social media, etc.

Important: Please DO NOT include citation markers like [1] or [2][3] in your response.
Instead, integrate the information naturally without citation numbers.
Focus on factual information from reputable sources. Include specific technical details where available.`,
		partnerName, doc.Meta.Description, doc.Meta.Website, doc.Meta.Twitter, tags, doc.Content)
}
