package scenario

import "math/rand/v2"

// presets is the built-in scenario catalog, keyed by level. These double
// as few-shot examples for AI generation.
var presets = map[Level][]Scenario{
	LevelBeginner: {
		{
			ID:          "b1",
			Title:       "Email Summarization in Outlook",
			Description: "You need to catch up on a long email thread about the Q4 marketing campaign.",
			Goal:        "Get a concise summary of the key decisions and action items",
			Context:     "You've been out of office for a week and there's a 15-email thread in your inbox",
			Product:     "Outlook Copilot",
			Hints:       []string{"Be specific about what you want summarized", "Mention action items", "Consider timeframe"},
			ExampleGood: "Summarize the key decisions and action items from the Q4 marketing campaign email thread from the past week",
		},
		{
			ID:          "b2",
			Title:       "Document Formatting in Word",
			Description: "You have a 10-page report that needs professional formatting.",
			Goal:        "Apply consistent formatting throughout the document",
			Context:     "The document has inconsistent fonts, spacing, and heading styles",
			Product:     "Word Copilot",
			Hints:       []string{"Specify what elements to format", "Mention consistency", "Be clear about style preferences"},
			ExampleGood: "Apply consistent professional formatting to this report: use Arial 11pt for body text, Arial 14pt bold for headings, 1.15 line spacing, and ensure uniform margins",
		},
		{
			ID:          "b3",
			Title:       "Meeting Preparation in Teams",
			Description: "You have an upcoming team meeting about project status.",
			Goal:        "Create a meeting agenda based on recent discussions",
			Context:     "You need to prepare for a 1-hour weekly sync meeting",
			Product:     "Teams Copilot",
			Hints:       []string{"Mention the meeting purpose", "Reference past discussions", "Specify time allocation"},
			ExampleGood: "Create a 1-hour meeting agenda for our weekly project sync, including status updates, blockers, and next steps based on last week's action items",
		},
	},
	LevelIntermediate: {
		{
			ID:          "i1",
			Title:       "Data Analysis in Excel",
			Description: "You have sales data for Q1-Q3 and need to identify trends.",
			Goal:        "Generate insights about sales performance and create visualizations",
			Context:     "Dataset includes sales by region, product category, and month",
			Product:     "Excel Copilot",
			Hints:       []string{"Specify what insights you need", "Mention visualization preferences", "Include comparative analysis"},
			ExampleGood: "Analyze Q1-Q3 sales data to identify top-performing regions and product categories. Create a pivot table showing monthly trends and a chart comparing regional performance. Highlight any concerning patterns.",
		},
		{
			ID:          "i2",
			Title:       "Presentation Creation in PowerPoint",
			Description: "You need to create a presentation for executive stakeholders.",
			Goal:        "Generate a compelling deck about project ROI",
			Context:     "You have project metrics, budget data, and timeline information",
			Product:     "PowerPoint Copilot",
			Hints:       []string{"Define your audience", "Specify content structure", "Mention data sources", "Include visual requirements"},
			ExampleGood: "Create a 10-slide executive presentation on Project Phoenix's ROI. Include: executive summary, problem statement, solution overview, key metrics (cost savings, efficiency gains), timeline, risks, and next steps. Use our corporate template with data visualizations. Target audience: C-suite executives.",
		},
		{
			ID:          "i3",
			Title:       "Cross-Product Workflow",
			Description: "You need to compile information from multiple sources.",
			Goal:        "Create a comprehensive status report using data from Teams, Outlook, and SharePoint",
			Context:     "Weekly status report due to management",
			Product:     "Microsoft 365 Copilot",
			Hints:       []string{"Mention all data sources", "Specify output format", "Include time range", "Define key sections"},
			ExampleGood: "Create a weekly status report for the Data Migration project by synthesizing information from: Teams channel discussions, email threads with 'Data Migration' in subject from past week, and updates from the SharePoint project site. Include sections: accomplishments, challenges, metrics, and next week's priorities. Format as a Word document.",
		},
	},
	LevelAdvanced: {
		{
			ID:          "a1",
			Title:       "Strategic Analysis in Business Chat",
			Description: "Senior leadership wants competitive analysis for strategic planning.",
			Goal:        "Generate comprehensive competitive intelligence report",
			Context:     "Need to analyze competitors, market trends, and strategic recommendations",
			Product:     "Microsoft 365 Copilot (Business Chat)",
			Hints:       []string{"Define scope clearly", "Specify analysis framework", "Mention multiple data sources", "Include strategic recommendations", "Define output structure"},
			ExampleGood: "Conduct a competitive analysis for our SaaS product in the CRM space. Analyze: 1) Top 5 competitors' feature sets, pricing, and market positioning (search recent industry reports in SharePoint 'Market Research' folder). 2) Our differentiation opportunities based on customer feedback from past 6 months (Outlook and Teams). 3) Market trends from analyst reports. 4) Strategic recommendations with 3-year roadmap implications. Deliverable: 5-page Word report with executive summary, SWOT analysis, competitive matrix, and prioritized recommendations.",
		},
		{
			ID:          "a2",
			Title:       "Complex Automation Workflow",
			Description: "Automate a multi-step business process across Microsoft 365.",
			Goal:        "Design and document an automated workflow for customer onboarding",
			Context:     "Process involves Forms, SharePoint, Teams, and Outlook",
			Product:     "Power Automate + Copilot",
			Hints:       []string{"Map entire process", "Specify each integration point", "Include error handling", "Define success metrics", "Consider security/compliance"},
			ExampleGood: "Design an automated customer onboarding workflow: 1) When Microsoft Forms 'New Customer' is submitted, create SharePoint folder with customer name. 2) Auto-generate welcome email via Outlook with onboarding checklist. 3) Create Teams channel for customer project and invite relevant team members based on service tier. 4) Set up recurring check-in reminders in Teams for account manager. Include error notifications to admin team, compliance checks for data fields, and dashboard showing onboarding completion rates. Document each step with trigger conditions and fallback procedures.",
		},
		{
			ID:          "a3",
			Title:       "Enterprise Knowledge Synthesis",
			Description: "Create a comprehensive knowledge base article from scattered information.",
			Goal:        "Synthesize tribal knowledge into structured documentation",
			Context:     "Information is spread across Teams chats, emails, SharePoint docs, and meeting transcripts",
			Product:     "Microsoft 365 Copilot",
			Hints:       []string{"Define knowledge domain", "Specify all sources", "Include structure requirements", "Mention verification needs", "Consider audience and accessibility"},
			ExampleGood: "Create a comprehensive 'Cloud Migration Best Practices' knowledge base article by synthesizing information from: 1) Past 12 months Teams 'Cloud Engineering' channel discussions tagged 'migration'. 2) Email threads from cloudops@company.com with subject containing 'migration lessons'. 3) SharePoint 'Post-Mortem' folder documents. 4) Recorded meeting transcripts from monthly architecture reviews. Structure: Executive Summary, Prerequisites, Step-by-step Process, Common Pitfalls & Solutions, Tooling Recommendations, Security Checklist, Case Studies (2-3 internal examples), FAQs. Include inline code examples, architecture diagrams descriptions, and cross-references to related docs. Target audience: intermediate-to-advanced cloud engineers. Verify all technical recommendations with the latest internal standards from SharePoint 'Governance' site.",
		},
	},
}

// Presets returns the preset scenarios for a level. Unknown levels fall
// back to beginner.
func Presets(level Level) []Scenario {
	if s, ok := presets[level]; ok {
		return s
	}
	return presets[LevelBeginner]
}

// RandomPreset picks a random preset scenario from the level.
func RandomPreset(level Level) Scenario {
	s := Presets(level)
	return s[rand.IntN(len(s))]
}

// Stats summarizes the preset catalog.
func Stats() CatalogStats {
	st := CatalogStats{
		BeginnerCount:     len(presets[LevelBeginner]),
		IntermediateCount: len(presets[LevelIntermediate]),
		AdvancedCount:     len(presets[LevelAdvanced]),
	}
	st.TotalPreset = st.BeginnerCount + st.IntermediateCount + st.AdvancedCount
	return st
}
