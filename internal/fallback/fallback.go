// Package fallback holds the fixed snapshot served when the primary store
// cannot be read.
package fallback

import "tenx/internal/models"

// Version identifies the snapshot contents. Bump it whenever the data below
// changes.
const Version = "2024-06"

var projects = []models.Project{
	{
		ID: 1, Title: "AI E-commerce Platform", Domain: "E-commerce",
		Description: "Automated product descriptions, pricing optimization, and customer service",
		Progress:    85, Status: models.StatusActive,
		MySkills:     []string{"React", "Node.js", "Database Design"},
		AISkills:     []string{"Content Generation", "Price Optimization", "Customer Support"},
		Tools:        []string{"ChatGPT", "Stripe", "Vercel", "Supabase", "Midjourney"},
		Productivity: 8.2, Timeframe: "3 months", URL: "https://ai-ecommerce-demo.vercel.app",
	},
	{
		ID: 2, Title: "Bannaa - Arabic AI School", Domain: "Media & Content",
		Description: "AI-focused school targeting the Arab world.",
		Progress:    2, Status: models.StatusActive,
		MySkills:     []string{"Content Strategy", "Management"},
		AISkills:     []string{"Writing", "Video Editing", "Image Generation"},
		Tools:        []string{"ChatGPT", "Claude", "Runway ML", "N8N", "Airtable", "VEO", "Gemini", "Midjourney"},
		Productivity: 0.1, Timeframe: "2 months", URL: "https://bannaa.ai",
	},
	{
		ID: 3, Title: "Data Analytics Dashboard", Domain: "Analytics",
		Description: "Automated data processing, visualization, and insight generation",
		Progress:    78, Status: models.StatusActive,
		MySkills:     []string{"Data Analysis", "Visualization", "Statistics"},
		AISkills:     []string{"Data Processing", "Pattern Recognition", "Report Generation"},
		Tools:        []string{"ChatGPT", "Tableau", "Python", "Jupyter", "AWS", "MongoDB"},
		Productivity: 6.8, Timeframe: "4 months", URL: "https://analytics-ai-dashboard.vercel.app",
	},
	{
		ID: 4, Title: "Mobile Fitness App", Domain: "Health & Fitness",
		Description: "Personalized workout plans, nutrition tracking, and progress monitoring",
		Progress:    65, Status: models.StatusActive,
		MySkills:     []string{"Mobile Development", "UI/UX", "Health Domain"},
		AISkills:     []string{"Personalization", "Computer Vision", "Nutrition Analysis"},
		Tools:        []string{"ChatGPT", "React Native", "Firebase", "TensorFlow", "Figma"},
		Productivity: 5.2, Timeframe: "5 months", URL: "https://fitness-ai-app.vercel.app",
	},
	{
		ID: 5, Title: "Legal Document Processor", Domain: "Legal Tech",
		Description: "Contract analysis, document generation, and compliance checking",
		Progress:    45, Status: models.StatusActive,
		MySkills:     []string{"Legal Research", "Document Processing", "Compliance"},
		AISkills:     []string{"NLP", "Document Analysis", "Legal Reasoning"},
		Tools:        []string{"ChatGPT", "Claude", "LangChain", "Pinecone", "Notion", "DocuSign"},
		Productivity: 4.1, Timeframe: "6 months", URL: "https://legal-ai-processor.vercel.app",
	},
	{
		ID: 6, Title: "Educational Platform", Domain: "EdTech",
		Description: "Personalized learning paths, automated grading, and content adaptation",
		Progress:    58, Status: models.StatusActive,
		MySkills:     []string{"Education", "Curriculum Design", "Learning Theory"},
		AISkills:     []string{"Personalization", "Content Generation", "Assessment"},
		Tools:        []string{"ChatGPT", "Teachable Machine", "Moodle", "Zoom", "Loom", "Calendly"},
		Productivity: 7.3, Timeframe: "4 months", URL: "https://edu-ai-platform.vercel.app",
	},
	{
		ID: 7, Title: "Financial Planning Tool", Domain: "FinTech",
		Description: "Investment recommendations, risk assessment, and portfolio optimization",
		Progress:    72, Status: models.StatusActive,
		MySkills:     []string{"Finance", "Investment Strategy", "Risk Management"},
		AISkills:     []string{"Market Analysis", "Risk Modeling", "Optimization"},
		Tools:        []string{"ChatGPT", "Alpha Vantage", "Plaid", "Chart.js", "Vercel", "PostgreSQL"},
		Productivity: 9.1, Timeframe: "3 months", URL: "https://fintech-ai-planner.vercel.app",
	},
	{
		ID: 8, Title: "Smart Home Automation", Domain: "IoT",
		Description: "Intelligent device control, energy optimization, and predictive maintenance",
		Progress:    25, Status: models.StatusPlanning,
		MySkills:     []string{"IoT", "Hardware Integration", "System Architecture"},
		AISkills:     []string{"Predictive Analytics", "Optimization", "Pattern Recognition"},
		Tools:        []string{"ChatGPT", "Arduino", "Raspberry Pi", "MQTT", "InfluxDB", "Grafana"},
		Productivity: 3.2, Timeframe: "8 months", URL: "https://smarthome-ai-demo.vercel.app",
	},
	{
		ID: 9, Title: "Marketing Automation Suite", Domain: "Marketing",
		Description: "Campaign optimization, lead scoring, and personalized messaging",
		Progress:    15, Status: models.StatusPlanning,
		MySkills:     []string{"Marketing Strategy", "Campaign Management", "Analytics"},
		AISkills:     []string{"Personalization", "Optimization", "Predictive Modeling"},
		Tools:        []string{"ChatGPT", "HubSpot", "Mailchimp", "Google Analytics", "Zapier", "Airtable"},
		Productivity: 2.8, Timeframe: "6 months", URL: "https://marketing-ai-suite.vercel.app",
	},
	{
		ID: 10, Title: "Creative Design Studio", Domain: "Design",
		Description: "Automated design generation, brand consistency, and creative workflows",
		Progress:    8, Status: models.StatusPlanning,
		MySkills:     []string{"Design Principles", "Brand Strategy", "Creative Direction"},
		AISkills:     []string{"Image Generation", "Design Automation", "Style Transfer"},
		Tools:        []string{"ChatGPT", "Midjourney", "DALL-E", "Figma", "Adobe Creative Suite", "Framer"},
		Productivity: 1.9, Timeframe: "7 months", URL: "https://design-ai-studio.vercel.app",
	},
}

// newest first
var globalMetrics = []models.GlobalMetric{
	{
		ID: 6, Month: "2024-06-01",
		TwitterFollowers: 4200, YoutubeSubscribers: 1850, TiktokFollowers: 4100, InstagramFollowers: 6800,
		NewsletterSubscribers: 2100, TotalGMV: 51500, ProductivityGain: 9.1,
		SkillsGained: []string{"Advanced Management", "Full-Stack Vibe Coding"},
		Milestones:   []string{"4k Twitter followers", "2k Newsletter subscribers"},
	},
	{
		ID: 5, Month: "2024-05-01",
		TwitterFollowers: 3600, YoutubeSubscribers: 1450, TiktokFollowers: 3200, InstagramFollowers: 5300,
		NewsletterSubscribers: 1680, TotalGMV: 42800, ProductivityGain: 7.9,
		SkillsGained: []string{"UI/UX Design", "Team Leadership"},
		Milestones:   []string{"5k Instagram followers", "$40k month"},
	},
	{
		ID: 4, Month: "2024-04-01",
		TwitterFollowers: 2850, YoutubeSubscribers: 1100, TiktokFollowers: 2450, InstagramFollowers: 4100,
		NewsletterSubscribers: 1250, TotalGMV: 34200, ProductivityGain: 6.2,
		SkillsGained: []string{"Project Management", "Advanced Vibe Coding"},
		Milestones:   []string{"1k YouTube subscribers", "First viral TikTok"},
	},
	{
		ID: 3, Month: "2024-03-01",
		TwitterFollowers: 2100, YoutubeSubscribers: 780, TiktokFollowers: 1890, InstagramFollowers: 3200,
		NewsletterSubscribers: 920, TotalGMV: 25600, ProductivityGain: 4.8,
		SkillsGained: []string{"Advanced Design Systems", "Vibe Coding Fundamentals"},
		Milestones:   []string{"2k Twitter followers", "Launched Bannaa.ai"},
	},
	{
		ID: 2, Month: "2024-02-01",
		TwitterFollowers: 1580, YoutubeSubscribers: 520, TiktokFollowers: 1340, InstagramFollowers: 2650,
		NewsletterSubscribers: 680, TotalGMV: 18900, ProductivityGain: 3.4,
		SkillsGained: []string{"Figma Basics", "Team Management"},
		Milestones:   []string{"Reached 500 YouTube subscribers", "First $15k month"},
	},
	{
		ID: 1, Month: "2024-01-01",
		TwitterFollowers: 1250, YoutubeSubscribers: 340, TiktokFollowers: 890, InstagramFollowers: 2100,
		NewsletterSubscribers: 450, TotalGMV: 12500, ProductivityGain: 2.1,
		SkillsGained: []string{"Basic Design Principles"},
		Milestones:   []string{"Started 10x experiment", "Launched first project"},
	},
}

// Projects returns a copy of the snapshot projects ordered by id.
func Projects() []models.Project {
	out := make([]models.Project, len(projects))
	for i, p := range projects {
		p.MySkills = clone(p.MySkills)
		p.AISkills = clone(p.AISkills)
		p.Tools = clone(p.Tools)
		out[i] = p
	}
	return out
}

// ProjectSummaries returns the snapshot projects in summary form.
func ProjectSummaries() []models.ProjectSummary {
	out := make([]models.ProjectSummary, len(projects))
	for i, p := range projects {
		out[i] = p.Summary()
	}
	return out
}

// GlobalMetrics returns a copy of the snapshot metrics, newest month first.
func GlobalMetrics() []models.GlobalMetric {
	out := make([]models.GlobalMetric, len(globalMetrics))
	for i, m := range globalMetrics {
		m.SkillsGained = clone(m.SkillsGained)
		m.Milestones = clone(m.Milestones)
		out[i] = m
	}
	return out
}

// LatestGlobalMetric returns the newest snapshot metric.
func LatestGlobalMetric() models.GlobalMetric {
	return GlobalMetrics()[0]
}

func clone(in []string) []string {
	return append([]string{}, in...)
}
