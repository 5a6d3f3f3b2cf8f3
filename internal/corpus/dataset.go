package corpus

// DefaultInsights is the built-in competitive-intelligence dataset covering
// the cybersecurity vendors Digital Guardian, Zscaler, and Forcepoint. It is
// used when no corpus file is configured.
func DefaultInsights() []Insight {
	return []Insight{
		{
			Company:  "Digital Guardian",
			Homepage: "https://www.digitalguardian.com",
			Title:    "Emphasis on Regulatory Compliance",
			Summary: "Digital Guardian (part of Fortra) is heavily emphasizing assistance with various compliance standards, " +
				"particularly CMMC 2.0 for defense contractors, ISO 27001, and UK GSC. This indicates a strong market focus " +
				"on regulated industries and the importance of data classification for meeting these requirements.",
			Impact: ImpactMedium,
			Links: []string{
				"https://t.co/yYkIpoDnTY",
				"https://t.co/0EcsjSoNFX",
				"https://t.co/tvXeivil4D",
			},
			Actions: []Action{
				{Content: "Research relevant industry compliance standards (e.g., CMMC if working with DoD) and assess your current posture.", Value: 6, Effort: 3},
				{Content: "Identify tools or services that specifically address the data classification and compliance needs relevant to your business.", Value: 7, Effort: 4},
				{Content: "Highlight your own compliance capabilities in marketing materials to attract clients in regulated sectors.", Value: 8, Effort: 5},
			},
		},
		{
			Company:  "Digital Guardian",
			Homepage: "https://www.digitalguardian.com",
			Title:    "Promoting Integrated SSE Security",
			Summary: "Digital Guardian is promoting its Secure Service Edge (SSE) solution, integrating DLP, CASB, SWG, and ZTNA, " +
				"and highlighting specific features like secure collaboration and support for new processors. This points to a " +
				"strategy of offering a comprehensive security platform.",
			Impact: ImpactMedium,
			Links: []string{
				"https://t.co/mtuNw5uy8T",
				"https://t.co/3ADhPb9M0U",
			},
			Actions: []Action{
				{Content: "Analyze your current security stack to identify potential gaps addressed by an integrated SSE approach.", Value: 5, Effort: 4},
				{Content: "Evaluate if offering bundled security solutions or integrations could be valuable to your customers.", Value: 7, Effort: 6},
				{Content: "Communicate the benefits of your specific security components or integrations clearly to differentiate from broad platforms.", Value: 6, Effort: 5},
			},
		},
		{
			Company:  "Digital Guardian",
			Homepage: "https://www.digitalguardian.com",
			Title:    "Transparent Pricing and Fortra Branding",
			Summary: "Digital Guardian is highlighting transparent pricing for data protection and is actively transitioning its " +
				"presence to the parent company, Fortra. This suggests a strategic move towards clearer offerings and leveraging " +
				"the parent brand.",
			Impact: ImpactLow,
			Links: []string{
				"https://t.co/TD91CH5fRI",
			},
			Actions: []Action{
				{Content: "Ensure your own pricing structure is clear, easy to understand, and readily available to potential customers.", Value: 5, Effort: 3},
				{Content: "Evaluate opportunities to align more closely with any parent company or key partners to leverage their brand recognition.", Value: 6, Effort: 5},
				{Content: "Gather feedback on customer perception of your pricing and compare it to competitors emphasizing transparency.", Value: 4, Effort: 3},
			},
		},
		{
			Company:  "Zscaler",
			Homepage: "https://www.zscaler.com/",
			Title:    "Expanding Leadership in Key Areas",
			Summary: "Zscaler has recently hired leaders for IoT GTM and VP of Product Strategy for ZDX. This signals a strategic " +
				"focus on expanding their Zero Trust platform into the IoT/OT space and accelerating the development of their " +
				"digital experience monitoring solution.",
			Impact: ImpactMedium,
			Links: []string{
				"https://www.linkedin.com/posts/zscaler_zscaler-could-not-be-more-excited-to-welcome-activity-7320936776963936258-SGnL",
			},
			Actions: []Action{
				{Content: "Research the growing importance of IoT/OT security for SMBs in relevant industries.", Value: 5, Effort: 3},
				{Content: "Evaluate your own product roadmap or service offerings to see if there are opportunities in IoT/OT security or digital experience monitoring.", Value: 7, Effort: 6},
			},
		},
		{
			Company:  "Zscaler",
			Homepage: "https://www.zscaler.com/",
			Title:    "Leveraging AI and Threat Research",
			Summary: "Zscaler is leveraging AI for new DLP features (discovery, Email DLP, GenAI prompt inspection) and their " +
				"ThreatLabz team is publishing research on AI-driven phishing and specific threat actor tactics. This highlights " +
				"their investment in advanced threat intelligence and proactive security measures. They were also recognized as a " +
				"Leader in the IDC MarketScape: Worldwide DLP 2025.",
			Impact: ImpactHigh,
			Links: []string{
				"https://www.zscaler.com/press/zscaler-threatlabz-uncovers-surge-ai-driven-cyberattacks-targeting-critical-business",
				"https://t.co/FodTJCIZuZ",
			},
			Actions: []Action{
				{Content: "Investigate how AI can be integrated into your security offerings or internal security practices.", Value: 8, Effort: 7},
				{Content: "Follow Zscaler ThreatLabz reports and other threat intelligence sources to stay informed about the latest attack trends relevant to your customers.", Value: 7, Effort: 3},
				{Content: "Communicate your own expertise or capabilities in detecting and mitigating advanced threats, including AI-driven ones.", Value: 7, Effort: 5},
			},
		},
		{
			Company:  "Zscaler",
			Homepage: "https://www.zscaler.com/",
			Title:    "Promoting Zero Trust and Market Presence",
			Summary: "Zscaler is actively promoting the cost-saving and security benefits of their Zero Trust approach across " +
				"various channels and sectors (e.g., automotive, government). They are also participating in major events like " +
				"AWS Summit London. This indicates a strong marketing push and focus on demonstrating tangible value and broad " +
				"applicability.",
			Impact: ImpactHigh,
			Links: []string{
				"https://t.co/F1L6QHq2oX",
				"https://go.aws/3IDZCAD",
			},
			Actions: []Action{
				{Content: "Clearly articulate the specific security benefits and ROI of your own solutions or services for SMBs.", Value: 8, Effort: 6},
				{Content: "Explore opportunities to participate in industry events or webinars to increase your market visibility and engage with potential customers.", Value: 7, Effort: 7},
				{Content: "Develop marketing content that directly addresses how your solutions compare to or integrate with Zero Trust frameworks, positioning your unique value.", Value: 9, Effort: 8},
			},
		},
		{
			Company:  "Forcepoint",
			Homepage: "https://www.forcepoint.com/",
			Title:    "Acquired GetVisibility, Boosts AI Security",
			Summary: "Forcepoint recently acquired GetVisibility, integrating its AI Mesh, DSPM, and DDR capabilities. This " +
				"significantly enhances their AI-powered data security offerings, focusing on real-time visibility, context, and " +
				"control across hybrid cloud and GenAI environments.",
			Impact: ImpactHigh,
			Links: []string{
				"https://bit.ly/41MXCRY",
			},
			Actions: []Action{
				{Content: "Research GetVisibility's AI Mesh and DSPM/DDR capabilities to understand Forcepoint's enhanced offering.", Value: 6, Effort: 4},
				{Content: "Evaluate your own capabilities in AI-powered data discovery, classification, and data security posture management.", Value: 7, Effort: 5},
				{Content: "Communicate your approach to AI-driven data security and how it differentiates from newly integrated competitor solutions.", Value: 8, Effort: 6},
			},
		},
		{
			Company:  "Forcepoint",
			Homepage: "https://www.forcepoint.com/",
			Title:    "Evolving DLP for Cloud/GenAI",
			Summary: "Forcepoint is emphasizing the need for DLP to evolve to address modern threats in cloud and GenAI " +
				"environments, highlighting features like behavioral context, user intent, and risk scoring. They are also " +
				"promoting solutions for M365 security and addressing specific infostealer/ransomware threats.",
			Impact: ImpactMedium,
			Links: []string{
				"https://t.co/qESuqezHMg",
			},
			Actions: []Action{
				{Content: "Assess your current DLP capabilities or data protection strategy against risks posed by cloud services and generative AI usage.", Value: 6, Effort: 4},
				{Content: "Explore solutions that provide visibility and control over data use within common cloud applications like Microsoft 365.", Value: 7, Effort: 5},
				{Content: "Educate your customers or team on the evolving threat landscape, including ransomware and infostealers, and how your solutions help mitigate them.", Value: 6, Effort: 4},
			},
		},
		{
			Company:  "Forcepoint",
			Homepage: "https://www.forcepoint.com/",
			Title:    "Targeting Compliance and Events",
			Summary: "Forcepoint is addressing specific government compliance programs like the U.S. DOJ Data Security Program " +
				"and actively participating in events like RSA Conference and GISEC Global. This shows a focus on the compliance " +
				"market and maintaining visibility, particularly post-divestiture of their government business.",
			Impact: ImpactMedium,
			Links: []string{
				"https://www.forcepoint.com/blog/insights/doj-data-security-program-what-to-know",
			},
			Actions: []Action{
				{Content: "Investigate the U.S. DOJ Data Security Program or other relevant government compliance requirements if you serve clients in that sector.", Value: 5, Effort: 3},
				{Content: "Evaluate participation in key industry events to connect with potential customers and partners.", Value: 7, Effort: 7},
				{Content: "Monitor Forcepoint's activities in the government or regulated sectors to understand their go-to-market strategy.", Value: 5, Effort: 2},
			},
		},
		{
			Company:  "Forcepoint",
			Homepage: "www.forcepoint.com",
			Title:    "Competitor Opportunities from Weaknesses",
			Summary: "Based on available data, Forcepoint faces challenges including complex setup, non-intuitive UI, higher " +
				"pricing for SMBs, and inconsistent support. These identified weaknesses provide direct opportunities for " +
				"competitors.",
			Impact: ImpactHigh,
			Links: []string{
				"https://www.strac.io/proofpoint-vs-forcepoint",
				"https://www.nightfall.ai/compare/nightfall-vs-forcepoint",
			},
			Actions: []Action{
				{Content: "Simplify your product's user interface and onboarding process to attract customers seeking ease of use.", Value: 9, Effort: 8},
				{Content: "Develop pricing models that are more accessible and cost-effective for small to medium-sized businesses.", Value: 9, Effort: 7},
				{Content: "Invest in providing superior, consistent customer support to build trust and address a key competitor weakness.", Value: 8, Effort: 6},
			},
		},
	}
}
