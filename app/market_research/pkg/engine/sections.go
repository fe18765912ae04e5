package engine

import (
	"github.com/iWorld-y/market_research/app/market_research/pkg/llm"
	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

// Sections 报告章节，顺序固定，执行摘要放在最后以便读取前面所有章节
var Sections = []model.SectionSpec{
	{
		ID:             1,
		Name:           "Market Trends Analysis",
		Agent:          "Agent 001: Market Analyst",
		Role:           "a market research expert",
		PromptTemplate: "Analyze current and emerging trends in the %s market. Include data points, growth trends and adoption cycles.",
		DefaultBackend: string(llm.OpenAI),
	},
	{
		ID:             2,
		Name:           "Competitive Landscape",
		Agent:          "Agent 002: Competitive Intelligence",
		Role:           "a competitive intelligence analyst",
		PromptTemplate: "Map the competitive landscape of the %s market. Identify the key players, their market share, positioning and differentiators.",
		DefaultBackend: string(llm.Claude),
	},
	{
		ID:             3,
		Name:           "Target Audience Analysis",
		Agent:          "Agent 003: Demographics Specialist",
		Role:           "a demographics and consumer behavior specialist",
		PromptTemplate: "Describe the target audience for the %s market. Cover demographic segments, needs, purchase drivers and buying behavior.",
		DefaultBackend: string(llm.OpenAI),
	},
	{
		ID:             4,
		Name:           "Market Size and Opportunity",
		Agent:          "Agent 004: Market Sizing Expert",
		Role:           "a market sizing expert",
		PromptTemplate: "Estimate the size of the %s market. Give TAM, SAM and SOM estimates with the assumptions behind them and the expected growth rate.",
		DefaultBackend: string(llm.Claude),
	},
	{
		ID:             5,
		Name:           "Growth Strategy and Potential",
		Agent:          "Agent 005: Growth Strategist",
		Role:           "a growth strategist",
		PromptTemplate: "Assess the growth potential of the %s market. Identify growth levers, expansion paths and the most promising segments.",
		DefaultBackend: string(llm.OpenAI),
	},
	{
		ID:             6,
		Name:           "Risk Assessment and Challenges",
		Agent:          "Agent 006: Risk Assessor",
		Role:           "a risk assessment expert",
		PromptTemplate: "Assess the risks and challenges facing the %s market. Cover regulatory, economic, technological and competitive risks along with possible mitigations.",
		DefaultBackend: string(llm.Claude),
	},
	{
		ID:             7,
		Name:           "Technology and Innovation Landscape",
		Agent:          "Agent 007: Innovation Analyst",
		Role:           "a technology and innovation analyst",
		PromptTemplate: "Describe the technologies and innovations shaping the %s market. Highlight enabling technologies, R&D directions and disruptive entrants.",
		DefaultBackend: string(llm.Claude),
	},
	{
		ID:             8,
		Name:           "Strategic Recommendations",
		Agent:          "Agent 008: Strategic Advisor",
		Role:           "a strategic advisor",
		PromptTemplate: "Give actionable strategic recommendations for companies entering or competing in the %s market, prioritized by impact.",
		DefaultBackend: string(llm.OpenAI),
	},
	{
		ID:             9,
		Name:           "Executive Summary",
		Agent:          "Agent 009: Report Compiler",
		Role:           "a senior report compiler",
		PromptTemplate: "Write the executive summary of this %s market research report. Condense the key findings of the earlier sections into a short overview for decision makers.",
		DefaultBackend: string(llm.Claude),
	},
}
