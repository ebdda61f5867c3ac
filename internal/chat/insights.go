package chat

import "strings"

const maxInsights = 5

var welcomeInsights = []Insight{
	{
		Title:       "Real-Time Web Scraping",
		Description: "Get live stock prices and market data scraped from Yahoo Finance and other sources.",
		Actionable:  true,
		Action:      "Ask for Live Stock Price",
	},
	{
		Title:       "Market Movers",
		Description: "Access real-time data on top gainers and losers from market sources.",
		Actionable:  true,
		Action:      "Show Market Movers",
	},
	{
		Title:       "Multi-Model Analysis",
		Description: "Advanced AI models provide comprehensive financial analysis with live data.",
		Actionable:  true,
		Action:      "Get Market Analysis",
	},
}

// deriveInsights returns the cards earned by one exchange.
func deriveInsights(query, answer string) []Insight {
	q := strings.ToLower(query)
	var out []Insight

	if strings.Contains(q, "price") || strings.Contains(answer, "$") || strings.Contains(answer, "₹") {
		out = append(out, Insight{
			Title:       "Live Data Scraped",
			Description: "Real-time prices scraped from financial websites. Data refreshed automatically.",
			Actionable:  true,
			Action:      "Refresh Data",
		})
	}

	if strings.Contains(q, "gainers") || strings.Contains(q, "losers") {
		out = append(out, Insight{
			Title:       "Market Movers Analysis",
			Description: "Top gainers and losers identified from live market data scraping.",
			Actionable:  true,
			Action:      "Detailed Analysis",
		})
	}

	if strings.Contains(answer, "scraped in real-time") {
		out = append(out, Insight{
			Title:       "Real-Time Verification",
			Description: "Data is scraped live but should be verified before making trading decisions.",
			Actionable:  true,
			Action:      "Risk Assessment",
		})
	}

	return out
}

// appendInsights keeps the most recent maxInsights cards.
func appendInsights(current, added []Insight) []Insight {
	combined := append(current, added...)
	if len(combined) > maxInsights {
		combined = combined[len(combined)-maxInsights:]
	}
	return append([]Insight(nil), combined...)
}
