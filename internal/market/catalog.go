package market

import (
	"sort"
	"strings"
)

// Indian listings used for suggestions and default ticker sets.
var (
	LargeCap = []string{"RELIANCE.NS", "TCS.NS", "INFY.NS", "HDFCBANK.NS", "ICICIBANK.NS", "HINDUNILVR.NS", "SBIN.NS", "BHARTIARTL.NS", "ITC.NS", "KOTAKBANK.NS"}
	MidCap   = []string{"ADANIPORTS.NS", "AXISBANK.NS", "BAJFINANCE.NS", "BAJAJFINSV.NS", "HCLTECH.NS", "WIPRO.NS", "ULTRACEMCO.NS", "TITAN.NS", "POWERGRID.NS", "NESTLEIND.NS"}
	SmallCap = []string{"BANDHANBNK.NS", "FEDERALBNK.NS", "INDUSINDBK.NS", "YESBANK.NS", "IDEA.NS"}

	GoldETFSymbols = []string{"GOLDBEES.NS", "GOLDIETF.NS", "LIQUIDBEES.NS", "SBIGETS.NS"}
)

var indianStocks = []Stock{
	{Symbol: "RELIANCE.NS", Name: "Reliance Industries Ltd", Price: 2456.75, Change: 23.45, ChangePercent: 0.96, MarketCap: 16000000000000, Currency: "INR"},
	{Symbol: "TCS.NS", Name: "Tata Consultancy Services Ltd", Price: 3567.80, Change: -12.30, ChangePercent: -0.34, MarketCap: 13000000000000, Currency: "INR"},
	{Symbol: "INFY.NS", Name: "Infosys Ltd", Price: 1456.90, Change: 18.75, ChangePercent: 1.30, MarketCap: 6000000000000, Currency: "INR"},
	{Symbol: "HDFCBANK.NS", Name: "HDFC Bank Ltd", Price: 1678.45, Change: 8.90, ChangePercent: 0.53, MarketCap: 9000000000000, Currency: "INR"},
	{Symbol: "ICICIBANK.NS", Name: "ICICI Bank Ltd", Price: 934.25, Change: -5.60, ChangePercent: -0.60, MarketCap: 6500000000000, Currency: "INR"},
}

var goldETFs = []Stock{
	{Symbol: "GOLDBEES.NS", Name: "Nippon India ETF Gold BeES", Price: 4567.80, Change: 12.45, ChangePercent: 0.27, Currency: "INR"},
	{Symbol: "GOLDIETF.NS", Name: "Goldman Sachs Gold ETF", Price: 4534.20, Change: -8.90, ChangePercent: -0.20, Currency: "INR"},
	{Symbol: "SBIGETS.NS", Name: "SBI Gold ETF", Price: 4578.90, Change: 15.67, ChangePercent: 0.34, Currency: "INR"},
}

var indices = []Index{
	{Symbol: "^NSEI", Name: "NIFTY 50", Price: 19456.75, Change: 123.45, ChangePercent: 0.64},
	{Symbol: "^BSESN", Name: "S&P BSE SENSEX", Price: 65234.80, Change: -234.56, ChangePercent: -0.36},
	{Symbol: "^NSEBANK", Name: "NIFTY BANK", Price: 43567.90, Change: 278.34, ChangePercent: 0.64},
}

// IndianStocks returns a copy of the fallback Indian stock list.
func IndianStocks() []Stock { return append([]Stock(nil), indianStocks...) }

// GoldETFs returns a copy of the fallback gold ETF list.
func GoldETFs() []Stock { return append([]Stock(nil), goldETFs...) }

func Indices() []Index { return append([]Index(nil), indices...) }

// Lookup finds a catalog entry by symbol.
func Lookup(symbol string) (Stock, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, list := range [][]Stock{indianStocks, goldETFs} {
		for _, s := range list {
			if s.Symbol == symbol {
				return s, true
			}
		}
	}
	return Stock{}, false
}

// TopGainers returns the positive movers of the catalog, best first.
func TopGainers(stocks []Stock, limit int) []Stock {
	var out []Stock
	for _, s := range stocks {
		if s.ChangePercent > 0 {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangePercent > out[j].ChangePercent })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopLosers returns the negative movers of the catalog, worst first.
func TopLosers(stocks []Stock, limit int) []Stock {
	var out []Stock
	for _, s := range stocks {
		if s.ChangePercent < 0 {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangePercent < out[j].ChangePercent })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
