package risk

import (
	"strings"
	"unicode"
)

type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ParseLevel accepts low, medium or high in any case.
func ParseLevel(s string) (Level, bool) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelLow, LevelMedium, LevelHigh:
		return l, true
	}
	return "", false
}

// Form is the questionnaire as submitted. Numbers stay strings and are read
// leniently: leading digits count, anything else is zero.
type Form struct {
	Salary         string `json:"salary" validate:"required,numeric"`
	Savings        string `json:"savings" validate:"required,numeric"`
	Age            string `json:"age" validate:"required,numeric"`
	Dependents     string `json:"dependents" validate:"required,numeric"`
	InvestmentGoal string `json:"investmentGoal" validate:"required,oneof=retirement education house wealth income"`
	RiskTolerance  string `json:"riskTolerance" validate:"required,oneof=low medium high"`
}

type Profile struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Assessment struct {
	Level   Level   `json:"riskLevel"`
	Score   int     `json:"score"`
	Profile Profile `json:"profile"`
}

const defaultAge = 30

var profiles = map[Level]Profile{
	LevelLow: {
		Title:       "Conservative Investor",
		Description: "You prefer stability and security over high returns. We recommend a portfolio focused on bonds, fixed deposits, and blue-chip Indian stocks.",
	},
	LevelMedium: {
		Title:       "Balanced Investor",
		Description: "You seek a balance between growth and security. We recommend a diversified portfolio with a mix of Indian stocks, bonds, and some alternative investments.",
	},
	LevelHigh: {
		Title:       "Aggressive Investor",
		Description: "You prioritize growth and are willing to accept volatility. We recommend a portfolio with a high allocation to growth Indian stocks and potentially some cryptocurrency exposure.",
	},
}

func ProfileFor(l Level) Profile {
	return profiles[l]
}

// Score sums the per-answer points. Amounts are in rupees.
func Score(f Form) int {
	salary := leadingInt(f.Salary)
	savings := leadingInt(f.Savings)
	age := leadingInt(f.Age)
	if age == 0 {
		age = defaultAge
	}
	dependents := leadingInt(f.Dependents)

	score := 0

	switch {
	case salary > 2_000_000:
		score += 3
	case salary > 800_000:
		score += 2
	default:
		score++
	}

	switch {
	case savings > 1_000_000:
		score += 3
	case savings > 200_000:
		score += 2
	default:
		score++
	}

	switch {
	case age < 35:
		score += 3
	case age < 55:
		score += 2
	default:
		score++
	}

	switch {
	case dependents == 0:
		score += 3
	case dependents <= 2:
		score += 2
	default:
		score++
	}

	switch f.RiskTolerance {
	case "high":
		score += 2
	case "medium":
		score++
	default:
		score--
	}

	return score
}

func LevelFor(score int) Level {
	switch {
	case score >= 10:
		return LevelHigh
	case score >= 7:
		return LevelMedium
	default:
		return LevelLow
	}
}

func Assess(f Form) Assessment {
	score := Score(f)
	level := LevelFor(score)
	return Assessment{Level: level, Score: score, Profile: ProfileFor(level)}
}

// leadingInt reads an optional sign and the digits that follow, after
// leading whitespace. Input without digits yields 0.
func leadingInt(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n > (1<<62)/10 {
			break
		}
		n = n*10 + int64(r-'0')
	}
	if neg {
		return -n
	}
	return n
}
