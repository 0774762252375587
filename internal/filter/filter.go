package filter

import (
	"regexp"
	"strconv"
	"strings"
)

// Op is one of the five comparison operators accepted by range filters.
type Op int

const (
	LT Op = iota
	LTE
	GT
	GTE
	EQ
)

// SQL returns the operator's SQL spelling.
func (op Op) SQL() string {
	switch op {
	case LT:
		return "<"
	case LTE:
		return "<="
	case GT:
		return ">"
	case GTE:
		return ">="
	default:
		return "="
	}
}

// Comparison pairs an operator with its numeric operand.
type Comparison struct {
	Op    Op
	Value float64
}

// Matches reports whether v satisfies the comparison. Used when the numeric
// extraction has to run in process instead of in SQL.
func (c Comparison) Matches(v float64) bool {
	switch c.Op {
	case LT:
		return v < c.Value
	case LTE:
		return v <= c.Value
	case GT:
		return v > c.Value
	case GTE:
		return v >= c.Value
	default:
		return v == c.Value
	}
}

// Accepted grammar: operator, optional whitespace, decimal number with at most
// one fractional part. Anything else is not a comparison.
var comparisonRe = regexp.MustCompile(`^(<=|>=|=|<|>)\s*(\d+(\.\d+)?)$`)

// ParseComparison parses strings like "<=4.5" or "> 120". A bare number, an
// operator with no digits, or a malformed decimal all return ok=false.
func ParseComparison(s string) (Comparison, bool) {
	m := comparisonRe.FindStringSubmatch(s)
	if m == nil {
		return Comparison{}, false
	}
	var op Op
	switch m[1] {
	case "<":
		op = LT
	case "<=":
		op = LTE
	case ">":
		op = GT
	case ">=":
		op = GTE
	case "=":
		op = EQ
	}
	v, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Comparison{}, false
	}
	return Comparison{Op: op, Value: v}, true
}

// Filter is the ephemeral search spec for one request. Nil comparisons and
// empty strings mean "no filter on this field".
type Filter struct {
	Title     string
	Cuisine   string
	Rating    *Comparison
	TotalTime *Comparison
	Calories  *Comparison
}

// FromQuery builds a Filter from raw query-string values. Unrecognized
// comparison syntax on rating/total_time/calories degrades to no filter on
// that field rather than an error.
func FromQuery(params map[string]string) Filter {
	f := Filter{
		Title:   params["title"],
		Cuisine: params["cuisine"],
	}
	if c, ok := ParseComparison(params["rating"]); ok {
		f.Rating = &c
	}
	if c, ok := ParseComparison(params["total_time"]); ok {
		f.TotalTime = &c
	}
	if c, ok := ParseComparison(params["calories"]); ok {
		f.Calories = &c
	}
	return f
}

// caloriesExpr pulls a numeric value out of the free-form calories text.
// NULLIF turns an empty extraction into NULL so rows with no extractable
// calorie value never match a calorie-bounded search.
const caloriesExpr = `NULLIF(regexp_replace(nutrients->>'calories','[^0-9.]','','g'),'')::numeric`

// Compile turns the filter into predicate fragments with `?` placeholders and
// a positionally aligned argument list, ready to be joined with AND. Fragment
// order is fixed: title, cuisine, rating, total_time, calories.
//
// The calories fragment needs regexp_replace and a JSONB ->> operator, so it
// is only emitted for the postgres dialect; on other dialects the caller must
// apply the Calories comparison in memory via ExtractNumber.
func (f Filter) Compile(dialect string) (conds []string, args []interface{}) {
	if f.Title != "" {
		conds = append(conds, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Title)+"%")
	}
	if f.Cuisine != "" {
		conds = append(conds, "cuisine = ?")
		args = append(args, f.Cuisine)
	}
	if f.Rating != nil {
		conds = append(conds, "rating "+f.Rating.Op.SQL()+" ?")
		args = append(args, f.Rating.Value)
	}
	if f.TotalTime != nil {
		conds = append(conds, "total_time "+f.TotalTime.Op.SQL()+" ?")
		args = append(args, f.TotalTime.Value)
	}
	if f.Calories != nil && dialect == "postgres" {
		conds = append(conds, caloriesExpr+" "+f.Calories.Op.SQL()+" ?")
		args = append(args, f.Calories.Value)
	}
	return conds, args
}

// ExtractNumber strips every character except digits and dots from s and
// parses what remains. It mirrors the SQL extraction in caloriesExpr: an
// empty or unparsable remainder yields ok=false.
func ExtractNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
