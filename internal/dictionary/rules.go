// Package dictionary implements the replacement-table correction pass:
// an ordered list of literal (incorrect → correct) spelling rewrites, the
// engine that applies them cumulatively, and the stores the rules come
// from (built-in table, YAML file, Redis custom rules).
package dictionary

// Rule is one literal standardized-spelling rewrite. Rules are immutable
// after load; their position in the table defines tie-break order when
// overlapping matches occur within one pass.
type Rule struct {
	Incorrect string `yaml:"incorrect" json:"incorrect"`
	Correct   string `yaml:"correct" json:"correct"`
}

// BuiltinRules returns the standard Hindi spelling table compiled into the
// binary: chandrabindu restorations and the गयी/गये verb-form series.
// Callers append file and Redis rules after these.
func BuiltinRules() []Rule {
	return []Rule{
		{Incorrect: "मां", Correct: "माँ"},
		{Incorrect: "हां", Correct: "हाँ"},
		{Incorrect: "कहां", Correct: "कहाँ"},
		{Incorrect: "यहां", Correct: "यहाँ"},
		{Incorrect: "वहां", Correct: "वहाँ"},
		{Incorrect: "जहां", Correct: "जहाँ"},
		{Incorrect: "गांव", Correct: "गाँव"},
		{Incorrect: "आंख", Correct: "आँख"},
		{Incorrect: "पांच", Correct: "पाँच"},
		{Incorrect: "चांद", Correct: "चाँद"},
		{Incorrect: "सांस", Correct: "साँस"},
		{Incorrect: "मुंह", Correct: "मुँह"},
		{Incorrect: "दांत", Correct: "दाँत"},
		{Incorrect: "ऊंचा", Correct: "ऊँचा"},
		{Incorrect: "हंसी", Correct: "हँसी"},
		{Incorrect: "गई", Correct: "गयी"},
		{Incorrect: "गए", Correct: "गये"},
		{Incorrect: "नई", Correct: "नयी"},
		{Incorrect: "नए", Correct: "नये"},
		{Incorrect: "आई", Correct: "आयी"},
		{Incorrect: "आए", Correct: "आये"},
		{Incorrect: "हुई", Correct: "हुयी"},
		{Incorrect: "हुए", Correct: "हुये"},
	}
}
