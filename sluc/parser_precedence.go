package sluc

const (
	lowestPrec = iota
	precOr
	precAnd
	precComparison
	precSum
	precProduct
	precPrefix
	precPower
)

var precedences = map[TokenType]int{
	tokenOr:       precOr,
	tokenAnd:      precAnd,
	tokenEQ:       precComparison,
	tokenNotEQ:    precComparison,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenPlus:     precSum,
	tokenMinus:    precSum,
	tokenSlash:    precProduct,
	tokenAsterisk: precProduct,
	tokenPercent:  precProduct,
	tokenPower:    precPower,
}

// rightAssociative operators parse their right operand one level lower so
// that a following operator of the same level binds first.
var rightAssociative = map[TokenType]bool{
	tokenPower: true,
}
