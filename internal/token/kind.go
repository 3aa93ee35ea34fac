package token

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	Lifetime // 'a

	// literals
	IntLit
	FloatLit
	StringLit // "..", b"..", r#".."#, c".."
	CharLit   // 'x', b'x'

	// keywords
	KwAs
	KwAsync
	KwAwait
	KwBreak
	KwConst
	KwContinue
	KwCrate
	KwDyn
	KwElse
	KwEnum
	KwExtern
	KwFalse
	KwFn
	KwFor
	KwIf
	KwImpl
	KwIn
	KwLet
	KwLoop
	KwMatch
	KwMod
	KwMove
	KwMut
	KwPub
	KwRef
	KwReturn
	KwSelfValue // self
	KwSelfType  // Self
	KwStatic
	KwStruct
	KwSuper
	KwTrait
	KwTrue
	KwType
	KwUnsafe
	KwUse
	KwWhere
	KwWhile

	// punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Lt
	Gt
	Comma
	Semicolon
	Colon
	ColonColon
	Pound
	Bang
	Assign
	Arrow    // ->
	FatArrow // =>
	Dot
	Amp
	Star
	Plus
	Minus
	Slash
	Percent
	Caret
	Pipe
	Question
	At
	Dollar
	Tilde
	Underscore
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of file",
	Ident:      "identifier",
	Lifetime:   "lifetime",
	IntLit:     "integer literal",
	FloatLit:   "float literal",
	StringLit:  "string literal",
	CharLit:    "character literal",
	LParen:     "`(`",
	RParen:     "`)`",
	LBrace:     "`{`",
	RBrace:     "`}`",
	LBracket:   "`[`",
	RBracket:   "`]`",
	Lt:         "`<`",
	Gt:         "`>`",
	Comma:      "`,`",
	Semicolon:  "`;`",
	Colon:      "`:`",
	ColonColon: "`::`",
	Pound:      "`#`",
	Bang:       "`!`",
	Assign:     "`=`",
	Arrow:      "`->`",
	FatArrow:   "`=>`",
	Dot:        "`.`",
	Amp:        "`&`",
	Star:       "`*`",
	Plus:       "`+`",
	Minus:      "`-`",
	Slash:      "`/`",
	Percent:    "`%`",
	Caret:      "`^`",
	Pipe:       "`|`",
	Question:   "`?`",
	At:         "`@`",
	Dollar:     "`$`",
	Tilde:      "`~`",
	Underscore: "`_`",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if kw, ok := keywordText[k]; ok {
		return "`" + kw + "`"
	}
	return "unknown"
}
