package lexmach

import (
	"testing"

	"github.com/npillmayer/lrtab/lr"
	"github.com/npillmayer/lrtab/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMForGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.scanner")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+", '+').N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*", '*').N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(", '(').N("E").T(")", ')').End()
	b.LHS("F").T("id", scanner.Ident).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	LM, err := ForGrammar(g, map[string]string{"id": `[a-z]+`})
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("a + bc*(d)")
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"id", "+", "id", "*", "(", "id", ")"}
	for _, name := range expected {
		tok := sc.NextToken()
		assert.Equal(t, g.SymbolByName(name).TokenType(), tok.TokType(), tok.Lexeme())
	}
	eof := sc.NextToken()
	assert.Equal(t, lr.EOFType, eof.TokType())
	assert.Equal(t, uint64(10), eof.Span().From())
	//
	_, err = ForGrammar(g, map[string]string{"T": `[a-z]+`})
	assert.Error(t, err, "patterns may only be given for terminals")
}

func TestLMReportsUnconsumedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.scanner")
	defer teardown()
	//
	g, err := lr.NewGrammar("G", []string{"a", "b"}, []lr.Production{
		lr.P("S'", "S"), lr.P("S", "a", "S"), lr.P("S", "b"),
	})
	if err != nil {
		t.Fatal(err)
	}
	LM, err := ForGrammar(g, nil)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("a ? b")
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	assert.Equal(t, "a", sc.NextToken().Lexeme())
	assert.Equal(t, "b", sc.NextToken().Lexeme())
	assert.Len(t, errs, 1)
	assert.Equal(t, lr.EOFType, sc.NextToken().TokType())
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = scanner.Comment
	tokenIds["ID"] = scanner.Ident
	tokenIds["NUM"] = scanner.Int
	tokenIds["STRING"] = int(scanner.String)
	for i, tok := range tokens[4:] {
		tokenIds[tok] = i + 10
	}
}
