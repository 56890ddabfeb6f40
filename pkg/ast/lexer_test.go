// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(src)
	var toks []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

func TestLexer_Punctuation(t *testing.T) {
	toks := lexAll(t, "{}[]:;,")
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []TokenKind{
		TokenLBrace, TokenRBrace, TokenLBracket, TokenRBracket,
		TokenColon, TokenSemi, TokenComma, TokenEOF,
	}, kinds)
}

func TestLexer_IdentAndInt(t *testing.T) {
	toks := lexAll(t, "node Sensor 42 -17")
	require.Len(t, toks, 5)
	assert.Equal(t, TokenIdent, toks[0].Kind)
	assert.Equal(t, "node", toks[0].Text)
	assert.Equal(t, TokenIdent, toks[1].Kind)
	assert.Equal(t, "Sensor", toks[1].Text)
	assert.Equal(t, TokenInt, toks[2].Kind)
	assert.Equal(t, "42", toks[2].Text)
	assert.Equal(t, TokenInt, toks[3].Kind)
	assert.Equal(t, "-17", toks[3].Text)
}

func TestLexer_LineComment(t *testing.T) {
	toks := lexAll(t, "node // a comment\nEdge")
	require.Len(t, toks, 3)
	assert.Equal(t, "node", toks[0].Text)
	assert.Equal(t, "Edge", toks[1].Text)
	assert.Equal(t, 2, toks[1].Pos.Line)
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	lex := NewLexer("@")
	_, err := lex.Next()
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lex := NewLexer("")
	tok1, err := lex.Next()
	require.NoError(t, err)
	tok2, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenEOF, tok1.Kind)
	assert.Equal(t, TokenEOF, tok2.Kind)
}
