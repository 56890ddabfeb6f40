// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ast

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kraklabs/dsgl/pkg/types"
)

const (
	kwNode   = "node"
	kwEdge   = "edge"
	kwWalker = "walker"
	kwGraph  = "graph"
)

// Parser is a one-token-lookahead recursive descent parser over the DSGL
// grammar: node, edge, walker, and graph declarations, each a named block
// of typed fields, plus graph-level instance and traversal statements.
type Parser struct {
	lex *Lexer
	cur Token
}

// Parse tokenizes and parses a full DSGL source string into an ordered
// sequence of top-level blocks, preserving source order for deterministic
// downstream resolution.
func Parse(source string) ([]Block, error) {
	p := &Parser{lex: NewLexer(source)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var blocks []Block
	for p.cur.Kind != TokenEOF {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Pos: p.cur.Pos, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.cur.Kind != kind {
		return Token{}, p.errorf("expected %s, found %s %q", kind, p.cur.Kind, p.cur.Text)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *Parser) expectIdent() (Token, error) {
	return p.expect(TokenIdent)
}

func (p *Parser) expectKeyword(kw string) error {
	if p.cur.Kind != TokenIdent || p.cur.Text != kw {
		return p.errorf("expected keyword %q, found %s %q", kw, p.cur.Kind, p.cur.Text)
	}
	return p.advance()
}

func (p *Parser) atKeyword(kw string) bool {
	return p.cur.Kind == TokenIdent && p.cur.Text == kw
}

func (p *Parser) parseBlock() (Block, error) {
	switch {
	case p.atKeyword(kwNode):
		return p.parseNodeDecl()
	case p.atKeyword(kwEdge):
		return p.parseEdgeDecl()
	case p.atKeyword(kwWalker):
		return p.parseWalkerDecl()
	case p.atKeyword(kwGraph):
		return p.parseGraphDecl()
	default:
		return nil, p.errorf("expected a top-level declaration (node, edge, walker, graph), found %s %q", p.cur.Kind, p.cur.Text)
	}
}

// parseNodeDecl parses: "node" IDENT "{" field_list "}" ";"
func (p *Parser) parseNodeDecl() (Block, error) {
	pos := p.cur.Pos
	if err := p.expectKeyword(kwNode); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemi); err != nil {
		return nil, err
	}
	return NodeDecl{Name: name.Text, Fields: fields, Pos: pos}, nil
}

// parseEdgeDecl parses: "edge" IDENT IDENT IDENT "{" field_list "}" ";"
func (p *Parser) parseEdgeDecl() (Block, error) {
	pos := p.cur.Pos
	if err := p.expectKeyword(kwEdge); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	fromType, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	toType, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemi); err != nil {
		return nil, err
	}
	return EdgeDecl{
		Name:     name.Text,
		FromType: fromType.Text,
		ToType:   toType.Text,
		Fields:   fields,
		Pos:      pos,
	}, nil
}

// parseWalkerDecl parses: "walker" IDENT ":" IDENT ";"
func (p *Parser) parseWalkerDecl() (Block, error) {
	pos := p.cur.Pos
	if err := p.expectKeyword(kwWalker); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	nodeType, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemi); err != nil {
		return nil, err
	}
	return WalkerDecl{Name: name.Text, NodeType: nodeType.Text, Pos: pos}, nil
}

// parseFieldList parses: (field ";")*
func (p *Parser) parseFieldList() ([]types.Field, error) {
	var fields []types.Field
	seen := make(map[string]bool)
	for p.cur.Kind == TokenIdent {
		namePos := p.cur.Pos
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		if seen[field.Name] {
			return nil, &ParseError{Pos: namePos, Message: fmt.Sprintf("duplicate field %q", field.Name)}
		}
		seen[field.Name] = true
		if _, err := p.expect(TokenSemi); err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// parseField parses: IDENT ":" field_type
func (p *Parser) parseField() (types.Field, error) {
	name, err := p.expectIdent()
	if err != nil {
		return types.Field{}, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return types.Field{}, err
	}
	ft, err := p.parseFieldType()
	if err != nil {
		return types.Field{}, err
	}
	return types.Field{Name: name.Text, Type: ft}, nil
}

// parseFieldType parses: base_type | base_type "[" INT "]"
func (p *Parser) parseFieldType() (types.FieldType, error) {
	baseTok, err := p.expectIdent()
	if err != nil {
		return types.FieldType{}, err
	}
	base, ok := types.ParsePrimitive(baseTok.Text)
	if !ok {
		return types.FieldType{}, &ParseError{
			Pos:     baseTok.Pos,
			Message: fmt.Sprintf("unknown base type %q", baseTok.Text),
		}
	}

	if p.cur.Kind != TokenLBracket {
		return types.Scalar(base), nil
	}
	if _, err := p.expect(TokenLBracket); err != nil {
		return types.FieldType{}, err
	}
	countTok, err := p.expect(TokenInt)
	if err != nil {
		return types.FieldType{}, err
	}
	count, err := strconv.Atoi(countTok.Text)
	if err != nil {
		return types.FieldType{}, &ParseError{Pos: countTok.Pos, Message: "malformed integer literal"}
	}
	if count < 1 || count > math.MaxInt32 {
		return types.FieldType{}, &ParseError{
			Pos:     countTok.Pos,
			Message: fmt.Sprintf("array count must be in [1, 2^31-1], got %d", count),
		}
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return types.FieldType{}, err
	}
	return types.Array(base, count), nil
}

// parseGraphDecl parses: "graph" "{" graph_body "}" ";"
func (p *Parser) parseGraphDecl() (Block, error) {
	pos := p.cur.Pos
	if err := p.expectKeyword(kwGraph); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	stmts, err := p.parseGraphBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemi); err != nil {
		return nil, err
	}
	return GraphDecl{Stmts: stmts, Pos: pos}, nil
}

// parseGraphBody parses: (graph_stmt)*
func (p *Parser) parseGraphBody() ([]GraphStmt, error) {
	var stmts []GraphStmt
	for {
		switch {
		case p.atKeyword(kwNode):
			stmt, err := p.parseNodeInstStmt()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		case p.atKeyword(kwEdge):
			stmt, err := p.parseEdgeInstStmt()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		case p.atKeyword(kwWalker):
			stmt, err := p.parseWalkerInstStmt()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		default:
			return stmts, nil
		}
	}
}

// parseNodeInstStmt parses: "node" IDENT ident_list ";"
func (p *Parser) parseNodeInstStmt() (GraphStmt, error) {
	pos := p.cur.Pos
	if err := p.expectKeyword(kwNode); err != nil {
		return nil, err
	}
	nodeType, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	names, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemi); err != nil {
		return nil, err
	}
	return NodeInstStmt{NodeType: nodeType.Text, VarNames: names, Pos: pos}, nil
}

// parseEdgeInstStmt parses: "edge" IDENT IDENT IDENT INT ";"
func (p *Parser) parseEdgeInstStmt() (GraphStmt, error) {
	pos := p.cur.Pos
	if err := p.expectKeyword(kwEdge); err != nil {
		return nil, err
	}
	edgeType, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	fromVar, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	toVar, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	weightTok, err := p.expect(TokenInt)
	if err != nil {
		return nil, err
	}
	weight, err := strconv.ParseInt(weightTok.Text, 10, 64)
	if err != nil {
		return nil, &ParseError{Pos: weightTok.Pos, Message: "malformed 64-bit weight literal"}
	}
	if _, err := p.expect(TokenSemi); err != nil {
		return nil, err
	}
	return EdgeInstStmt{
		EdgeType: edgeType.Text,
		FromVar:  fromVar.Text,
		ToVar:    toVar.Text,
		Weight:   weight,
		Pos:      pos,
	}, nil
}

// parseWalkerInstStmt parses: "walker" IDENT IDENT ";"
func (p *Parser) parseWalkerInstStmt() (GraphStmt, error) {
	pos := p.cur.Pos
	if err := p.expectKeyword(kwWalker); err != nil {
		return nil, err
	}
	walkerType, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	startVar, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemi); err != nil {
		return nil, err
	}
	return WalkerInstStmt{WalkerType: walkerType.Text, StartVar: startVar.Text, Pos: pos}, nil
}

// parseIdentList parses: IDENT ("," IDENT)*
func (p *Parser) parseIdentList() ([]string, error) {
	first, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	names := []string{first.Text}
	for p.cur.Kind == TokenComma {
		if _, err := p.advanceAndReturn(); err != nil {
			return nil, err
		}
		next, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, next.Text)
	}
	return names, nil
}

func (p *Parser) advanceAndReturn() (Token, error) {
	tok := p.cur
	return tok, p.advance()
}
