// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"strconv"

	"github.com/consensys/go-toycc/pkg/toycc/ast"
	"github.com/consensys/go-toycc/pkg/toycc/ast/expr"
	"github.com/consensys/go-toycc/pkg/toycc/ast/stmt"
	"github.com/consensys/go-toycc/pkg/toycc/ast/variable"
	"github.com/consensys/go-toycc/pkg/util/source"
	"github.com/consensys/go-toycc/pkg/util/source/lex"
)

// Parse accepts a given source file holding the braced body of the implicit
// main function, and parses it into a function which has not yet been laid
// out.  Every statement and expression node is registered in the returned
// source map.  Parsing stops at the first error, hence at most one error is
// ever returned.
func Parse(srcfile *source.File) (*ast.Function, *source.Map[any], []source.SyntaxError) {
	parser := NewParser(srcfile)
	// Parse the body
	fn, errors := parser.Parse()
	//
	return fn, parser.srcmap, errors
}

// ============================================================================
// Binding Powers
// ============================================================================

// Binding powers are derived from C's precedence table.  The left binding
// power determines whether an operator can continue an expression being parsed
// at a given minimum; the right binding power is the minimum for its right
// operand.  A right power below the left power makes an operator right
// associative.
type bindingPower struct {
	left  uint
	right uint
}

var infixBindingPowers = map[uint]bindingPower{
	EQUALS:              {2, 1},
	EQUALS_EQUALS:       {9, 10},
	NOT_EQUALS:          {9, 10},
	LESS_THAN:           {9, 10},
	LESS_THAN_EQUALS:    {9, 10},
	GREATER_THAN:        {9, 10},
	GREATER_THAN_EQUALS: {9, 10},
	ADD:                 {11, 12},
	SUB:                 {11, 12},
	MUL:                 {12, 13},
	DIV:                 {12, 13},
}

// PREFIX_BINDING_POWER is the minimum at which the operand of a prefix
// operator is parsed.
const PREFIX_BINDING_POWER uint = 13

var binaryOperators = map[uint]expr.BinOp{
	EQUALS_EQUALS:       expr.EQ,
	NOT_EQUALS:          expr.NEQ,
	LESS_THAN:           expr.LT,
	LESS_THAN_EQUALS:    expr.LTEQ,
	GREATER_THAN:        expr.GT,
	GREATER_THAN_EQUALS: expr.GTEQ,
	ADD:                 expr.ADD,
	SUB:                 expr.SUB,
	MUL:                 expr.MUL,
	DIV:                 expr.DIV,
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a parser for the body of a single function.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Source mapping
	srcmap *source.Map[any]
	// Locals encountered so far
	variables *variable.Table
	// Position within the tokens
	index int
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	// Construct (initially empty) source mapping
	srcmap := source.NewSourceMap[any](srcfile)
	//
	return &Parser{srcfile, nil, srcmap, variable.NewTable(), 0}
}

// SourceMap returns the source map constructed by this parser.
func (p *Parser) SourceMap() *source.Map[any] {
	return p.srcmap
}

// Parse the source file into a function, or report a syntax error.
func (p *Parser) Parse() (*ast.Function, []source.SyntaxError) {
	var errors []source.SyntaxError
	// Convert source file into tokens
	if p.tokens, errors = Lex(p.srcfile); len(errors) > 0 {
		return nil, errors
	}
	//
	start := p.index
	//
	body, errors := p.parseBlock()
	if len(errors) > 0 {
		return nil, errors
	}
	//
	p.srcmap.Put(body, p.spanOf(start, p.index-1))
	// Nothing can follow the body
	if _, errors = p.expect(END_OF); len(errors) > 0 {
		return nil, errors
	}
	//
	return ast.NewFunction(body, p.variables), nil
}

// ============================================================================
// Statements
// ============================================================================

func (p *Parser) parseStatement() (stmt.Stmt, []source.SyntaxError) {
	var (
		start  = p.index
		st     stmt.Stmt
		errors []source.SyntaxError
	)
	//
	switch p.lookahead().Kind {
	case KEYWORD_RETURN:
		st, errors = p.parseReturn()
	case KEYWORD_IF:
		st, errors = p.parseIfElse()
	case KEYWORD_WHILE:
		st, errors = p.parseWhile()
	case KEYWORD_FOR:
		st, errors = p.parseFor()
	case LCURLY:
		st, errors = p.parseBlock()
	case SEMICOLON:
		st = p.parseEmpty()
	default:
		st, errors = p.parseExprStatement()
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	// Record statement span
	p.srcmap.Put(st, p.spanOf(start, p.index-1))
	//
	return st, nil
}

func (p *Parser) parseBlock() (*stmt.Block, []source.SyntaxError) {
	var stmts []stmt.Stmt
	//
	if _, errs := p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.match(RCURLY) {
		// Catch an unterminated block here, rather than reporting a missing
		// expression at the end of the file.
		if p.lookahead().Kind == END_OF {
			return nil, p.syntaxErrors(p.lookahead(), "unexpected token")
		}
		//
		st, errs := p.parseStatement()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		stmts = append(stmts, st)
	}
	//
	return stmt.NewBlock(stmts...), nil
}

func (p *Parser) parseReturn() (stmt.Stmt, []source.SyntaxError) {
	if _, errs := p.expect(KEYWORD_RETURN); len(errs) > 0 {
		return nil, errs
	}
	//
	e, errs := p.parseExpr(0)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return stmt.NewReturn(e), nil
}

func (p *Parser) parseIfElse() (stmt.Stmt, []source.SyntaxError) {
	var els stmt.Stmt
	//
	if _, errs := p.expect(KEYWORD_IF); len(errs) > 0 {
		return nil, errs
	}
	//
	cond, errs := p.parseCondition()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	then, errs := p.parseStatement()
	if len(errs) > 0 {
		return nil, errs
	}
	// Optional else branch
	if p.match(KEYWORD_ELSE) {
		if els, errs = p.parseStatement(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	return stmt.NewIfElse(cond, then, els), nil
}

func (p *Parser) parseWhile() (stmt.Stmt, []source.SyntaxError) {
	if _, errs := p.expect(KEYWORD_WHILE); len(errs) > 0 {
		return nil, errs
	}
	//
	cond, errs := p.parseCondition()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	body, errs := p.parseStatement()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return stmt.NewWhile(cond, body), nil
}

func (p *Parser) parseFor() (stmt.Stmt, []source.SyntaxError) {
	var (
		clauses [3]expr.Expr
		errs    []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_FOR); len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	}
	// A clause is absent exactly when its terminator follows immediately.
	for i, terminator := range []uint{SEMICOLON, SEMICOLON, RBRACE} {
		if !p.follows(terminator) {
			if clauses[i], errs = p.parseExpr(0); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		if _, errs = p.expect(terminator); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	body, errs := p.parseStatement()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return stmt.NewFor(clauses[0], clauses[1], clauses[2], body), nil
}

// Parse a run of one or more terminators.
func (p *Parser) parseEmpty() stmt.Stmt {
	count := uint(0)
	//
	for p.match(SEMICOLON) {
		count++
	}
	//
	return stmt.NewEmpty(count)
}

func (p *Parser) parseExprStatement() (stmt.Stmt, []source.SyntaxError) {
	e, errs := p.parseExpr(0)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return stmt.NewExpr(e), nil
}

// Parse a bracketed condition, as used by if and while.
func (p *Parser) parseCondition() (expr.Expr, []source.SyntaxError) {
	if _, errs := p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	cond, errs := p.parseExpr(0)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	return cond, nil
}

// ============================================================================
// Expressions
// ============================================================================

// Parse an expression by precedence climbing, folding in infix operators for as
// long as their left binding power is at least the given minimum.
func (p *Parser) parseExpr(minbp uint) (expr.Expr, []source.SyntaxError) {
	start := p.index
	//
	lhs, errs := p.parsePrimary()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	for {
		op := p.lookahead()
		bp, ok := infixBindingPowers[op.Kind]
		//
		if !ok || bp.left < minbp {
			return lhs, nil
		}
		// Consume operator
		p.index++
		//
		rhs, errs := p.parseExpr(bp.right)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		if op.Kind == EQUALS {
			lhs = expr.NewAssign(lhs, rhs)
		} else {
			lhs = expr.NewBinary(binaryOperators[op.Kind], lhs, rhs)
		}
		//
		p.srcmap.Put(lhs, p.spanOf(start, p.index-1))
	}
}

func (p *Parser) parsePrimary() (expr.Expr, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
		e         expr.Expr
		errs      []source.SyntaxError
	)
	//
	switch lookahead.Kind {
	case NUMBER:
		e, errs = p.parseNumber()
	case IDENTIFIER:
		p.index++
		e = expr.NewVarAccess(p.variables.Declare(p.string(lookahead)))
	case LBRACE:
		// A bracketed expression is the node inside, which is already mapped.
		return p.parseBracketed()
	case ADD, SUB, AMPERSAND, MUL:
		e, errs = p.parsePrefix()
	default:
		return nil, p.syntaxErrors(lookahead, "expected expression")
	}
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	p.srcmap.Put(e, p.spanOf(start, p.index-1))
	//
	return e, nil
}

func (p *Parser) parseNumber() (expr.Expr, []source.SyntaxError) {
	token, errs := p.expect(NUMBER)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	value, err := strconv.ParseUint(p.string(token), 10, 64)
	if err != nil {
		return nil, p.syntaxErrors(token, "malformed numeric literal")
	}
	//
	return expr.NewConstant(value), nil
}

func (p *Parser) parseBracketed() (expr.Expr, []source.SyntaxError) {
	if _, errs := p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	}
	// Precedence is reset within brackets
	e, errs := p.parseExpr(0)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	return e, nil
}

func (p *Parser) parsePrefix() (expr.Expr, []source.SyntaxError) {
	op := p.lookahead()
	// Consume operator
	p.index++
	//
	operand, errs := p.parseExpr(PREFIX_BINDING_POWER)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	switch op.Kind {
	case ADD:
		return expr.NewUnary(expr.NOOP, operand), nil
	case SUB:
		return expr.NewUnary(expr.NEG, operand), nil
	case AMPERSAND:
		return expr.NewPointer(expr.ADDRESS_OF, operand), nil
	default:
		return expr.NewPointer(expr.DEREF, operand), nil
	}
}

// ============================================================================
// Helpers
// ============================================================================

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		errs := p.syntaxErrors(lookahead, "unexpected token")
		return lookahead, errs
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Follows attempts to check what follows the current position.
func (p *Parser) follows(kinds ...uint) bool {
	for i, kind := range kinds {
		n := i + p.index
		if n >= len(p.tokens) {
			return false
		} else if p.tokens[n].Kind != kind {
			return false
		}
	}
	//
	return true
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
