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
	"testing"

	"github.com/consensys/go-toycc/pkg/toycc/ast/expr"
	"github.com/consensys/go-toycc/pkg/toycc/ast/stmt"
	"github.com/consensys/go-toycc/pkg/util/source"
	"github.com/nalgeon/be"
)

// ============================================================================
// Lexer
// ============================================================================

func TestLex_Keywords(t *testing.T) {
	kinds := lexKinds(t, "return returnx if else while for _for")
	be.Equal(t, kinds, []uint{KEYWORD_RETURN, IDENTIFIER, KEYWORD_IF, KEYWORD_ELSE, KEYWORD_WHILE, KEYWORD_FOR,
		IDENTIFIER, END_OF})
}

func TestLex_Operators(t *testing.T) {
	kinds := lexKinds(t, "== != <= >= < > = + - * / & ( ) { } ;")
	be.Equal(t, kinds, []uint{EQUALS_EQUALS, NOT_EQUALS, LESS_THAN_EQUALS, GREATER_THAN_EQUALS, LESS_THAN,
		GREATER_THAN, EQUALS, ADD, SUB, MUL, DIV, AMPERSAND, LBRACE, RBRACE, LCURLY, RCURLY, SEMICOLON, END_OF})
}

func TestLex_Comments(t *testing.T) {
	kinds := lexKinds(t, "{ // comment\n 1/2; }\r\n")
	be.Equal(t, kinds, []uint{LCURLY, NUMBER, DIV, NUMBER, SEMICOLON, RCURLY, END_OF})
}

func TestLex_Spans(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("  x1 =42"))
	tokens, errs := Lex(srcfile)
	be.Equal(t, len(errs), 0)
	be.Equal(t, len(tokens), 4)
	be.Equal(t, srcfile.Text(tokens[0].Span), "x1")
	be.Equal(t, srcfile.Text(tokens[1].Span), "=")
	be.Equal(t, srcfile.Text(tokens[2].Span), "42")
	be.Equal(t, tokens[3].Span.Start(), 8)
	be.Equal(t, tokens[3].Span.End(), 8)
}

func TestLex_Invalid(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("{ a @ b; }"))
	_, errs := Lex(srcfile)
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Message(), "unknown text encountered")
	be.Equal(t, errs[0].Span().Start(), 4)
	be.Equal(t, errs[0].Span().End(), 10)
}

// ============================================================================
// Expressions
// ============================================================================

func TestParse_Precedence(t *testing.T) {
	checkParse(t, "{ 1+2*3; }", "(block (+ 1 (* 2 3)))")
	checkParse(t, "{ 1*2+3; }", "(block (+ (* 1 2) 3))")
	checkParse(t, "{ 1-2-3; }", "(block (- (- 1 2) 3))")
	checkParse(t, "{ 8/4/2; }", "(block (/ (/ 8 4) 2))")
	checkParse(t, "{ (1+2)*3; }", "(block (* (+ 1 2) 3))")
	checkParse(t, "{ 1<2==3>=4; }", "(block (>= (== (< 1 2) 3) 4))")
	checkParse(t, "{ 1+2<3*4; }", "(block (< (+ 1 2) (* 3 4)))")
}

func TestParse_Assignment(t *testing.T) {
	checkParse(t, "{ a=b=3; }", "(block (= a (= b 3)))")
	checkParse(t, "{ a=1+2*3; }", "(block (= a (+ 1 (* 2 3))))")
	checkParse(t, "{ a=b==c; }", "(block (= a (== b c)))")
}

func TestParse_Prefix(t *testing.T) {
	checkParse(t, "{ -a*b; }", "(block (* (- a) b))")
	checkParse(t, "{ - -3; }", "(block (- (- 3)))")
	checkParse(t, "{ +a; }", "(block (+ a))")
	checkParse(t, "{ *&x; }", "(block (* (& x)))")
	checkParse(t, "{ *p=3; }", "(block (= (* p) 3))")
	checkParse(t, "{ -(1+2); }", "(block (- (+ 1 2)))")
}

func TestParse_Locals(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("{ a=1; b=a; a=b; }"))
	fn, _, errs := Parse(srcfile)
	be.Equal(t, len(errs), 0)
	be.Equal(t, fn.Variables().Len(), uint(2))
	be.Equal(t, fn.Variables().Variable(0).Name, "a")
	be.Equal(t, fn.Variables().Variable(1).Name, "b")
	be.True(t, !fn.IsLaidOut())
}

// ============================================================================
// Statements
// ============================================================================

func TestParse_Statements(t *testing.T) {
	checkParse(t, "{ }", "(block)")
	checkParse(t, "{ return 42; }", "(block (return 42))")
	checkParse(t, "{ ;;; return 1; }", "(block (;) (return 1))")
	checkParse(t, "{ {1; {2;}} }", "(block (block 1 (block 2)))")
	checkParse(t, "{ if (1) return 2; }", "(block (if 1 (return 2)))")
	checkParse(t, "{ if (1) 2; else 3; }", "(block (if 1 2 3))")
	checkParse(t, "{ if (1) if (2) 3; else 4; }", "(block (if 1 (if 2 3 4)))")
	checkParse(t, "{ while (i<10) i=i+1; }", "(block (while (< i 10) (= i (+ i 1))))")
	checkParse(t, "{ for (;;) {} }", "(block (for _ _ _ (block)))")
	checkParse(t, "{ for (i=0;i<10;i=i+1) j=i; }", "(block (for (= i 0) (< i 10) (= i (+ i 1)) (= j i)))")
	checkParse(t, "{ for (;i;) ; }", "(block (for _ i _ (;)))")
	checkParse(t, "{ returnx=1; }", "(block (= returnx 1))")
}

func TestParse_SourceMap(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("{ a = (1 + 2) * 3; }"))
	fn, srcmap, errs := Parse(srcfile)
	be.Equal(t, len(errs), 0)
	//
	body := fn.Body()
	be.Equal(t, srcfile.Text(srcmap.Get(body)), "{ a = (1 + 2) * 3; }")
	//
	st := body.Stmts[0].(*stmt.Expr)
	be.Equal(t, srcfile.Text(srcmap.Get(st)), "a = (1 + 2) * 3;")
	//
	assign := st.Expr.(*expr.Assign)
	be.Equal(t, srcfile.Text(srcmap.Get(assign)), "a = (1 + 2) * 3")
	be.Equal(t, srcfile.Text(srcmap.Get(assign.Left)), "a")
	//
	mul := assign.Right.(*expr.Binary)
	be.Equal(t, srcfile.Text(srcmap.Get(mul)), "(1 + 2) * 3")
	be.Equal(t, srcfile.Text(srcmap.Get(mul.Left)), "1 + 2")
}

// ============================================================================
// Errors
// ============================================================================

func TestParse_Errors(t *testing.T) {
	checkParseError(t, "{ return 1 }", "unexpected token", "}")
	checkParseError(t, "{ 1 + ; }", "expected expression", ";")
	checkParseError(t, "{ return 1;", "unexpected token", "")
	checkParseError(t, "{ } x", "unexpected token", "x")
	checkParseError(t, "return 1;", "unexpected token", "return")
	checkParseError(t, "{ return 18446744073709551616; }", "malformed numeric literal", "18446744073709551616")
	checkParseError(t, "{ if 1 return 2; }", "unexpected token", "1")
	checkParseError(t, "{ while () 1; }", "expected expression", ")")
	checkParseError(t, "{ for (;;;) 1; }", "expected expression", ";")
	checkParseError(t, "{ x = #; }", "unknown text encountered", "#; }")
}

func TestParse_MaxLiteral(t *testing.T) {
	checkParse(t, "{ return 18446744073709551615; }", "(block (return 18446744073709551615))")
}

// ============================================================================
// Helpers
// ============================================================================

func lexKinds(t *testing.T, input string) []uint {
	t.Helper()
	//
	tokens, errs := Lex(source.NewSourceFile("test", []byte(input)))
	be.Equal(t, len(errs), 0)
	//
	kinds := make([]uint, len(tokens))
	for i, token := range tokens {
		kinds[i] = token.Kind
	}
	//
	return kinds
}

func checkParse(t *testing.T, input string, expected string) {
	t.Helper()
	//
	fn, _, errs := Parse(source.NewSourceFile("test", []byte(input)))
	if len(errs) > 0 {
		t.Fatalf("unexpected error parsing %q: %s", input, errs[0].Message())
	}
	//
	be.Equal(t, fn.String(), expected)
}

func checkParseError(t *testing.T, input string, msg string, text string) {
	t.Helper()
	//
	srcfile := source.NewSourceFile("test", []byte(input))
	fn, _, errs := Parse(srcfile)
	//
	be.True(t, fn == nil)
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Message(), msg)
	be.Equal(t, srcfile.Text(errs[0].Span()), text)
}
