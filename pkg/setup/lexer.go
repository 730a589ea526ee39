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
package setup

// END_OF signals "end of expression"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// LBRACE signals "left brace"
const LBRACE uint = 2

// RBRACE signals "right brace"
const RBRACE uint = 3

// LCURLY signals the start of a free parameter name, as in "{prob}"
const LCURLY uint = 4

// RCURLY signals the end of a free parameter name
const RCURLY uint = 5

// NUMBER signals a decimal number, optionally in scientific notation
const NUMBER uint = 6

// IDENTIFIER signals the name of a free parameter
const IDENTIFIER uint = 7

// ADD represents addition
const ADD uint = 8

// SUB represents subtraction (or negation)
const SUB uint = 9

// MUL represents multiplication
const MUL uint = 10

// DIV represents division
const DIV uint = 11

// token associates a kind with a range of characters in the expression being
// scanned.
type token struct {
	kind  uint
	start int
	end   int
}

// scanner is a function which accepts some number of characters at the start
// of a given sequence, returning zero when it does not match.
type scanner func(items []rune) uint

// Accept a given sequence of characters.
func unit(chars ...rune) scanner {
	return func(items []rune) uint {
		if len(items) < len(chars) {
			return 0
		}
		//
		for i, c := range chars {
			if items[i] != c {
				return 0
			}
		}
		//
		return uint(len(chars))
	}
}

// Accept any character within a given range.
func within(lowest rune, highest rune) scanner {
	return func(items []rune) uint {
		if len(items) != 0 && lowest <= items[0] && items[0] <= highest {
			return 1
		}
		//
		return 0
	}
}

// Accept the first of the given scanners which matches.
func or(scanners ...scanner) scanner {
	return func(items []rune) uint {
		for _, s := range scanners {
			if n := s(items); n > 0 {
				return n
			}
		}
		//
		return 0
	}
}

// Accept zero or more matches of a given scanner.
func many(s scanner) scanner {
	return func(items []rune) uint {
		index := uint(0)
		//
		for index < uint(len(items)) {
			n := s(items[index:])
			if n == 0 {
				break
			}
			//
			index += n
		}
		//
		return index
	}
}

// Accept one match of the first scanner, followed by zero or more matches of
// the second.
func then(first scanner, rest scanner) scanner {
	return func(items []rune) uint {
		n := first(items)
		if n == 0 {
			return 0
		}
		//
		return n + rest(items[n:])
	}
}

var digit = within('0', '9')

var whitespace = then(or(unit(' '), unit('\t')), many(or(unit(' '), unit('\t'))))

var identifier = then(
	or(unit('_'), within('a', 'z'), within('A', 'Z')),
	many(or(unit('_'), digit, within('a', 'z'), within('A', 'Z'))))

// Scan a number such as 5, 0.25, .5 or 1e-3.
func number(items []rune) uint {
	n := many(digit)(items)
	// Fractional part
	if n < uint(len(items)) && items[n] == '.' {
		n += 1 + many(digit)(items[n+1:])
	}
	// Must contain at least one digit
	if n == 0 || (n == 1 && items[0] == '.') {
		return 0
	}
	// Exponent
	if n < uint(len(items)) && (items[n] == 'e' || items[n] == 'E') {
		m := n + 1
		if m < uint(len(items)) && (items[m] == '+' || items[m] == '-') {
			m++
		}
		//
		if k := many(digit)(items[m:]); k > 0 {
			n = m + k
		}
	}
	//
	return n
}

type lexRule struct {
	scan scanner
	kind uint
}

var rules = []lexRule{
	{unit('('), LBRACE},
	{unit(')'), RBRACE},
	{unit('{'), LCURLY},
	{unit('}'), RCURLY},
	{unit('+'), ADD},
	{unit('-'), SUB},
	{unit('*'), MUL},
	{unit('/'), DIV},
	{whitespace, WHITESPACE},
	{number, NUMBER},
	{identifier, IDENTIFIER},
}

// Tokenise a given expression, dropping whitespace.  The token stream is
// always terminated with END_OF.  If some text cannot be matched, its index is
// returned instead.
func tokenise(input []rune) ([]token, int) {
	var tokens []token
	//
	for index := 0; index < len(input); {
		matched := false
		//
		for _, r := range rules {
			if n := r.scan(input[index:]); n > 0 {
				if r.kind != WHITESPACE {
					tokens = append(tokens, token{r.kind, index, index + int(n)})
				}
				//
				index += int(n)
				matched = true
				//
				break
			}
		}
		//
		if !matched {
			return nil, index
		}
	}
	//
	tokens = append(tokens, token{END_OF, len(input), len(input)})
	//
	return tokens, -1
}
