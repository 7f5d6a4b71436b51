package parser

import (
	"errors"
	"log"
)

// ErrSyntax is returned by Parse for any malformed input. The message is
// always the literal "syntax error" — callers never see position or
// token detail, only this sentinel.
var ErrSyntax = errors.New("syntax error")

// Parse turns a raw input line into a Command. Grammar (lookahead 1):
//
//	Command    := Pipeline [ AMP ]
//	Pipeline   := ProcSpec ( PIPE ProcSpec )*
//	ProcSpec   := STRING+ Redir*
//	Redir      := (REDIR_IN | REDIR_OUT | REDIR_ERR) STRING
//
// A trailing '&' sets Foreground = false; otherwise Foreground = true.
// Redirections may follow the argument list in any order; a later
// redirection of the same kind overrides an earlier one.
func Parse(input string) (*Command, error) {
	log.Printf("parsing input: %s", input)

	p := &parserState{lex: newLexer(input)}
	procs, err := p.pipeline()
	if err != nil {
		log.Printf("syntax error: %s", input)
		return nil, ErrSyntax
	}

	foreground := true
	if p.lex.peek().kind == tokAmp {
		p.lex.next()
		foreground = false
	}

	if p.lex.peek().kind != tokNone {
		log.Printf("syntax error: %s", input)
		return nil, ErrSyntax
	}

	cmd := &Command{Procs: procs, Foreground: foreground}
	log.Printf("parsed command: %+v", cmd)
	return cmd, nil
}

type parserState struct {
	lex *lexer
}

func (p *parserState) pipeline() ([]*ProcessSpec, error) {
	var procs []*ProcessSpec
	for {
		ps, err := p.processSpec()
		if err != nil {
			return nil, err
		}
		procs = append(procs, ps)

		if p.lex.peek().kind != tokPipe {
			break
		}
		p.lex.next()
	}
	return procs, nil
}

func (p *parserState) processSpec() (*ProcessSpec, error) {
	ps := &ProcessSpec{}
	for p.lex.peek().kind == tokString {
		ps.Argv = append(ps.Argv, p.lex.next().value)
	}
	if len(ps.Argv) == 0 {
		return nil, ErrSyntax
	}

	for {
		kind := p.lex.peek().kind
		if kind != tokRedirIn && kind != tokRedirOut && kind != tokRedirErr {
			break
		}
		p.lex.next()

		word := p.lex.peek()
		if word.kind != tokString {
			return nil, ErrSyntax
		}
		p.lex.next()

		switch kind {
		case tokRedirIn:
			ps.RedirIn = word.value
		case tokRedirOut:
			ps.RedirOut = word.value
		case tokRedirErr:
			ps.RedirErr = word.value
		}
	}

	return ps, nil
}
