// Package compiler implements the single-pass Pratt parser and bytecode
// emitter: it consumes a lexer's token stream directly and writes
// instructions into a value.Chunk, with no intervening AST.
package compiler

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/informatter/lumen/lexer"
	"github.com/informatter/lumen/token"
	"github.com/informatter/lumen/value"
)

// Precedence levels, lowest to highest, exactly spec.md §4.2's 11 levels.
type Precedence int

const (
	PREC_NONE       Precedence = iota
	PREC_ASSIGNMENT            // =
	PREC_OR                    // or
	PREC_AND                   // and
	PREC_EQUALITY              // == !=
	PREC_COMPARISON            // < > <= >=
	PREC_TERM                  // + -
	PREC_FACTOR                // * /
	PREC_UNARY                 // ! -
	PREC_CALL                  // . ( )
	PREC_PRIMARY
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// local tracks one declared name within a funcState's scope chain. depth
// is -1 while the variable's initialiser is still being compiled.
type local struct {
	name       string
	depth      int
	isCaptured bool
}

// upvalueRef records how a funcState captures a variable from an
// enclosing funcState: by local slot index, or by the enclosing frame's
// own upvalue index.
type upvalueRef struct {
	index   int
	isLocal bool
}

// funcState is one frame of the compiler's own call stack: compiling a
// nested function pushes a new funcState pointing back at the enclosing
// one, mirroring the nested Closures the compiled bytecode will build at
// runtime.
type funcState struct {
	enclosing *funcState
	function  *value.Function
	kind      value.FunctionKind

	locals     []local
	upvalues   []upvalueRef
	scopeDepth int

	// declaringGlobal holds the name of the global variable currently
	// having its initialiser compiled, so `var a = a;` is rejected the
	// same way a local self-reference is, even though globals are not
	// tracked in locals at all.
	declaringGlobal string
}

// Compiler drives the parser: current/previous token, panic-mode error
// state, and the chain of funcStates being compiled.
type Compiler struct {
	lexer    *lexer.Lexer
	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errs      *multierror.Error

	fc *funcState

	rules map[token.TokenType]parseRule
}

// New creates a Compiler ready to compile source as a top-level script.
func New() *Compiler {
	c := &Compiler{}
	c.rules = c.parseRules()
	return c
}

// Compile parses and emits the whole of source, returning the top-level
// script Function. On any compile error it returns a nil Function and a
// non-nil error aggregating every SemanticError collected in panic-mode
// recovery (spec.md §4.5).
func (c *Compiler) Compile(source string) (*value.Function, error) {
	c.lexer = lexer.New(source)
	// Local slot 0 is reserved for the callee, matching the VM's frame layout.
	c.fc = &funcState{function: &value.Function{Kind: value.FuncScript, Name: "script"}, kind: value.FuncScript, locals: []local{{depth: 0}}}

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	function, _ := c.endCompiler()

	if c.hadError {
		return nil, c.errs.ErrorOrNil()
	}
	return function, nil
}

// --- token stream -----------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lexer.Next()
		if c.current.TokenType != token.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(tt token.TokenType) bool {
	return c.current.TokenType == tt
}

func (c *Compiler) match(tt token.TokenType) bool {
	if !c.check(tt) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(tt token.TokenType, message string) {
	if c.current.TokenType == tt {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// --- error reporting ----------------------------------------------------

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	var where string
	switch tok.TokenType {
	case token.EOF:
		where = "at end"
	case token.ERROR:
		where = ""
	default:
		where = fmt.Sprintf("at '%s'", tok.Lexeme)
	}
	msg := message
	if where != "" {
		msg = fmt.Sprintf("%s: %s", where, message)
	}
	c.errs = multierror.Append(c.errs, SemanticError{Line: tok.Line, Message: msg})
}

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }
func (c *Compiler) error(message string)          { c.errorAt(c.previous, message) }

// synchronize discards tokens until it finds a statement boundary,
// ending panic mode so later errors are reported again (spec.md §4.2).
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.TokenType != token.EOF {
		if c.previous.TokenType == token.SEMICOLON {
			return
		}
		switch c.current.TokenType {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// --- emission -----------------------------------------------------------

func (c *Compiler) currentChunk() *value.Chunk { return &c.fc.function.Chunk }

func (c *Compiler) emitByte(b byte) {
	c.currentChunk().Write(b, c.previous.Line)
}

func (c *Compiler) emitBytes(b1, b2 byte) {
	c.emitByte(b1)
	c.emitByte(b2)
}

func (c *Compiler) emitOp(op Opcode) { c.emitByte(byte(op)) }

func (c *Compiler) emitOpByte(op Opcode, operand byte) { c.emitBytes(byte(op), operand) }

func (c *Compiler) emitReturn() {
	c.emitOp(OP_NIL)
	c.emitOp(OP_RETURN)
}

func (c *Compiler) addConstant(v value.Value) int {
	idx := c.currentChunk().AddConstant(v)
	if idx > 255 {
		c.error("too many constants in one chunk")
		return 0
	}
	return idx
}

func (c *Compiler) emitConstant(v value.Value) {
	idx := c.addConstant(v)
	c.emitOpByte(OP_CONSTANT, byte(idx))
}

// emitJump writes a two-byte placeholder jump operand and returns the
// offset of its first byte, to be fixed up later by patchJump.
func (c *Compiler) emitJump(op Opcode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.currentChunk().Code) - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := len(c.currentChunk().Code) - offset - 2
	if jump > 0xffff {
		c.error("too much code to jump over")
		return
	}
	code := c.currentChunk().Code
	code[offset] = byte((jump >> 8) & 0xff)
	code[offset+1] = byte(jump & 0xff)
}

func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(OP_LOOP)
	offset := len(c.currentChunk().Code) - loopStart + 2
	if offset > 0xffff {
		c.error("loop body too large")
		return
	}
	c.emitByte(byte((offset >> 8) & 0xff))
	c.emitByte(byte(offset & 0xff))
}

// --- compiler-frame management -------------------------------------------

func (c *Compiler) beginScope() { c.fc.scopeDepth++ }

// endScope pops every local declared in the scope just left, closing any
// that were captured by a nested closure instead of merely popping them
// (spec.md §9's redesign: without OP_CLOSE_UPVALUE a closure reading that
// local after this frame moves on would observe whatever reuses the slot).
func (c *Compiler) endScope() {
	c.fc.scopeDepth--
	for len(c.fc.locals) > 0 && c.fc.locals[len(c.fc.locals)-1].depth > c.fc.scopeDepth {
		last := c.fc.locals[len(c.fc.locals)-1]
		if last.isCaptured {
			c.emitOp(OP_CLOSE_UPVALUE)
		} else {
			c.emitOp(OP_POP)
		}
		c.fc.locals = c.fc.locals[:len(c.fc.locals)-1]
	}
}

func (c *Compiler) addLocal(name token.Token) {
	if len(c.fc.locals) >= 256 {
		c.error("too many local variables in function")
		return
	}
	for i := len(c.fc.locals) - 1; i >= 0; i-- {
		l := c.fc.locals[i]
		if l.depth != -1 && l.depth < c.fc.scopeDepth {
			break
		}
		if l.name == name.Lexeme {
			c.error(fmt.Sprintf("already a variable named '%s' in this scope", name.Lexeme))
			return
		}
	}
	c.fc.locals = append(c.fc.locals, local{name: name.Lexeme, depth: -1})
}

func (c *Compiler) declareVariable(name token.Token) {
	if c.fc.scopeDepth == 0 {
		return
	}
	c.addLocal(name)
}

func (c *Compiler) markInitialized() {
	if c.fc.scopeDepth == 0 {
		return
	}
	c.fc.locals[len(c.fc.locals)-1].depth = c.fc.scopeDepth
}

func (c *Compiler) identifierConstant(name token.Token) int {
	return c.addConstant(value.Str(name.Lexeme))
}

// resolveLocal searches fs's own locals from innermost out. A local found
// with depth -1 is still being initialised — reading it in its own
// initialiser is an error (spec.md §3's Local invariant).
func (c *Compiler) resolveLocal(fs *funcState, name string) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].name == name {
			if fs.locals[i].depth == -1 {
				c.error(fmt.Sprintf("can't read local variable '%s' in its own initializer", name))
			}
			return i
		}
	}
	return -1
}

func (c *Compiler) addUpvalue(fs *funcState, index int, isLocal bool) int {
	for i, uv := range fs.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if len(fs.upvalues) >= 256 {
		c.error("too many closure variables in function")
		return 0
	}
	fs.upvalues = append(fs.upvalues, upvalueRef{index: index, isLocal: isLocal})
	fs.function.UpvalueCount++
	return len(fs.upvalues) - 1
}

// resolveUpvalue walks outward from fs looking for name as a local of some
// enclosing funcState, registering an upvalue in every frame between
// (spec.md §4.2's variable-resolution algorithm, step 2).
func (c *Compiler) resolveUpvalue(fs *funcState, name string) int {
	if fs.enclosing == nil {
		return -1
	}
	if localIdx := c.resolveLocal(fs.enclosing, name); localIdx != -1 {
		fs.enclosing.locals[localIdx].isCaptured = true
		return c.addUpvalue(fs, localIdx, true)
	}
	if upvalIdx := c.resolveUpvalue(fs.enclosing, name); upvalIdx != -1 {
		return c.addUpvalue(fs, upvalIdx, false)
	}
	return -1
}

// --- declarations & statements --------------------------------------------

func (c *Compiler) declaration() {
	switch {
	case c.match(token.FUN):
		c.funDeclaration()
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) funDeclaration() {
	c.consume(token.IDENTIFIER, "expect function name")
	name := c.previous
	c.declareVariable(name)
	c.markInitialized()

	global := 0
	if c.fc.scopeDepth == 0 {
		global = c.identifierConstant(name)
	}

	c.function(value.FuncFunction, name.Lexeme)
	c.defineVariable(global)
}

// function compiles a function's parameter list and body in a fresh
// funcState, then emits OP_CLOSURE (with its trailing upvalue descriptor
// pairs) back into the enclosing funcState's chunk.
func (c *Compiler) function(kind value.FunctionKind, name string) {
	c.fc = &funcState{
		enclosing: c.fc,
		kind:      kind,
		function:  &value.Function{Kind: kind, Name: name},
		locals:    []local{{depth: 0}}, // slot 0: the callee
	}
	c.beginScope()

	c.consume(token.LPA, "expect '(' after function name")
	if !c.check(token.RPA) {
		for {
			c.fc.function.Arity++
			if c.fc.function.Arity > 255 {
				c.errorAtCurrent("can't have more than 255 parameters")
			}
			c.consume(token.IDENTIFIER, "expect parameter name")
			paramName := c.previous
			c.declareVariable(paramName)
			c.markInitialized()
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPA, "expect ')' after parameters")
	c.consume(token.LCUR, "expect '{' before function body")
	c.block()

	fn, upvalues := c.endCompiler()

	idx := c.addConstant(value.Obj(fn))
	c.emitOpByte(OP_CLOSURE, byte(idx))
	for _, uv := range upvalues {
		if uv.isLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(byte(uv.index))
	}
}

// endCompiler finishes the current funcState, restoring its enclosing one
// as current, and returns the finished Function plus the upvalue
// descriptors the caller needs to emit alongside OP_CLOSURE.
func (c *Compiler) endCompiler() (*value.Function, []upvalueRef) {
	c.emitReturn()
	fn := c.fc.function
	upvalues := c.fc.upvalues
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithField("function", fn.String()).Debug(Disassemble(&fn.Chunk, fn.String()))
	}
	c.fc = c.fc.enclosing
	return fn, upvalues
}

func (c *Compiler) varDeclaration() {
	c.consume(token.IDENTIFIER, "expect variable name")
	name := c.previous
	c.declareVariable(name)

	global := 0
	if c.fc.scopeDepth == 0 {
		global = c.identifierConstant(name)
		c.fc.declaringGlobal = name.Lexeme
	}

	if c.match(token.ASSIGN) {
		c.expression()
	} else {
		c.emitOp(OP_NIL)
	}
	c.fc.declaringGlobal = ""
	c.consume(token.SEMICOLON, "expect ';' after variable declaration")
	c.defineVariable(global)
}

func (c *Compiler) defineVariable(global int) {
	if c.fc.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(OP_DEFINE_GLOBAL, byte(global))
}

func (c *Compiler) block() {
	for !c.check(token.RCUR) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RCUR, "expect '}' after block")
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	case c.match(token.LCUR):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "expect ';' after value")
	c.emitOp(OP_PRINT)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "expect ';' after expression")
	c.emitOp(OP_POP)
}

func (c *Compiler) returnStatement() {
	if c.fc.kind == value.FuncScript {
		c.error("can't return from top-level code")
	}
	if c.match(token.SEMICOLON) {
		c.emitReturn()
		return
	}
	c.expression()
	c.consume(token.SEMICOLON, "expect ';' after return value")
	c.emitOp(OP_RETURN)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPA, "expect '(' after 'if'")
	c.expression()
	c.consume(token.RPA, "expect ')' after condition")

	thenJump := c.emitJump(OP_JUMP_IF_FALSE)
	c.emitOp(OP_POP)
	c.statement()

	elseJump := c.emitJump(OP_JUMP)
	c.patchJump(thenJump)
	c.emitOp(OP_POP)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.currentChunk().Code)
	c.consume(token.LPA, "expect '(' after 'while'")
	c.expression()
	c.consume(token.RPA, "expect ')' after condition")

	exitJump := c.emitJump(OP_JUMP_IF_FALSE)
	c.emitOp(OP_POP)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(OP_POP)
}

// forStatement desugars the C-style for loop into the same jump/loop
// primitives while/if use, running the increment clause after the body by
// jumping over it once up front and looping back into it every iteration
// (spec.md §4.2).
func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPA, "expect '(' after 'for'")

	switch {
	case c.match(token.SEMICOLON):
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.currentChunk().Code)
	exitJump := -1
	if !c.match(token.SEMICOLON) {
		c.expression()
		c.consume(token.SEMICOLON, "expect ';' after loop condition")
		exitJump = c.emitJump(OP_JUMP_IF_FALSE)
		c.emitOp(OP_POP)
	}

	if !c.match(token.RPA) {
		bodyJump := c.emitJump(OP_JUMP)
		incrementStart := len(c.currentChunk().Code)
		c.expression()
		c.emitOp(OP_POP)
		c.consume(token.RPA, "expect ')' after for clauses")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(OP_POP)
	}
	c.endScope()
}

// --- expressions ----------------------------------------------------------

func (c *Compiler) expression() {
	c.parsePrecedence(PREC_ASSIGNMENT)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := c.getRule(c.previous.TokenType).prefix
	if prefix == nil {
		c.error("expect expression")
		return
	}
	canAssign := prec <= PREC_ASSIGNMENT
	prefix(c, canAssign)

	for prec <= c.getRule(c.current.TokenType).precedence {
		c.advance()
		infix := c.getRule(c.previous.TokenType).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.ASSIGN) {
		c.error("invalid assignment target")
	}
}

func (c *Compiler) getRule(tt token.TokenType) parseRule {
	if rule, ok := c.rules[tt]; ok {
		return rule
	}
	return parseRule{}
}

func number(c *Compiler, canAssign bool) {
	n, _ := c.previous.Literal.(float64)
	c.emitConstant(value.Number(n))
}

func stringLiteral(c *Compiler, canAssign bool) {
	s, _ := c.previous.Literal.(string)
	c.emitConstant(value.Str(s))
}

func literal(c *Compiler, canAssign bool) {
	switch c.previous.TokenType {
	case token.FALSE:
		c.emitOp(OP_FALSE)
	case token.TRUE:
		c.emitOp(OP_TRUE)
	case token.NIL:
		c.emitOp(OP_NIL)
	}
}

func grouping(c *Compiler, canAssign bool) {
	c.expression()
	c.consume(token.RPA, "expect ')' after expression")
}

func unary(c *Compiler, canAssign bool) {
	operator := c.previous.TokenType
	c.parsePrecedence(PREC_UNARY)
	switch operator {
	case token.MINUS:
		c.emitOp(OP_NEGATE)
	case token.BANG:
		c.emitOp(OP_NOT)
	}
}

// binary compiles the right operand at one precedence level higher than
// its own (so `+`/`-`/etc. are left-associative), then emits the real
// opcode — or an EQUAL/GREATER/LESS pair followed by NOT for the three
// derived comparisons `!=`, `<=`, `>=` (spec.md §4.3's table only defines
// EQUAL/GREATER/LESS as opcodes).
func binary(c *Compiler, canAssign bool) {
	operator := c.previous.TokenType
	rule := c.getRule(operator)
	c.parsePrecedence(rule.precedence + 1)

	switch operator {
	case token.PLUS:
		c.emitOp(OP_ADD)
	case token.MINUS:
		c.emitOp(OP_SUBTRACT)
	case token.STAR:
		c.emitOp(OP_MULTIPLY)
	case token.SLASH:
		c.emitOp(OP_DIVIDE)
	case token.EQUAL_EQUAL:
		c.emitOp(OP_EQUAL)
	case token.NOT_EQUAL:
		c.emitOp(OP_EQUAL)
		c.emitOp(OP_NOT)
	case token.GREATER:
		c.emitOp(OP_GREATER)
	case token.GREATER_EQUAL:
		c.emitOp(OP_LESS)
		c.emitOp(OP_NOT)
	case token.LESS:
		c.emitOp(OP_LESS)
	case token.LESS_EQUAL:
		c.emitOp(OP_GREATER)
		c.emitOp(OP_NOT)
	}
}

func and_(c *Compiler, canAssign bool) {
	endJump := c.emitJump(OP_JUMP_IF_FALSE)
	c.emitOp(OP_POP)
	c.parsePrecedence(PREC_AND)
	c.patchJump(endJump)
}

func or_(c *Compiler, canAssign bool) {
	elseJump := c.emitJump(OP_JUMP_IF_FALSE)
	endJump := c.emitJump(OP_JUMP)
	c.patchJump(elseJump)
	c.emitOp(OP_POP)
	c.parsePrecedence(PREC_OR)
	c.patchJump(endJump)
}

func call(c *Compiler, canAssign bool) {
	argCount := c.argumentList()
	c.emitOpByte(OP_CALL, byte(argCount))
}

func (c *Compiler) argumentList() int {
	count := 0
	if !c.check(token.RPA) {
		for {
			c.expression()
			if count == 255 {
				c.error("can't have more than 255 arguments")
			}
			count++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPA, "expect ')' after arguments")
	return count
}

func variable(c *Compiler, canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	if c.fc.scopeDepth == 0 && c.fc.declaringGlobal == name.Lexeme {
		c.error(fmt.Sprintf("can't read local variable '%s' in its own initializer", name.Lexeme))
		return
	}

	var getOp, setOp Opcode
	arg := c.resolveLocal(c.fc, name.Lexeme)
	if arg != -1 {
		getOp, setOp = OP_GET_LOCAL, OP_SET_LOCAL
	} else if arg = c.resolveUpvalue(c.fc, name.Lexeme); arg != -1 {
		getOp, setOp = OP_GET_UPVALUE, OP_SET_UPVALUE
	} else {
		arg = c.identifierConstant(name)
		getOp, setOp = OP_GET_GLOBAL, OP_SET_GLOBAL
	}

	if canAssign && c.match(token.ASSIGN) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}

// parseRules builds the per-token prefix/infix/precedence table that
// drives parsePrecedence. Token kinds with no entry default to a rule with
// no prefix or infix handler and PREC_NONE (e.g. `)`, `;`, `,`).
func (c *Compiler) parseRules() map[token.TokenType]parseRule {
	return map[token.TokenType]parseRule{
		token.LPA:           {prefix: grouping, infix: call, precedence: PREC_CALL},
		token.MINUS:         {prefix: unary, infix: binary, precedence: PREC_TERM},
		token.PLUS:          {infix: binary, precedence: PREC_TERM},
		token.SLASH:         {infix: binary, precedence: PREC_FACTOR},
		token.STAR:          {infix: binary, precedence: PREC_FACTOR},
		token.BANG:          {prefix: unary},
		token.NOT_EQUAL:     {infix: binary, precedence: PREC_EQUALITY},
		token.EQUAL_EQUAL:   {infix: binary, precedence: PREC_EQUALITY},
		token.GREATER:       {infix: binary, precedence: PREC_COMPARISON},
		token.GREATER_EQUAL: {infix: binary, precedence: PREC_COMPARISON},
		token.LESS:          {infix: binary, precedence: PREC_COMPARISON},
		token.LESS_EQUAL:    {infix: binary, precedence: PREC_COMPARISON},
		token.IDENTIFIER:    {prefix: variable},
		token.STRING:        {prefix: stringLiteral},
		token.NUMBER:        {prefix: number},
		token.AND:           {infix: and_, precedence: PREC_AND},
		token.OR:            {infix: or_, precedence: PREC_OR},
		token.FALSE:         {prefix: literal},
		token.TRUE:          {prefix: literal},
		token.NIL:           {prefix: literal},
	}
}
