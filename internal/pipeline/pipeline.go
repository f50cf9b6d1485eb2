// Package pipeline drives the compiler stages (lex, parse, match/
// analyze, generate) as a sequence of Processor stages over a shared
// Context, keeping the teacher's internal/pipeline.Pipeline{processors
// []Processor} / Run(ctx) ctx shape exactly — including continuing past a
// stage that reports diagnostics so a single invocation surfaces every
// problem it can, instead of stopping at the first one.
package pipeline

import (
	"github.com/tanep3/Tsuchinoko/internal/analyzer"
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/codegen"
	"github.com/tanep3/Tsuchinoko/internal/diagnostics"
	"github.com/tanep3/Tsuchinoko/internal/ir"
	"github.com/tanep3/Tsuchinoko/internal/parser"
)

// Context carries state between stages, renamed-and-regeneralized from the
// teacher's PipelineContext (spec SUPPLEMENTED FEATURES list, AMBIENT STACK
// "Pipeline"): source text in, generated Rust text out, diagnostics
// accumulated along the way.
type Context struct {
	FilePath string
	Source   string

	AstRoot *ast.Program
	Module  *ir.Module

	Mode   codegen.Mode
	Output string

	Errors diagnostics.Bag
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is an ordered sequence of stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, continuing past stage errors so the
// bag collects diagnostics from lexing, parsing, matching, and analysis
// together rather than aborting on the first.
func (p *Pipeline) Run(initial *Context) *Context {
	ctx := initial
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}

// Standard returns the default lex -> parse -> analyze -> generate pipeline
// used by cmd/tnk.
func Standard(mode codegen.Mode) *Pipeline {
	return New(
		&ParserProcessor{},
		&AnalyzerProcessor{},
		&GeneratorProcessor{Mode: mode},
	)
}

// ParserProcessor runs C1 (lexer feeding the recursive-descent parser with
// statement-boundary recovery, spec §4.1). Lexing and parsing are a single
// stage here because the parser pulls tokens from the lexer on demand
// (parser.New(l *lexer.Lexer, file string)) rather than consuming a
// pre-materialized token slice.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *Context) *Context {
	prog, bag := parser.Parse(ctx.Source, ctx.FilePath)
	ctx.AstRoot = prog
	ctx.Errors.Merge(bag)
	return ctx
}

// AnalyzerProcessor runs C2 (matching) and C3 (the scope/type environment)
// together, the way the teacher's SemanticAnalyzerProcessor wraps its own
// multi-pass analyzer behind one Process call.
type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *Context) *Context {
	if ctx.AstRoot == nil {
		return ctx
	}
	a := analyzer.New(ctx.FilePath)
	ctx.Module = a.Analyze(ctx.AstRoot)
	ctx.Errors.Merge(a.Diagnostics())
	return ctx
}

// GeneratorProcessor runs C4 (Rust emission).
type GeneratorProcessor struct {
	Mode codegen.Mode
}

func (gp *GeneratorProcessor) Process(ctx *Context) *Context {
	if ctx.Module == nil || ctx.Errors.HasErrors() {
		return ctx
	}
	g := codegen.New(gp.Mode)
	ctx.Output = g.Generate(ctx.Module)
	ctx.Errors.Merge(g.Diagnostics())
	return ctx
}
