// Package parserpool provides a pool of gnparser instances for
// concurrent scientific name parsing. Parsing is pure computation;
// the pool only exists to amortize the cost of parser construction
// across workers.
package parserpool

import (
	"fmt"
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool hands out gnparser instances for concurrent parsing. Survey
// data mixes zoological names (fish, invertebrates) with botanical
// ones (algae, seagrasses), so separate pools are kept per
// nomenclatural code.
type Pool interface {
	// Parse parses a scientific name string under the given
	// nomenclatural code. Safe for concurrent use; blocks while all
	// parsers for that code are busy.
	Parse(name string, code nomcode.Code) (parsed.Parsed, error)

	// Close releases the parsers. The pool must not be used after
	// Close returns.
	Close()
}

type poolImpl struct {
	zoo chan gnparser.GNparser
	bot chan gnparser.GNparser
}

// New creates a parser pool with jobsNum workers per nomenclatural
// code. A jobsNum of 0 defaults to runtime.NumCPU(). Parsers are
// configured with details enabled so cardinality and quality are
// available for the taxa table.
func New(jobsNum int) Pool {
	size := jobsNum
	if size == 0 {
		size = runtime.NumCPU()
	}

	zooCfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Zoological),
		gnparser.OptWithDetails(true),
	)
	botCfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Botanical),
		gnparser.OptWithDetails(true),
	)

	return &poolImpl{
		zoo: gnparser.NewPool(zooCfg, size),
		bot: gnparser.NewPool(botCfg, size),
	}
}

func (p *poolImpl) Parse(
	name string, code nomcode.Code,
) (parsed.Parsed, error) {
	var ch chan gnparser.GNparser
	switch code {
	case nomcode.Zoological:
		ch = p.zoo
	case nomcode.Botanical:
		ch = p.bot
	default:
		return parsed.Parsed{},
			fmt.Errorf("unsupported nomenclatural code: %v", code)
	}

	parser := <-ch
	res := parser.ParseName(name)
	ch <- parser

	return res, nil
}

func (p *poolImpl) Close() {
	for _, ch := range []chan gnparser.GNparser{p.zoo, p.bot} {
		if ch == nil {
			continue
		}
		close(ch)
		for range ch {
		}
	}
}
