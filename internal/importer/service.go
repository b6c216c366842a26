package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/spend/internal/importer/cgd"
	"github.com/MrJamesThe3rd/spend/internal/importer/spend"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
)

var ErrUnknownSource = errors.New("unknown import source")

type Service struct {
	parsers map[Source]Parser
}

func NewService() *Service {
	return &Service{
		parsers: map[Source]Parser{
			SourceSpend: spend.NewParser(),
			SourceCGD:   cgd.NewParser(),
		},
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]ledger.NewExpense, error) {
	parser, ok := s.parsers[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}

	items, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s file: %w", source, err)
	}

	return items, nil
}
